// Package handlers implements the HTTP handlers of the tripmap API.
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/tripmap"
	"github.com/agentstation/tripmap/internal/server/events"
	"github.com/agentstation/tripmap/internal/server/response"
	"github.com/agentstation/tripmap/internal/server/sse"
	ws "github.com/agentstation/tripmap/internal/server/websocket"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/trip"
)

// Deps are the collaborators of the handlers.
type Deps struct {
	Trip           tripmap.Client
	Relay          store.Store
	Broker         *events.Broker
	WSHub          *ws.Hub
	SSEBroadcaster *sse.Broadcaster
	Upgrader       websocket.Upgrader
	Logger         *zerolog.Logger
	MaxBodyBytes   int64
	StartTime      time.Time
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	tm             tripmap.Client
	relay          store.Store
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	maxBody        int64
	startTime      time.Time
}

// New creates a new Handlers instance.
func New(d Deps) *Handlers {
	maxBody := d.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = constants.MaxRequestBodyBytes
	}
	return &Handlers{
		tm:             d.Trip,
		relay:          d.Relay,
		broker:         d.Broker,
		wsHub:          d.WSHub,
		sseBroadcaster: d.SSEBroadcaster,
		upgrader:       d.Upgrader,
		logger:         d.Logger,
		maxBody:        maxBody,
		startTime:      d.StartTime,
	}
}

// decode reads a JSON body into v. It writes the error response and
// returns false when the body is missing, malformed or too large.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		response.PayloadTooLarge(w, tooLarge.Limit)
	case stderrors.Is(err, io.EOF):
		response.BadRequest(w, "Request body is required", "")
	default:
		response.BadRequest(w, "Invalid JSON body", err.Error())
	}
	return false
}

// decodeOptional is decode for bodies that may be empty.
func (h *Handlers) decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	return h.decode(w, r, v)
}

// dayParam parses the {day} URL parameter.
func dayParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	return intParam(w, r, "day")
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(w, "Invalid "+name, name+" must be an integer, got "+strconv.Quote(raw))
		return 0, false
	}
	return n, true
}

// parseCity accepts a city name in any case.
func parseCity(raw string) (trip.City, bool) {
	for c := range trip.CityCoordinates {
		if strings.EqualFold(string(c), raw) {
			return c, true
		}
	}
	return "", false
}
