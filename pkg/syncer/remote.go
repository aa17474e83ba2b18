package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/agentstation/tripmap/internal/transport"
	"github.com/agentstation/tripmap/pkg/errors"
)

// Remote stores and returns the latest payload for a group of devices.
type Remote interface {
	// Push uploads p and returns the HTTP status of the acknowledgment.
	Push(ctx context.Context, p *Payload) (int, error)

	// Fetch returns the stored payload. An endpoint with no data yet
	// returns a payload with a zero timestamp.
	Fetch(ctx context.Context) (*Payload, error)

	// Endpoint names the remote for errors and logs.
	Endpoint() string
}

// ActionUpdate and ActionGet are the spreadsheet endpoint's actions.
const (
	ActionUpdate = "update"
	ActionGet    = "get"
)

// UpdateRequest is the body POSTed to the endpoint.
type UpdateRequest struct {
	Action  string   `json:"action"`
	Payload *Payload `json:"payload"`
}

// HTTPRemote talks to a spreadsheet web app or a tripmap relay. The URL is
// resolved on every call so a changed setting applies immediately.
type HTTPRemote struct {
	client *transport.Client
	url    func() string
}

// NewHTTPRemote creates a remote for the URL returned by endpoint.
func NewHTTPRemote(endpoint func() string, opts ...transport.Option) *HTTPRemote {
	return &HTTPRemote{
		client: transport.New("sync", opts...),
		url:    endpoint,
	}
}

// Endpoint returns the current URL without credentials.
func (r *HTTPRemote) Endpoint() string {
	u, err := url.Parse(r.url())
	if err != nil {
		return r.url()
	}
	return u.Redacted()
}

// Push POSTs {"action":"update","payload":p}. A 2xx answer whose JSON body
// reports an error still fails.
func (r *HTTPRemote) Push(ctx context.Context, p *Payload) (int, error) {
	endpoint := strings.TrimSpace(r.url())
	if endpoint == "" {
		return 0, errors.NewConfigError("sync", "sync URL is not set", nil)
	}

	resp, err := r.client.PostJSON(ctx, endpoint, UpdateRequest{Action: ActionUpdate, Payload: p})
	if err != nil {
		return 0, err
	}
	status := resp.StatusCode
	body, err := r.client.Decode(resp, nil)
	if err != nil {
		return status, err
	}
	if msg, failed := bodyError(body); failed {
		return status, &errors.APIError{
			Service:    r.client.Service(),
			StatusCode: status,
			Message:    msg,
			Endpoint:   r.Endpoint(),
		}
	}
	return status, nil
}

// Fetch GETs <url>?action=get and decodes the stored payload.
func (r *HTTPRemote) Fetch(ctx context.Context) (*Payload, error) {
	endpoint := strings.TrimSpace(r.url())
	if endpoint == "" {
		return nil, errors.NewConfigError("sync", "sync URL is not set", nil)
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.NewConfigError("sync", "sync URL is invalid", err)
	}
	q := u.Query()
	q.Set("action", ActionGet)
	u.RawQuery = q.Encode()

	resp, err := r.client.Get(ctx, u.String())
	if err != nil {
		return nil, err
	}
	body, err := r.client.Decode(resp, nil)
	if err != nil {
		return nil, err
	}
	if msg, failed := bodyError(body); failed {
		return nil, &errors.APIError{Service: r.client.Service(), StatusCode: resp.StatusCode, Message: msg, Endpoint: r.Endpoint()}
	}
	// A sheet that was never written answers null.
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return &Payload{}, nil
	}
	return DecodeJSON(unwrap(body))
}

// bodyError reports whether a JSON acknowledgment signals failure through
// status:"error", ok:false or a non-empty error field. Bodies that are not
// JSON objects are not inspected.
func bodyError(body []byte) (string, bool) {
	var ack struct {
		Status  string          `json:"status"`
		OK      *bool           `json:"ok"`
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' || json.Unmarshal(trimmed, &ack) != nil {
		return "", false
	}

	msg := ack.Message
	if len(ack.Error) > 0 && string(ack.Error) != "null" && string(ack.Error) != `""` && string(ack.Error) != "false" {
		var s string
		if json.Unmarshal(ack.Error, &s) == nil {
			msg = s
		} else {
			msg = string(ack.Error)
		}
		return msg, true
	}
	if strings.EqualFold(ack.Status, "error") || (ack.OK != nil && !*ack.OK) {
		if msg == "" {
			msg = "remote reported failure"
		}
		return msg, true
	}
	return "", false
}

// unwrap returns the payload object of endpoints that answer
// {"status":"success","data":{...}} or {"payload":{...}} instead of the
// bare payload.
func unwrap(body []byte) []byte {
	var envelope struct {
		Timestamp json.RawMessage `json:"timestamp"`
		Data      json.RawMessage `json:"data"`
		Payload   json.RawMessage `json:"payload"`
	}
	if json.Unmarshal(body, &envelope) != nil || envelope.Timestamp != nil {
		return body
	}
	for _, inner := range []json.RawMessage{envelope.Payload, envelope.Data} {
		if t := bytes.TrimSpace(inner); len(t) > 0 && t[0] == '{' {
			return t
		}
	}
	return body
}
