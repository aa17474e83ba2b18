package transport

import (
	"net/http"
	"strings"
)

// Authenticator applies an API key to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// Authentication schemes accepted by AuthFor.
const (
	SchemeNone   = "none"
	SchemeBearer = "bearer"
	SchemeHeader = "header"
	SchemeQuery  = "query"
)

// DefaultAPIKeyHeader is the header tripmap servers read API keys from.
const DefaultAPIKeyHeader = "X-API-Key"

// DefaultAPIKeyParam is the query parameter used where headers cannot be
// read, such as spreadsheet web apps.
const DefaultAPIKeyParam = "key"

// AuthFor returns the authenticator for a configured scheme. Unknown
// schemes fall back to the API key header.
func AuthFor(scheme string) Authenticator {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case SchemeNone:
		return &NoAuth{}
	case SchemeBearer:
		return &BearerAuth{}
	case SchemeQuery:
		return &QueryAuth{Param: DefaultAPIKeyParam}
	default:
		return &HeaderAuth{Header: DefaultAPIKeyHeader}
	}
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set(a.Header, apiKey)
}

// QueryAuth implements API key as query parameter authentication.
type QueryAuth struct {
	Param string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request, apiKey string) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, apiKey)
	req.URL.RawQuery = query.Encode()
}
