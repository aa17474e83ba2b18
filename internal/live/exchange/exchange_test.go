package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
}

func TestJPYToTWD(t *testing.T) {
	srv := serve(`{"result":"success","base_code":"JPY","rates":{"JPY":1,"TWD":0.2153,"USD":0.0067}}`)
	defer srv.Close()

	rate, err := New(srv.URL).JPYToTWD(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.2153, rate)
}

func TestJPYToTWDMissing(t *testing.T) {
	for _, body := range []string{
		`{"result":"success","rates":{"USD":0.0067}}`,
		`{"result":"error","error-type":"unsupported-code"}`,
	} {
		srv := serve(body)
		_, err := New(srv.URL).JPYToTWD(context.Background())
		assert.Error(t, err, body)
		srv.Close()
	}
}
