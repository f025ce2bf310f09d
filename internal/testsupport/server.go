package testsupport

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// NewJSONServer starts an httptest server that answers every request with
// body and registers cleanup.
func NewJSONServer(t testing.TB, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}
