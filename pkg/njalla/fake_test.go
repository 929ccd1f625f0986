package njalla

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

// capturedRequest is one request received by fakeAPI.
type capturedRequest struct {
	HTTPMethod string
	Header     http.Header
	Version    string          `json:"jsonrpc"`
	ID         json.RawMessage `json:"id"`
	Method     string          `json:"method"`
	Params     map[string]any  `json:"params"`
}

// fakeAPI is an httptest server that records JSON-RPC requests and answers
// with a status code and raw body chosen by respond.
type fakeAPI struct {
	server  *httptest.Server
	respond func(req capturedRequest) (int, string)

	mu       sync.Mutex
	requests []capturedRequest
}

func newFakeAPI(t *testing.T, respond func(req capturedRequest) (int, string)) *fakeAPI {
	t.Helper()

	f := &fakeAPI{respond: respond}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		req := capturedRequest{}
		if err := json.Unmarshal(body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		req.HTTPMethod = r.Method
		req.Header = r.Header.Clone()

		f.mu.Lock()
		f.requests = append(f.requests, req)
		f.mu.Unlock()

		status, resp := f.respond(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(f.server.Close)

	return f
}

// replyByMethod answers each method with a fixed 200 body.
func replyByMethod(bodies map[string]string) func(req capturedRequest) (int, string) {
	return func(req capturedRequest) (int, string) {
		body, ok := bodies[req.Method]
		if !ok {
			return http.StatusOK, `{"error":{"code":404,"message":"unknown method"}}`
		}
		return http.StatusOK, body
	}
}

func (f *fakeAPI) client(t *testing.T) *Client {
	t.Helper()

	c, err := New(testToken, WithEndpoint(f.server.URL))
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func (f *fakeAPI) Requests() []capturedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]capturedRequest(nil), f.requests...)
}

func (f *fakeAPI) Methods() []string {
	var methods []string
	for _, r := range f.Requests() {
		methods = append(methods, r.Method)
	}
	return methods
}
