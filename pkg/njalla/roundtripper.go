package njalla

import (
	"net/http"
)

// authRoundTripper wraps an http.RoundTripper and sets the Authorization
// header on every request.
type authRoundTripper struct {
	authorization string
	transport     http.RoundTripper
}

// newAuthRoundTripper creates an authRoundTripper.
// If transport is nil, http.DefaultTransport is used.
func newAuthRoundTripper(authorization string, transport http.RoundTripper) *authRoundTripper {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &authRoundTripper{
		authorization: authorization,
		transport:     transport,
	}
}

// RoundTrip implements the http.RoundTripper interface.
func (a *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrip must not modify the caller's request
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", a.authorization)

	return a.transport.RoundTrip(req)
}
