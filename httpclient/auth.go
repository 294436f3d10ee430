package httpclient

import "net/http"

// Auth decorates outbound requests with credentials.
type Auth interface {
	apply(req *http.Request)
}

type bearerAuth string

func (a bearerAuth) apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+string(a))
}

type basicAuth struct{ username, password string }

func (a basicAuth) apply(req *http.Request) {
	req.SetBasicAuth(a.username, a.password)
}

type headerAuth struct{ name, value string }

func (a headerAuth) apply(req *http.Request) {
	req.Header.Set(a.name, a.value)
}

type funcAuth func(*http.Request)

func (f funcAuth) apply(req *http.Request) { f(req) }

// BearerAuth sends token as a Bearer credential.
func BearerAuth(token string) Auth { return bearerAuth(token) }

// BasicAuth sends HTTP Basic credentials.
func BasicAuth(username, password string) Auth { return basicAuth{username, password} }

// HeaderAuth sends value in the named header, e.g. an RPC provider API key.
func HeaderAuth(name, value string) Auth { return headerAuth{name, value} }

// CustomAuth applies fn to every request.
func CustomAuth(fn func(*http.Request)) Auth { return funcAuth(fn) }

// applyAuth applies the request-level auth, falling back to the client's.
func applyAuth(req *http.Request, requestAuth, clientAuth Auth) {
	switch {
	case requestAuth != nil:
		requestAuth.apply(req)
	case clientAuth != nil:
		clientAuth.apply(req)
	}
}
