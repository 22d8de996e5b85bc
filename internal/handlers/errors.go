package handlers

import (
	"encoding/json"
	"net/http"
)

// HTTPError is an error that knows how it should be shown to a client.
type HTTPError interface {
	error
	StatusCode() int
	Message() string
}

// ServerError is the closed set of failures a page request can end in.
type ServerError int

const (
	InternalError ServerError = iota
	PostNotFound
)

var _ HTTPError = InternalError

func (e ServerError) Error() string {
	return e.Message()
}

func (e ServerError) StatusCode() int {
	switch e {
	case PostNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (e ServerError) Message() string {
	switch e {
	case PostNotFound:
		return "The post you are looking for does not exist."
	default:
		return "An internal error occurred. Please try again later."
	}
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// writeServerError sends only the fixed message for e; the cause is logged by the
// caller and never written out.
func writeServerError(w http.ResponseWriter, e HTTPError) {
	writeHTML(w, e.StatusCode(), e.Message())
}

// ErrorPage serves the fixed response for e, e.g. as the panic fallback.
func ErrorPage(e HTTPError) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeServerError(w, e)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
