package http

import "net/http"

// NotFoundHandler covers every unregistered path with the same JSON error
// envelope the rest of the API speaks.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
}
