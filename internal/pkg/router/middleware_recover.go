package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/sentiqlab/sentiq/internal/pkg/stacktrace"
)

func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				//nolint:err113,errorlint // sentinel must be compared directly
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				stack := debug.Stack()
				if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
					slog.ErrorContext(r.Context(), "panic while serving request", "because", rvr, "stack", paths)
				} else {
					slog.ErrorContext(r.Context(), "panic while serving request", "because", rvr, "stack", string(stack))
				}

				if r.Header.Get("Connection") != "Upgrade" {
					writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(w, r)
	})
}
