package router

import (
	"net/http"
	"strings"

	"github.com/sentiqlab/sentiq/internal/pkg/token"
)

func middlewareAuthentication(codec *token.Codec, publicEndpoints map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)

			if s, ok := publicEndpoints[r.Method]; ok {
				if _, public := s[route]; public {
					next.ServeHTTP(w, r)
					return
				}
			}

			credential, ok := bearerCredential(r.Header.Get("Authorization"))
			if !ok {
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := codec.Parse(credential)
			if err != nil {
				writeJSON(w, errorResponse{Message: "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(token.SetAuth(r.Context(), claims)))
		})
	}
}

// bearerCredential extracts the token from an Authorization header. Some
// clients send a doubled "Bearer Bearer <token>" scheme, so the prefix is
// stripped repeatedly.
func bearerCredential(header string) (string, bool) {
	cred := strings.TrimSpace(header)

	stripped := false
	for strings.HasPrefix(strings.ToLower(cred), "bearer ") {
		cred = strings.TrimSpace(cred[len("bearer "):])
		stripped = true
	}

	if !stripped || cred == "" || strings.ContainsAny(cred, " \t") {
		return "", false
	}
	return cred, true
}
