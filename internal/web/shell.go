package web

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"
)

const maxDisplayNameLen = 100

type userKey struct{}

// ShellUser is middleware that reads the current user's display name from
// header, as set by the hosting shell, and stores it in the request
// context. Requests without the header get fallback.
func ShellUser(header, fallback string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.Header.Get(header))
		if name == "" || !utf8.ValidString(name) {
			name = fallback
		}
		if utf8.RuneCountInString(name) > maxDisplayNameLen {
			name = string([]rune(name)[:maxDisplayNameLen])
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, name)))
	})
}

// CurrentUser returns the display name ShellUser stored, or "".
func CurrentUser(ctx context.Context) string {
	name, _ := ctx.Value(userKey{}).(string)
	return name
}
