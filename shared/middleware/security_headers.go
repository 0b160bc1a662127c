package middleware

import (
	"net/http"
)

// APIContentSecurityPolicy fits JSON endpoints that never render markup.
const APIContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"

const hstsValue = "max-age=31536000; includeSubDomains"

// apiHeaders are set on every API response.
var apiHeaders = map[string]string{
	"X-Frame-Options":        "DENY",
	"X-Content-Type-Options": "nosniff",
	"Referrer-Policy":        "no-referrer",
}

// SecurityHeadersWithCSP sets the fixed API headers, csp when non-empty and
// Strict-Transport-Security when the server is reached over TLS.
func SecurityHeadersWithCSP(isHTTPS bool, csp string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range apiHeaders {
				h.Set(k, v)
			}
			if csp != "" {
				h.Set("Content-Security-Policy", csp)
			}
			if isHTTPS {
				h.Set("Strict-Transport-Security", hstsValue)
			}
			next.ServeHTTP(w, r)
		})
	}
}
