package api

import "net/http"

// WithCORS allows the configured frontend origin to call the api with
// credentials. Only a single origin is supported; the cookie-based auth
// makes a wildcard origin unusable anyway.
func WithCORS(next http.Handler, origin string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Origin") == origin {
			hdr := w.Header()
			hdr.Set("Access-Control-Allow-Origin", origin)
			hdr.Set("Access-Control-Allow-Credentials", "true")
			hdr.Set("Vary", "Origin")
			if r.Method == http.MethodOptions {
				hdr.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
				hdr.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
