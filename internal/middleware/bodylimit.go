package middleware

import "net/http"

// MaxBodySize caps the request body for JSON endpoints. Reads past the
// limit fail and the JSON decoder surfaces the error as a bad request.
// Multipart upload routes set their own, larger cap.
func MaxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
