package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000", // local register UI
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS(extraOrigins ...string) func(http.Handler) http.Handler {
	origins := append([]string{}, defaultCORSOrigins...)
	origins = append(origins, extraOrigins...)
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-POS-Session", "X-Requested-With"},
		ExposedHeaders:   []string{"X-POS-Session"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
