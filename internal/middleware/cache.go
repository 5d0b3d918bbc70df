// Package middleware contains http middlewares of the talent hunt api.
package middleware

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/iftakhar005/talenthunt/internal/cache"
)

// Cached stores successful responses of the handler in the storage for ttl.
// Responses are keyed by request uri.
func Cached(storage cache.Storage, ttl time.Duration, handler func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content := storage.Get(r.Context(), r.RequestURI)
		if content != nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			_, _ = w.Write(content)
			return
		}

		c := httptest.NewRecorder()
		handler(c, r)

		for k, v := range c.Header() {
			w.Header()[k] = v
		}

		w.WriteHeader(c.Code)
		content = c.Body.Bytes()

		if c.Code == http.StatusOK {
			storage.Set(r.Context(), r.RequestURI, content, ttl)
		}

		_, _ = w.Write(content)
	}
}
