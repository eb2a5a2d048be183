package middleware

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/kgrant/travel-itinerary-api/internal/cache"
)

const (
	userKeyPrefix   = "cache:user:"
	sharedKeyPrefix = "cache:shared:"
)

// UserCacheKey scopes the cache entry to the authenticated user as well as
// the path and query string. Two users issuing identical requests get
// distinct entries, so a hit can never replay another user's data.
func UserCacheKey(r *http.Request) (string, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		return "", false
	}
	return userKeyPrefix + userID.String() + ":" + requestURI(r), true
}

// SharedCacheKey keys the public share route, which has no user scope.
func SharedCacheKey(r *http.Request) (string, bool) {
	return sharedKeyPrefix + requestURI(r), true
}

func requestURI(r *http.Request) string {
	uri := r.URL.Path
	if r.URL.RawQuery != "" {
		uri += "?" + r.URL.RawQuery
	}
	return uri
}

// UserNamespace is the invalidation scope covering all of one user's cached
// list and detail responses.
func UserNamespace(r *http.Request) string {
	userID, ok := GetUserID(r.Context())
	if !ok {
		return ""
	}
	return userKeyPrefix + userID.String() + ":"
}

// SharedNamespace covers every cached public share response.
func SharedNamespace(*http.Request) string {
	return sharedKeyPrefix
}

// CacheResponse caches successful JSON responses of safe read routes. On a
// hit the handler is bypassed and the stored body replayed verbatim. The
// cache is best-effort: any store failure falls through to the handler.
func CacheResponse(store cache.Store, ttl time.Duration, keyFn func(*http.Request) (string, bool)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil {
				next.ServeHTTP(w, r)
				return
			}

			key, ok := keyFn(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			body, err := store.Get(r.Context(), key)
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(body)
				return
			}
			if err != cache.ErrCacheMiss {
				log.Printf("ERROR [middleware.CacheResponse] cache get: %v", err)
			}

			recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if recorder.status >= 200 && recorder.status < 300 {
				if err := store.Set(r.Context(), key, recorder.body.Bytes(), ttl); err != nil {
					log.Printf("ERROR [middleware.CacheResponse] cache set: %v", err)
				}
			}
		})
	}
}

// InvalidateCache clears the given namespaces before the wrapped mutation
// handler runs, so a read issued after the mutation's response can never see
// a pre-write cache entry. Clearing an empty namespace is a no-op.
func InvalidateCache(store cache.Store, namespaceFns ...func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store != nil {
				for _, fn := range namespaceFns {
					namespace := fn(r)
					if namespace == "" {
						continue
					}
					if err := store.DeleteByPrefix(r.Context(), namespace); err != nil {
						log.Printf("ERROR [middleware.InvalidateCache] clearing %q: %v", namespace, err)
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// responseRecorder is an explicit wrapper around the ResponseWriter that
// mirrors the body into a buffer while streaming it to the client.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
