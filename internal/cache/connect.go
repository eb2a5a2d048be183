package cache

import "log"

// Connect picks the cache backend. Redis when reachable, in-memory
// otherwise. skip forces the in-memory store (local development without a
// Redis instance).
func Connect(redisURL string, skip bool) Store {
	if skip {
		log.Println("Redis skipped - using in-memory cache")
		return NewMemory()
	}

	store, err := NewRedis(redisURL)
	if err != nil {
		log.Printf("WARN [cache.Connect] redis not available, using in-memory cache: %v", err)
		return NewMemory()
	}

	log.Println("Redis connected")
	return store
}
