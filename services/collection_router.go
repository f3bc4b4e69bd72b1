package services

import (
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionRouter resolves a user identity to that user's physical nutrition
// collection. Records are partitioned per user ("{uuid}.nutritionData") so a
// single user's data can be scaled, exported or deleted independently, while
// callers address it by uuid alone.
//
// Handles are cached for the process lifetime: repeated resolutions for one
// user reuse one handle. Handlers run on concurrent goroutines, hence the
// lock around the cache map.
type CollectionRouter struct {
	db *mongo.Database

	mu    sync.RWMutex
	cache map[string]*mongo.Collection
}

func NewCollectionRouter(db *mongo.Database) *CollectionRouter {
	return &CollectionRouter{
		db:    db,
		cache: make(map[string]*mongo.Collection),
	}
}

// Resolve returns the collection handle for the user's nutrition namespace.
// Two calls with the same uuid return the same handle instance; different
// uuids never share a namespace.
func (r *CollectionRouter) Resolve(userUUID string) *mongo.Collection {
	namespace := fmt.Sprintf("%s.nutritionData", userUUID)

	r.mu.RLock()
	coll, ok := r.cache[namespace]
	r.mu.RUnlock()
	if ok {
		return coll
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if coll, ok := r.cache[namespace]; ok {
		return coll
	}
	coll = r.db.Collection(namespace)
	r.cache[namespace] = coll
	return coll
}
