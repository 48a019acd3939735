package types

import (
	"time"
)

// APIKey is a document in the api_keys collection. Inactive keys stay in
// the collection but no longer authenticate.
type APIKey struct {
	Key       string    `bson:"key"`
	Active    bool      `bson:"active"`
	CreatedAt time.Time `bson:"created_at"`
}
