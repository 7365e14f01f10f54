// Package storage lists and reads raw email objects from a bucket.
package storage

import (
	"context"
	"sort"
	"time"
)

// DefaultPrefix is where the mail receiver writes raw messages.
const DefaultPrefix = "raw/"

// Object identifies one stored raw email.
type Object struct {
	Key          string
	LastModified time.Time
	Size         int64
}

// Store provides read-only access to a bucket of raw emails.
type Store interface {
	Bucket() string
	ListObjects(ctx context.Context, prefix string) ([]Object, error)
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// SortByRecency orders objects most recently modified first.
// Objects with equal timestamps keep their listing order.
func SortByRecency(objects []Object) {
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})
}
