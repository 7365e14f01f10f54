package retriever

import (
	"context"
	"fmt"

	"github.com/vaultsandbox/magiclink/internal/links"
	"github.com/vaultsandbox/magiclink/internal/rawmail"
	"github.com/vaultsandbox/magiclink/internal/storage"
)

// Entry describes one stored email for listing.
type Entry struct {
	Object storage.Object
	Email  *rawmail.Email
	Link   string // empty when the body holds no magic link
	Raw    []byte
}

// Scan parses every stored email under the prefix, most recent first.
func (r *Retriever) Scan(ctx context.Context) ([]Entry, error) {
	objects, err := r.store.ListObjects(ctx, r.prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}
	storage.SortByRecency(objects)

	entries := make([]Entry, 0, len(objects))
	for _, obj := range objects {
		email, raw, err := r.fetch(ctx, obj)
		if err != nil {
			return nil, fmt.Errorf("failed to read email: %w", err)
		}
		link, _ := links.ExtractMagicLink(email.Body)
		entries = append(entries, Entry{Object: obj, Email: email, Link: link, Raw: raw})
	}
	return entries, nil
}

// Filter keeps the entries addressed to address.
func Filter(entries []Entry, address string) []Entry {
	var matched []Entry
	for _, e := range entries {
		if e.Email.HasRecipient(address) {
			matched = append(matched, e)
		}
	}
	return matched
}
