// Package retriever finds the most recent magic link sent to an address
// among the raw emails stored in a bucket.
package retriever

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vaultsandbox/magiclink/internal/links"
	"github.com/vaultsandbox/magiclink/internal/rawmail"
	"github.com/vaultsandbox/magiclink/internal/storage"
)

// Result is a magic link and the stored email it was found in.
type Result struct {
	Link         string
	Key          string
	LastModified time.Time
	Subject      string
}

// Retriever scans a Store for magic links.
type Retriever struct {
	store  storage.Store
	prefix string
	logger *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithPrefix sets the key prefix to list (default storage.DefaultPrefix).
func WithPrefix(prefix string) Option {
	return func(r *Retriever) {
		r.prefix = prefix
	}
}

// WithLogger sets the logger used to trace skipped emails.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Retriever over store.
func New(store storage.Store, opts ...Option) *Retriever {
	r := &Retriever{
		store:  store,
		prefix: storage.DefaultPrefix,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve returns the link from the most recently modified email that is
// addressed to address (To or Cc, case-insensitive) and contains a link.
// Matching emails without a link are skipped.
func (r *Retriever) Retrieve(ctx context.Context, address string) (*Result, error) {
	bucket := r.store.Bucket()

	objects, err := r.store.ListObjects(ctx, r.prefix)
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}
	if len(objects) == 0 {
		return nil, &NotFoundError{Err: ErrNoEmails, Bucket: bucket}
	}
	storage.SortByRecency(objects)

	target := strings.ToLower(strings.TrimSpace(address))
	r.logger.Debug("scanning emails", "bucket", bucket, "prefix", r.prefix, "count", len(objects), "address", target)

	for _, obj := range objects {
		email, _, err := r.fetch(ctx, obj)
		if err != nil {
			return nil, &RetrievalError{Err: err}
		}

		if !email.HasRecipient(target) {
			r.logger.Debug("skipping email for other recipients", "key", obj.Key, "recipients", email.Recipients)
			continue
		}

		link, ok := links.ExtractMagicLink(email.Body)
		if !ok {
			r.logger.Debug("skipping email without link", "key", obj.Key, "subject", email.Subject)
			continue
		}

		r.logger.Debug("found magic link", "key", obj.Key, "lastModified", obj.LastModified)
		return &Result{
			Link:         link,
			Key:          obj.Key,
			LastModified: obj.LastModified,
			Subject:      email.Subject,
		}, nil
	}

	return nil, &NotFoundError{Err: ErrNoMagicLink, Bucket: bucket, Address: address}
}

func (r *Retriever) fetch(ctx context.Context, obj storage.Object) (*rawmail.Email, []byte, error) {
	raw, err := r.store.GetObject(ctx, obj.Key)
	if err != nil {
		return nil, nil, err
	}
	email, err := rawmail.Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", obj.Key, err)
	}
	return email, raw, nil
}
