package retriever

import (
	"errors"
	"fmt"
)

var (
	ErrNoEmails    = errors.New("no emails found")
	ErrNoMagicLink = errors.New("no magic link found")
)

// NotFoundError reports an empty bucket (ErrNoEmails) or an exhausted scan
// (ErrNoMagicLink).
type NotFoundError struct {
	Err     error
	Bucket  string
	Address string
}

func (e *NotFoundError) Error() string {
	if errors.Is(e.Err, ErrNoMagicLink) {
		return fmt.Sprintf("%s for email %s in bucket %s", e.Err, e.Address, e.Bucket)
	}
	return fmt.Sprintf("%s in bucket %s", e.Err, e.Bucket)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// RetrievalError wraps a storage or parse failure.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return "failed to retrieve magic link: " + e.Err.Error()
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}
