// Package rawmail parses raw RFC 5322 email bytes into the fields needed to
// locate a magic link: recipients, subject and the preferred body.
package rawmail

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/emersion/go-message"
	// Register charset decoders (windows-1252, iso-8859-*, etc.)
	_ "github.com/emersion/go-message/charset"
)

// Content types recognised when choosing a body.
const (
	ContentTypeHTML  = "text/html"
	ContentTypePlain = "text/plain"

	contentTypeMessage = "message/rfc822"
)

// Word characters include non-ASCII letters and digits, so internationalized
// addresses match.
var addressPattern = regexp.MustCompile(`[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.[\p{L}\p{N}_]+`)

// Email is the parsed form of one stored raw email.
type Email struct {
	// Recipients holds lower-cased bare addresses from To and Cc.
	Recipients []string
	Subject    string
	// Body is the first HTML part, else the first plain-text part, else the
	// single payload of a non-multipart message.
	Body     string
	BodyType string
}

// Parse reads a raw message. Unknown charsets and transfer encodings are
// tolerated; the payload is then used undecoded.
func Parse(raw []byte) (*Email, error) {
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !isLenient(err) {
		return nil, fmt.Errorf("failed to parse email: %w", err)
	}

	email := &Email{
		Recipients: append(recipients(entity.Header, "To"), recipients(entity.Header, "Cc")...),
		Subject:    headerText(entity.Header, "Subject"),
	}

	if mr := multipartReader(entity); mr != nil {
		var plain *string
		found, err := walk(mr, func(part *message.Entity) (bool, error) {
			t, _, _ := part.Header.ContentType()
			if t == "" {
				t = ContentTypePlain
			}
			switch t {
			case ContentTypeHTML:
				body, err := readBody(part)
				if err != nil {
					return false, err
				}
				email.Body, email.BodyType = body, ContentTypeHTML
				return true, nil
			case ContentTypePlain:
				if plain != nil {
					return false, nil
				}
				body, err := readBody(part)
				if err != nil {
					return false, err
				}
				plain = &body
			}
			return false, nil
		})
		if err != nil {
			return nil, err
		}
		if !found && plain != nil {
			email.Body, email.BodyType = *plain, ContentTypePlain
		}
		return email, nil
	}

	body, err := readBody(entity)
	if err != nil {
		return nil, err
	}
	email.Body = body
	if email.BodyType, _, _ = entity.Header.ContentType(); email.BodyType == "" {
		email.BodyType = ContentTypePlain
	}
	return email, nil
}

// HasRecipient reports whether address appears in To or Cc, ignoring case.
func (e *Email) HasRecipient(address string) bool {
	return slices.Contains(e.Recipients, strings.ToLower(strings.TrimSpace(address)))
}

// walk visits leaf parts in pre-order, descending into nested multiparts
// and attached messages, until visit reports done.
func walk(mr message.MultipartReader, visit func(*message.Entity) (bool, error)) (bool, error) {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return false, nil
		}
		if err != nil && (part == nil || !isLenient(err)) {
			return false, fmt.Errorf("failed to read message part: %w", err)
		}

		done, err := walkEntity(part, visit)
		if done || err != nil {
			return done, err
		}
	}
}

func walkEntity(entity *message.Entity, visit func(*message.Entity) (bool, error)) (bool, error) {
	if nested := multipartReader(entity); nested != nil {
		return walk(nested, visit)
	}

	if t, _, _ := entity.Header.ContentType(); t == contentTypeMessage {
		inner, err := message.Read(entity.Body)
		if err != nil && !isLenient(err) {
			return false, fmt.Errorf("failed to parse attached message: %w", err)
		}
		return walkEntity(inner, visit)
	}

	return visit(entity)
}

// multipartReader returns nil for single-part entities and for multipart
// entities without a boundary, which are read as a flat payload.
func multipartReader(entity *message.Entity) message.MultipartReader {
	if _, params, _ := entity.Header.ContentType(); params["boundary"] == "" {
		return nil
	}
	return entity.MultipartReader()
}

func readBody(entity *message.Entity) (string, error) {
	b, err := io.ReadAll(entity.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read message body: %w", err)
	}
	return strings.ToValidUTF8(string(b), ""), nil
}

func recipients(h message.Header, key string) []string {
	value := headerText(h, key)
	if value == "" {
		return nil
	}

	var addrs []string
	for _, token := range strings.Split(value, ",") {
		for _, addr := range addressPattern.FindAllString(token, -1) {
			addrs = append(addrs, strings.ToLower(addr))
		}
	}
	return addrs
}

// headerText decodes RFC 2047 encoded-words, falling back to the raw value.
func headerText(h message.Header, key string) string {
	text, err := h.Text(key)
	if err != nil {
		return h.Get(key)
	}
	return text
}

func isLenient(err error) bool {
	return message.IsUnknownCharset(err) || message.IsUnknownEncoding(err)
}
