package cliutil

import (
	"time"

	"github.com/vaultsandbox/magiclink/internal/retriever"
)

// ResultJSON returns a map for JSON output of a retrieved magic link.
func ResultJSON(result *retriever.Result) map[string]interface{} {
	return map[string]interface{}{
		"link":         result.Link,
		"key":          result.Key,
		"lastModified": result.LastModified.Format(time.RFC3339),
		"subject":      result.Subject,
	}
}

// EntryJSON returns a map for JSON output of a stored email.
// Used by the list command.
func EntryJSON(entry retriever.Entry) map[string]interface{} {
	recipients := entry.Email.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	return map[string]interface{}{
		"key":          entry.Object.Key,
		"lastModified": entry.Object.LastModified.Format(time.RFC3339),
		"size":         entry.Object.Size,
		"recipients":   recipients,
		"subject":      entry.Email.Subject,
		"link":         entry.Link,
	}
}

// EntriesJSON converts entries for JSON output, never returning nil.
func EntriesJSON(entries []retriever.Entry) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryJSON(e))
	}
	return out
}
