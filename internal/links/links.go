// Package links finds authentication URLs in email bodies.
package links

import "regexp"

// URL characters are any run excluding whitespace, '"', '<' and '>'.
// Whitespace includes Unicode spaces such as NBSP, which quoted-printable
// bodies often carry right after a link.
const (
	space    = `\s\x{0b}\p{Z}\x{85}\x{1c}-\x{1f}`
	urlChar  = `[^` + space + `"<>]`
	hostChar = `[^/` + space + `"<>]`
)

var (
	// https://{project}.supabase.co/auth/v1/verify?token=...&type=...
	supabasePattern = regexp.MustCompile(`(?i)https://` + hostChar + `+\.supabase\.co/auth/v1/verify\?` + urlChar + `+`)

	tokenPattern = regexp.MustCompile(`(?i)https?://` + urlChar + `*[?&]token=` + urlChar + `+`)
)

// ExtractMagicLink returns the first Supabase verify URL in body, falling
// back to the first URL carrying a token query parameter.
func ExtractMagicLink(body string) (string, bool) {
	if link := supabasePattern.FindString(body); link != "" {
		return link, true
	}
	if link := tokenPattern.FindString(body); link != "" {
		return link, true
	}
	return "", false
}
