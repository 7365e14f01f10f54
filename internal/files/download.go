package files

import (
	"fmt"
	"os"
	"path/filepath"
)

// EmailExt is the extension given to saved raw emails.
const EmailExt = ".eml"

// GetUniqueFilename returns a unique filename in the given directory.
// If the file already exists, it appends _1, _2, etc. before the extension.
// The filename is sanitized to prevent path traversal attacks.
func GetUniqueFilename(dir, name string) string {
	// Sanitize filename to prevent path traversal (e.g., "../../.bashrc")
	cleanName := filepath.Base(name)
	path := filepath.Join(dir, cleanName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(cleanName)
	base := cleanName[:len(cleanName)-len(ext)]

	for i := 1; ; i++ {
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
	}
}

// EmailFilename maps an object key to a file name: the last key segment
// with an .eml extension.
func EmailFilename(key string) string {
	name := filepath.Base(filepath.FromSlash(key))
	if name == "." || name == string(filepath.Separator) {
		name = "email"
	}
	if filepath.Ext(name) != EmailExt {
		name += EmailExt
	}
	return name
}

// SaveEmail writes a raw email to dir under a name derived from its object
// key, never overwriting an existing file. Returns the final path used.
// Saved emails hold live sign-in tokens, so files are owner-only.
func SaveEmail(dir, key string, raw []byte) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := GetUniqueFilename(dir, EmailFilename(key))

	if err := os.WriteFile(path, raw, 0600); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path, nil
}
