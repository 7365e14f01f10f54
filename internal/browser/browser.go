// Package browser opens magic links in the user's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Sign-in links are web pages; anything else is refused.
var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
}

// Seams for tests.
var (
	execCommand = exec.Command
	goos        = runtime.GOOS
	openURLFunc = openURLInternal
)

// OpenURL opens a URL in the default browser.
// Only http and https schemes are allowed.
func OpenURL(rawURL string) error {
	return openURLFunc(rawURL)
}

func openURLInternal(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !allowedSchemes[scheme] {
		return fmt.Errorf("URL scheme %q not allowed", scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	var cmd *exec.Cmd

	switch goos {
	case "darwin":
		cmd = execCommand("open", rawURL)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = execCommand("xdg-open", rawURL)
	case "windows":
		cmd = execCommand("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", goos)
	}

	return cmd.Start()
}
