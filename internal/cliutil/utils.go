package cliutil

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vaultsandbox/magiclink/internal/config"
)

// Output formats.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// GetOutput returns the output format with priority: flag > env > config > default.
func GetOutput(cmd *cobra.Command) string {
	if flag := cmd.Flag("output"); flag != nil && flag.Changed {
		return flag.Value.String()
	}
	return config.GetDefaultOutput()
}

// ValidateOutput rejects unknown output formats.
func ValidateOutput(format string) error {
	switch format {
	case FormatPretty, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q (must be pretty or json)", format)
	}
}

// OutputJSON prints v to stdout as indented JSON. Links keep their literal
// '&' separators.
func OutputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatRelativeTime formats a time as a human-readable relative string (e.g., "just now", "5m ago").
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}
