package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vaultsandbox/magiclink/internal/cliutil"
	"github.com/vaultsandbox/magiclink/internal/files"
	"github.com/vaultsandbox/magiclink/internal/retriever"
	"github.com/vaultsandbox/magiclink/internal/styles"
)

var (
	listTo      string
	listSaveDir string
)

var listCmd = &cobra.Command{
	Use:   "list <bucket-name>",
	Short: "List stored emails in a bucket",
	Long: `List every stored email under the prefix, newest first, with its
recipients, subject and whether a magic link was found.

Examples:
  magiclink list my-mail-bucket
  magiclink list my-mail-bucket --to test@example.com
  magiclink list my-mail-bucket -o json | jq -r '.[0].link'
  magiclink list my-mail-bucket --to test@example.com --save-dir ./mail`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listTo, "to", "",
		"Only show emails addressed to this address")
	listCmd.Flags().StringVar(&listSaveDir, "save-dir", "",
		"Also write each listed raw email to this directory as .eml")
}

func runList(cmd *cobra.Command, args []string) error {
	bucket := args[0]

	format := cliutil.GetOutput(cmd)
	if err := cliutil.ValidateOutput(format); err != nil {
		return err
	}

	r, err := newRetriever(cmd, bucket, newLogger())
	if err != nil {
		return err
	}

	entries, err := r.Scan(cmd.Context())
	if err != nil {
		return err
	}
	if listTo != "" {
		entries = retriever.Filter(entries, listTo)
	}

	if listSaveDir != "" {
		if err := saveEntries(entries, listSaveDir); err != nil {
			return err
		}
	}

	if format == cliutil.FormatJSON {
		return cliutil.OutputJSON(cliutil.EntriesJSON(entries))
	}

	if len(entries) == 0 {
		fmt.Println(styles.PrintInfo(fmt.Sprintf("No emails found in bucket %s", bucket)))
		return nil
	}

	table := cliutil.NewTable(
		cliutil.Column{Header: "KEY", Width: styles.ColWidthKey}.WithStyle(styles.KeyStyle),
		cliutil.Column{Header: "TO", Width: styles.ColWidthRecipients}.WithStyle(styles.RecipientStyle),
		cliutil.Column{Header: "SUBJECT", Width: styles.ColWidthSubject}.WithStyle(styles.SubjectStyle),
		cliutil.Column{Header: "RECEIVED", Width: styles.ColWidthTime}.WithStyle(styles.TimeStyle),
		cliutil.Column{Header: "LINK"},
	)
	table.PrintHeader()
	for _, e := range entries {
		table.PrintRow(
			e.Object.Key,
			strings.Join(e.Email.Recipients, ", "),
			e.Email.Subject,
			cliutil.FormatRelativeTime(e.Object.LastModified),
			styles.FormatLinkFound(e.Link != ""),
		)
	}
	fmt.Printf("\n%d email(s)\n", len(entries))
	return nil
}

func saveEntries(entries []retriever.Entry, dir string) error {
	for _, e := range entries {
		path, err := files.SaveEmail(dir, e.Object.Key, e.Raw)
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", e.Object.Key, err)
		}
		fmt.Fprintln(os.Stderr, styles.PrintInfo("saved "+path))
	}
	return nil
}
