package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/vaultsandbox/magiclink/internal/browser"
	"github.com/vaultsandbox/magiclink/internal/cliutil"
	"github.com/vaultsandbox/magiclink/internal/retriever"
)

// Version is set at build time with -ldflags.
var Version = "dev"

var cfgFile string

var (
	rootRegion    string
	rootPrefix    string
	rootEndpoint  string
	rootProfile   string
	rootPathStyle bool
	rootWait      time.Duration
	rootInterval  time.Duration
	rootVerbose   bool
	rootOpen      bool
)

// openURLFunc opens a link in the browser. Tests replace it.
var openURLFunc = browser.OpenURL

var rootCmd = &cobra.Command{
	Use:   "magiclink <bucket-name> <email-address>",
	Short: "Fetch the latest magic link sent to an address from an S3 mail bucket",
	Long: `magiclink retrieves sign-in links for end-to-end tests.

Inbound mail is stored as raw RFC 822 objects in an S3 bucket. magiclink
lists the bucket, walks the emails from newest to oldest and prints the
first magic link found in an email addressed (To or Cc) to the given
address. Supabase verify links are preferred over generic token links.

Only the link is written to stdout, so it can be captured directly.
Any failure prints "Error: <message>" to stderr and exits 1.
A bucket named like a subcommand (list, config) must follow "--".

Examples:
  magiclink my-mail-bucket test@example.com
  magiclink my-mail-bucket test@example.com --region us-east-1
  LINK=$(magiclink my-mail-bucket test@example.com --wait 30s)
  magiclink my-mail-bucket test@example.com -o json | jq -r .link
  magiclink my-mail-bucket test@example.com --open
  magiclink list my-mail-bucket --to test@example.com
  magiclink -- list test@example.com`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRoot,
}

// ExecuteContext runs the command tree with ctx, cancelling in-flight
// S3 calls when ctx is done.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.config/magiclink/config.yaml)")

	// Global output format flag
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: pretty, json")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false,
		"Log scan progress to stderr")

	// Bucket access, shared with list
	rootCmd.PersistentFlags().StringVar(&rootRegion, "region", "",
		"AWS region of the bucket (default eu-central-1)")
	rootCmd.PersistentFlags().StringVar(&rootPrefix, "prefix", "",
		"Key prefix of stored emails (default raw/)")
	rootCmd.PersistentFlags().StringVar(&rootEndpoint, "endpoint", "",
		"Custom S3 endpoint, e.g. http://localhost:4566")
	rootCmd.PersistentFlags().BoolVar(&rootPathStyle, "path-style", false,
		"Use path-style bucket addressing")
	rootCmd.PersistentFlags().StringVar(&rootProfile, "profile", "",
		"AWS shared config profile")

	// Polling
	rootCmd.Flags().DurationVar(&rootWait, "wait", 0,
		"Keep polling until a link arrives or this much time passes (0 scans once)")
	rootCmd.Flags().DurationVar(&rootInterval, "interval", retriever.DefaultPollInterval,
		"Delay between scans when --wait is set")
	rootCmd.Flags().BoolVar(&rootOpen, "open", false,
		"Also open the link in the default browser")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return &UsageError{Msg: rootUsage}
	}
	bucket, address := args[0], args[1]

	format := cliutil.GetOutput(cmd)
	if err := cliutil.ValidateOutput(format); err != nil {
		return err
	}
	if rootWait < 0 {
		return fmt.Errorf("invalid --wait %s: must not be negative", rootWait)
	}

	logger := newLogger()
	r, err := newRetriever(cmd, bucket, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var result *retriever.Result
	if rootWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rootWait)
		defer cancel()

		logger.Info("waiting for magic link", "bucket", bucket, "address", address, "timeout", rootWait)
		result, err = r.WaitForLink(ctx, address, rootInterval)
	} else {
		result, err = r.Retrieve(ctx, address)
	}
	if err != nil {
		return err
	}

	if format == cliutil.FormatJSON {
		if err := cliutil.OutputJSON(cliutil.ResultJSON(result)); err != nil {
			return err
		}
	} else {
		fmt.Println(result.Link)
	}

	if rootOpen {
		if err := openURLFunc(result.Link); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
	}
	return nil
}

func newRetriever(cmd *cobra.Command, bucket string, logger *slog.Logger) (*retriever.Retriever, error) {
	store, err := newStoreFunc(cmd.Context(), bucket, clientOptions(cmd))
	if err != nil {
		return nil, err
	}
	return retriever.New(store,
		retriever.WithPrefix(prefix(cmd)),
		retriever.WithLogger(logger),
	), nil
}
