package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vaultsandbox/magiclink/internal/config"
	"github.com/vaultsandbox/magiclink/internal/storage"
)

// configErr holds the last config load failure so it can be logged once a
// logger exists.
var configErr error

func initConfig() {
	configErr = nil
	if err := config.LoadEnvFile(".env"); err != nil {
		configErr = err
	}

	configPath, err := configFilePath()
	if err != nil {
		return
	}
	if err := config.LoadFromFile(configPath); err != nil {
		configErr = err
	}
}

// configFilePath returns --config when given, else the default location.
func configFilePath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.Path()
}

// newStoreFunc builds the object store for a bucket. Tests replace it.
var newStoreFunc = func(ctx context.Context, bucket string, opts config.ClientOptions) (storage.Store, error) {
	client, err := config.NewS3Client(ctx, opts)
	if err != nil {
		return nil, err
	}
	return storage.NewS3Store(client, bucket), nil
}

// clientOptions merges bucket access flags over env and config file values.
func clientOptions(cmd *cobra.Command) config.ClientOptions {
	opts := config.CurrentClientOptions()
	if flagChanged(cmd, "region") {
		opts.Region = rootRegion
	}
	if flagChanged(cmd, "endpoint") {
		opts.Endpoint = rootEndpoint
	}
	if flagChanged(cmd, "profile") {
		opts.Profile = rootProfile
	}
	if flagChanged(cmd, "path-style") {
		opts.PathStyle = rootPathStyle
	}
	return opts
}

func prefix(cmd *cobra.Command) string {
	if flagChanged(cmd, "prefix") {
		return rootPrefix
	}
	return config.GetPrefix()
}

func flagChanged(cmd *cobra.Command, name string) bool {
	flag := cmd.Flag(name)
	return flag != nil && flag.Changed
}

// newLogger logs to stderr, at debug level with --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if rootVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if configErr != nil {
		logger.Warn("ignoring unreadable configuration", "error", configErr)
	}
	return logger
}
