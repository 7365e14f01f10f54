package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vaultsandbox/magiclink/internal/cliutil"
	"github.com/vaultsandbox/magiclink/internal/config"
	"github.com/vaultsandbox/magiclink/internal/styles"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change default settings",
	Long: `Manage magiclink defaults.

Values are resolved as flag > MAGICLINK_<KEY> environment variable >
config file > built-in default.

Examples:
  magiclink config show
  magiclink config set region us-east-1
  magiclink config set endpoint http://localhost:4566`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Available keys:
  region      - AWS region of the mail bucket (default: eu-central-1)
  prefix      - Key prefix of stored emails (default: raw/)
  endpoint    - Custom S3 endpoint (LocalStack, MinIO)
  profile     - AWS shared config profile
  path-style  - Use path-style addressing (true/false)
  output      - Default output format (pretty/json)

Examples:
  magiclink config set region us-east-1
  magiclink config set path-style true`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	configPath, err := configFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	opts := config.CurrentClientOptions()
	values := []struct {
		key   string
		value string
	}{
		{"region", opts.Region},
		{"prefix", config.GetPrefix()},
		{"endpoint", opts.Endpoint},
		{"profile", opts.Profile},
		{"path-style", strconv.FormatBool(opts.PathStyle)},
		{"output", config.GetDefaultOutput()},
	}

	if cliutil.GetOutput(cmd) == cliutil.FormatJSON {
		data := map[string]interface{}{
			"configFile": configPath,
			"region":     opts.Region,
			"prefix":     config.GetPrefix(),
			"endpoint":   opts.Endpoint,
			"profile":    opts.Profile,
			"pathStyle":  opts.PathStyle,
			"output":     config.GetDefaultOutput(),
		}
		return cliutil.OutputJSON(data)
	}

	fmt.Printf("Config file: %s\n\n", configPath)
	for _, v := range values {
		value := v.value
		if value == "" {
			value = "(not set)"
		}
		fmt.Printf("%s%s\n", styles.LabelStyle.Render(v.key+":"), value)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	configPath, err := configFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Load existing config
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Update the appropriate key
	switch key {
	case "region":
		cfg.Region = value
	case "prefix":
		cfg.Prefix = value
	case "endpoint":
		cfg.Endpoint = value
	case "profile":
		cfg.Profile = value
	case "path-style":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid path-style value %q: must be true or false", value)
		}
		cfg.PathStyle = b
	case "output":
		if err := cliutil.ValidateOutput(value); err != nil {
			return err
		}
		cfg.DefaultOutput = value
	default:
		return fmt.Errorf("unknown config key: %s (valid keys: region, prefix, endpoint, profile, path-style, output)", key)
	}

	if err := config.SaveTo(configPath, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println(styles.PrintSuccess(fmt.Sprintf("Set %s successfully", key)))
	return nil
}
