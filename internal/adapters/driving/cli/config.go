package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Config file keys the commands read and write. Backend connection keys
// mirror the ones the startup wiring resolves.
const (
	keyBackendURL    = "marqo.url"
	keyBackendAPIKey = "marqo.api_key"
	keyBackendRPS    = "marqo.requests_per_second"
	keyVerbose       = "verbose"
	keyIngestExclude = "ingest.exclude"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tool configuration",
	Long: `View and change persisted configuration.

Values are stored in the config file and read at startup. Environment
variables override stored backend settings.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a configuration value and persists it immediately.

Values are stored typed: true/false as booleans, digits as integers,
comma-separated lists as string arrays, everything else as strings.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Configuration (%s)\n", configStore.Path())
	cmd.Println()

	cmd.Println("[Backend]")
	url := configStore.GetString(keyBackendURL)
	if url == "" {
		url = "(default)"
	}
	cmd.Printf("  URL: %s\n", url)
	if key := configStore.GetString(keyBackendAPIKey); key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	if rps := configStore.GetInt(keyBackendRPS); rps > 0 {
		cmd.Printf("  Requests/s: %d\n", rps)
	}
	cmd.Println()

	cmd.Println("[Ingestion]")
	if exclude := configStore.GetStringSlice(keyIngestExclude); len(exclude) > 0 {
		cmd.Printf("  Excluded dirs: %s\n", strings.Join(exclude, ", "))
	} else {
		cmd.Printf("  Excluded dirs: (defaults)\n")
	}
	cmd.Println()

	cmd.Println("[Logging]")
	cmd.Printf("  Verbose: %t\n", configStore.GetBool(keyVerbose))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if err := configStore.Set(key, parseConfigValue(raw)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	cmd.Printf("Set %s.\n", key)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println(configStore.Path())
	return nil
}

// parseConfigValue coerces a command-line value into the type it will
// be read back as.
func parseConfigValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return raw
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
