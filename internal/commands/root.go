package commands

import (
	"fmt"
	"os"
	"strata/internal/config"
	"strata/pkg/storage"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var globalConfig *config.Config

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "strata - A tool for managing storage buckets and objects",
	Long: `strata is a command-line client for the strata object-storage API.
It manages buckets and objects: create and configure buckets, upload and
download files, and generate signed URLs for sharing.`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute(cfg *config.Config) error {
	globalConfig = cfg
	return rootCmd.Execute()
}

// newClient builds a storage client from the global configuration. It
// returns an error when no API key is configured.
func newClient() (*storage.Client, error) {
	if globalConfig == nil || globalConfig.APIKey == "" {
		return nil, fmt.Errorf("no API key configured. Run 'strata config set-key' first")
	}

	opts := []storage.Option{}
	if verbose {
		console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		opts = append(opts, storage.WithLogger(zerolog.New(console).With().Timestamp().Logger()))
	}

	return storage.New(globalConfig.ServiceURL, globalConfig.APIKey, opts...), nil
}

// resolveBucket picks the bucket from the --bucket flag or the configured
// default.
func resolveBucket(cmd *cobra.Command) (string, error) {
	bucket, _ := cmd.Flags().GetString("bucket")
	if bucket != "" {
		return bucket, nil
	}
	if globalConfig != nil && globalConfig.DefaultBucket != "" {
		return globalConfig.DefaultBucket, nil
	}
	return "", fmt.Errorf("no bucket specified. Use --bucket or set a default with 'strata config set-bucket'")
}

// confirm asks the user to confirm a destructive action.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	if _, err := fmt.Scanln(&answer); err != nil {
		fmt.Println()
		return false
	}
	return answer == "y" || answer == "Y"
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every API request to stderr")

	// Add all commands
	rootCmd.AddCommand(bucketCmd)
	rootCmd.AddCommand(objectCmd)
	rootCmd.AddCommand(configCmd)
}
