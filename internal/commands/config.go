package commands

import (
	"fmt"
	"strata/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the strata configuration",
}

// saveGlobalConfig persists the in-memory configuration to disk.
func saveGlobalConfig() error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	return globalConfig.Save(path)
}

var configSetURLCmd = &cobra.Command{
	Use:   "set-url [url]",
	Short: "Set the storage API server URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		globalConfig.ServiceURL = args[0]
		if err := saveGlobalConfig(); err != nil {
			fmt.Println("Error saving config:", err)
			return nil
		}
		fmt.Println("Service URL set to", args[0])
		return nil
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [apiKey]",
	Short: "Set the API key used to authenticate requests",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		globalConfig.APIKey = args[0]
		if err := saveGlobalConfig(); err != nil {
			fmt.Println("Error saving config:", err)
			return nil
		}
		fmt.Println("API key updated")
		return nil
	},
}

var configSetBucketCmd = &cobra.Command{
	Use:   "set-bucket [bucketID]",
	Short: "Set the default bucket for object commands",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		globalConfig.DefaultBucket = args[0]
		if err := saveGlobalConfig(); err != nil {
			fmt.Println("Error saving config:", err)
			return nil
		}
		fmt.Println("Default bucket set to", args[0])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Service URL:", globalConfig.ServiceURL)
		if globalConfig.APIKey != "" {
			fmt.Println("API Key: (set)")
		} else {
			fmt.Println("API Key: (not set)")
		}
		if globalConfig.DefaultBucket != "" {
			fmt.Println("Default Bucket:", globalConfig.DefaultBucket)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetURLCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configSetBucketCmd)
	configCmd.AddCommand(configShowCmd)
}
