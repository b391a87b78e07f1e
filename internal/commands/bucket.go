package commands

import (
	"fmt"
	"strata/internal/util"
	"strata/pkg/storage"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Manage storage buckets",
	Long:  "Create, list, update, and delete storage buckets.",
}

// bucketListCmd
var bucketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all storage buckets",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		buckets, err := client.ListBuckets(cmd.Context())
		if err != nil {
			fmt.Println("Error listing buckets:", err)
			return nil
		}

		if len(buckets) == 0 {
			fmt.Println("No buckets found.")
			return nil
		}

		for _, bucket := range buckets {
			visibility := "private"
			if bucket.Public {
				visibility = "public"
			}
			fmt.Printf("  - %s (%s)\n", bucket.Name, visibility)
		}
		return nil
	},
}

// bucketGetCmd
var bucketGetCmd = &cobra.Command{
	Use:   "get [bucketID]",
	Short: "Get details of a bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		bucket, err := client.GetBucket(cmd.Context(), args[0])
		if err != nil {
			fmt.Println("Error getting bucket:", err)
			return nil
		}

		fmt.Printf("Bucket Details for '%s':\n", bucket.ID)
		fmt.Printf("  ID: %s\n", bucket.ID)
		fmt.Printf("  Name: %s\n", bucket.Name)
		fmt.Printf("  Public: %t\n", bucket.Public)
		if bucket.FileSizeLimit > 0 {
			fmt.Printf("  File Size Limit: %s\n", util.FormatSize(bucket.FileSizeLimit))
		}
		if len(bucket.AllowedMimeTypes) > 0 {
			fmt.Printf("  Allowed Types: %v\n", bucket.AllowedMimeTypes)
		}
		fmt.Printf("  Created At: %s\n", bucket.CreatedAt)
		fmt.Printf("  Updated At: %s\n", bucket.UpdatedAt)
		return nil
	},
}

// bucketCreateCmd
var bucketCreateCmd = &cobra.Command{
	Use:   "create [bucketID]",
	Short: "Create a new storage bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		public, _ := cmd.Flags().GetBool("public")
		fileSizeLimit, _ := cmd.Flags().GetInt64("file-size-limit")
		allowedMimeTypes, _ := cmd.Flags().GetString("allowed-mime-types")

		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		opts := storage.BucketOptions{
			ID:            args[0],
			Public:        public,
			FileSizeLimit: fileSizeLimit,
		}
		if allowedMimeTypes != "" {
			opts.AllowedMimeTypes = strings.Split(allowedMimeTypes, ",")
		}

		bucket, err := client.CreateBucket(cmd.Context(), opts)
		if err != nil {
			fmt.Println("Error creating bucket:", err)
			return nil
		}

		color.Green("Bucket '%s' created successfully\n", bucket.Name)
		return nil
	},
}

// bucketUpdateCmd
var bucketUpdateCmd = &cobra.Command{
	Use:   "update [bucketID]",
	Short: "Update settings for a bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hasUpdate := cmd.Flags().Changed("public") ||
			cmd.Flags().Changed("file-size-limit") ||
			cmd.Flags().Changed("allowed-mime-types")
		if !hasUpdate {
			fmt.Println("Error: at least one flag must be specified to update.")
			return nil
		}

		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		// Build the patch from the flags that were actually set
		var opts storage.BucketUpdateOptions
		if cmd.Flags().Changed("public") {
			public, _ := cmd.Flags().GetBool("public")
			opts.Public = &public
		}
		if cmd.Flags().Changed("file-size-limit") {
			fileSizeLimit, _ := cmd.Flags().GetInt64("file-size-limit")
			opts.FileSizeLimit = &fileSizeLimit
		}
		if cmd.Flags().Changed("allowed-mime-types") {
			allowedMimeTypes, _ := cmd.Flags().GetString("allowed-mime-types")
			opts.AllowedMimeTypes = strings.Split(allowedMimeTypes, ",")
		}

		if err := client.UpdateBucket(cmd.Context(), args[0], opts); err != nil {
			fmt.Println("Error updating bucket:", err)
			return nil
		}

		color.Green("Bucket '%s' updated successfully\n", args[0])
		return nil
	},
}

// bucketDeleteCmd
var bucketDeleteCmd = &cobra.Command{
	Use:   "delete [bucketID]",
	Short: "Delete a bucket and its contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm(fmt.Sprintf("Are you sure you want to delete bucket '%s'? This action cannot be undone.", args[0])) {
			fmt.Println("Operation cancelled.")
			return nil
		}

		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		if err := client.DeleteBucket(cmd.Context(), args[0]); err != nil {
			fmt.Println("Error deleting bucket:", err)
			return nil
		}

		color.Green("Bucket '%s' deleted successfully\n", args[0])
		return nil
	},
}

// bucketEmptyCmd
var bucketEmptyCmd = &cobra.Command{
	Use:   "empty [bucketID]",
	Short: "Remove all objects from a bucket (but keep the bucket)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm(fmt.Sprintf("Are you sure you want to empty bucket '%s'? This action cannot be undone.", args[0])) {
			fmt.Println("Operation cancelled.")
			return nil
		}

		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		if err := client.EmptyBucket(cmd.Context(), args[0]); err != nil {
			fmt.Println("Error emptying bucket:", err)
			return nil
		}

		color.Green("Bucket '%s' emptied successfully\n", args[0])
		return nil
	},
}

// init
func init() {
	bucketCmd.AddCommand(bucketListCmd)
	bucketCmd.AddCommand(bucketGetCmd)
	bucketCmd.AddCommand(bucketCreateCmd)
	bucketCmd.AddCommand(bucketUpdateCmd)
	bucketCmd.AddCommand(bucketDeleteCmd)
	bucketCmd.AddCommand(bucketEmptyCmd)

	bucketCreateCmd.Flags().Bool("public", false, "Whether the bucket should be publicly accessible")
	bucketCreateCmd.Flags().Int64("file-size-limit", 0, "Maximum file size in bytes (0 for no limit)")
	bucketCreateCmd.Flags().String("allowed-mime-types", "", "Comma-separated list of allowed MIME types")

	bucketUpdateCmd.Flags().Bool("public", false, "Whether the bucket should be publicly accessible")
	bucketUpdateCmd.Flags().Int64("file-size-limit", 0, "Maximum file size in bytes (0 for no limit)")
	bucketUpdateCmd.Flags().String("allowed-mime-types", "", "Comma-separated list of allowed MIME types")

	bucketDeleteCmd.Flags().Bool("force", false, "Skip confirmation prompt")
	bucketEmptyCmd.Flags().Bool("force", false, "Skip confirmation prompt")
}
