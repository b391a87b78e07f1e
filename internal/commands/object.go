package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strata/internal/ui"
	"strata/internal/util"
	"strata/pkg/storage"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Manage objects within a bucket",
	Long:  "Upload, download, list, move, copy, and delete objects, and create signed URLs.",
}

// objectUploadCmd
var objectUploadCmd = &cobra.Command{
	Use:   "upload [localFile] [remotePath]",
	Short: "Upload a local file to a bucket",
	Long:  `Upload a local file to the given path in a bucket. The path may contain nested segments, e.g. users/42/a.png.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		localFile := args[0]
		remotePath := filepath.Base(localFile)
		if len(args) == 2 {
			remotePath = args[1]
		}

		bucket, err := resolveBucket(cmd)
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		var opts storage.UploadOptions
		opts.CacheControl, _ = cmd.Flags().GetInt("cache-control")
		opts.ContentType, _ = cmd.Flags().GetString("content-type")
		opts.Upsert, _ = cmd.Flags().GetBool("upsert")

		startTime := time.Now()
		object, err := client.UploadObject(cmd.Context(), bucket, remotePath, localFile, &opts)
		if err != nil {
			fmt.Println("Error uploading object:", err)
			return nil
		}

		duration := time.Since(startTime).Round(time.Millisecond)
		color.Green("Uploaded '%s' to '%s/%s' in %s\n", localFile, object.Bucket, object.Name, duration)
		return nil
	},
}

// objectDownloadCmd
var objectDownloadCmd = &cobra.Command{
	Use:   "download [remotePath] [localFile]",
	Short: "Download an object to a local file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		remotePath := args[0]
		localFile := filepath.Base(remotePath)
		if len(args) == 2 {
			localFile = args[1]
		}

		bucket, err := resolveBucket(cmd)
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		// Stream the download straight to disk rather than buffering it
		rc := client.DownloadObjectLazy(cmd.Context(), bucket, remotePath)
		defer func() {
			if err := rc.Close(); err != nil {
				fmt.Println("Warning: failed to close download stream:", err)
			}
		}()

		f, err := os.Create(localFile)
		if err != nil {
			fmt.Println("Error creating local file:", err)
			return nil
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Println("Warning: failed to close local file:", err)
			}
		}()

		written, err := io.Copy(f, rc)
		if err != nil {
			fmt.Println("Error downloading object:", err)
			return nil
		}

		color.Green("Downloaded '%s/%s' to '%s' (%s)\n", bucket, remotePath, localFile, util.FormatSize(written))
		return nil
	},
}

// objectInfoCmd
var objectInfoCmd = &cobra.Command{
	Use:   "info [remotePath]",
	Short: "Show metadata for an object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bucket, err := resolveBucket(cmd)
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		object, err := client.GetObjectInfo(cmd.Context(), bucket, args[0])
		if err != nil {
			fmt.Println("Error getting object info:", err)
			return nil
		}

		fmt.Printf("Object Details for '%s/%s':\n", bucket, object.Name)
		fmt.Printf("  Name: %s\n", object.Name)
		fmt.Printf("  Size: %s\n", util.FormatSize(object.Size))
		fmt.Printf("  Content Type: %s\n", object.ContentType)
		fmt.Printf("  Last Modified: %s\n", object.LastModified)
		return nil
	},
}

// objectListCmd
var objectListCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List objects in a bucket",
	Long:  `List objects under the given prefix, most recently created first.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}

		bucket, err := resolveBucket(cmd)
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		objects, err := client.ListObjects(cmd.Context(), bucket, prefix, &storage.SearchOptions{
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			fmt.Println("Error listing objects:", err)
			return nil
		}

		if len(objects) == 0 {
			fmt.Println("No objects found.")
			return nil
		}

		for _, object := range objects {
			fmt.Printf("  %-40s %10s\n", object.Name, util.FormatSize(object.Size))
		}
		return nil
	},
}

// objectMoveCmd
var objectMoveCmd = &cobra.Command{
	Use:   "move [sourcePath] [destinationPath]",
	Short: "Move an object to a new path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bucket, err := resolveBucket(cmd)
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		if err := client.MoveObject(cmd.Context(), bucket, args[0], args[1]); err != nil {
			fmt.Println("Error moving object:", err)
			return nil
		}

		color.Green("Moved '%s' to '%s'\n", args[0], args[1])
		return nil
	},
}

// objectCopyCmd
var objectCopyCmd = &cobra.Command{
	Use:   "copy [sourcePath] [destinationPath]",
	Short: "Copy an object to a new path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bucket, err := resolveBucket(cmd)
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		if err := client.CopyObject(cmd.Context(), bucket, args[0], args[1]); err != nil {
			fmt.Println("Error copying object:", err)
			return nil
		}

		color.Green("Copied '%s' to '%s'\n", args[0], args[1])
		return nil
	},
}

// objectRemoveCmd
var objectRemoveCmd = &cobra.Command{
	Use:   "remove [remotePath]...",
	Short: "Remove one or more objects from a bucket",
	Long: `Remove the given objects. The server reports one success marker for the
whole batch, so paths that did not exist are not reported individually.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm(fmt.Sprintf("Are you sure you want to remove %d object(s)? This action cannot be undone.", len(args))) {
			fmt.Println("Operation cancelled.")
			return nil
		}

		bucket, err := resolveBucket(cmd)
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		if err := client.RemoveObjects(cmd.Context(), bucket, args); err != nil {
			fmt.Println("Error removing objects:", err)
			return nil
		}

		color.Green("Removed %d object(s) from '%s'\n", len(args), bucket)
		return nil
	},
}

// objectSignCmd
var objectSignCmd = &cobra.Command{
	Use:   "sign [remotePath]",
	Short: "Create a time-limited signed URL for an object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expiresIn, _ := cmd.Flags().GetInt("expires-in")

		bucket, err := resolveBucket(cmd)
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		signed, err := client.CreateSignedURL(cmd.Context(), bucket, args[0], expiresIn)
		if err != nil {
			fmt.Println("Error creating signed URL:", err)
			return nil
		}

		// The server returns a URL relative to the service base URL
		fmt.Println(strings.TrimSuffix(globalConfig.ServiceURL, "/") + signed)
		return nil
	},
}

// objectBrowseCmd
var objectBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the objects in a bucket interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		bucket, err := resolveBucket(cmd)
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		client, err := newClient()
		if err != nil {
			fmt.Println("Error:", err)
			return nil
		}

		model := ui.NewBrowserModel(client, bucket)
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			fmt.Println("Error running browser:", err)
			return nil
		}
		return nil
	},
}

// init
func init() {
	objectCmd.AddCommand(objectUploadCmd)
	objectCmd.AddCommand(objectDownloadCmd)
	objectCmd.AddCommand(objectInfoCmd)
	objectCmd.AddCommand(objectListCmd)
	objectCmd.AddCommand(objectMoveCmd)
	objectCmd.AddCommand(objectCopyCmd)
	objectCmd.AddCommand(objectRemoveCmd)
	objectCmd.AddCommand(objectSignCmd)
	objectCmd.AddCommand(objectBrowseCmd)

	// Common bucket flag on all object subcommands
	for _, sc := range objectCmd.Commands() {
		sc.Flags().String("bucket", "", "Bucket ID (overrides the configured default)")
	}

	objectUploadCmd.Flags().Int("cache-control", 0, "Cache max-age in seconds (default 3600)")
	objectUploadCmd.Flags().String("content-type", "", "Content type of the upload (default text/plain;charset=UTF-8)")
	objectUploadCmd.Flags().Bool("upsert", false, "Overwrite an existing object at the same path")

	objectListCmd.Flags().Int("limit", 0, "Maximum number of objects to return")
	objectListCmd.Flags().Int("offset", 0, "Number of objects to skip")

	objectRemoveCmd.Flags().Bool("force", false, "Skip confirmation prompt")

	objectSignCmd.Flags().Int("expires-in", 3600, "Seconds until the signed URL expires")
}
