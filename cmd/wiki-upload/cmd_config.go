/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var configUsage = strings.TrimSpace(`
Inspect how wiki-upload is configured.  Settings come from flags, then environment variables (also read
from --env-file), then ~/.config/wiki-upload.yaml (or $WIKI_UPLOAD_CONFIG, or --config), then the built-in
defaults.  "show" prints what won; "which" prints the config file in use.
`)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect wiki-upload configuration",
	Long:  configUsage,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
