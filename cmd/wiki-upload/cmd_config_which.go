/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// whichCmd represents the which command
var whichCmd = &cobra.Command{
	Use:   "which",
	Short: "Tell me the resolved config path",
	Long: `
Output the YAML file settings are read from, and whether it exists.
`,
	Run: func(cmd *cobra.Command, args []string) {
		state := "not found, using flags and environment only"
		if _, err := os.Stat(ConfigActual); err == nil {
			state = "present"
		}
		fmt.Printf("Config path: %s (%s)\n", ConfigActual, state)
	},
}

func init() {
	configCmd.AddCommand(whichCmd)
}
