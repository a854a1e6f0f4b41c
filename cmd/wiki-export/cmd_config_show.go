/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toothbrush/wiki-llm-import/internal/cliconfig"
	"gopkg.in/yaml.v3"
)

// resolvedConfig is what the export would actually run with, after flags, environment and the
// config file have all had their say.
type resolvedConfig struct {
	ConfigFile string `yaml:"config-file"`
	EnvFile    string `yaml:"env-file"`
	EnvLoaded  bool   `yaml:"env-loaded"`
	Debug      bool   `yaml:"debug"`

	URL       string `yaml:"url"`
	Path      string `yaml:"path"`
	Output    string `yaml:"output"`
	Username  string `yaml:"username,omitempty"`
	Password  string `yaml:"password,omitempty"`
	Namespace int    `yaml:"namespace"`
	Limit     int    `yaml:"limit"`
	Rendered  bool   `yaml:"rendered"`
	WithVCR   bool   `yaml:"with-vcr"`
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.  Passwords
are masked.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(resolvedConfig{
			ConfigFile: ConfigActual,
			EnvFile:    LoadedEnv.Path,
			EnvLoaded:  LoadedEnv.Loaded,
			Debug:      Debug,
			URL:        WikiURL,
			Path:       WikiPath,
			Output:     OutputDir,
			Username:   Username,
			Password:   cliconfig.Redact(Password),
			Namespace:  Namespace,
			Limit:      Limit,
			Rendered:   Rendered,
			WithVCR:    WithVCR,
		})
		if err != nil {
			return fmt.Errorf("cmd: couldn't render config: %w", err)
		}

		fmt.Printf("Dump current config state:\n\n%s", out)
		return nil
	},
}

func init() {
	configCmd.AddCommand(showCmd)
}
