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

// resolvedConfig is what the upload would actually run with, after flags, environment and the
// config file have all had their say.
type resolvedConfig struct {
	ConfigFile string `yaml:"config-file"`
	EnvFile    string `yaml:"env-file"`
	EnvLoaded  bool   `yaml:"env-loaded"`
	Debug      bool   `yaml:"debug"`

	URL        string `yaml:"url"`
	APIKey     string `yaml:"api-key"`
	Documents  string `yaml:"documents"`
	Workspace  string `yaml:"workspace"`
	Pause      string `yaml:"pause"`
	NoProgress bool   `yaml:"no-progress"`
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.  The API key
is masked.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(resolvedConfig{
			ConfigFile: ConfigActual,
			EnvFile:    LoadedEnv.Path,
			EnvLoaded:  LoadedEnv.Loaded,
			Debug:      Debug,
			URL:        ServiceURL,
			APIKey:     cliconfig.Redact(APIKey),
			Documents:  DocumentsDir,
			Workspace:  Workspace,
			Pause:      Pause.String(),
			NoProgress: NoProgress,
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
