/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/toothbrush/wiki-llm-import/anythingllm"
	"github.com/toothbrush/wiki-llm-import/docupload"
	"github.com/toothbrush/wiki-llm-import/internal/cliconfig"
)

var (
	// Store the result of binding cobra flags
	Config       string
	ConfigActual string
	EnvFile      string
	Debug        bool

	ServiceURL   string
	APIKey       string
	DocumentsDir string
	Workspace    string
	Pause        time.Duration
	NoProgress   bool

	ParsedConfig YamlConfig
	LoadedEnv    cliconfig.EnvFile
)

// Which environment variable feeds which flag.  These win over the config file.
var envBindings = map[string]string{
	"url":       "ANYTHINGLLM_URL",
	"api-key":   "ANYTHINGLLM_API_KEY",
	"documents": "ANYTHINGLLM_DOCUMENTS",
	"workspace": "ANYTHINGLLM_WORKSPACE",
}

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "wiki-upload",
	Short: "Upload exported documents into an AnythingLLM workspace",
	Long: `
Uploads every supported document in a directory (by default the output of wiki-export) to
AnythingLLM, and embeds each one into a workspace, creating the workspace if needed.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("wiki-upload: failed to initialise config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpload(cmd.Context())
	},
	Args: cobra.NoArgs,
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: ~/.config/wiki-upload.yaml, respects WIKI_UPLOAD_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&EnvFile, "env-file", cliconfig.DefaultEnvFile, "file of KEY=value pairs to load into the environment")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")

	rootCmd.PersistentFlags().StringVarP(&ServiceURL, "url", "u", anythingllm.DefaultURL, "AnythingLLM base URL (ANYTHINGLLM_URL)")
	rootCmd.PersistentFlags().StringVarP(&APIKey, "api-key", "k", "", "AnythingLLM developer API key (ANYTHINGLLM_API_KEY)")
	rootCmd.PersistentFlags().StringVarP(&DocumentsDir, "documents", "d", "./wiki_export", "directory of documents to upload (ANYTHINGLLM_DOCUMENTS)")
	rootCmd.PersistentFlags().StringVarP(&Workspace, "workspace", "w", "MediaWiki Import", "name of the workspace to embed into, created if missing (ANYTHINGLLM_WORKSPACE)")
	rootCmd.PersistentFlags().DurationVar(&Pause, "pause", docupload.DefaultPause, "pause between documents")
	rootCmd.PersistentFlags().BoolVar(&NoProgress, "no-progress", false, "don't draw a progress bar")
}

func initializeConfig(cmd *cobra.Command) error {
	LoadedEnv = cliconfig.LoadEnvFile(EnvFile, cmd.Flags().Changed("env-file"))
	if warning := LoadedEnv.Warning(); warning != "" {
		fmt.Fprintln(os.Stderr, warning)
	} else if !LoadedEnv.Loaded {
		debugLog("No env file loaded from %s: %v\n", LoadedEnv.Path, LoadedEnv.Err)
	}

	if err := cliconfig.BindEnv(cmd, envBindings); err != nil {
		return err
	}

	path, explicit, err := cliconfig.ResolveConfigPath(Config, "WIKI_UPLOAD_CONFIG", "~/.config/wiki-upload.yaml")
	if err != nil {
		return err
	}
	ConfigActual = path

	found, err := cliconfig.LoadYAML(ConfigActual, explicit, &ParsedConfig)
	if err != nil {
		if !found {
			fmt.Printf("Couldn't read config file %s, does it exist?  Override with --config.\n", ConfigActual)
		}
		return err
	}
	if !found {
		debugLog("No config file at %s, using flags and environment only\n", ConfigActual)
		return nil
	}

	if err := cliconfig.BindYAML(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("wiki-upload: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	NoProgress *bool `yaml:"no-progress"`

	URL       string `yaml:"url"`
	APIKey    string `yaml:"api-key"`
	Documents string `yaml:"documents"`
	Workspace string `yaml:"workspace"`
	// Anything time.ParseDuration understands, e.g. 1s or 250ms.
	Pause string `yaml:"pause"`
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("wiki-upload: execution error: %w", err)
	}

	return nil
}
