/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/toothbrush/wiki-llm-import/internal/cliconfig"
)

var (
	// Store the result of binding cobra flags
	Config       string
	ConfigActual string
	EnvFile      string
	Debug        bool

	WikiURL   string
	WikiPath  string
	OutputDir string
	Username  string
	Password  string
	Namespace int
	Limit     int
	Rendered  bool
	WithVCR   bool

	ParsedConfig YamlConfig
	LoadedEnv    cliconfig.EnvFile
)

// Which environment variable feeds which flag.  These win over the config file.
var envBindings = map[string]string{
	"url":       "MEDIAWIKI_URL",
	"path":      "MEDIAWIKI_PATH",
	"output":    "MEDIAWIKI_OUTPUT",
	"username":  "MEDIAWIKI_USERNAME",
	"password":  "MEDIAWIKI_PASSWORD",
	"namespace": "MEDIAWIKI_NAMESPACE",
	"limit":     "MEDIAWIKI_LIMIT",
}

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "wiki-export",
	Short: "Export every page of a MediaWiki namespace to text files",
	Long: `
Walks all pages of a MediaWiki namespace and writes each one to a plain text file (wikitext, or
Markdown with --rendered) with a small provenance footer, ready for uploading to a document store
with wiki-upload.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("wiki-export: failed to initialise config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context())
	},
	Args: cobra.NoArgs,
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: ~/.config/wiki-export.yaml, respects WIKI_EXPORT_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&EnvFile, "env-file", cliconfig.DefaultEnvFile, "file of KEY=value pairs to load into the environment")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")

	rootCmd.PersistentFlags().StringVarP(&WikiURL, "url", "u", "", "MediaWiki host, e.g. wiki.example.com or http://localhost:8080 (MEDIAWIKI_URL)")
	rootCmd.PersistentFlags().StringVarP(&WikiPath, "path", "p", "/", "path to the directory holding api.php, e.g. /w/ (MEDIAWIKI_PATH)")
	rootCmd.PersistentFlags().StringVarP(&OutputDir, "output", "o", "./wiki_export", "directory to write exported pages into (MEDIAWIKI_OUTPUT)")
	rootCmd.PersistentFlags().StringVar(&Username, "username", "", "wiki username, for private wikis (MEDIAWIKI_USERNAME)")
	rootCmd.PersistentFlags().StringVar(&Password, "password", "", "wiki password or bot password (MEDIAWIKI_PASSWORD)")
	rootCmd.PersistentFlags().IntVarP(&Namespace, "namespace", "n", 0, "namespace to export, 0 is the main namespace (MEDIAWIKI_NAMESPACE)")
	rootCmd.PersistentFlags().IntVarP(&Limit, "limit", "l", 0, "stop after this many pages, 0 for no limit (MEDIAWIKI_LIMIT)")
	rootCmd.PersistentFlags().BoolVar(&Rendered, "rendered", false, "export rendered pages converted to Markdown instead of raw wikitext")
	rootCmd.PersistentFlags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to record and replay wiki responses")
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

	path, explicit, err := cliconfig.ResolveConfigPath(Config, "WIKI_EXPORT_CONFIG", "~/.config/wiki-export.yaml")
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
		return fmt.Errorf("wiki-export: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	Rendered *bool `yaml:"rendered"`
	WithVCR  *bool `yaml:"with-vcr"`

	Namespace *int `yaml:"namespace"`
	Limit     *int `yaml:"limit"`

	URL      string `yaml:"url"`
	Path     string `yaml:"path"`
	Output   string `yaml:"output"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("wiki-export: execution error: %w", err)
	}

	return nil
}
