package cliconfig

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// DefaultEnvFile is looked for in the working directory when --env-file isn't given.
const DefaultEnvFile = ".env"

// EnvFile records whether an env file was available and loaded.  Commands carry this around
// rather than consulting a global, so they can warn (or not) appropriately.
type EnvFile struct {
	Path     string
	Explicit bool // user asked for this file by name
	Loaded   bool
	Err      error
}

// Warning returns a message worth showing the user, or "" if there's nothing to say.  A missing
// default .env is normal and stays quiet.
func (e EnvFile) Warning() string {
	if e.Loaded || e.Err == nil {
		return ""
	}
	if !e.Explicit && errors.Is(e.Err, os.ErrNotExist) {
		return ""
	}
	return fmt.Sprintf("Warning: couldn't load env file %s: %v.  Using environment variables only.", e.Path, e.Err)
}

// LoadEnvFile loads KEY=value pairs from path into the process environment.  Variables that are
// already set win over the file.
func LoadEnvFile(path string, explicit bool) EnvFile {
	if path == "" {
		path = DefaultEnvFile
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return EnvFile{Path: path, Explicit: explicit, Err: err}
	}

	if err := godotenv.Load(expanded); err != nil {
		return EnvFile{Path: expanded, Explicit: explicit, Err: err}
	}
	return EnvFile{Path: expanded, Explicit: explicit, Loaded: true}
}

// BindEnv sets each flag the user didn't pass explicitly from its environment variable, when
// that variable is non-empty.  bindings maps flag name to variable name.
func BindEnv(cmd *cobra.Command, bindings map[string]string) error {
	for flagName, envVar := range bindings {
		if cmd.Flag(flagName) == nil {
			return fmt.Errorf("cliconfig: no flag --%s to bind %s to", flagName, envVar)
		}
		if cmd.Flags().Changed(flagName) {
			continue
		}
		value, ok := os.LookupEnv(envVar)
		if !ok || value == "" {
			continue
		}
		if err := cmd.Flags().Set(flagName, value); err != nil {
			return fmt.Errorf("cliconfig: bad value for %s: %w", envVar, err)
		}
	}
	return nil
}
