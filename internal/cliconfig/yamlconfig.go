package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("cliconfig: unable to expand homedir in %s: %w", p, err)
	}
	return expanded, nil
}

// ResolveConfigPath picks the config file: the --config value if set, else $envVar, else
// fallback.  explicit reports whether the user chose it (and so whether it must exist).
func ResolveConfigPath(flagValue string, envVar string, fallback string) (path string, explicit bool, err error) {
	path = flagValue
	explicit = flagValue != ""
	if path == "" {
		if env := os.Getenv(envVar); env != "" {
			path = env
			explicit = true
		} else {
			path = fallback
		}
	}

	path, err = ExpandPath(path)
	return path, explicit, err
}

// LoadYAML strictly parses the YAML file at path into out, so that typos in key names are
// reported rather than silently ignored.  A missing file is only an error when explicit.
func LoadYAML(path string, explicit bool, out any) (found bool, err error) {
	source, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cliconfig: error reading config file: %w", err)
	}

	if err := yaml.UnmarshalStrict(source, out); err != nil {
		return true, fmt.Errorf("cliconfig: issue parsing config file %s: %w", path, err)
	}
	return true, nil
}

// BindYAML copies each field of cfg onto the flag named by its yaml tag, unless the flag was
// already set on the command line (or from the environment).  Pointer fields distinguish "not in
// the file" from a zero value.
func BindYAML(cmd *cobra.Command, cfg any) error {
	for _, field := range structs.Fields(cfg) {
		key := field.Tag("yaml")
		if key == "" || key == "-" {
			return fmt.Errorf("cliconfig: could not retrieve struct tag 'yaml' of %s", field.Name())
		}
		if cmd.Flag(key) == nil {
			// legitimately happens: a subcommand may not define every flag the file mentions
			continue
		}
		if cmd.Flags().Changed(key) {
			continue
		}

		value, ok, err := flagValue(field)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		for _, v := range value {
			// repeatedly calling Set() appends to slice flags
			if err := cmd.Flags().Set(key, v); err != nil {
				return fmt.Errorf("cliconfig: bad value for '%s' in config file: %w", key, err)
			}
		}
	}

	return nil
}

func flagValue(field *structs.Field) ([]string, bool, error) {
	switch v := field.Value().(type) {
	case *bool:
		if v == nil {
			return nil, false, nil
		}
		return []string{strconv.FormatBool(*v)}, true, nil
	case *int:
		if v == nil {
			return nil, false, nil
		}
		return []string{strconv.Itoa(*v)}, true, nil
	case string:
		return []string{v}, v != "", nil
	case []string:
		return v, len(v) > 0, nil
	}

	if field.Kind() == reflect.Ptr && field.IsZero() {
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("cliconfig: found unrecognised field: %s (%s)", field.Name(), field.Kind())
}
