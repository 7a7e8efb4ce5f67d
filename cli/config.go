package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAMLConfig is a kong.ConfigurationLoader reading flag defaults from YAML.
//
// Top-level keys match global flags; a key named after a command holds that
// command's flags:
//
//	log-level: debug
//	format:
//	  prefix-width: 40
//
// Dashes in flag names may be written as underscores.
func YAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var f kong.ResolverFunc = func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if section, ok := values[parent.Command.Name].(map[string]any); ok {
				if raw, ok := lookup(section, flag.Name); ok {
					return configValue(raw), nil
				}
			}
		}
		if raw, ok := lookup(values, flag.Name); ok {
			return configValue(raw), nil
		}
		return nil, nil
	}
	return f, nil
}

func lookup(values map[string]any, name string) (any, bool) {
	if raw, ok := values[name]; ok {
		return raw, true
	}
	raw, ok := values[strings.ReplaceAll(name, "-", "_")]
	return raw, ok
}

// configValue renders a YAML value the way it would be written on the
// command line. Lists become comma-separated.
func configValue(raw any) any {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
