package config

import (
	"os"
	"sort"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "VIXEL_"

type envSetter func(c *Config, value string) error

// envMapping maps environment variables to the settings they override.
var envMapping = map[string]envSetter{
	"VIXEL_LOG_LEVEL": func(c *Config, v string) error {
		c.Logging.Level = strings.ToLower(v)
		return nil
	},
	"VIXEL_LOG_FILE": func(c *Config, v string) error {
		c.Logging.File = v
		return nil
	},
	"VIXEL_CANVAS_WIDTH":  intSetter(func(c *Config) *int { return &c.Canvas.Width }),
	"VIXEL_CANVAS_HEIGHT": intSetter(func(c *Config) *int { return &c.Canvas.Height }),
	"VIXEL_EDITOR_COLOR": func(c *Config, v string) error {
		c.Editor.Color = v
		return nil
	},
	"VIXEL_EDITOR_SCALE": intSetter(func(c *Config) *int { return &c.Editor.Scale }),
}

func intSetter(field func(*Config) *int) envSetter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

// EnvNames returns the recognised environment variables, sorted.
func EnvNames() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyEnv overrides settings from environment variables found by lookup.
// Unset variables leave the setting unchanged. Pass os.LookupEnv for the
// process environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, name := range EnvNames() {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := envMapping[name](c, v); err != nil {
			return &EnvError{Name: name, Value: v, Err: err}
		}
	}
	return nil
}
