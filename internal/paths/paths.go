// Package paths locates the sqlview configuration directory.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfigDir names the environment variable that relocates the
// configuration directory.
const EnvConfigDir = "SQLVIEW_CONFIG_DIR"

const dirName = "sqlview"

// Source records which setting chose a ConfigDir.
type Source string

// Sources, highest precedence first.
const (
	FromFlag     Source = "flag"
	FromEnv      Source = "env"
	FromPlatform Source = "platform"
)

// ConfigDir is a resolved, absolute configuration directory.
type ConfigDir struct {
	Path   string
	Source Source
}

// Lookups used by resolution; tests swap them out.
var (
	lookupEnv  = os.LookupEnv
	homeDir    = os.UserHomeDir
	userConfig = os.UserConfigDir
)

// Resolve picks the configuration directory: a non-empty flag value, then
// SQLVIEW_CONFIG_DIR, then the per-user config directory of the platform
// ($XDG_CONFIG_HOME or ~/.config on Linux, Application Support on macOS,
// %AppData% on Windows) joined with "sqlview". Flag and env values may start
// with "~/".
func Resolve(flag string) (ConfigDir, error) {
	if flag != "" {
		return fromSetting(flag, FromFlag)
	}
	if env, ok := lookupEnv(EnvConfigDir); ok && env != "" {
		return fromSetting(env, FromEnv)
	}

	base, err := userConfig()
	if err != nil {
		return ConfigDir{}, fmt.Errorf("locate user config dir: %w", err)
	}
	return ConfigDir{Path: filepath.Join(base, dirName), Source: FromPlatform}, nil
}

func fromSetting(value string, src Source) (ConfigDir, error) {
	expanded, err := expandHome(value)
	if err != nil {
		return ConfigDir{}, fmt.Errorf("%s config dir %q: %w", src, value, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return ConfigDir{}, fmt.Errorf("%s config dir %q: %w", src, value, err)
	}
	return ConfigDir{Path: abs, Source: src}, nil
}

// expandHome replaces a leading "~" path element with the home directory.
func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p, nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, p[1:]), nil
}
