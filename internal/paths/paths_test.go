package paths

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLookups replaces the environment, home and user config lookups for
// the duration of the test.
func stubLookups(t *testing.T, env map[string]string, home string, configErr error) {
	t.Helper()
	origEnv, origHome, origConfig := lookupEnv, homeDir, userConfig
	t.Cleanup(func() { lookupEnv, homeDir, userConfig = origEnv, origHome, origConfig })

	lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	homeDir = func() (string, error) {
		if home == "" {
			return "", errors.New("no home")
		}
		return home, nil
	}
	userConfig = func() (string, error) {
		if configErr != nil {
			return "", configErr
		}
		return filepath.Join(home, "cfg"), nil
	}
}

func TestResolve(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")

	tests := []struct {
		name string
		flag string
		env  map[string]string
		want ConfigDir
	}{
		{
			name: "flag beats env",
			flag: "/srv/sqlview",
			env:  map[string]string{EnvConfigDir: "/etc/sqlview"},
			want: ConfigDir{Path: filepath.Clean("/srv/sqlview"), Source: FromFlag},
		},
		{
			name: "env when no flag",
			env:  map[string]string{EnvConfigDir: "/etc/sqlview"},
			want: ConfigDir{Path: filepath.Clean("/etc/sqlview"), Source: FromEnv},
		},
		{
			name: "empty env falls through",
			env:  map[string]string{EnvConfigDir: ""},
			want: ConfigDir{Path: filepath.Join(home, "cfg", "sqlview"), Source: FromPlatform},
		},
		{
			name: "platform default",
			want: ConfigDir{Path: filepath.Join(home, "cfg", "sqlview"), Source: FromPlatform},
		},
		{
			name: "tilde in flag",
			flag: "~/views",
			want: ConfigDir{Path: filepath.Join(home, "views"), Source: FromFlag},
		},
		{
			name: "bare tilde in env",
			env:  map[string]string{EnvConfigDir: "~"},
			want: ConfigDir{Path: home, Source: FromEnv},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubLookups(t, tt.env, home, nil)
			got, err := Resolve(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_RelativeBecomesAbsolute(t *testing.T) {
	stubLookups(t, map[string]string{EnvConfigDir: "conf/dir"}, t.TempDir(), nil)

	got, err := Resolve("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got.Path), "got %s", got.Path)
	assert.Equal(t, "dir", filepath.Base(got.Path))
}

func TestResolve_Errors(t *testing.T) {
	t.Run("no home for tilde", func(t *testing.T) {
		stubLookups(t, nil, "", nil)
		_, err := Resolve("~/x")
		assert.ErrorContains(t, err, "no home")
	})

	t.Run("no platform config dir", func(t *testing.T) {
		cause := errors.New("$HOME is not defined")
		stubLookups(t, nil, "/home/u", cause)
		_, err := Resolve("")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("tilde inside a name is literal", func(t *testing.T) {
		stubLookups(t, nil, "", nil)
		got, err := Resolve("/data/~x")
		require.NoError(t, err)
		assert.Equal(t, filepath.Clean("/data/~x"), got.Path)
	})
}
