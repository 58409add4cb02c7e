package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, key := range []string{"DATA_DIR", "STORE", "FIELDS_FILE", "DEBOUNCE", "THEME"} {
		t.Setenv(EnvPrefix+"_"+key, "")
		require.NoError(t, os.Unsetenv(EnvPrefix+"_"+key))
	}
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	got, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	require.NoError(t, Write(GlobalPath(), Settings{DataDir: "global", Store: "sqlite", Debounce: time.Second, Theme: "dark"}))
	require.NoError(t, os.WriteFile(ProjectPath(), []byte("data_dir: project\n"), 0o644))

	got, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "project", got.DataDir, "project config overrides global")
	assert.Equal(t, "sqlite", got.Store, "global config fills unset keys")
	assert.Equal(t, time.Second, got.Debounce)
	assert.Equal(t, "dark", got.Theme)

	t.Setenv("PROMPTGEN_STORE", "memory")
	got, err = Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "memory", got.Store, "env overrides config files")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("store", "", "")
	flags.String("data-dir", "", "")
	flags.Duration("debounce", 0, "")
	require.NoError(t, flags.Parse([]string{"--store=file", "--debounce=10ms"}))

	got, err = Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "file", got.Store, "explicit flag overrides env")
	assert.Equal(t, 10*time.Millisecond, got.Debounce)
	assert.Equal(t, "project", got.DataDir, "unset flag does not mask config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{name: "defaults", settings: Defaults()},
		{name: "unknown store", settings: Settings{DataDir: "x", Store: "redis"}, wantErr: true},
		{name: "memory needs no dir", settings: Settings{Store: "memory"}},
		{name: "file needs dir", settings: Settings{Store: "file"}, wantErr: true},
		{name: "negative debounce", settings: Settings{DataDir: "x", Store: "file", Debounce: -time.Second}, wantErr: true},
		{name: "bad theme", settings: Settings{DataDir: "x", Store: "file", Theme: "neon"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}
