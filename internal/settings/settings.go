// Package settings resolves the runtime settings of the promptgen CLI.
//
// Precedence (highest to lowest):
//  1. Command line flags
//  2. Environment variables (PROMPTGEN_*)
//  3. Project config (./promptgen.yml)
//  4. Global config ($XDG_CONFIG_HOME/promptgen/promptgen.yml)
//  5. Defaults
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-promptgen/pkg/storage"
	"github.com/goliatone/go-promptgen/pkg/theme"
)

const (
	EnvPrefix = "PROMPTGEN"
	FileName  = "promptgen.yml"
)

// Keys and the flags bound to them.
const (
	KeyDataDir    = "data_dir"
	KeyStore      = "store"
	KeyFieldsFile = "fields_file"
	KeyDebounce   = "debounce"
	KeyTheme      = "theme"
)

var flagNames = map[string]string{
	KeyDataDir:    "data-dir",
	KeyStore:      "store",
	KeyFieldsFile: "fields",
	KeyDebounce:   "debounce",
	KeyTheme:      "theme",
}

// ErrInvalid flags a setting that is present but unusable.
var ErrInvalid = errors.New("settings: invalid value")

// Settings is the resolved runtime configuration.
type Settings struct {
	DataDir    string        `mapstructure:"data_dir" yaml:"data_dir"`
	Store      string        `mapstructure:"store" yaml:"store"`
	FieldsFile string        `mapstructure:"fields_file" yaml:"fields_file"`
	Debounce   time.Duration `mapstructure:"debounce" yaml:"debounce"`
	Theme      string        `mapstructure:"theme" yaml:"theme"`
}

// Defaults returns the settings used when no source provides a value.
func Defaults() Settings {
	return Settings{
		DataDir:  ".promptgen",
		Store:    storage.BackendFile,
		Debounce: 250 * time.Millisecond,
	}
}

// GlobalPath returns the per-user config file location.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "promptgen", FileName)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "promptgen", FileName)
}

// ProjectPath returns the project config file location.
func ProjectPath() string {
	return FileName
}

// Load resolves settings from every source. flags may be nil; otherwise
// flags named after the keys are bound so explicitly set flags win.
func Load(flags *pflag.FlagSet) (Settings, error) {
	v := newViper()

	if err := readFile(v, GlobalPath(), false); err != nil {
		return Settings{}, err
	}
	if err := readFile(v, ProjectPath(), true); err != nil {
		return Settings{}, err
	}

	if flags != nil {
		for key, name := range flagNames {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Settings{}, fmt.Errorf("settings: bind flag %s: %w", name, err)
				}
			}
		}
	}

	var out Settings
	if err := v.Unmarshal(&out); err != nil {
		return Settings{}, fmt.Errorf("settings: decode: %w", err)
	}
	if err := out.Validate(); err != nil {
		return Settings{}, err
	}
	return out, nil
}

// Validate normalises and checks the settings in place.
func (s *Settings) Validate() error {
	s.Store = strings.ToLower(strings.TrimSpace(s.Store))
	switch s.Store {
	case storage.BackendFile, storage.BackendSQLite, storage.BackendMemory:
	default:
		return fmt.Errorf("%w: store %q (want file, sqlite or memory)", ErrInvalid, s.Store)
	}
	if s.Store != storage.BackendMemory && strings.TrimSpace(s.DataDir) == "" {
		return fmt.Errorf("%w: data_dir is required for the %s store", ErrInvalid, s.Store)
	}
	if s.Debounce < 0 {
		return fmt.Errorf("%w: debounce must not be negative", ErrInvalid)
	}
	if s.Theme != "" {
		variant, err := theme.Normalize(s.Theme)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		s.Theme = variant
	}
	return nil
}

// Write stores s as a YAML config file at path.
func Write(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	v := viper.New()
	v.Set(KeyDataDir, s.DataDir)
	v.Set(KeyStore, s.Store)
	v.Set(KeyFieldsFile, s.FieldsFile)
	v.Set(KeyDebounce, s.Debounce.String())
	v.Set(KeyTheme, s.Theme)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("settings: create dir: %w", err)
		}
	}
	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("settings: write %s: %w", path, err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	defaults := Defaults()
	v.SetDefault(KeyDataDir, defaults.DataDir)
	v.SetDefault(KeyStore, defaults.Store)
	v.SetDefault(KeyFieldsFile, defaults.FieldsFile)
	v.SetDefault(KeyDebounce, defaults.Debounce)
	v.SetDefault(KeyTheme, defaults.Theme)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func readFile(v *viper.Viper, path string, merge bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("settings: stat %s: %w", path, err)
	}
	v.SetConfigFile(path)
	var err error
	if merge {
		err = v.MergeInConfig()
	} else {
		err = v.ReadInConfig()
	}
	if err != nil {
		return fmt.Errorf("settings: read %s: %w", path, err)
	}
	return nil
}
