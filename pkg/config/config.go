// pkg/config/config.go

// Package config layers ship's settings: flags over SHIP_* environment
// variables over an optional YAML file over defaults.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/xdg"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when read from the environment.
const EnvPrefix = "SHIP"

// Keys.
const (
	KeyMessage   = "message"
	KeyPush      = "push"
	KeyNoPush    = "no-push"
	KeyRemote    = "remote"
	KeyPushLog   = "push-log"
	KeyDebug     = "debug"
	KeyTelemetry = "telemetry"
	KeyConfig    = "config"
)

// Config is the resolved configuration of one run.
type Config struct {
	Message   string
	Push      bool
	Remote    string
	PushLog   string
	Debug     bool
	Telemetry bool
	// ConfigFile is the file that was read, if any.
	ConfigFile string
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPush, true)
	v.SetDefault(KeyTelemetry, false)
	v.SetDefault(KeyDebug, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// AddFlags registers ship's flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringP(KeyMessage, "m", "", "commit message (skips the prompt)")
	fs.Bool(KeyNoPush, false, "commit without pushing")
	fs.String(KeyRemote, "", "remote to push to (default: branch upstream, else origin)")
	fs.String(KeyPushLog, "", "background push log file (default: <gitdir>/ship-push.log)")
	fs.String(KeyConfig, "", "config file (default: $XDG_CONFIG_HOME/ship/config.yaml)")
	fs.Bool(KeyDebug, false, "enable debug logging")
}

// BindFlags binds every flag in fs to the key of the same name.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var result error
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			result = multierror.Append(result, err)
		}
	})
	return result
}

// Load reads the config file (explicit, or the first one found in the
// default locations) and resolves the final Config.
func Load(v *viper.Viper) (*Config, error) {
	if explicit := v.GetString(KeyConfig); explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return nil, ship_err.NewConfigError("failed to read config file "+explicit, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range SearchPaths() {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, ship_err.NewConfigError("failed to read config file", err)
			}
		}
	}

	return &Config{
		Message:    v.GetString(KeyMessage),
		Push:       v.GetBool(KeyPush) && !v.GetBool(KeyNoPush),
		Remote:     strings.TrimSpace(v.GetString(KeyRemote)),
		PushLog:    v.GetString(KeyPushLog),
		Debug:      v.GetBool(KeyDebug),
		Telemetry:  v.GetBool(KeyTelemetry),
		ConfigFile: v.ConfigFileUsed(),
	}, nil
}

// SearchPaths lists the directories searched for config.yaml, in order.
func SearchPaths() []string {
	dirs := []string{filepath.Dir(xdg.ConfigPath("config.yaml"))}
	if home, err := os.UserHomeDir(); err == nil {
		if fallback := filepath.Join(home, ".config", xdg.App); fallback != dirs[0] {
			dirs = append(dirs, fallback)
		}
	}
	return dirs
}
