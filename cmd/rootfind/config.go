package main

import (
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/lvsolve/internal/log"
	"github.com/katalvlaran/lvsolve/rootfind"
)

const envPrefix = "LVSOLVE"

// Flag keys shared between cobra, viper and the environment.
const (
	keyConfig  = "config"
	keyDebug   = "debug"
	keyTrace   = "trace"
	keyEps     = "eps"
	keyMaxIter = "maxit"
	keyF       = "f"
	keyDF      = "df"
	keyJac     = "jac"
	keyA       = "a"
	keyB       = "b"
	keyX0      = "x0"
	keyX1      = "x1"
	keyGuarded = "guarded"
)

// loadSettings resolves cmd's flags with the usual precedence: explicit flag,
// LVSOLVE_* environment variable, config file, flag default.
func loadSettings(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Annotatef(err, "read config %s", path)
		}
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Trace(err)
	}

	return v, nil
}

// solverOptions turns the common settings into rootfind options.
func solverOptions(v *viper.Viper) ([]rootfind.Option, error) {
	opts := []rootfind.Option{rootfind.WithTrace(v.GetBool(keyTrace))}
	if n := v.GetInt(keyMaxIter); n > 0 {
		opts = append(opts, rootfind.WithMaxIter(n))
	} else if n < 0 {
		return nil, errors.NotValidf("--%s=%d", keyMaxIter, n)
	}
	if v.GetBool(keyDebug) {
		opts = append(opts, rootfind.WithReporter(rootfind.NewZapReporter(log.Logger())))
	}

	return opts, nil
}

// requireString returns the non-empty value of key.
func requireString(v *viper.Viper, key string) (string, error) {
	s := strings.TrimSpace(v.GetString(key))
	if s == "" {
		return "", errors.NotValidf("missing --%s", key)
	}

	return s, nil
}
