// SPDX-License-Identifier: MIT

package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides: MDSPAN_SHAPE, MDSPAN_LAYOUT, ...
const envPrefix = "MDSPAN"

// Flag names double as viper keys and config file fields.
const (
	flagConfig  = "config"
	flagShape   = "shape"
	flagDynamic = "dynamic"
	flagLayout  = "layout"
	flagStrides = "strides"
	flagIndex   = "index"
	flagSlice   = "slice"
	flagValues  = "values"
)

// config is the resolved input of describe, after flags, env and config file.
type config struct {
	Shape   string `mapstructure:"shape"`
	Dynamic string `mapstructure:"dynamic"`
	Layout  string `mapstructure:"layout"`
	Strides string `mapstructure:"strides"`
	Index   string `mapstructure:"index"`
	Slice   string `mapstructure:"slice"`
	Values  bool   `mapstructure:"values"`
}

// newRootCmd wires the command tree around one viper instance.
// Precedence is flag > env > config file > default.
func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "mdspan-inspect",
		Short:         "Inspect multidimensional layouts, offsets and subspans",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(v, cmd)
		},
	}
	root.PersistentFlags().String(flagConfig, "", "config file (yaml, json or toml)")

	root.AddCommand(newDescribeCmd(v))

	return root
}

// loadConfig binds the command's flags and the environment into v and reads
// the optional config file.
func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind flags")
	}
	if path := v.GetString(flagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", path)
		}
	}

	return nil
}

// resolve decodes the merged settings.
func resolve(v *viper.Viper) (config, error) {
	var c config
	if err := v.Unmarshal(&c); err != nil {
		return config{}, errors.Wrap(err, "decode settings")
	}

	return c, nil
}
