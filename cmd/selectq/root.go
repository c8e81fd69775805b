package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/huynhanx03/go-selectq/pkg/settings"
)

const envPrefix = "SELECTQ"

// app carries the state shared by all sub-commands.
type app struct {
	cfgFile string
	v       *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:          "selectq {soak} [flags...]",
		Short:        "Tools for the selective asynchronous queue",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/selectq/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "also write logs to this rotating file")
	a.bind("logger.log_level", flags.Lookup("log-level"))
	a.bind("logger.file_log_name", flags.Lookup("log-file"))

	root.AddCommand(newSoakCmd(a))
	return root
}

// bind ties a config key to a flag. Flags win over env, env over the file.
func (a *app) bind(key string, flag *pflag.Flag) {
	_ = a.v.BindPFlag(key, flag)
}

// initConfig reads in config file and ENV variables if set.
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(filepath.Join(xdg.ConfigHome, "selectq"))
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("config")
	}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return errors.Wrap(err, "read config")
		}
	} else {
		fmt.Fprintln(os.Stderr, "Using config file:", a.v.ConfigFileUsed())
	}
	return nil
}

// load decodes, defaults and validates the configuration.
func (a *app) load() (*settings.Config, error) {
	var cfg settings.Config
	if err := a.v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
