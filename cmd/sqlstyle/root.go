package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syssam/sqlstyle/config"
	"github.com/syssam/sqlstyle/dialect/sql/style"
)

const (
	configFlag   = "config"
	logLevelFlag = "log-level"
	dialectFlag  = "dialect"
)

// app holds what every subcommand needs. It is filled in by the persistent
// pre-run of the root command.
type app struct {
	configFile string
	logLevel   string
	dialect    string

	cfg   config.Config
	log   *zap.Logger
	style *style.Style
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "sqlstyle",
		Short:         "Render SQL fragments and bind values with a dialect style.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configFile, configFlag, "c", "", "config file (yaml)")
	flags.StringVar(&a.logLevel, logLevelFlag, "", "log level, overrides the config")
	flags.StringVar(&a.dialect, dialectFlag, "", "dialect, overrides the config")

	cmd.AddCommand(
		newLiteralCmd(a),
		newInListCmd(a),
		newPredicateCmd(a),
		newBindCmd(a),
		newConfigCmd(a),
		newRoundTripCmd(a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed(logLevelFlag) {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed(dialectFlag) {
		cfg.Style.Dialect = a.dialect
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := cfg.Log.Logger()
	if err != nil {
		return err
	}
	s, err := style.New(style.WithConfig(cfg.Style), style.WithLogger(logger))
	if err != nil {
		return err
	}
	a.cfg, a.log, a.style = cfg, logger, s
	return nil
}
