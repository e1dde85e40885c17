package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/logging"
)

const (
	name        = "zkcompose"
	description = "Composable zero-knowledge proof harness"
)

// app carries what every subcommand needs once flags and config are read.
type app struct {
	v      *viper.Viper
	cfg    *config
	zap    *zap.Logger
	engine *zkcompose.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var configPath string

	root := &cobra.Command{
		Use:           name,
		Short:         description,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, configPath)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.zap != nil {
				_ = a.zap.Sync()
			}
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (yaml, toml or json)")
	flags.String("log-level", "info", "log level")
	flags.String("log-file", "", "write rotated logs to this file")
	flags.Int("workers", 0, "parallel statements per proof, 0 for all CPUs")
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.file", flags.Lookup("log-file"))
	_ = a.v.BindPFlag("engine.workers", flags.Lookup("workers"))

	root.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
		newDemoCmd(a),
		newBenchCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, configPath string) error {
	cfg, err := loadConfig(a.v, configPath)
	if err != nil {
		return err
	}
	zl, err := newZapLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.zap = zl.Named(name)
	a.engine = zkcompose.New(zkcompose.Config{
		Logger:  logging.NewZap(a.zap),
		Workers: cfg.Engine.Workers,
		Domain:  cfg.Engine.Domain,
	})
	a.zap.Debug("configured", zap.Int("workers", cfg.Engine.Workers), zap.String("config", configPath))
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", name, zkcompose.LibraryVersion())
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default-config",
		Short: "Print a config file template",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), exampleConfig)
		},
	}
}
