package commands

import (
	"fmt"

	"github.com/penwyp/go-pos/internal/config"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	debug      bool
	user       string
	password   string
}

// NewRootCmd builds the full pos command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}
	var a app

	root := &cobra.Command{
		Use:   "pos",
		Short: "Point-of-sale ordering and sales analytics",
		Long: `pos keeps a small shop's menu, customer accounts and order history in plain
files under a data directory, and turns the order logs into sales analytics.

Examples:
  pos account register --user ana --password pw --confirm pw --first Ana
  pos menu list --category drinks
  pos order place --user ana --item Burger=2 --item Coke
  pos analytics --user admin --view weekly --chart weekly.png
  pos analytics --user admin --watch`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, g)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			util.SetLogger(nil)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (YAML)")
	pf.BoolVar(&g.debug, "debug", false, "Enable debug logging to stderr")
	pf.StringVarP(&g.user, "user", "u", "", "Username to act as")
	pf.StringVarP(&g.password, "password", "p", "", "Password (prompted when omitted)")
	pf.String("data-dir", config.DefaultDataDir, "Data directory holding the order logs and reference files")
	pf.String("timezone", "Local", "Timezone for order timestamps (e.g. Asia/Manila, UTC)")
	pf.String("currency", "", "Currency prefix for displayed amounts")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newAccountCmd(&a),
		newMenuCmd(&a),
		newOrderCmd(&a),
		newNotificationsCmd(&a),
		newSalesCmd(&a),
		newTransactionsCmd(&a),
		newAnalyticsCmd(&a),
		newExportCmd(&a),
	)
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

// init loads configuration and sets up logging and the clock before any
// subcommand runs.
func (a *app) init(cmd *cobra.Command, g *globalFlags) error {
	cfg, err := config.Load(g.configPath, cmd.Flags())
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if g.debug {
		level = "debug"
	}
	if err := util.InitLogger(util.LoggerOptions{
		Level:   level,
		File:    cfg.Log.File,
		Format:  util.LogFormat(cfg.Log.Format),
		Console: g.debug,
	}); err != nil {
		return err
	}
	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return err
	}
	if err := util.EnsureDir(cfg.DataDir); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	a.wire(cfg, g)
	util.LogDebug("command start", util.F("command", cmd.CommandPath()), util.F("data_dir", cfg.DataDir))
	return nil
}
