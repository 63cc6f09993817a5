package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/ennichirag3/blue-carbon-frontend/config"
	"github.com/ennichirag3/blue-carbon-frontend/internal/logging"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/client"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/service"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/tui"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/view"
)

type options struct {
	storeURL    string
	timeout     time.Duration
	logLevel    string
	showMetrics bool
}

// app holds what every subcommand needs once flags and config are resolved.
type app struct {
	out      io.Writer
	in       io.Reader
	opts     options
	cfg      *config.Config
	log      *logging.Logger
	registry *prometheus.Registry
	store    *client.StoreClient
}

func newRootCmd(out io.Writer, in io.Reader) *cobra.Command {
	a := &app{out: out, in: in}

	root := &cobra.Command{
		Use:   "carbonctl",
		Short: "Manage Blue Carbon restoration projects",
		Long: `carbonctl lists, adds and deletes Blue Carbon projects held by a project store.

Examples:
  # Show all projects with totals
  carbonctl list

  # Add a project
  carbonctl add --name "Mangrove A" --description "Replanting" --location Puttalam --carbon 120

  # Browse interactively
  carbonctl tui --store-url http://localhost:5001/api/projects`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
	}
	root.SetOut(out)
	root.SetIn(in)

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.storeURL, "store-url", "", "project collection URL (overrides STORE_URL)")
	flags.DurationVar(&a.opts.timeout, "timeout", 0, "per-request timeout (overrides STORE_TIMEOUT)")
	flags.StringVar(&a.opts.logLevel, "log-level", "warn", "log level written to stderr")
	flags.BoolVar(&a.opts.showMetrics, "metrics", false, "print client metrics after the command")

	root.AddCommand(a.listCmd(), a.addCmd(), a.deleteCmd(), a.tuiCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("store-url") {
		cfg.Store.URL = a.opts.storeURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Store.Timeout = a.opts.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.log, err = logging.New(cfg.App.Environment, a.opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.registry = prometheus.NewRegistry()
	a.store = client.New(cfg.Store.URL,
		client.WithTimeout(cfg.Store.Timeout),
		client.WithMetrics(client.NewMetrics(a.registry)),
		client.WithLogger(a.log.Named("client")),
	)
	return nil
}

// run wraps a subcommand so metrics and log flushing happen on failure too.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.teardown()
		return fn(cmd, args)
	}
}

func (a *app) teardown() {
	if a.opts.showMetrics && a.registry != nil {
		a.writeMetrics()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func (a *app) writeMetrics() {
	families, err := a.registry.Gather()
	if err != nil {
		a.log.LogError(context.Background(), "metrics.gather", err)
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.out, mf); err != nil {
			a.log.LogError(context.Background(), "metrics.write", err)
			return
		}
	}
}

func (a *app) syncClient(v service.View) *service.SyncClient {
	return service.NewSyncClient(a.store, v,
		service.WithLogger(a.log.Named("sync")),
		service.WithStaleGuard(a.cfg.Store.GuardStale),
	)
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects with project count and total carbon saved",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			s := a.syncClient(view.NewTerminal(a.out, a.in))
			return shown(s.Load(cmd.Context()))
		}),
	}
}

func (a *app) addCmd() *cobra.Command {
	var in domain.FormInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			s := a.syncClient(view.NewTerminal(a.out, a.in))
			return shown(s.Create(cmd.Context(), in))
		}),
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "project name")
	cmd.Flags().StringVar(&in.Description, "description", "", "project description")
	cmd.Flags().StringVar(&in.Location, "location", "", "project location")
	cmd.Flags().StringVar(&in.CarbonSaved, "carbon", "", "carbon saved in tons")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			s := a.syncClient(view.NewTerminal(a.out, a.in, view.AssumeYes(yes)))
			err := s.Delete(cmd.Context(), args[0])
			if errors.Is(err, service.ErrDeclined) {
				return nil
			}
			return shown(err)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit projects interactively",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			bridge := tui.NewBridge()
			return tui.Run(cmd.Context(), a.syncClient(bridge), bridge)
		}),
	}
}
