package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/amazon-mws/internal/config"
	"github.com/donaldgifford/amazon-mws/internal/monitor"
	"github.com/donaldgifford/amazon-mws/pkg/mws"
)

func statusCmd() *cobra.Command {
	var (
		watch       bool
		interval    time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "status [section...]",
		Short: "Show the service status of API sections",
		Long:  "Calls GetServiceStatus on each named section, or on the sections\n" +
			"listed under monitor.sections in the config, or on every section.\n" +
			"A failing section is reported in its row.\n\n" +
			"With --watch the check repeats every --interval and the results are\n" +
			"exported as Prometheus metrics on --metrics-addr until interrupted.",
		Example: `  mws status
  mws status orders reports --output json
  mws status --watch --interval 1m --metrics-addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("interval") {
				cfg.Monitor.Interval = interval
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Monitor.MetricsAddr = metricsAddr
			}

			names := args
			if len(names) == 0 {
				names = cfg.Monitor.Sections
			}
			sections, err := statusSections(names)
			if err != nil {
				return err
			}

			log := newLogger(cfg)
			client, err := newClient(cfg, log)
			if err != nil {
				return err
			}
			m := monitor.New(client, sections, log)

			if watch {
				return watchStatus(cmd.Context(), m, cfg.Monitor, log)
			}

			rows := m.Check(cmd.Context())
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), rows)
			}
			return printStatusTable(cmd.OutOrStdout(), rows)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&watch, "watch", false, "keep checking and serve metrics until interrupted")
	flags.DurationVar(&interval, "interval", 0, "check interval with --watch (default from config, 5m)")
	flags.StringVar(&metricsAddr, "metrics-addr", "",
		"metrics listen address with --watch (default from config, :9090)")
	return cmd
}

// statusSections resolves section names, all sections when names is empty.
func statusSections(names []string) ([]mws.Section, error) {
	if len(names) == 0 {
		names = sectionNames()
	}
	sections := make([]mws.Section, 0, len(names))
	for _, name := range names {
		g, err := lookupSection(name)
		if err != nil {
			return nil, err
		}
		sections = append(sections, g.section)
	}
	return sections, nil
}

func watchStatus(ctx context.Context, m *monitor.Monitor, cfg config.MonitorConfig, log *slog.Logger) error {
	srv := monitor.NewServer(cfg.MetricsAddr, log)
	sched, err := monitor.NewScheduler(m, cfg.Interval, srv.Record, log)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sched.RunOnce(ctx)
	sched.Start()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	<-sched.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return serveErr
}
