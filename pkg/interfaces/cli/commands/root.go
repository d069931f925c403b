package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/vsinha/importdesk/pkg/application/services"
	"github.com/vsinha/importdesk/pkg/config"
	pkgerrors "github.com/vsinha/importdesk/pkg/errors"
	"github.com/vsinha/importdesk/pkg/infrastructure/events"
	"github.com/vsinha/importdesk/pkg/infrastructure/store"
	"github.com/vsinha/importdesk/pkg/interfaces/cli/output"
	"github.com/vsinha/importdesk/pkg/logger"
	"go.uber.org/multierr"
)

// TrackerFactory opens the tracker a command runs against. The returned
// close function releases the backing store.
type TrackerFactory func(ctx context.Context, envFile string) (*services.Tracker, func() error, error)

type app struct {
	open    TrackerFactory
	format  string
	envFile string
	tracker *services.Tracker
	closeFn func() error
}

// NewRootCommand builds the importdesk command tree. The returned close
// function releases the store opened by whichever command ran; callers defer
// it so the store is closed on failure too.
func NewRootCommand(open TrackerFactory) (*cobra.Command, func() error) {
	a := &app{open: open}

	root := &cobra.Command{
		Use:   "importdesk",
		Short: "Track imported materials, orders and landed costs",
		Long: `importdesk keeps a catalog of importable materials and the import
orders placed against them. Order totals include tariff and logistics, and
delivery dates follow each material's lead time.

State is kept in the store selected by IMPORTDESK_STORE_BACKEND (file,
memory, redis, sqlite or postgres) and seeded with sample data on first run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !output.ValidFormat(a.format) {
				return pkgerrors.Newf(pkgerrors.CodeValidation, "unsupported output format %q", a.format).
					WithDetails(map[string]string{"format": "must be one of: text json csv"})
			}
			tracker, closeFn, err := a.open(cmd.Context(), a.envFile)
			if err != nil {
				return err
			}
			a.tracker = tracker
			a.closeFn = closeFn
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.format, "format", "f", output.FormatText, "Output format: text, json, csv")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Load configuration from this .env file")

	root.AddCommand(newMaterialsCommand(a), newOrdersCommand(a), newDashboardCommand(a), newHistoryCommand(a))
	return root, a.close
}

func (a *app) close() error {
	if a.closeFn == nil {
		return nil
	}
	closeFn := a.closeFn
	a.closeFn = nil
	return closeFn()
}

// Execute runs the command tree with args and closes the store afterwards,
// whether or not the command succeeded
func Execute(ctx context.Context, open TrackerFactory, args []string) (err error) {
	root, closeStore := NewRootCommand(open)
	defer func() {
		err = multierr.Append(err, closeStore())
	}()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *app) render(cmd *cobra.Command, value any) error {
	return output.Generate(value, output.Config{Format: a.format, Out: cmd.OutOrStdout()})
}

// OpenTracker is the production TrackerFactory: it reads configuration,
// builds the logger and opens the configured store
func OpenTracker(ctx context.Context, envFile string) (*services.Tracker, func() error, error) {
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, nil, err
	}

	logg := logger.New(logger.Options{
		ServiceName: "importdesk",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})

	s, err := store.Open(ctx, cfg, logg)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open store")
	}

	tracker, err := services.NewTracker(ctx, s, services.TrackerOptions{
		Logger:        logg,
		EventHandlers: []events.EventHandler{events.NewLogHandler(logg)},
	})
	if err != nil {
		_ = s.Close()
		return nil, nil, err
	}

	report := tracker.LoadReport()
	logg.Debug(logg.WithFields(ctx, map[string]any{
		"materials":      report.Materials.String(),
		"orders":         report.Orders.String(),
		"order_sequence": report.OrderSequence.String(),
	}), "store loaded")
	return tracker, s.Close, nil
}

// PrintError writes err for a terminal user, including per-field details
// of validation failures
func PrintError(w io.Writer, err error) {
	coded := pkgerrors.As(err)
	if coded == nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "Error: %s\n", coded.Error())
	switch details := coded.Details().(type) {
	case map[string]string:
		fields := make([]string, 0, len(details))
		for field := range details {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(w, "  %s: %s\n", field, details[field])
		}
	case []string:
		for _, line := range details {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
