package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/msgram/internal/compare"
	"github.com/MikeSquared-Agency/msgram/internal/config"
	"github.com/MikeSquared-Agency/msgram/internal/model"
	"github.com/MikeSquared-Agency/msgram/internal/scoring"
)

// app carries what every command needs once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

// NewRootCmd builds the msgram command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "msgram",
		Short: "MeasureSoftGram quality model engine",
		Long: `msgram turns extracted repository metrics into a hierarchical software
quality score (measures, subcharacteristics, characteristics, SQC) and
compares planned against developed quality goals.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			if a.logger == nil {
				a.logger = cfg.Logging.NewLogger()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file")

	root.AddCommand(
		newCalculateCmd(a),
		newDiffCmd(a),
		newNormDiffCmd(a),
		newListCmd(a),
		newServeCmd(a),
		newWatchCmd(a),
	)
	return root
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		logError(slog.New(slog.NewJSONHandler(os.Stderr, nil)), err)
	}
	return err
}

func logError(logger *slog.Logger, err error) {
	var qerr *model.Error
	if errors.As(err, &qerr) {
		logger.Error("command failed", "error", err, "kind", qerr.Kind, "keys", qerr.Keys)
		return
	}
	logger.Error("command failed", "error", err)
}

// loadModel loads path, falling back to the configured model.
func (a *app) loadModel(path string) (*model.Model, error) {
	if path == "" {
		path = a.cfg.Model.Path
	}
	return model.Load(path)
}

func (a *app) newEngine(m *model.Model) (*scoring.Engine, error) {
	n, err := scoring.NewNormalizer(scoring.RulesV1, a.cfg.Scoring.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("scoring thresholds: %w", err)
	}
	return scoring.NewEngine(m, n, scoring.NewAggregator(a.cfg.Scoring.Precision), a.cfg.Scoring.Workers, a.logger), nil
}

func (a *app) newComparator(m *model.Model) (*compare.Comparator, error) {
	return compare.NewComparator(m.Bands)
}

func writeOutput(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
