package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/msgram/internal/hermes"
	"github.com/MikeSquared-Agency/msgram/internal/model"
	"github.com/MikeSquared-Agency/msgram/internal/scoring"
	"github.com/MikeSquared-Agency/msgram/internal/store"
)

// calculation is one entry of the calculate output.
type calculation struct {
	Name      string          `json:"name"`
	ReleaseID string          `json:"release_id,omitempty"`
	Result    *scoring.Result `json:"result,omitempty"`
	Error     *model.Error    `json:"error,omitempty"`
	Message   string          `json:"message,omitempty"`
}

func newCalculateCmd(a *app) *cobra.Command {
	var (
		extracted string
		modelPath string
		persist   bool
		publish   bool
	)
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Score extracted metric files against the quality model",
		Long: `Calculate reads one extracted file, or every .msgram/.json file of a
directory, and prints measures, subcharacteristics, characteristics and the
SQC of each as JSON. A failing file, including one that cannot be read or
parsed, is reported and the others continue.

The configured model, or the built-in full quality model, is used unless -m
names a model file or a built-in model. "-m performance" scores the
performance-efficiency tree (time behaviour and resource utilization).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			m, err := a.loadModel(modelPath)
			if err != nil {
				return err
			}
			engine, err := a.newEngine(m)
			if err != nil {
				return err
			}
			loaded, err := collectInputs(extracted)
			if err != nil {
				return err
			}
			for _, l := range loaded {
				if l.err != nil {
					a.logger.Warn("input skipped", "input", l.input.Name, "error", l.err)
				}
			}

			var db store.Store
			if persist {
				if a.cfg.Database.URL == "" {
					return errors.New("--store needs database.url")
				}
				pg, err := store.NewPostgresStore(ctx, a.cfg.Database.URL)
				if err != nil {
					return err
				}
				defer pg.Close()
				if err := pg.Migrate(ctx); err != nil {
					return err
				}
				db = pg
			}

			var emitter *hermes.Emitter
			if publish {
				if a.cfg.Hermes.URL == "" {
					return errors.New("--publish needs hermes.url")
				}
				hc, err := hermes.NewNATSClient(ctx, a.cfg.Hermes.URL, a.logger)
				if err != nil {
					return err
				}
				defer hc.Close()
				emitter = hermes.NewEmitter(hc, a.logger)
			}

			outcomes := calculateLoaded(ctx, engine, loaded)
			out := make([]calculation, len(outcomes))
			failed := 0
			for i, o := range outcomes {
				out[i].Name = o.Input.Name
				if o.Err != nil {
					failed++
					out[i].Message = o.Err.Error()
					var qerr *model.Error
					if errors.As(o.Err, &qerr) {
						out[i].Error = qerr
					}
					emitter.CalculationFailed(o.Input, o.Err)
					continue
				}
				out[i].Result = o.Result
				if db != nil {
					rel := store.NewRelease(o.Result)
					if err := db.SaveRelease(ctx, rel); err != nil {
						return fmt.Errorf("save %s: %w", o.Input.Name, err)
					}
					out[i].ReleaseID = rel.ID.String()
				}
				emitter.CalculationCompleted(out[i].ReleaseID, o.Result)
			}

			if err := writeOutput(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed", failed, len(outcomes))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&extracted, "extracted", "e", "", "extracted file or directory")
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "quality model file, or built-in model name: default, performance")
	cmd.Flags().BoolVar(&persist, "store", false, "save each release to the database")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish calculation events to hermes")
	_ = cmd.MarkFlagRequired("extracted")
	return cmd
}
