package cli

import (
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/msgram/internal/compare"
)

func newDiffCmd(a *app) *cobra.Command {
	var planned, developed, modelPath string
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare planned and developed characteristic vectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel(modelPath)
			if err != nil {
				return err
			}
			c, err := a.newComparator(m)
			if err != nil {
				return err
			}
			rp, err := readVector(planned)
			if err != nil {
				return err
			}
			rd, err := readVector(developed)
			if err != nil {
				return err
			}
			cmp, err := c.Compare(rp, rd)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), cmp)
		},
	}
	cmd.Flags().StringVar(&planned, "rp", "", "planned vector file")
	cmd.Flags().StringVar(&developed, "rd", "", "developed vector file")
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "quality model whose bands classify the diff")
	_ = cmd.MarkFlagRequired("rp")
	_ = cmd.MarkFlagRequired("rd")
	return cmd
}

func newNormDiffCmd(a *app) *cobra.Command {
	var planned, developed string
	cmd := &cobra.Command{
		Use:   "norm-diff",
		Short: "Frobenius norm between planned and developed vectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			rp, err := readVector(planned)
			if err != nil {
				return err
			}
			rd, err := readVector(developed)
			if err != nil {
				return err
			}
			norm, err := compare.NormDiff(rp, rd)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), map[string]float64{"norm": norm})
		},
	}
	cmd.Flags().StringVar(&planned, "rp", "", "planned vector file")
	cmd.Flags().StringVar(&developed, "rd", "", "developed vector file")
	_ = cmd.MarkFlagRequired("rp")
	_ = cmd.MarkFlagRequired("rd")
	return cmd
}
