package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SpritePack/internal/engine"
	"github.com/piwi3910/SpritePack/internal/model"
)

func newCompareCmd() *cobra.Command {
	var flags atlasFlags

	cmd := &cobra.Command{
		Use:   "compare [folder]",
		Short: "Compare sort methods and the next atlas size for a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(cmd, "", nil)
			if err != nil {
				return err
			}
			entries, err := flags.scan(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}

			results := engine.CompareScenarios(engine.BuildDefaultScenarios(cfg), entries)
			best := engine.BestScenario(results)

			fmt.Fprintln(out, renderComparison(results, best))
			if best >= 0 {
				printSuccess("Best: %s (%d of %d placed)", results[best].Scenario.Name, results[best].PlacedCount, len(entries))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newFitCmd() *cobra.Command {
	var flags atlasFlags

	cmd := &cobra.Command{
		Use:   "fit [folder]",
		Short: "Find the smallest menu atlas size that fits every sprite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(cmd, "", nil)
			if err != nil {
				return err
			}
			entries, err := flags.scan(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}

			fit, result, ok := engine.SmallestFit(entries, cfg, model.AtlasSizes)
			if !ok {
				printWarning("No menu size up to %d fits all %d sprites", model.MaxAtlasDimension, len(entries))
				return fmt.Errorf("no atlas size fits all sprites")
			}
			printSuccess("%s fits all %d sprites (%.1f%% used)", fit.SizeLabel(), len(result.Placed), result.Efficiency(fit))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
