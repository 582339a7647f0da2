package cli

import (
	"fmt"

	"github.com/ethanbaker/states/internal/seed"
	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load fun facts from a YAML file",
		Long: `Load fun facts from a YAML file. Facts are appended, so seeding twice adds them twice.

Example file:
  states:
    - code: KS
      funfacts:
        - "Kansas is flatter than a pancake"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedFacts(cmd, rootOpts, args[0])
		},
	}
}

func seedFacts(cmd *cobra.Command, opts *RootOptions, path string) error {
	file, err := seed.Load(path)
	if err != nil {
		return err
	}

	client := opts.Client()
	out := cmd.OutOrStdout()

	total := 0
	for _, entry := range file.States {
		overlay, err := client.AddFunFacts(cmd.Context(), entry.Code, entry.FunFacts)
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", entry.Code, err)
		}

		total += len(entry.FunFacts)
		fmt.Fprintf(out, "%s: added %d, now %d\n", entry.Code, len(entry.FunFacts), len(overlay.Facts))
	}

	fmt.Fprintf(out, "Seeded %d fun facts across %d states\n", total, len(file.States))
	return nil
}
