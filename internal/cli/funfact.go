package cli

import (
	"fmt"
	"strconv"

	"github.com/ethanbaker/states/pkg/states"
	"github.com/spf13/cobra"
)

// NewFunFactCommand creates the funfact command and its subcommands
func NewFunFactCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "funfact",
		Short: "Read and edit a state's fun facts",
		Long: `Read and edit a state's fun facts. Indexes are one-based.

Example:
  statesctl funfact add ks "Home of the geographic center of the contiguous U.S."
  statesctl funfact update ks 1 "Kansas has no ocean"
  statesctl funfact delete ks 1`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <code>",
		Short: "Show a random fun fact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fact, err := rootOpts.Client().GetFunFact(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"funfact": fact})
			}
			fmt.Fprintln(cmd.OutOrStdout(), fact)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <code> <fact>...",
		Short: "Append one or more fun facts",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			overlay, err := rootOpts.Client().AddFunFacts(cmd.Context(), args[0], args[1:])
			return printOverlay(cmd, rootOpts, overlay, err)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <code> <index> <fact>",
		Short: "Replace the fun fact at an index",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			overlay, err := rootOpts.Client().UpdateFunFact(cmd.Context(), args[0], index, args[2])
			return printOverlay(cmd, rootOpts, overlay, err)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <code> <index>",
		Short: "Remove the fun fact at an index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			overlay, err := rootOpts.Client().DeleteFunFact(cmd.Context(), args[0], index)
			return printOverlay(cmd, rootOpts, overlay, err)
		},
	})

	return cmd
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("index must be a number, got %q", raw)
	}
	return index, nil
}

func printOverlay(cmd *cobra.Command, opts *RootOptions, overlay *states.FunFactOverlay, err error) error {
	if err != nil {
		return err
	}
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), overlay)
	}
	writeOverlay(cmd.OutOrStdout(), overlay)
	return nil
}
