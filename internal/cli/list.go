package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command
type ListOptions struct {
	*RootOptions
	Contig string
}

// NewListCommand creates the list command
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every state",
		Long: `List every state, optionally limited to the contiguous 48 or to Alaska and Hawaii.

Example:
  statesctl list --contig=true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listStates(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Contig, "contig", "", "true for contiguous states only, false for non-contiguous only")

	return cmd
}

func listStates(cmd *cobra.Command, opts *ListOptions) error {
	var contig *bool
	if cmd.Flags().Changed("contig") {
		value := opts.Contig == "true"
		contig = &value
	}

	views, err := opts.Client().ListStates(cmd.Context(), contig)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		return writeJSON(out, views)
	}

	for _, view := range views {
		fmt.Fprintf(out, "%s  %-15s %s\n", view.Code, view.State, view.CapitalCity)
	}
	fmt.Fprintf(out, "%d states\n", len(views))
	return nil
}
