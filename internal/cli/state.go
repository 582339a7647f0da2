package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewStateCommand creates the state command
func NewStateCommand(rootOpts *RootOptions) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "state <code>",
		Short: "Show one state",
		Long: `Show one state with its fun facts, or a single field of it.

Example:
  statesctl state ca
  statesctl state tx --field capital`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showState(cmd, rootOpts, args[0], field)
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "only show one field (capital|nickname|population|admission)")

	return cmd
}

func showState(cmd *cobra.Command, opts *RootOptions, code, field string) error {
	ctx := cmd.Context()
	client := opts.Client()
	out := cmd.OutOrStdout()

	var (
		result any
		text   string
		err    error
	)

	switch strings.ToLower(field) {
	case "":
		view, err := client.GetState(ctx, code)
		if err != nil {
			return err
		}
		if opts.Format == "json" {
			return writeJSON(out, view)
		}
		writeState(out, view)
		return nil
	case "capital":
		res, e := client.GetCapital(ctx, code)
		result, err = res, e
		if e == nil {
			text = fmt.Sprintf("The capital of %s is %s", res.State, res.Capital)
		}
	case "nickname":
		res, e := client.GetNickname(ctx, code)
		result, err = res, e
		if e == nil {
			text = fmt.Sprintf("The nickname for %s is %s", res.State, res.Nickname)
		}
	case "population":
		res, e := client.GetPopulation(ctx, code)
		result, err = res, e
		if e == nil {
			text = fmt.Sprintf("%s has a population of %s", res.State, res.Population)
		}
	case "admission":
		res, e := client.GetAdmission(ctx, code)
		result, err = res, e
		if e == nil {
			text = fmt.Sprintf("%s was admitted to the Union on %s", res.State, res.Admitted)
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		return writeJSON(out, result)
	}
	fmt.Fprintln(out, text)
	return nil
}
