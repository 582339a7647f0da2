// Package cli implements statesctl, a command line client for the states API.
package cli

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/ethanbaker/states/pkg/sdk"
	"github.com/ethanbaker/states/pkg/utils"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	URL     string
	Format  string // "json" | "text"
	Timeout time.Duration
}

// ValidFormats defines the allowed output formats
var ValidFormats = []string{"text", "json"}

// Client returns an API client for the configured base URL
func (o *RootOptions) Client() *sdk.Client {
	return sdk.NewClient(o.URL).WithHTTPClient(&http.Client{Timeout: o.Timeout})
}

// NewRootCommand creates the root command for statesctl
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "statesctl",
		Short: "Query U.S. states and manage their fun facts",
		Long:  "A command line client for the states API. Reads reference data and adds, edits or removes fun facts.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.URL, "url", utils.GetEnvWithDefault("STATES_API_URL", utils.DEFAULTS["STATES_API_URL"]), "base URL of the states API")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 10*time.Second, "request timeout")

	// Add subcommands
	cmd.AddCommand(NewStateCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewFunFactCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
