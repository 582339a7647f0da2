package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ethanbaker/states/pkg/states"
)

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeState prints a merged state view as a text block
func writeState(w io.Writer, view *states.MergedStateView) {
	fmt.Fprintf(w, "%s (%s)\n", view.State, view.Code)
	fmt.Fprintf(w, "  Nickname:   %s\n", view.Nickname)
	fmt.Fprintf(w, "  Capital:    %s\n", view.CapitalCity)
	fmt.Fprintf(w, "  Population: %s (rank %d)\n", states.FormatPopulation(view.Population), view.PopulationRank)
	fmt.Fprintf(w, "  Admitted:   %s (#%d)\n", view.AdmissionDate, view.AdmissionNumber)
	fmt.Fprintf(w, "  Website:    %s\n", view.Website)
	writeFacts(w, view.Facts)
}

// writeFacts prints a numbered list of facts using the API's one-based indexes
func writeFacts(w io.Writer, facts []string) {
	if len(facts) == 0 {
		fmt.Fprintln(w, "  No fun facts")
		return
	}

	fmt.Fprintln(w, "  Fun facts:")
	for i, fact := range facts {
		fmt.Fprintf(w, "    %d. %s\n", i+1, strings.TrimSpace(fact))
	}
}

// writeOverlay prints a fun fact overlay after a mutation
func writeOverlay(w io.Writer, overlay *states.FunFactOverlay) {
	fmt.Fprintf(w, "%s\n", overlay.StateCode)
	writeFacts(w, overlay.Facts)
}
