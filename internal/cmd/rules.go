package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/pepcheck/internal/engine/registry"
)

var rulesJSON bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the style rules in evaluation order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules := registry.Global().List()

		if rulesJSON {
			type item struct {
				Code    string `json:"code"`
				Name    string `json:"name"`
				Kind    string `json:"kind"`
				Message string `json:"message"`
			}
			items := make([]item, 0, len(rules))
			for _, r := range rules {
				items = append(items, item{Code: r.Code, Name: r.Name, Kind: r.Kind.String(), Message: r.Message})
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tKIND\tMESSAGE")
		for _, r := range rules {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Code, r.Name, r.Kind, r.Message)
		}
		return w.Flush()
	},
}

func init() {
	rulesCmd.Flags().BoolVar(&rulesJSON, "json", false, "print rules as JSON")
}
