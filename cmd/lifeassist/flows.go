package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/cli"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
	"github.com/spf13/cobra"
)

var flowsCmd = &cobra.Command{
	Use:   "flows",
	Short: "Inspect the registered flows",
}

var flowsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every flow with its description",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		reg, err := cli.LoadCatalog(cmd.Context(), cfg.Flows.Dir)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tINPUT\tDESCRIPTION")
		for _, f := range reg.List() {
			fmt.Fprintf(w, "%s\t%d\t%s\n", f.Name, len(f.InputSchema), f.Description)
		}
		return w.Flush()
	},
}

type flowDocument struct {
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	InputSchema  map[string]any `json:"input_schema"`
	OutputSchema map[string]any `json:"output_schema"`
	System       string         `json:"system,omitempty"`
	Prompt       string         `json:"prompt"`
	Undeclared   []string       `json:"undeclared_fields,omitempty"`
}

var flowsShowCmd = &cobra.Command{
	Use:   "show <flow>",
	Short: "Print a flow's schemas and prompt template as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		reg, err := cli.LoadCatalog(cmd.Context(), cfg.Flows.Dir)
		if err != nil {
			return err
		}
		f, err := reg.Lookup(args[0])
		if err != nil {
			return err
		}

		doc := flowDocument{
			Name:         f.Name,
			Description:  f.Description,
			InputSchema:  schema.JSONSchema(f.InputSchema),
			OutputSchema: schema.JSONSchema(f.OutputSchema),
			Prompt:       f.Prompt.Source(),
			Undeclared:   f.UndeclaredFields(),
		}
		if f.System != nil {
			doc.System = f.System.Source()
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	},
}

func init() {
	rootCmd.AddCommand(flowsCmd)
	flowsCmd.AddCommand(flowsListCmd, flowsShowCmd)
}
