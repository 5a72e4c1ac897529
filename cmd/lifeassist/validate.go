package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check a directory of flow documents",
	Long: `Loads every flow document the way the server would and reports schema
errors, name collisions and template fields the input schema does not declare.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dir := cfg.Flows.Dir
		if len(args) > 0 {
			dir = args[0]
		}
		if dir == "" {
			return errors.New("no flow directory: pass one or set --flows")
		}

		reports, err := cli.ValidateFlows(cmd.Context(), dir)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, r := range reports {
			if len(r.Undeclared) > 0 {
				fmt.Fprintf(out, "warning: %s references undeclared fields: %s\n", r.Name, strings.Join(r.Undeclared, ", "))
			}
		}
		fmt.Fprintf(out, "%d flow(s) valid ✅\n", len(reports))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
