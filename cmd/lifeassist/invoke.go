package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/cli"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
	"github.com/spf13/cobra"
)

// errFlowFailed makes the process exit non-zero after the failure Outcome
// has been printed.
var errFlowFailed = errors.New("flow invocation failed")

var invokeCmd = &cobra.Command{
	Use:   "invoke <flow> [input-json]",
	Short: "Invoke one flow and print its outcome",
	Long: `Invokes a flow with a JSON object as input and prints the outcome as JSON.
The input comes from the second argument, from --input (a file, or "-" for
stdin), or defaults to an empty object.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, _ := cmd.Flags().GetString("input")

		raw, err := readInput(cmd, args, inputPath)
		if err != nil {
			return err
		}
		input, err := decodeInput(raw)
		if err != nil {
			return err
		}

		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rt, err := cli.BuildApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		name := args[0]
		res, err := rt.Invoke(cmd.Context(), name, input)
		outcome := domain.NewOutcome(name, res, err, schema.Violations(err))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if eerr := enc.Encode(outcome); eerr != nil {
			return eerr
		}
		if err != nil {
			return errFlowFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)
	invokeCmd.Flags().StringP("input", "i", "", `Read the input JSON from a file ("-" for stdin)`)
}

func readInput(cmd *cobra.Command, args []string, path string) ([]byte, error) {
	switch {
	case len(args) == 2:
		return []byte(args[1]), nil
	case path == "-":
		return io.ReadAll(cmd.InOrStdin())
	case path != "":
		return os.ReadFile(path)
	default:
		return nil, nil
	}
}

// decodeInput keeps numbers as json.Number so integer fields are not
// widened to float64 before validation.
func decodeInput(raw []byte) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var input map[string]any
	if err := dec.Decode(&input); err != nil {
		return nil, fmt.Errorf("input must be a JSON object: %w", err)
	}
	if input == nil {
		input = map[string]any{}
	}
	return input, nil
}
