package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wiretrace/wiretrace/pkg/circuit"
)

// parseCommand creates the parse command. It turns a circuit description
// into its JSON model without rendering anything.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		strict bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a circuit description into its JSON model",
		Long: `Parse reads a circuit description and prints the parsed model as JSON:
component names, types, values, and resolved positions, plus the connection
list. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			text, err := readInput(args[0])
			if err != nil {
				return err
			}

			mode := circuit.Lenient
			if strict {
				mode = circuit.Strict
			}

			p := newProgress(logger)
			parsed, err := circuit.ParseMode(text, mode)
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Parsed %d components, %d connections",
				len(parsed.Components), len(parsed.Connections)))

			data, err := json.MarshalIndent(parsed, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if output == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			printFile(output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "reject lines that match neither grammar")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the model to a file instead of stdout")

	return cmd
}
