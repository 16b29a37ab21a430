package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wiretrace/wiretrace/pkg/circuit"
)

// checkCommand creates the check command. It reports every diagnostic the
// renderer would otherwise degrade around, without producing artifacts.
func (c *CLI) checkCommand() *cobra.Command {
	var warningsAsErrors bool

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Check a circuit description for problems",
		Long: `Check scans a circuit description and reports duplicate names, unknown
component types, invalid lines, and connections to undeclared components.
The exit status is non-zero when any error-severity diagnostic is found.
Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args[0])
			if err != nil {
				return err
			}

			diags := circuit.Validate(text)
			printDiagnostics(diags)

			failed := circuit.HasErrors(diags)
			if warningsAsErrors && len(diags) > 0 {
				failed = true
			}
			if failed {
				return fmt.Errorf("check failed for %s", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&warningsAsErrors, "warnings-as-errors", false, "treat warnings as failures")

	return cmd
}
