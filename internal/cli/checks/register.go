// Package checks provides the validation commands of uxgate.
// Includes: consistency, completeness, traceability, gate
package checks

import (
	"github.com/spf13/cobra"
)

// Register adds all check commands to the root command.
// Each call builds fresh command instances so tests can register into their own root.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newConsistencyCmd())
	rootCmd.AddCommand(newMatrixCmd(completenessSpec))
	rootCmd.AddCommand(newMatrixCmd(traceabilitySpec))
	rootCmd.AddCommand(newGateCmd())
}
