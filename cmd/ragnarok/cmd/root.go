// Package cmd is the Cobra command tree for the ragnarok CLI, grounded on
// the teacher's cmd/dwscript/cmd package (a root command plus one
// subcommand per concern, global flags on the root, each subcommand
// registering itself from an init func).
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ragnarok",
	Short: "Ragnarok language interpreter",
	Long: `ragnarok is an interpreter for Ragnarok, a small dynamically-typed
Lisp-family language: s-expression surface syntax, tagged values, lexical
closures, a tail-call trampoline and a minimal macro system.`,
	Version: "0.1.0-dev",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
