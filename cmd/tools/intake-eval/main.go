// cmd/tools/intake-eval/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var evalFlags struct {
	agent  string
	locale string
	year   int
	asJSON bool
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intake-eval [record.json]",
		Short: "Evaluate a pre-qualification intake record offline",
		Long: "intake-eval reads an intake record as JSON from a file, or from stdin when\n" +
			"no file is given, and prints the step path, qualification, suitability\n" +
			"score, recommendations and the submission payload.",
		Args:         cobra.MaximumNArgs(1),
		RunE:         runEval,
		SilenceUsage: true,
		Version:      version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	f := cmd.Flags()
	f.StringVar(&evalFlags.agent, "agent", "", "Agent selected on the form")
	f.StringVar(&evalFlags.locale, "locale", "en", "Locale for credit tier labels (BCP 47)")
	f.IntVar(&evalFlags.year, "year", 0, "Evaluate as of this year (default current year)")
	f.BoolVar(&evalFlags.asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
