package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cminusc",
	Short: "C-minus compiler",
	Long:  `cminusc compiles C-minus source into three-address code and runs it on the companion virtual machine.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "pipeline",
		Title: "Pipeline",
	})

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "render the pipeline diagnostics after the run")
}
