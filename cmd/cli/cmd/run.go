package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cminusc/compiler/cminus"
	"github.com/cminusc/compiler/internal/diag"
	"github.com/cminusc/compiler/vm"
	"github.com/spf13/cobra"
)

var (
	runInput  string
	runResult string
	runError  string
)

var runCmd = &cobra.Command{
	Use:     "run",
	GroupID: "pipeline",
	Short:   "Compile a C-minus source file and execute it on the virtual machine.",
	Long: `Compile a C-minus source file and execute the generated program,
writing the program output to the result file and the execution trace to
the error file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := diag.NewContext()
		opts := cminus.DefaultOptions()
		opts.Input = runInput
		_, err := cminus.Compile(opts, ctx)
		if verbose {
			diag.Render(cmd.ErrOrStderr(), ctx, true)
		}
		if err != nil {
			return err
		}
		return execute(opts.Output, runResult, runError)
	},
}

// execute reads the exported program back and runs it, mirroring the
// artifact flow of the reference tester: program output and step trace go
// to separate files.
func execute(programPath, resultPath, errorPath string) error {
	program, err := os.ReadFile(programPath)
	if err != nil {
		return fmt.Errorf("read program: %w", err)
	}

	resultFile, err := os.Create(resultPath)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer resultFile.Close()
	errorFile, err := os.Create(errorPath)
	if err != nil {
		return fmt.Errorf("create error file: %w", err)
	}
	defer errorFile.Close()

	lines := strings.Split(strings.TrimSpace(string(program)), "\n")
	if err := vm.Run(lines, resultFile, errorFile); err != nil {
		fmt.Fprintf(errorFile, "%v\n", err)
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}

func init() {
	flags := runCmd.Flags()
	flags.StringVarP(&runInput, "input", "i", "input.txt", "input source code file")
	flags.StringVarP(&runResult, "output", "o", "result.txt", "program output file")
	flags.StringVarP(&runError, "error", "e", "error.txt", "execution trace file")
}
