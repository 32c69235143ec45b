package cmd

import (
	"github.com/cminusc/compiler/cminus"
	"github.com/cminusc/compiler/internal/diag"
	"github.com/spf13/cobra"
)

var buildOpts cminus.Options

var buildCmd = &cobra.Command{
	Use:     "build",
	GroupID: "pipeline",
	Short:   "Compile a C-minus source file into its artifact files.",
	Long: `Compile a C-minus source file, writing the token stream, the error
logs, the symbol table, the parse tree, and the three-address program.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := diag.NewContext()
		_, err := cminus.Compile(buildOpts, ctx)
		if verbose {
			diag.Render(cmd.ErrOrStderr(), ctx, true)
		}
		return err
	},
}

func init() {
	flags := buildCmd.Flags()
	flags.StringVarP(&buildOpts.Input, "input", "i", "input.txt", "input source code file")
	flags.StringVarP(&buildOpts.Tokens, "tokens", "t", "tokens.txt", "output tokens file")
	flags.StringVar(&buildOpts.LexicalErrors, "lexical-errors", "lexical_errors.txt", "output lexical errors file")
	flags.StringVarP(&buildOpts.SymbolTable, "symbol-table", "s", "symbol_table.txt", "output symbol table file")
	flags.StringVar(&buildOpts.SyntaxErrors, "syntax-errors", "syntax_errors.txt", "output syntax errors file")
	flags.StringVarP(&buildOpts.ParseTree, "parse-tree", "p", "parse_tree.txt", "output parse tree file")
	flags.StringVarP(&buildOpts.Output, "output", "o", "output.txt", "output program file")
	flags.StringVar(&buildOpts.Grammar, "grammar", "", "grammar file overriding the built-in grammar")
	flags.StringVar(&buildOpts.First, "first", "", "FIRST-set file overriding the built-in one")
	flags.StringVar(&buildOpts.Follow, "follow", "", "FOLLOW-set file overriding the built-in one")
}
