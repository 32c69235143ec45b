package cminus

import (
	"fmt"
	"io"
	"os"

	"github.com/cminusc/compiler/internal/chario"
	"github.com/cminusc/compiler/internal/diag"
)

// Options are the file paths of one compilation. Zero-valued artifact paths
// fall back to the conventional names next to the working directory.
type Options struct {
	Input string

	Tokens        string
	LexicalErrors string
	SymbolTable   string
	SyntaxErrors  string
	ParseTree     string
	Output        string

	// Grammar asset overrides. When all three are empty the embedded
	// defaults are used.
	Grammar string
	First   string
	Follow  string
}

// DefaultOptions returns the conventional artifact layout.
func DefaultOptions() Options {
	return Options{
		Input:         "input.txt",
		Tokens:        "tokens.txt",
		LexicalErrors: "lexical_errors.txt",
		SymbolTable:   "symbol_table.txt",
		SyntaxErrors:  "syntax_errors.txt",
		ParseTree:     "parse_tree.txt",
		Output:        "output.txt",
	}
}

func (o *Options) fillDefaults() {
	d := DefaultOptions()
	if o.Input == "" {
		o.Input = d.Input
	}
	if o.Tokens == "" {
		o.Tokens = d.Tokens
	}
	if o.LexicalErrors == "" {
		o.LexicalErrors = d.LexicalErrors
	}
	if o.SymbolTable == "" {
		o.SymbolTable = d.SymbolTable
	}
	if o.SyntaxErrors == "" {
		o.SyntaxErrors = d.SyntaxErrors
	}
	if o.ParseTree == "" {
		o.ParseTree = d.ParseTree
	}
	if o.Output == "" {
		o.Output = d.Output
	}
}

// Result is everything one compilation produced, already flushed to the
// artifact files.
type Result struct {
	Tokens        *TokenLog
	LexicalErrors *LexicalErrorLog
	SyntaxErrors  *SyntaxErrorLog
	Table         *SymbolTable
	Tree          *ParseTreeNode
	Gen           *CodeGen
}

// Compile runs the whole pipeline over the input file and writes every
// artifact. Lexical and syntax errors do not fail the compilation; they are
// recorded in their logs and the artifacts still reflect whatever the
// recovery produced. The returned error covers I/O and grammar-asset
// failures and a program without a main function.
func Compile(opts Options, ctx *diag.Context) (*Result, error) {
	opts.fillDefaults()
	if ctx == nil {
		ctx = diag.NewContext()
	}

	ctx.SetPhase("load")
	var grammar *Grammar
	var graph *TDGraph
	var firsts, follows *SymbolSets
	var err error
	if opts.Grammar != "" || opts.First != "" || opts.Follow != "" {
		grammar, graph, firsts, follows, err = LoadTableFiles(opts.Grammar, opts.First, opts.Follow)
	} else {
		grammar, graph, firsts, follows, err = LoadDefaultTables()
	}
	if err != nil {
		return nil, err
	}
	ctx.Info(fmt.Sprintf("grammar loaded: %d nonterminals", len(grammar.Order)))

	src, err := chario.Open(opts.Input)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Tokens:        NewTokenLog(),
		LexicalErrors: NewLexicalErrorLog(),
		SyntaxErrors:  NewSyntaxErrorLog(),
		Table:         NewSymbolTable(),
	}
	res.Gen = NewCodeGen(res.Table)

	ctx.SetPhase("parse")
	scanner := NewScanner(src, NewLexicalDFA(), res.LexicalErrors, res.Tokens, res.Table)
	parser := NewParser(grammar, graph, firsts, follows, scanner, res.SyntaxErrors, res.Gen)
	res.Tree = parser.Parse()
	for _, e := range res.LexicalErrors.All() {
		ctx.Error(e.Line, e.Message+": "+e.Lexeme)
	}
	for _, e := range res.SyntaxErrors.All() {
		ctx.Error(e.Line, e.Message)
	}

	ctx.SetPhase("codegen")
	execErr := res.Gen.SetExecBlock("main")
	if execErr != nil {
		ctx.Error(0, execErr.Error())
	} else {
		ctx.Info(fmt.Sprintf("program block holds %d lines", res.Gen.Program().Len()))
	}

	ctx.SetPhase("write")
	if err := res.writeArtifacts(opts); err != nil {
		return res, err
	}
	return res, execErr
}

func (r *Result) writeArtifacts(opts Options) error {
	artifacts := []struct {
		path  string
		write func(io.Writer) error
	}{
		{opts.Tokens, r.Tokens.Write},
		{opts.LexicalErrors, r.LexicalErrors.Write},
		{opts.SymbolTable, r.Table.Write},
		{opts.SyntaxErrors, r.SyntaxErrors.Write},
		{opts.ParseTree, r.Tree.Write},
		{opts.Output, r.Gen.Program().Export},
	}
	for _, a := range artifacts {
		if err := writeFile(a.path, a.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
