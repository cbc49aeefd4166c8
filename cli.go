package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/llir/llvm/ir"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `Lime - a small statically-typed language compiled through LLVM IR

Usage:
    lime <command> [arguments]

Commands:
    run <file>      Compile and execute a .lime file
    build <file>    Compile a .lime file to LLVM IR (.ll)
    eval <code>     Evaluate inline Lime code
    check <file>    Parse a .lime file and report diagnostics
    help            Show this help message

Examples:
    lime run examples/add.lime
    lime build -o program.ll examples/add.lime
    lime eval 'fn main() -> int { return 42; }'
    lime check myfile.lime

Use "lime <command> -h" for more information about a command.
`)
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lime run [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile and execute a .lime file\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}
	filename := fs.Arg(0)

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	module, err := compileProgram(string(source), *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed:\n%v\n", err)
		os.Exit(1)
	}

	result, err := Run(module)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d\n", result)
}

func buildCommand(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "Output file path (default: <filename>.ll)")
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lime build [-o output] [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a .lime file to LLVM IR\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}
	filename := fs.Arg(0)

	outputFile := *output
	if outputFile == "" {
		outputFile = strings.TrimSuffix(filename, ".lime") + ".ll"
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	module, err := compileProgram(string(source), *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed:\n%v\n", err)
		os.Exit(1)
	}

	irText := module.String()
	if err := os.WriteFile(outputFile, []byte(irText), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing IR file %s: %v\n", outputFile, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s (%d bytes)\n", outputFile, len(irText))
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lime eval [-v] <code>\n")
		fmt.Fprintf(os.Stderr, "Evaluate inline Lime code\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one code argument\n")
		fs.Usage()
		os.Exit(1)
	}

	module, err := compileProgram(fs.Arg(0), *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed:\n%v\n", err)
		os.Exit(1)
	}

	result, err := Run(module)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d\n", result)
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose checking details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lime check [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse a .lime file and report diagnostics\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}
	filename := fs.Arg(0)

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	p := NewParser(NewLexer(string(source)))
	program := p.ParseProgram()
	if p.Errors.HasErrors() {
		fmt.Printf("Parsing errors in %s:\n%s\n", filename, p.Errors.String())
		os.Exit(1)
	}

	c := NewCompiler()
	c.Compile(program)
	if c.Errors.HasErrors() {
		fmt.Printf("Compile errors in %s:\n%s\n", filename, c.Errors.String())
		os.Exit(1)
	}

	fmt.Printf("%s: no errors found\n", filename)
	if *verbose {
		fmt.Printf("AST: %s\n", ToSExpr(program))
		fmt.Printf("IR:\n%s", c.Module().String())
	}
}

// compileProgram runs the full pipeline: lex, parse, generate IR. Parser
// diagnostics halt compilation before code generation, so a broken program
// never reaches the backend.
func compileProgram(source string, verbose bool) (*ir.Module, error) {
	p := NewParser(NewLexer(source))
	program := p.ParseProgram()
	if p.Errors.HasErrors() {
		return nil, fmt.Errorf("parsing errors:\n%s", p.Errors.String())
	}

	if verbose {
		fmt.Printf("AST: %s\n", ToSExpr(program))
	}

	c := NewCompiler()
	c.Compile(program)
	if c.Errors.HasErrors() {
		return nil, fmt.Errorf("compile errors:\n%s", c.Errors.String())
	}

	if verbose {
		fmt.Printf("IR:\n%s", c.Module().String())
	}

	return c.Module(), nil
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		runCommand(args)
	case "build":
		buildCommand(args)
	case "eval":
		evalCommand(args)
	case "check":
		checkCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
