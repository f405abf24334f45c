package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dsalazardev/EffiCode-Analyzer/internal/analyzer"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/cli"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/config"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/grammar"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/llm"
	_ "github.com/dsalazardev/EffiCode-Analyzer/internal/llm/providers"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/parser"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/report"
)

const version = "0.2.0"

func main() {
	// Parse global --no-color flag before command dispatch
	args := filterGlobalFlags(os.Args[1:])

	if len(args) < 1 {
		printUsage()
		os.Exit(0)
	}

	switch args[0] {
	case "version", "--version", "-v":
		fmt.Printf("efficode v%s\n", version)
	case "help", "--help", "-h":
		printUsage()
	case "check":
		cmdCheck(args[1:])
	case "analyze":
		cmdAnalyze(args[1:])
	case "ast":
		cmdAST(args[1:])
	case "grammar":
		cmdGrammar()
	case "translate":
		cmdTranslate(args[1:])
	case "tocode":
		cmdToCode(args[1:])
	case "classify":
		cmdClassify(args[1:])
	default:
		fmt.Fprintln(os.Stderr, cli.Error(fmt.Sprintf("Unknown command: %s", args[0])))
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// filterGlobalFlags strips --no-color from the args list and applies it.
func filterGlobalFlags(args []string) []string {
	var filtered []string
	for _, arg := range args {
		if arg == "--no-color" {
			cli.ColorEnabled = false
		} else {
			filtered = append(filtered, arg)
		}
	}
	return filtered
}

// ── check ──

func cmdCheck(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: efficode check <file>")
		os.Exit(1)
	}
	file := args[0]

	source := readSource(file)
	prog, err := parser.Parse(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Error(formatParseError(file, err)))
		os.Exit(1)
	}

	var parts []string
	if len(prog.Functions) > 0 {
		parts = append(parts, fmt.Sprintf("%d procedure%s", len(prog.Functions), plural(len(prog.Functions))))
	}
	if len(prog.Statements) > 0 {
		parts = append(parts, fmt.Sprintf("%d top-level statement%s", len(prog.Statements), plural(len(prog.Statements))))
	}

	msg := fmt.Sprintf("%s is valid", file)
	if len(parts) > 0 {
		msg += " — " + strings.Join(parts, ", ")
	}
	fmt.Println(cli.Success(msg))
}

// ── analyze ──

func cmdAnalyze(args []string) {
	secondOpinion := false
	jsonOut := ""
	var file string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--second-opinion":
			secondOpinion = true
		case "--json":
			if i+1 < len(args) {
				i++
				jsonOut = args[i]
			} else {
				fmt.Fprintln(os.Stderr, cli.Error("--json requires a file path (use - for stdout)"))
				os.Exit(1)
			}
		default:
			if !strings.HasPrefix(args[i], "-") {
				file = args[i]
			}
		}
	}

	if file == "" {
		fmt.Fprintln(os.Stderr, "Usage: efficode analyze [--second-opinion] [--json <file>] <file>")
		os.Exit(1)
	}

	source := readSource(file)

	var connector *llm.Connector
	if secondOpinion {
		connector = buildConnector()
	}
	a := analyzer.New(connector)

	rep, err := a.Analyze(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Error(formatParseError(file, err)))
		os.Exit(1)
	}

	if rep.Algorithm.Kind == report.KindRecursive {
		fmt.Println(cli.Warn("Recursive calls detected — bounds below cover the loop structure only, not the recursion."))
		fmt.Println()
	}

	fmt.Println(rep.Complexity.Justification)
	fmt.Println(cli.Bold(fmt.Sprintf("  Worst case: %s", rep.Complexity.BigO)))
	fmt.Println(cli.Bold(fmt.Sprintf("  Best case:  %s", rep.Complexity.BigOmega)))
	fmt.Println(cli.Bold(fmt.Sprintf("  Tight:      %s", rep.Complexity.BigTheta)))

	if secondOpinion {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		fmt.Println()
		fmt.Println(cli.Info("Requesting second opinion..."))
		if err := a.SecondOpinion(ctx, rep); err != nil {
			fmt.Fprintln(os.Stderr, cli.Warn(fmt.Sprintf("Second opinion unavailable: %v", err)))
		} else {
			fmt.Println()
			fmt.Println(rep.SecondOpinion)
		}
	}

	if jsonOut != "" {
		if jsonOut == "-" {
			if err := rep.WriteJSON(os.Stdout); err != nil {
				fmt.Fprintln(os.Stderr, cli.Error(err.Error()))
				os.Exit(1)
			}
			return
		}
		f, err := os.Create(jsonOut)
		if err != nil {
			fmt.Fprintln(os.Stderr, cli.Error(fmt.Sprintf("Error creating %s: %v", jsonOut, err)))
			os.Exit(1)
		}
		defer f.Close()
		if err := rep.WriteJSON(f); err != nil {
			fmt.Fprintln(os.Stderr, cli.Error(err.Error()))
			os.Exit(1)
		}
		fmt.Println(cli.Success(fmt.Sprintf("Report written to %s", jsonOut)))
	}
}

// ── ast ──

func cmdAST(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: efficode ast <file>")
		os.Exit(1)
	}
	file := args[0]

	source := readSource(file)
	prog, err := parser.Parse(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Error(formatParseError(file, err)))
		os.Exit(1)
	}

	parser.Fprint(os.Stdout, prog)
}

// ── grammar ──

func cmdGrammar() {
	fmt.Print(grammar.Text())
}

// ── translate ──

func cmdTranslate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: efficode translate <file>")
		fmt.Fprintln(os.Stderr, "The file holds a natural-language algorithm description.")
		os.Exit(1)
	}
	file := args[0]

	text := readSource(file)
	connector := buildConnector()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	fmt.Println(cli.Info("Translating to pseudocode..."))
	result, err := connector.Translate(ctx, text)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Error(fmt.Sprintf("Translation failed: %v", err)))
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(result.Pseudocode)
	fmt.Println()
	if result.Valid {
		fmt.Println(cli.Success("Generated pseudocode parses cleanly."))
	} else {
		fmt.Println(cli.Warn(fmt.Sprintf("Generated pseudocode does not parse: %s", result.ParseError)))
		fmt.Println(cli.Warn("Review and correct it before running 'efficode analyze'."))
	}
}

// ── tocode ──

func cmdToCode(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: efficode tocode <file>")
		os.Exit(1)
	}
	file := args[0]

	source := readSource(file)
	if _, err := parser.Parse(source); err != nil {
		fmt.Fprintln(os.Stderr, cli.Error(formatParseError(file, err)))
		os.Exit(1)
	}

	connector := buildConnector()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	fmt.Println(cli.Info("Translating to Python..."))
	code, err := connector.ToCode(ctx, source)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Error(fmt.Sprintf("Translation failed: %v", err)))
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(code)
}

// ── classify ──

func cmdClassify(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: efficode classify <file>")
		os.Exit(1)
	}
	file := args[0]

	source := readSource(file)
	if _, err := parser.Parse(source); err != nil {
		fmt.Fprintln(os.Stderr, cli.Error(formatParseError(file, err)))
		os.Exit(1)
	}

	connector := buildConnector()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Println(cli.Info("Classifying design paradigm..."))
	label, err := connector.ClassifyPattern(ctx, source)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Error(fmt.Sprintf("Classification failed: %v", err)))
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(cli.Bold(strings.TrimSpace(label)))
}

// ── Helpers ──

// formatParseError renders a parse failure with the conventional
// file:line:column prefix when position information is available.
func formatParseError(file string, err error) string {
	var serr *parser.SyntaxError
	if errors.As(err, &serr) && serr.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", file, serr.Line, serr.Column, serr.Message)
	}
	return fmt.Sprintf("Error in %s: %v", file, err)
}

// readSource reads the named file, or stdin when file is "-".
func readSource(file string) string {
	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Error(fmt.Sprintf("Error reading %s: %v", file, err)))
		os.Exit(1)
	}
	return string(data)
}

// buildConnector loads project config and constructs the LLM connector,
// exiting with guidance when no provider can be configured.
func buildConnector() *llm.Connector {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Error(fmt.Sprintf("Error loading config: %v", err)))
		os.Exit(1)
	}

	llmCfg := cfg.LLM
	if llmCfg == nil {
		llmCfg = config.DefaultLLMConfig("gemini")
	}

	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Error(err.Error()))
		os.Exit(1)
	}
	return llm.NewConnector(provider, llmCfg)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

const usage = `EffiCode — pseudocode in, asymptotic complexity out.

Usage:
  efficode <command> [options] [file]

Commands:
  check <file>                Validate pseudocode syntax
  analyze <file>              Derive O, Ω and Θ bounds with a line-by-line trace
  analyze --json <out> <file> Also write the report as JSON (use - for stdout)
  analyze --second-opinion    Ask the configured LLM to critique the result
  ast <file>                  Print the parsed syntax tree
  grammar                     Print the pseudocode grammar
  translate <file>            Turn a natural-language description into pseudocode
  tocode <file>               Turn pseudocode into an executable Python function
  classify <file>             Name the design paradigm of a pseudocode program

Use - as <file> to read from standard input.

Flags:
  --no-color        Disable colored output
  --version, -v     Print the version
  --help, -h        Show this help message
`

func printUsage() {
	fmt.Print(usage)
}
