// Command miniml is the CLI and REPL front end described in §6.3: given a
// file, it reads, parses, type-checks, compiles, and executes it once;
// given nothing, it starts a line-at-a-time REPL. Neither belongs to the
// core — this binary is just the thinnest possible caller of
// internal/pipeline.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"miniml/internal/errors"
	"miniml/internal/pipeline"
	"miniml/internal/vm"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: miniml [file]")
		os.Exit(2)
	}
	if len(os.Args) == 2 {
		os.Exit(runFile(os.Args[1]))
	}
	os.Exit(runREPL())
}

func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	result, err := pipeline.RunSource(path, string(source))
	if err != nil {
		report(path, string(source), err)
		return 1
	}
	fmt.Println(vm.Display(result))
	return 0
}

// runREPL reads one expression per line; ":q" quits, blank lines are
// skipped, and errors are reported without ending the session.
func runREPL() int {
	green := color.New(color.FgGreen).SprintFunc()
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("miniml — type an expression, or :q to quit")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == ":q" {
			break
		}
		result, err := pipeline.RunSource("<repl>", line)
		if err != nil {
			report("<repl>", line, err)
			continue
		}
		fmt.Println(green(vm.Display(result)))
	}
	return 0
}

// report renders a pipeline error using the shared diagnostics format when
// it carries source positions (parse and type errors), and falls back to
// a plain "error: <message>" line for everything else, such as VM
// failures (a FatalError's message carries its own "Fatal: ... :(" form).
func report(name, source string, err error) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	reporter := errors.NewErrorReporter(name, source)

	switch e := err.(type) {
	case *pipeline.TypeError:
		for _, ce := range e.Errors {
			fmt.Fprint(os.Stderr, reporter.FormatError(ce))
		}
	case *pipeline.ParseError:
		fmt.Fprint(os.Stderr, reporter.FormatError(e.Err))
	default:
		fmt.Fprintf(os.Stderr, "%s %s\n", red("error:"), err)
	}
}
