package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/embedlua/golua/consts"
	"github.com/embedlua/golua/host"
	"github.com/embedlua/golua/term"
)

func newReplCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Lua REPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, err := host.New(host.Options{Sandboxed: flagSandbox, Exclude: flagExclude})
			if err != nil {
				return err
			}
			if !plain && xterm.IsTerminal(int(os.Stdin.Fd())) {
				return runTviewRepl(vm)
			}
			return runLineRepl(vm)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "force the non-TUI line-editing REPL")
	return cmd
}

// runTviewRepl is the multi-pane REPL: a source/output history pane on
// top and a single-line input field at the bottom, replacing the
// a plain bufio REPL loop with a tview/tcell-based interactive
// terminal UI.
func runTviewRepl(vm *host.VM) error {
	app := tview.NewApplication()

	output := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetChangedFunc(func() { app.Draw() })
	output.SetBorder(true).SetTitle(fmt.Sprintf(" golua %s ", consts.VERSION))

	input := tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0)
	input.SetBorder(true).SetTitle(" input (Esc to quit) ")

	fmt.Fprintf(output, "[yellow]golua %s[white] — enter an expression or statement, Esc to quit\n", consts.VERSION)

	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			line := input.GetText()
			input.SetText("")
			if strings.TrimSpace(line) == "" {
				return
			}
			fmt.Fprintf(output, "[cyan]> %s\n", tview.Escape(line))
			evalAndPrint(output, vm, line)
		case tcell.KeyEscape:
			app.Stop()
		}
	})

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(output, 0, 1, false).
		AddItem(input, 3, 0, true)

	return app.SetRoot(flex, true).SetFocus(input).Run()
}

func evalAndPrint(w io.Writer, vm *host.VM, line string) {
	results, err := vm.Eval(line)
	if err != nil {
		if ce, ok := err.(*host.CompilerError); ok {
			// A bare expression isn't a valid statement; retry as a
			// return so `1+1` behaves the way users expect at a REPL
			// prompt, matching common Lua REPL ergonomics.
			if results, rerr := vm.Eval("return " + line); rerr == nil {
				printResults(w, results)
				return
			}
			fmt.Fprintf(w, "[red]%s\n", tview.Escape(ce.Error()))
			return
		}
		fmt.Fprintf(w, "[red]%s\n", tview.Escape(err.Error()))
		return
	}
	printResults(w, results)
}

func printResults(w io.Writer, results []any) {
	if len(results) == 0 {
		return
	}
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprint(r)
	}
	fmt.Fprintf(w, "[green]%s\n", tview.Escape(strings.Join(parts, "\t")))
}

// runLineRepl is the no-tty / piped-input fallback: a single-line reader
// built on x/term's Terminal, which gives basic history and editing
// without pulling in tview for a session that isn't interactive anyway.
func runLineRepl(vm *host.VM) error {
	t := xterm.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "> ")

	fmt.Printf("golua %s — Ctrl-D to quit\n", consts.VERSION)
	for {
		line, err := t.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		results, evalErr := vm.Eval(line)
		if evalErr != nil {
			if _, ok := evalErr.(*host.CompilerError); ok {
				if r2, err2 := vm.Eval("return " + line); err2 == nil {
					results, evalErr = r2, nil
				}
			}
		}
		if evalErr != nil {
			term.Err("%v", evalErr)
			continue
		}
		for _, r := range results {
			fmt.Printf("%s\t", spewSingleLine(r))
		}
		if len(results) > 0 {
			fmt.Println()
		}
	}
}

func spewSingleLine(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case bool, int64, float64, string:
		return fmt.Sprint(v)
	default:
		return strings.TrimSpace(spew.Sprint(v))
	}
}
