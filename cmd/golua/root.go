// Command golua is the CLI front end for the embeddable Lua 5.3
// interpreter: it runs scripts, opens an interactive REPL, and carries
// two small task stubs (a LuaRocks-style package installer and a
// test-corpus fetcher) that sit outside the language core itself.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/embedlua/golua/consts"
	"github.com/embedlua/golua/term"
)

var (
	flagSandbox []string
	flagExclude []string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "golua",
		Short:         "Embeddable Lua 5.3 interpreter",
		Version:       consts.VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringSliceVar(&flagSandbox, "sandbox", nil,
		"additional dotted global paths to sandbox, on top of the default set")
	root.PersistentFlags().StringSliceVar(&flagExclude, "unsandbox", nil,
		"dotted global paths to exclude from sandboxing")

	root.AddCommand(newRunCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newRocksCmd())
	root.AddCommand(newFetchCorpusCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		term.Err("%v", err)
		os.Exit(1)
	}
}
