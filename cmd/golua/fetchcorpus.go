package main

import (
	"github.com/spf13/cobra"

	"github.com/embedlua/golua/term"
)

// newFetchCorpusCmd is a stub for downloading an external Lua test
// corpus; the interpreter core tested by this module ships its own
// table-driven tests and has no dependency on a fetched corpus.
func newFetchCorpusCmd() *cobra.Command {
	var dest string
	cmd := &cobra.Command{
		Use:   "fetch-corpus",
		Short: "Download an external Lua conformance test corpus (stub)",
		RunE: func(cmd *cobra.Command, args []string) error {
			term.Info("fetch-corpus: not implemented; would download to %s", dest)
			return nil
		},
	}
	cmd.Flags().StringVar(&dest, "dest", "testdata/corpus", "destination directory")
	return cmd
}
