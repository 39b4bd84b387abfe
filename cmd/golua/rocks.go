package main

import (
	"github.com/spf13/cobra"

	"github.com/embedlua/golua/term"
)

// newRocksCmd is a LuaRocks-style dependency installer task. The
// interpreter core has no opinion on package management, so this only
// reports what it would do.
func newRocksCmd() *cobra.Command {
	rocks := &cobra.Command{
		Use:   "rocks",
		Short: "Manage LuaRocks-style dependencies (stub)",
	}
	rocks.AddCommand(&cobra.Command{
		Use:   "install <rock>",
		Short: "Install a rock by name (stub: not implemented)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term.Info("rocks install %s: not implemented; this build carries no "+
				"package manager, only the language core", args[0])
			return nil
		},
	})
	return rocks
}
