package main

import (
	"github.com/spf13/cobra"

	"github.com/embedlua/golua/host"
	"github.com/embedlua/golua/term"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file.lua>",
		Short: "Run a Lua script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, err := host.New(host.Options{Sandboxed: flagSandbox, Exclude: flagExclude})
			if err != nil {
				return err
			}
			if err := vm.LoadFile(args[0]); err != nil {
				term.Error(err.Error(), true)
				return err
			}
			return nil
		},
	}
}
