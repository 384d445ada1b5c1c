package main

import (
	"fmt"

	"github.com/npillmayer/blockdom/block/blockdbg"
	"github.com/npillmayer/blockdom/engine"
	"github.com/spf13/cobra"
)

func newTreeCmd(opts *options) *cobra.Command {
	var dot, transform bool
	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the block tree of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(inputName(args))
			if err != nil {
				return err
			}
			e, err := engine.New(cfg)
			if err != nil {
				return err
			}
			in, _, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			root, err := e.Parse(in, "")
			if err != nil {
				return err
			}
			if transform {
				if _, err := e.Transform(root, "", ""); err != nil {
					return err
				}
			}
			if dot {
				return blockdbg.ToGraphViz(root, cmd.OutOrStdout())
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), blockdbg.Dump(root))
			return err
		},
	}
	cmd.Flags().BoolVar(&dot, "dot", false, "print the tree in GraphViz DOT format")
	cmd.Flags().BoolVar(&transform, "transform", false, "apply the configured transformations first")
	return cmd
}
