package cli

import (
	"context"
	"os"
)

// Execute runs the sheetgraph CLI with the process arguments and logs to
// stderr. It is the entry point of cmd/sheetgraph.
func Execute(ctx context.Context) error {
	return New(os.Stderr, LogInfo).Execute(ctx, os.Args[1:])
}

// Execute runs the command tree with args.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
