package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/sectorfs/cmd"
)

type CatCommand struct {
}

// Name returns the command identifier
func (c *CatCommand) Name() string {
	return "cat"
}

// Description returns human-readable help text
func (c *CatCommand) Description() string {
	return "Print the content of a file"
}

// Usage returns a usage string for help
func (c *CatCommand) Usage() string {
	return "cat <path>"
}

// Execute runs the command with parsed arguments
func (c *CatCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 1 {
		return 1, fmt.Errorf("usage: %s", c.Usage())
	}

	content, err := api.Read(ctx, args.Args[0])
	if err != nil {
		return 1, err
	}

	fmt.Fprint(writer, content)
	return 0, nil
}

// Flags returns the flag set for this command
func (c *CatCommand) Flags() *cmd.CommandFlagSet {
	return nil
}
