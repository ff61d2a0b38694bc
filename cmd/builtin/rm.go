package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/sectorfs/cmd"
)

type RmCommand struct {
}

// Name returns the command identifier
func (r *RmCommand) Name() string {
	return "rm"
}

// Description returns human-readable help text
func (r *RmCommand) Description() string {
	return "Delete a file and empty its sector"
}

// Usage returns a usage string for help
func (r *RmCommand) Usage() string {
	return "rm <path>"
}

// Execute runs the command with parsed arguments
func (r *RmCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 1 {
		return 1, fmt.Errorf("usage: %s", r.Usage())
	}

	if err := api.Delete(ctx, args.Args[0]); err != nil {
		return 1, err
	}

	return 0, nil
}

// Flags returns the flag set for this command
func (r *RmCommand) Flags() *cmd.CommandFlagSet {
	return nil
}
