package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/sectorfs/cmd"
)

type TouchCommand struct {
}

// Name returns the command identifier
func (t *TouchCommand) Name() string {
	return "touch"
}

// Description returns human-readable help text
func (t *TouchCommand) Description() string {
	return "Create an empty file"
}

// Usage returns a usage string for help
func (t *TouchCommand) Usage() string {
	return "touch [--no-overwrite] <path>"
}

// Execute runs the command with parsed arguments
func (t *TouchCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 1 {
		return 1, fmt.Errorf("usage: %s", t.Usage())
	}

	sector, err := api.Create(ctx, args.Args[0], !args.Bool("no-overwrite"))
	if err != nil {
		return 1, err
	}

	fmt.Fprintf(writer, "created on sector %s\n", sector)
	return 0, nil
}

// Flags returns the flag set for this command
func (t *TouchCommand) Flags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"no-overwrite": {
				Name:        "no-overwrite",
				Short:       "n",
				Type:        "bool",
				Default:     false,
				Description: "Fail when the file already exists",
			},
		},
	}
}
