package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/sectorfs/cmd"
)

type LsCommand struct {
}

// Name returns the command identifier
func (ls *LsCommand) Name() string {
	return "ls"
}

// Description returns human-readable help text
func (ls *LsCommand) Description() string {
	return "List the entries visible under a directory"
}

// Usage returns a usage string for help
func (ls *LsCommand) Usage() string {
	return "ls [-r] [dir]"
}

// Execute runs the command with parsed arguments
func (ls *LsCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	dir := "/"
	if len(args.Args) > 0 {
		dir = args.Args[0]
	}

	entries, err := api.List(ctx, dir, args.Bool("recursive"))
	if err != nil {
		return 1, err
	}

	for _, entry := range entries {
		fmt.Fprintln(writer, entry)
	}

	return 0, nil
}

// Flags returns the flag set for this command
func (ls *LsCommand) Flags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"recursive": {
				Name:        "recursive",
				Short:       "r",
				Type:        "bool",
				Default:     false,
				Description: "List every descendant instead of collapsing sub-directories",
			},
		},
	}
}
