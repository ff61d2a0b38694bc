package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/sectorfs/cmd"
)

type StatCommand struct {
}

// Name returns the command identifier
func (s *StatCommand) Name() string {
	return "stat"
}

// Description returns human-readable help text
func (s *StatCommand) Description() string {
	return "Show whether a path exists and which sector holds it"
}

// Usage returns a usage string for help
func (s *StatCommand) Usage() string {
	return "stat <path>"
}

// Execute runs the command with parsed arguments
func (s *StatCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 1 {
		return 1, fmt.Errorf("usage: %s", s.Usage())
	}

	path := args.Args[0]

	if api.IsDirectory(path) {
		fmt.Fprintf(writer, "%s: directory\n", path)
		return 0, nil
	}

	sector, found, err := api.SectorOf(ctx, path)
	if err != nil {
		return 1, err
	}

	if !found {
		fmt.Fprintf(writer, "%s: not found\n", path)
		return 1, nil
	}

	fmt.Fprintf(writer, "%s: sector %s\n", path, sector)
	return 0, nil
}

// Flags returns the flag set for this command
func (s *StatCommand) Flags() *cmd.CommandFlagSet {
	return nil
}
