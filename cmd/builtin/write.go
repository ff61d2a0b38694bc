package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mwantia/sectorfs/cmd"
)

type WriteCommand struct {
}

// Name returns the command identifier
func (w *WriteCommand) Name() string {
	return "write"
}

// Description returns human-readable help text
func (w *WriteCommand) Description() string {
	return "Write content to a file, creating it when absent"
}

// Usage returns a usage string for help
func (w *WriteCommand) Usage() string {
	return "write <path> <content...>"
}

// Execute runs the command with parsed arguments
func (w *WriteCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) < 2 {
		return 1, fmt.Errorf("usage: %s", w.Usage())
	}

	content := strings.Join(args.Args[1:], " ")

	sector, err := api.Write(ctx, args.Args[0], content)
	if err != nil {
		return 1, err
	}

	fmt.Fprintf(writer, "wrote %d bytes (sector %s)\n", len(content), sector)
	return 0, nil
}

// Flags returns the flag set for this command
func (w *WriteCommand) Flags() *cmd.CommandFlagSet {
	return nil
}
