package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/sectorfs/cmd"
)

type HelpCommand struct {
	Registry *cmd.Registry
}

// Name returns the command identifier
func (h *HelpCommand) Name() string {
	return "help"
}

// Description returns human-readable help text
func (h *HelpCommand) Description() string {
	return "List the available commands"
}

// Usage returns a usage string for help
func (h *HelpCommand) Usage() string {
	return "help"
}

// Execute runs the command with parsed arguments
func (h *HelpCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	for _, command := range h.Registry.Commands() {
		fmt.Fprintf(writer, "%-24s %s\n", command.Usage(), command.Description())
	}

	return 0, nil
}

// Flags returns the flag set for this command
func (h *HelpCommand) Flags() *cmd.CommandFlagSet {
	return nil
}
