package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// Registry holds the commands available to an interactive session and
// dispatches tokenized input to them.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

func (r *Registry) Register(cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("command has no name")
	}
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command already registered: %s", name)
	}

	r.commands[name] = cmd
	return nil
}

func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.commands[name]
	delete(r.commands, name)
	return exists
}

// Commands returns the registered commands sorted by name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})

	return list
}

// Execute dispatches tokens[0] to the matching command, parsing the
// remaining tokens against its flag set. Output goes to writer.
func (r *Registry) Execute(ctx context.Context, api API, writer io.Writer, tokens ...string) (int, error) {
	if len(tokens) == 0 {
		return 1, fmt.Errorf("no command given")
	}

	r.mu.RLock()
	command, exists := r.commands[tokens[0]]
	r.mu.RUnlock()

	if !exists {
		return 1, fmt.Errorf("unknown command: %s", tokens[0])
	}

	args, err := NewParser(command.Flags()).Parse(tokens[1:])
	if err != nil {
		return 1, err
	}

	return command.Execute(ctx, api, args, writer)
}
