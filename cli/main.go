package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mwantia/sectorfs"
	"github.com/mwantia/sectorfs/cmd"
	"github.com/mwantia/sectorfs/cmd/builtin"
	"github.com/mwantia/sectorfs/log"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML session config")
	logLevel := flag.String("log-level", "", "Override the configured log level")
	flag.Parse()

	if err := run(*configPath, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "sectorfs: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logLevel string) error {
	ctx := context.Background()

	config, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	if logLevel == "" {
		logLevel = config.Log.Level
	}
	if logLevel == "" {
		logLevel = "warn"
	}

	m, err := config.BuildMedium()
	if err != nil {
		return err
	}

	fs, err := sectorfs.New(m,
		sectorfs.WithLogLevel(log.Parse(logLevel)),
		sectorfs.WithLogFile(config.Log.File),
		sectorfs.WithIndexResource(config.Index))
	if err != nil {
		return err
	}

	if err := fs.Init(ctx); err != nil {
		return err
	}
	defer fs.Shutdown(ctx)

	registry := cmd.NewRegistry()
	for _, command := range []cmd.Command{
		&builtin.LsCommand{},
		&builtin.CatCommand{},
		&builtin.WriteCommand{},
		&builtin.TouchCommand{},
		&builtin.RmCommand{},
		&builtin.StatCommand{},
		&builtin.HelpCommand{Registry: registry},
	} {
		if err := registry.Register(command); err != nil {
			return err
		}
	}

	return repl(ctx, fs, registry)
}

// repl reads commands line by line, dispatches them and keeps going on
// failure; only EOF or an explicit exit ends the session.
func repl(ctx context.Context, fs *sectorfs.VirtualFileSystem, registry *cmd.Registry) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("sectorfs> ")

		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		if tokens[0] == "exit" || tokens[0] == "quit" {
			return nil
		}

		if _, err := registry.Execute(ctx, fs, os.Stdout, tokens...); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}
