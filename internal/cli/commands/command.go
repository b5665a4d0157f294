// Package commands implements the hvcli subcommands on top of api.Client.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"herovault/internal/config"
)

// Exit codes returned by Dispatch.
const (
	ExitOK       = 0
	ExitFailure  = 1 // local failure: file, network, decoding
	ExitUsage    = 2
	ExitRejected = 3 // the server answered with an error envelope
)

// ErrUsage makes Dispatch print the command usage.
var ErrUsage = errors.New("usage")

// Command is one hvcli subcommand.
type Command interface {
	// Name as typed on the command line, e.g. "heroes".
	Name() string
	Description() string
	// Usage is the synopsis, e.g. "hero <id>".
	Usage() string
	// Run gets the arguments after the command name.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

var registry = map[string]Command{}

// Out receives everything commands print.
var Out io.Writer = os.Stdout

// RegisterCmd is called from init() of every command file.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

func Get(name string) (Command, bool) {
	c, ok := registry[strings.ToLower(name)]
	return c, ok
}

// List returns the commands ordered by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

func FormatGlobalUsage() string {
	var b strings.Builder
	b.WriteString("HeroVault CLI\n\n")
	b.WriteString("Usage:\n  hvcli [-base-url <host:port>] [-https] <command> [args]\n\n")
	b.WriteString("Commands:\n")
	for _, c := range List() {
		fmt.Fprintf(&b, "  %-24s %s\n", c.Name(), c.Description())
	}
	b.WriteString("\nRun \"hvcli help <command>\" for the arguments of a command.\n")
	return b.String()
}
