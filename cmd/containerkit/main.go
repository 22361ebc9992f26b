package main

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"go.llib.dev/frameless/pkg/cli"
)

func main() {
	cli.Main(context.Background(), NewMux(stdoutIsTerminal))
}

// NewMux wires every containerkit command.
// isTerminal reports whether the standard output is a terminal, which selects the trace layout.
func NewMux(isTerminal func() bool) *cli.Mux {
	var m cli.Mux
	m.Handle("replay", ReplayCommand{IsTerminal: isTerminal})
	m.Handle("selfcheck", SelfcheckCommand{})
	return &m
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
