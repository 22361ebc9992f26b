package main

import (
	"io"
	"os"

	"go.llib.dev/containerkit/internal/scenario"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logging"
)

type ReplayCommand struct {
	Compact  bool   `flag:"compact" desc:"write the trace on a single line"`
	LogLevel string `flag:"log-level" env:"CONTAINERKIT_LOG_LEVEL" enum:"debug,info,warn,error," desc:"logging level, info when empty"`

	Path string `arg:"0" required:"true" desc:"scenario file, or - to read the standard input"`

	IsTerminal func() bool
}

func (cmd ReplayCommand) Summary() string {
	return "replay a TOML scenario on a container and print the trace as JSON"
}

func (cmd ReplayCommand) ServeCLI(w cli.Response, r *cli.Request) {
	ctx := r.Context()
	logger := newLogger(w, cmd.LogLevel)

	in, err := cmd.open(r)
	if err != nil {
		fail(w, cli.ExitCodeBadRequest, err)
		return
	}
	defer in.Close()

	sc, err := scenario.Decode(in)
	if err != nil {
		fail(w, cli.ExitCodeBadRequest, err)
		return
	}

	trace, replayErr := scenario.Replayer{Logger: logger}.Replay(ctx, sc)
	// a partial trace is still printed, it shows the state that preceded the failure
	if err := writeJSON(w, trace, cmd.indent()); err != nil {
		fail(w, cli.ExitCodeError, err)
		return
	}
	if replayErr != nil {
		logger.Error(ctx, "scenario replay failed",
			logging.Field("path", cmd.Path),
			logging.ErrField(replayErr))
		w.ExitCode(cli.ExitCodeError)
		return
	}
	logger.Info(ctx, "scenario replayed",
		logging.Field("path", cmd.Path),
		logging.Field("container", string(trace.Container)),
		logging.Field("frames", len(trace.Frames)))
}

func (cmd ReplayCommand) open(r *cli.Request) (io.ReadCloser, error) {
	if cmd.Path == "-" {
		if r.Body == nil {
			return io.NopCloser(os.Stdin), nil
		}
		return io.NopCloser(r.Body), nil
	}
	return os.Open(cmd.Path)
}

func (cmd ReplayCommand) indent() bool {
	if cmd.Compact || cmd.IsTerminal == nil {
		return false
	}
	return cmd.IsTerminal()
}
