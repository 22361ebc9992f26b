package main

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/pkg/zerokit"
)

// stderr returns the error stream of the response when it has one.
func stderr(w cli.Response) io.Writer {
	if ew, ok := w.(cli.ErrorWriter); ok {
		if o := ew.Stderr(); o != nil {
			return o
		}
	}
	return w
}

// newLogger makes a JSON logger that writes to the error stream of the response,
// keeping the standard output for the command's result.
func newLogger(w cli.Response, level string) *logging.Logger {
	return &logging.Logger{
		Out:         stderr(w),
		Level:       logging.Level(zerokit.Coalesce(level, string(logging.LevelInfo))),
		MarshalFunc: sonic.Marshal,
	}
}

func writeJSON(w io.Writer, v any, indent bool) error {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	} else {
		data, err = sonic.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func fail(w cli.Response, code int, err error) {
	w.ExitCode(code)
	fmt.Fprintln(stderr(w), err.Error())
}
