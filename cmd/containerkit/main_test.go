package main

import (
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.llib.dev/containerkit/internal/scenario"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"
)

func TestMux(t *testing.T) {
	s := testcase.NewSpec(t)

	isTerminal := let.VarOf(s, false)
	args := let.Var[[]string](s, nil)
	body := let.VarOf(s, "")
	act := let.Act(func(t *testcase.T) *cli.ResponseRecorder {
		var rr cli.ResponseRecorder
		mux := NewMux(func() bool { return isTerminal.Get(t) })
		cli.ServeCLI(mux, &rr, &cli.Request{
			Args: args.Get(t),
			Body: strings.NewReader(body.Get(t)),
		})
		return &rr
	})

	decodeTrace := func(t *testcase.T, rr *cli.ResponseRecorder) scenario.Trace {
		var trace scenario.Trace
		assert.NoError(t, sonic.Unmarshal(rr.Out.Bytes(), &trace))
		return trace
	}

	s.When("no command is given", func(s *testcase.Spec) {
		args.Let(s, func(t *testcase.T) []string { return nil })

		s.Then("the usage is printed as a bad request", func(t *testcase.T) {
			rr := act(t)
			assert.Equal(t, cli.ExitCodeBadRequest, rr.Code)
			assert.Contains(t, rr.Err.String(), "replay")
			assert.Contains(t, rr.Err.String(), "selfcheck")
		})
	})

	s.Describe("replay", func(s *testcase.Spec) {
		s.When("a list scenario is replayed", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"replay", "testdata/list.toml"}
			})

			s.Then("the trace is printed", func(t *testcase.T) {
				rr := act(t)
				assert.Equal(t, cli.ExitCodeOK, rr.Code)

				trace := decodeTrace(t, rr)
				assert.Equal(t, scenario.KindList, trace.Container)
				assert.Equal(t, 5, len(trace.Frames))
				assert.Equal(t, []int{4, 5, 2, 0, 42, 24}, trace.Frames[0].Values)
				assert.Equal(t, []int{4, 5, 2, 0, 42, 1, 24}, trace.Frames[1].Values)
				assert.Equal(t, []int{4, 5, 2, 42, 1, 24}, trace.Frames[2].Values)
				assert.NotEmpty(t, trace.Frames[3].Error)
				assert.Equal(t, []int{7, 4, 5, 2, 42, 1, 24}, trace.Frames[4].Values)
			})

			s.Then("the output is compact when the output is not a terminal", func(t *testcase.T) {
				rr := act(t)
				assert.Contains(t, rr.Out.String(), `"container":"list"`)
				assert.Equal(t, 1, strings.Count(rr.Out.String(), "\n"))
			})

			s.Then("the replay is logged to the error stream", func(t *testcase.T) {
				rr := act(t)
				assert.Contains(t, rr.Err.String(), "scenario replayed")
				assert.NotContains(t, rr.Out.String(), "scenario replayed")
			})

			s.And("the output is a terminal", func(s *testcase.Spec) {
				isTerminal.LetValue(s, true)

				s.Then("the trace is indented", func(t *testcase.T) {
					rr := act(t)
					assert.Contains(t, rr.Out.String(), `"container": "list"`)
					assert.Equal(t, scenario.KindList, decodeTrace(t, rr).Container)
				})

				s.And("compact output is requested", func(s *testcase.Spec) {
					args.Let(s, func(t *testcase.T) []string {
						return []string{"replay", "-compact", "testdata/list.toml"}
					})

					s.Then("the trace stays on one line", func(t *testcase.T) {
						rr := act(t)
						assert.Contains(t, rr.Out.String(), `"container":"list"`)
					})
				})
			})
		})

		s.When("a vector scenario is replayed", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"replay", "testdata/vector.toml"}
			})

			s.Then("capacities are part of the trace", func(t *testcase.T) {
				rr := act(t)
				assert.Equal(t, cli.ExitCodeOK, rr.Code)

				trace := decodeTrace(t, rr)
				var capacities []int
				for _, f := range trace.Frames {
					capacities = append(capacities, f.Capacity)
				}
				assert.Equal(t, []int{1, 1, 2, 2, 2}, capacities)
				assert.Equal(t, []int{2, 3}, trace.Frames[4].Values)
			})
		})

		s.When("the scenario comes from the standard input", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"replay", "-"}
			})
			body.LetValue(s, "container = \"vector\"\ninitial = [1, 2]\n")

			s.Then("it is replayed", func(t *testcase.T) {
				rr := act(t)
				assert.Equal(t, cli.ExitCodeOK, rr.Code)
				assert.Equal(t, []int{1, 2}, decodeTrace(t, rr).Frames[0].Values)
			})
		})

		s.When("a vector scenario pops an empty vector", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"replay", "-log-level", "debug", "testdata/vector-underflow.toml"}
			})

			s.Then("the partial trace is printed with an error exit code", func(t *testcase.T) {
				rr := act(t)
				assert.Equal(t, cli.ExitCodeError, rr.Code)
				assert.Equal(t, 2, len(decodeTrace(t, rr).Frames))
				assert.Contains(t, rr.Err.String(), "scenario replay failed")
				assert.Contains(t, rr.Err.String(), "scenario step rejected")
			})
		})

		s.When("the scenario is invalid", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"replay", "testdata/unknown-op.toml"}
			})

			s.Then("it is a bad request", func(t *testcase.T) {
				rr := act(t)
				assert.Equal(t, cli.ExitCodeBadRequest, rr.Code)
				assert.Empty(t, rr.Out.String())
				assert.Contains(t, rr.Err.String(), scenario.ErrInvalidScenario.Error())
			})
		})

		s.When("the scenario file does not exist", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"replay", "testdata/missing.toml"}
			})

			s.Then("it is a bad request", func(t *testcase.T) {
				rr := act(t)
				assert.Equal(t, cli.ExitCodeBadRequest, rr.Code)
				assert.Contains(t, rr.Err.String(), "missing.toml")
			})
		})

		s.When("the log level is not known", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"replay", "-log-level", "verbose", "testdata/list.toml"}
			})

			s.Then("it is a bad request", func(t *testcase.T) {
				rr := act(t)
				assert.Equal(t, cli.ExitCodeBadRequest, rr.Code)
				assert.Empty(t, rr.Out.String())
			})
		})
	})

	s.Describe("selfcheck", func(s *testcase.Spec) {
		s.When("a seed is given", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"selfcheck", "-seed", "42", "-steps", "200", "-prefill", "20"}
			})

			s.Then("every check passes", func(t *testcase.T) {
				rr := act(t)
				assert.Equal(t, cli.ExitCodeOK, rr.Code)
				out := rr.Out.String()
				assert.Contains(t, out, "ok\tlist/push-pop")
				assert.Contains(t, out, "ok\tlist/insert-erase")
				assert.Contains(t, out, "ok\tlist/find")
				assert.Contains(t, out, "ok\tvector/push-pop")
				assert.NotContains(t, out, "FAIL")
				assert.Contains(t, rr.Err.String(), `"seed":42`)
			})
		})

		s.When("the configuration comes from the environment", func(s *testcase.Spec) {
			s.Before(func(t *testcase.T) {
				testcase.SetEnv(t, "CONTAINERKIT_STEPS", "50")
				testcase.SetEnv(t, "CONTAINERKIT_PREFILL", "5")
			})
			args.Let(s, func(t *testcase.T) []string {
				return []string{"selfcheck"}
			})

			s.Then("it is used, and a seed is picked", func(t *testcase.T) {
				rr := act(t)
				assert.Equal(t, cli.ExitCodeOK, rr.Code)
				logs := rr.Err.String()
				assert.Contains(t, logs, `"steps":50`)
				assert.Contains(t, logs, `"prefill":5`)
				assert.NotContains(t, logs, `"seed":0`)
			})
		})

		s.When("a negative step count is given", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"selfcheck", "-steps", "-1"}
			})

			s.Then("it is a bad request", func(t *testcase.T) {
				rr := act(t)
				assert.Equal(t, cli.ExitCodeBadRequest, rr.Code)
				assert.Empty(t, rr.Out.String())
			})
		})
	})
}
