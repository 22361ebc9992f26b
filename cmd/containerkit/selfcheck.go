package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.llib.dev/containerkit/internal/equivalence"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/testcase/random"
)

type SelfcheckCommand struct {
	Seed     int    `flag:"seed" env:"CONTAINERKIT_SEED" desc:"random seed of the workload, a fresh one is picked when zero"`
	Steps    int    `flag:"steps" env:"CONTAINERKIT_STEPS" desc:"random operations per check, 1000 when zero"`
	Prefill  int    `flag:"prefill" env:"CONTAINERKIT_PREFILL" desc:"elements pushed before the checked steps, 200 when zero"`
	LogLevel string `flag:"log-level" env:"CONTAINERKIT_LOG_LEVEL" enum:"debug,info,warn,error," desc:"logging level, info when empty"`
}

func (cmd SelfcheckCommand) Summary() string {
	return "compare the containers with reference implementations under a random workload"
}

func (cmd SelfcheckCommand) ServeCLI(w cli.Response, r *cli.Request) {
	ctx := r.Context()
	logger := newLogger(w, cmd.LogLevel)

	if cmd.Steps < 0 || cmd.Prefill < 0 {
		fail(w, cli.ExitCodeBadRequest, fmt.Errorf("steps and prefill must not be negative"))
		return
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = random.New(random.CryptoSeed{}).IntBetween(1, math.MaxInt32)
	}
	logger.Info(ctx, "selfcheck started",
		logging.Field("seed", seed),
		logging.Field("steps", cmd.Steps),
		logging.Field("prefill", cmd.Prefill))

	cfg := equivalence.Config{Steps: cmd.Steps, Prefill: cmd.Prefill}
	var failed int
	for _, d := range equivalence.Drivers {
		if err := ctx.Err(); err != nil {
			fail(w, cli.ExitCodeError, err)
			return
		}
		// every check starts from the seed, so a failing one can be replayed on its own
		rnd := random.New(rand.NewSource(int64(seed)))
		start := time.Now()
		err := d.Run(rnd, cfg)
		elapsed := time.Since(start)
		if err != nil {
			failed++
			fmt.Fprintf(w, "FAIL\t%s\t%s\n", d.Name, err.Error())
			logger.Error(ctx, "selfcheck failed",
				logging.Field("check", d.Name),
				logging.Field("seed", seed),
				logging.ErrField(err))
			continue
		}
		fmt.Fprintf(w, "ok\t%s\t%s\n", d.Name, elapsed.Round(time.Microsecond))
		logger.Debug(ctx, "selfcheck passed", logging.Field("check", d.Name))
	}
	if 0 < failed {
		w.ExitCode(cli.ExitCodeError)
		return
	}
	logger.Info(ctx, "selfcheck finished", logging.Field("seed", seed))
}
