package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/felixge/mt940-bench/internal"
	"github.com/felixge/mt940-bench/workload"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Runner reads Fixture once and times Iterations calls of Workload on it.
type Runner struct {
	Name       string
	Fixture    string
	Iterations int
	Workload   workload.Workload
	Stdout     io.Writer
	Log        *zap.Logger

	// result keeps the last value returned by the workload reachable, so the
	// calls are never considered dead.
	result interface{}
}

// NewRunner builds a Runner for the workload named in c.
func NewRunner(c internal.Config, stdout io.Writer, log *zap.Logger) (*Runner, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	args, err := c.WorkloadArgs()
	if err != nil {
		return nil, err
	}
	w, err := workload.New(c.Workload, args)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Runner{
		Name:       c.Workload,
		Fixture:    c.Fixture,
		Iterations: c.Iterations,
		Workload:   w,
		Stdout:     stdout,
		Log:        log,
	}, nil
}

// Run measures and prints the total elapsed seconds as a single line.
func (r *Runner) Run() error {
	m, err := r.Measure()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.Stdout, m.String())
	return errors.Wrap(err, "write measurement")
}

// Measure reads the fixture and times the loop. The first workload error
// aborts the run.
func (r *Runner) Measure() (internal.Measurement, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	m := internal.Measurement{
		Workload:   r.Name,
		Iterations: r.Iterations,
		Env:        internal.CurrentEnv(),
	}
	if r.Iterations < 1 {
		return m, errors.Errorf("iterations must be positive, got %d", r.Iterations)
	}
	if err := r.Workload.Setup(); err != nil {
		return m, errors.Wrapf(err, "setup %s", r.Name)
	}

	data, err := os.ReadFile(r.Fixture)
	if err != nil {
		return m, errors.Wrap(err, "read fixture")
	}
	input := string(data)
	m.FixtureSize = len(data)
	log.Debug("fixture loaded", zap.String("path", r.Fixture), zap.Int("bytes", m.FixtureSize))

	before, err := getrusage()
	if err != nil {
		return m, err
	}

	m.Start = time.Now()
	for i := 0; i < r.Iterations; i++ {
		res, err := r.Workload.Run(input)
		if err != nil {
			log.Debug("workload failed", zap.Int("iteration", i+1), zap.Error(err))
			return m, errors.Wrapf(err, "%s: iteration %d", r.Name, i+1)
		}
		r.result = res
	}
	m.Duration = time.Since(m.Start)
	runtime.KeepAlive(r.result)

	after, err := getrusage()
	if err != nil {
		return m, err
	}
	m.Rusage = rusageDelta(before, after)

	log.Debug("benchmark finished", m.Field())
	return m, nil
}
