package internal

import (
	"runtime"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Measurement is the outcome of one benchmark run. Only Seconds() is ever
// reported; the remaining fields are diagnostics for the debug log.
type Measurement struct {
	Workload    string
	Iterations  int
	FixtureSize int
	Start       time.Time
	Duration    time.Duration
	Env         WorkloadEnv
	Rusage      Rusage
}

// Seconds returns the total elapsed time of all iterations.
func (m Measurement) Seconds() float64 {
	return m.Duration.Seconds()
}

// String formats Seconds() as a plain decimal number without exponent.
func (m Measurement) String() string {
	return strconv.FormatFloat(m.Seconds(), 'f', -1, 64)
}

// PerOp is the average duration of a single call.
func (m Measurement) PerOp() time.Duration {
	if m.Iterations == 0 {
		return 0
	}
	return m.Duration / time.Duration(m.Iterations)
}

func (m Measurement) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("workload", m.Workload)
	enc.AddInt("iterations", m.Iterations)
	enc.AddInt("fixture_size", m.FixtureSize)
	enc.AddDuration("duration", m.Duration)
	enc.AddString("per_op", TruncateDuration(m.PerOp()).String())
	enc.AddDuration("user", m.Rusage.User)
	enc.AddDuration("system", m.Rusage.System)
	return enc.AddObject("env", m.Env)
}

var _ zapcore.ObjectMarshaler = Measurement{}

type WorkloadEnv struct {
	GoVersion  string
	GoOS       string
	GoArch     string
	GoMaxProcs int
	GoNumCPU   int
}

func CurrentEnv() WorkloadEnv {
	return WorkloadEnv{
		GoVersion:  runtime.Version(),
		GoOS:       runtime.GOOS,
		GoArch:     runtime.GOARCH,
		GoMaxProcs: runtime.GOMAXPROCS(0),
		GoNumCPU:   runtime.NumCPU(),
	}
}

func (e WorkloadEnv) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("go_version", e.GoVersion)
	enc.AddString("go_os", e.GoOS)
	enc.AddString("go_arch", e.GoArch)
	enc.AddInt("go_max_procs", e.GoMaxProcs)
	enc.AddInt("go_num_cpu", e.GoNumCPU)
	return nil
}

// Rusage holds the CPU time consumed by the process while the timed loop ran.
type Rusage struct {
	User   time.Duration
	System time.Duration
}

// Field wraps m for structured logging.
func (m Measurement) Field() zap.Field {
	return zap.Object("measurement", m)
}
