package internal

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIterations = 10
	DefaultFixture    = "testdata/mt940/danskebank/MT940_DK_Example.sta"
	DefaultWorkload   = "mt940"
)

func ReadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (c Config, err error) {
	if err = yaml.Unmarshal(data, &c); err != nil {
		return c, errors.Wrap(err, "decode config")
	}
	c.setDefaults()
	return c, c.Validate()
}

// Config describes a single benchmark run.
type Config struct {
	Iterations int       `yaml:"iterations"`
	Fixture    string    `yaml:"fixture"`
	Workload   string    `yaml:"workload"`
	Args       yaml.Node `yaml:"args"`
	LogLevel   string    `yaml:"log_level"`
}

func (c *Config) setDefaults() {
	if c.Iterations == 0 {
		c.Iterations = DefaultIterations
	}
	if c.Fixture == "" {
		c.Fixture = DefaultFixture
	}
	if c.Workload == "" {
		c.Workload = DefaultWorkload
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

func (c Config) Validate() error {
	if c.Iterations < 1 {
		return errors.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if c.Fixture == "" {
		return errors.New("no fixture")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "log_level")
	}
	return nil
}

// WorkloadArgs returns the args node re-encoded as yaml, or nil when the
// config has no args.
func (c Config) WorkloadArgs() ([]byte, error) {
	if c.Args.IsZero() {
		return nil, nil
	}
	data, err := yaml.Marshal(&c.Args)
	return data, errors.Wrap(err, "encode workload args")
}

func (c Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.WarnLevel
	}
	return lvl
}
