// Command mt940-bench times repeated parses of a bank statement fixture and
// prints the total elapsed seconds.
package main

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/felixge/mt940-bench/internal"
	"github.com/pkg/errors"
)

//go:embed bench.yaml
var benchConfig []byte

func main() {
	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run(stdout io.Writer) error {
	config, err := internal.ParseConfig(benchConfig)
	if err != nil {
		return err
	}

	log, err := internal.NewLogger(config.Level())
	if err != nil {
		return errors.Wrap(err, "logger")
	}
	defer log.Sync() //nolint:errcheck

	r, err := NewRunner(config, stdout, log)
	if err != nil {
		return err
	}
	return r.Run()
}
