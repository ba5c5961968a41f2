package workload

import (
	"unicode/utf8"

	"github.com/felixge/mt940-bench/mt940"
	"github.com/pkg/errors"
)

// MT940 parses the input as MT940 statement messages.
type MT940 struct {
	// Sanitize converts the input to the SWIFT character set before every
	// parse, so its cost is part of the measurement.
	Sanitize bool `yaml:"sanitize"`
}

func (m *MT940) Setup() error {
	return nil
}

func (m *MT940) Run(input string) (interface{}, error) {
	if !utf8.ValidString(input) {
		return nil, errors.New("mt940: input is not valid utf-8")
	}
	if m.Sanitize {
		input = mt940.Sanitize(input)
	}
	return mt940.Parse(input)
}
