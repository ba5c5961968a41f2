package workload

import (
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Workload is the operation being timed. Run receives the same fixture text
// on every call and returns whatever the operation produced.
type Workload interface {
	Setup() error
	Run(input string) (interface{}, error)
}

// registry maps workload names to constructors.
var registry = map[string]func() Workload{
	"mt940":          func() Workload { return &MT940{} },
	"json_unmarshal": func() Workload { return &JSONUnmarshal{} },
	"yaml_unmarshal": func() Workload { return &YAMLUnmarshal{} },
}

func New(name string, args []byte) (Workload, error) {
	newWorkload, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown workload: %q", name)
	}
	w := newWorkload()
	if err := yaml.Unmarshal(args, w); err != nil {
		return nil, errors.Wrapf(err, "workload %s args", name)
	}
	return w, nil
}

// Func adapts a plain function to Workload.
type Func func(input string) (interface{}, error)

func (f Func) Setup() error { return nil }

func (f Func) Run(input string) (interface{}, error) { return f(input) }
