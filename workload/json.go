package workload

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

type JSONUnmarshal struct{}

func (j *JSONUnmarshal) Setup() error {
	return nil
}

func (j *JSONUnmarshal) Run(input string) (interface{}, error) {
	var m interface{}
	err := json.Unmarshal([]byte(input), &m)
	return m, err
}

type YAMLUnmarshal struct{}

func (y *YAMLUnmarshal) Setup() error {
	return nil
}

func (y *YAMLUnmarshal) Run(input string) (interface{}, error) {
	var m interface{}
	err := yaml.Unmarshal([]byte(input), &m)
	return m, err
}
