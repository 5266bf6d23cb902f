package output

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders results as YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(value any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
