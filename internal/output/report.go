package output

import (
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/ulipbi/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders il in the named format and writes it to w.
func GenerateReport(il *domain.Illustration, format string, w io.Writer) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %v)", format, AvailableFormatterNames())
	}
	data, err := f.Format(il)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// SaveRequest writes an illustration request to a YAML file that
// config.InputParser can load back.
func SaveRequest(req *domain.IllustrationRequest, filename string) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}
