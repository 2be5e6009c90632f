package compare

import (
	"github.com/goccy/go-json"
)

// JSONFormatter writes a comparison set as JSON with money rounded to two
// decimals.
type JSONFormatter struct {
	Pretty bool
	// Precision overrides the rounding applied to money metrics. Zero means 2.
	Precision int32
}

// Format marshals a rounded copy of compSet.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	places := jf.Precision
	if places == 0 {
		places = 2
	}
	rounded := compSet.Rounded(places)

	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v interface{}) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(rounded)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
