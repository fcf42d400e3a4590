package compare

import (
	"encoding/json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty          bool // If true, format with indentation
	OmitAssumptions bool
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	payload := *compSet
	if jf.OmitAssumptions {
		payload.Assumptions = nil
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return "", err
	}

	return string(data) + "\n", nil
}
