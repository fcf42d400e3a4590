package output

import (
	"encoding/json"
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/domain"
)

// JSONFormatter emits the full comparison as JSON
type JSONFormatter struct {
	Pretty bool
}

func (JSONFormatter) Name() string { return "json" }

func (f JSONFormatter) Format(result *domain.Comparison) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no comparison to format")
	}
	if f.Pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}
