package report

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes common JSON defects in LLM output: single quotes,
// unquoted keys, trailing commas, unclosed brackets, markdown fences.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// SmartParse tries progressively more lenient strategies to land LLM output
// in schema: strict JSON, then repair, then Hjson.
func SmartParse(input string, schema any) error {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return nil
		}
	}

	if err := hjson.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	return fmt.Errorf("all parsing strategies failed for llm output")
}
