// Package extract derives agreement field values from transcript text
// using keyword-anchored patterns. It is deterministic, has no side
// effects, and treats a failed match as a missing field, never an error.
package extract

import (
	"fmt"
	"strings"
)

// Extractor is the rule-driven text-to-fields component. The zero value
// is ready to use.
type Extractor struct{}

func New() Extractor {
	return Extractor{}
}

// RequiredFields returns the advisory required-field names for the type.
// Unknown types yield an empty set.
func (Extractor) RequiredFields(agreementType string) []string {
	fields := requiredFields[agreementType]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// Extract runs every pattern rule for the type against the transcript and
// returns the fields that matched with a non-blank value. An empty
// transcript or unknown type yields an empty map.
func (Extractor) Extract(transcript, agreementType string) map[string]any {
	fields := map[string]any{}
	if transcript == "" {
		return fields
	}

	for _, r := range rulesByType[agreementType] {
		m := r.re.FindStringSubmatch(transcript)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[len(m)-1])
		if value == "" {
			continue
		}
		fields[r.field] = value
	}
	return fields
}

// Missing reports every required field name that is absent from the map or
// whose stringified value is blank after trimming. Names outside the
// required set are never reported.
func (Extractor) Missing(agreementType string, fields map[string]any) []string {
	missing := []string{}
	for _, name := range requiredFields[agreementType] {
		value, ok := fields[name]
		if !ok || value == nil || strings.TrimSpace(fmt.Sprint(value)) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
