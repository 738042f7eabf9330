package waterquality

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/Austionian/gathering-surf/pkg/errors"
)

// ParseAttribute extracts a string attribute from the first feature of a query result.
func ParseAttribute(raw []byte, field string) (string, error) {
	var set featureSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return "", apperrors.Wrap(apperrors.CodeMalformedPayload, "water quality response is not valid JSON", err)
	}
	if len(set.Features) == 0 {
		return "", malformed("empty array of features")
	}
	attrs := set.Features[0].Attributes
	if attrs == nil {
		return "", malformed("no attributes found")
	}
	v, ok := attrs[field]
	if !ok {
		return "", malformed(fmt.Sprintf("no %s found", field))
	}
	s, ok := v.(string)
	if !ok {
		return "", malformed(fmt.Sprintf("%s is not a string", field))
	}
	return s, nil
}

func malformed(message string) error {
	return apperrors.Wrap(apperrors.CodeMalformedPayload, message, nil)
}
