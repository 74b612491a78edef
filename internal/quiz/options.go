package quiz

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

func encodeOptions(options []string) datatypes.JSON {
	if options == nil {
		options = []string{}
	}
	b, _ := json.Marshal(options)
	return datatypes.JSON(b)
}

// decodeOptions always yields an ordered list of strings. Besides a plain
// JSON array it accepts an array that was stored JSON-encoded as a string.
func decodeOptions(raw datatypes.JSON) ([]string, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return []string{}, nil
	}

	var options []string
	if err := json.Unmarshal([]byte(text), &options); err == nil {
		if options == nil {
			options = []string{}
		}
		return options, nil
	}

	var encoded string
	if err := json.Unmarshal([]byte(text), &encoded); err != nil {
		return nil, fmt.Errorf("options are neither an array nor an encoded array: %s", text)
	}
	return decodeOptions(datatypes.JSON(encoded))
}
