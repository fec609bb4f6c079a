package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseSentences reads the legacy sort parameter. A JSON array is used when
// it has more than one entry. Text that is not JSON at all is split on
// commas and used when more than one non-empty entry remains. Anything else
// reports ok=false.
func ParseSentences(raw string) ([]string, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		arr, isArray := parsed.([]interface{})
		if !isArray || len(arr) < 2 {
			return nil, false
		}
		out := make([]string, len(arr))
		for i, v := range arr {
			switch typed := v.(type) {
			case string:
				out[i] = typed
			case nil:
				out[i] = "null"
			default:
				out[i] = fmt.Sprint(typed)
			}
		}
		return out, true
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	if len(out) < 2 {
		return nil, false
	}
	return out, true
}
