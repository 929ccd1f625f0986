package njalla

import (
	"encoding/json"
	"fmt"
	"sort"
)

// requireMembers fails unless data is a JSON object carrying every key with a
// non-null value. json.Unmarshal leaves absent fields at their zero value, so
// result types call this from UnmarshalJSON to reject incomplete objects.
func requireMembers(data []byte, keys ...string) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	if members == nil {
		return fmt.Errorf("expected object, got null")
	}

	var missing []string
	for _, key := range keys {
		if v, ok := members[key]; !ok || string(v) == "null" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required field(s): %v", missing)
	}
	return nil
}
