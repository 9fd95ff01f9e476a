package builderapi

import (
	"encoding/json"
	"fmt"
)

// applyContentPatch sets one field of a component's props blob.
// With parentField and index, the target is one element of an
// array-valued field (one FAQ entry, one pricing tier, one nav link);
// every other element and field is carried over untouched.
func applyContentPatch(props []byte, field string, value json.RawMessage, parentField string, index *int) ([]byte, error) {
	if field == "" {
		return nil, fmt.Errorf("field required")
	}

	var doc map[string]json.RawMessage
	if len(props) == 0 {
		doc = map[string]json.RawMessage{}
	} else if err := json.Unmarshal(props, &doc); err != nil {
		return nil, fmt.Errorf("props not an object: %w", err)
	}

	if parentField == "" || index == nil {
		doc[field] = value
		return json.Marshal(doc)
	}

	var arr []json.RawMessage
	if raw, ok := doc[parentField]; ok {
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, fmt.Errorf("%s is not an array: %w", parentField, err)
		}
	}
	if *index < 0 || *index >= len(arr) {
		return nil, fmt.Errorf("index %d out of range for %s", *index, parentField)
	}

	var elem map[string]json.RawMessage
	if err := json.Unmarshal(arr[*index], &elem); err != nil {
		return nil, fmt.Errorf("%s[%d] is not an object: %w", parentField, *index, err)
	}
	elem[field] = value

	updated, err := json.Marshal(elem)
	if err != nil {
		return nil, err
	}
	arr[*index] = updated

	rawArr, err := json.Marshal(arr)
	if err != nil {
		return nil, err
	}
	doc[parentField] = rawArr

	return json.Marshal(doc)
}
