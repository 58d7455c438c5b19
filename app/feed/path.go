package feed

import (
	"fmt"
	"strings"
)

// Lookup walks the parsed tree segment by segment along a dotted path
// (e.g. "yml_catalog.shop.offers.offer"). Absence is a normal outcome: a
// missing segment yields nil, never an error.
func Lookup(tree map[string]interface{}, path string) interface{} {
	if path == "" {
		return nil
	}

	var current interface{} = tree
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = node[segment]
		if !ok {
			return nil
		}
	}

	return current
}

// LookupString returns the scalar at path as a trimmed string, "" when absent.
func LookupString(tree map[string]interface{}, path string) string {
	return scalarString(Lookup(tree, path))
}

// LookupList coerces the value at path into ordered list form: a repeated
// element is returned as-is, a single value becomes a one-element list, and
// absence becomes an empty list.
func LookupList(tree map[string]interface{}, path string) []interface{} {
	switch value := Lookup(tree, path).(type) {
	case nil:
		return nil
	case []interface{}:
		return value
	default:
		return []interface{}{value}
	}
}

// scalarString flattens a tree value to its text content. Elements carrying
// attributes keep their text under "#text"; a list contributes its first entry.
func scalarString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case map[string]interface{}:
		return scalarString(v["#text"])
	case []interface{}:
		if len(v) == 0 {
			return ""
		}
		return scalarString(v[0])
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
