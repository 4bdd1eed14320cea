package i18n

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind discriminates the variants a translation tree node can take.
type Kind int

const (
	KindString Kind = iota
	KindList
	KindMap
)

// Value is one node of a translation tree: a string leaf, a list of
// strings, or a nested map of further values. The zero Value is the
// empty string leaf.
type Value struct {
	kind Kind
	str  string
	list []string
	node map[string]Value
}

// String builds a string leaf.
func String(s string) Value { return Value{kind: KindString, str: s} }

// List builds a list leaf.
func List(items ...string) Value { return Value{kind: KindList, list: items} }

// Map builds a nested node.
func Map(node map[string]Value) Value { return Value{kind: KindMap, node: node} }

// Kind reports which variant this value holds.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string leaf, if this value is one.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Items returns the list leaf, if this value is one.
func (v Value) Items() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// Children returns the nested node, if this value is one.
func (v Value) Children() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.node, true
}

// UnmarshalJSON decodes a locale document node. Only strings, arrays of
// strings, and nested objects are accepted; numbers, booleans, and null
// have no place in a translation tree.
func (v *Value) UnmarshalJSON(data []byte) error {
	d := bytes.TrimSpace(data)
	if len(d) == 0 {
		return fmt.Errorf("i18n: empty value")
	}
	switch d[0] {
	case '"':
		var s string
		if err := json.Unmarshal(d, &s); err != nil {
			return err
		}
		*v = Value{kind: KindString, str: s}
		return nil
	case '[':
		var list []string
		if err := json.Unmarshal(d, &list); err != nil {
			return err
		}
		*v = Value{kind: KindList, list: list}
		return nil
	case '{':
		var node map[string]Value
		if err := json.Unmarshal(d, &node); err != nil {
			return err
		}
		*v = Value{kind: KindMap, node: node}
		return nil
	default:
		return fmt.Errorf("i18n: unsupported value %s", string(d))
	}
}
