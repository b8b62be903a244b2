package toml

import (
	"strings"
	"time"
)

// =========================
// AST Definitions
// =========================

type Kind uint8

const (
	KindValue Kind = iota
	KindTable
	KindArray
	KindTableArray
)

type Node interface {
	Kind() Kind
}

// -------- Value --------

type ValueKind uint8

const (
	ValueString ValueKind = iota
	ValueInt
	ValueFloat
	ValueBool
	ValueDatetime
)

// Scalar is the closed set of Go types a Value may hold. Type is fixed at
// construction and never changes.
type Scalar interface {
	string | int64 | float64 | bool | time.Time
}

type Value struct {
	Type ValueKind
	V    any
}

func (*Value) Kind() Kind { return KindValue }

// -------- Array --------

// Array is an ordered sequence of nodes. The parser only ever builds arrays
// whose elements all share one scalar kind, or whose elements are all arrays.
type Array struct {
	Elems []Node
}

func (*Array) Kind() Kind { return KindArray }

func (a *Array) At(idx int) Node { return a.Elems[idx] }

// -------- Table --------

type Table struct {
	Items map[string]Node
}

func NewTable() *Table {
	return &Table{Items: make(map[string]Node)}
}

func (*Table) Kind() Kind { return KindTable }

// -------- TableArray --------

// TableArray is the repeated-header construct: an ordered sequence of tables
// accumulated under one key by successive [[key]] headers.
type TableArray struct {
	Tables []*Table
}

func (*TableArray) Kind() Kind { return KindTableArray }

// =========================
// Downcasts
// =========================

// AsTable converts a node to a table, reporting false when the node is of
// any other kind.
func AsTable(n Node) (*Table, bool) {
	t, ok := n.(*Table)
	return t, ok
}

func AsArray(n Node) (*Array, bool) {
	a, ok := n.(*Array)
	return a, ok
}

func AsTableArray(n Node) (*TableArray, bool) {
	ta, ok := n.(*TableArray)
	return ta, ok
}

// As coerces a node into a concrete scalar of type T. A kind mismatch yields
// the zero value and false, never an error.
func As[T Scalar](n Node) (T, bool) {
	var zero T
	v, ok := n.(*Value)
	if !ok {
		return zero, false
	}
	out, ok := v.V.(T)
	if !ok {
		return zero, false
	}
	return out, true
}

// =========================
// Table Access
// =========================

// Contains reports whether the table holds the given key.
func (t *Table) Contains(key string) bool {
	_, ok := t.Items[key]
	return ok
}

// ContainsQualified reports whether the dotted path resolves through nested
// tables. It never returns an error; a missing intermediate is just false.
func (t *Table) ContainsQualified(key string) bool {
	_, ok := t.resolveQualified(key)
	return ok
}

// Get obtains the node for a key, or a *KeyError when the key is absent.
func (t *Table) Get(key string) (Node, error) {
	n, ok := t.Items[key]
	if !ok {
		return nil, &KeyError{Key: key}
	}
	return n, nil
}

// GetQualified obtains the node at a dotted path like "grandparent.parent.child",
// or a *KeyError when any segment is missing.
func (t *Table) GetQualified(key string) (Node, error) {
	n, ok := t.resolveQualified(key)
	if !ok {
		return nil, &KeyError{Key: key}
	}
	return n, nil
}

// GetTable obtains a nested table, reporting false when the key is absent or
// maps to a different kind.
func (t *Table) GetTable(key string) (*Table, bool) {
	n, ok := t.Items[key]
	if !ok {
		return nil, false
	}
	return AsTable(n)
}

// GetTableQualified is GetTable over a dotted path.
func (t *Table) GetTableQualified(key string) (*Table, bool) {
	n, ok := t.resolveQualified(key)
	if !ok {
		return nil, false
	}
	return AsTable(n)
}

func (t *Table) GetArray(key string) (*Array, bool) {
	n, ok := t.Items[key]
	if !ok {
		return nil, false
	}
	return AsArray(n)
}

func (t *Table) GetArrayQualified(key string) (*Array, bool) {
	n, ok := t.resolveQualified(key)
	if !ok {
		return nil, false
	}
	return AsArray(n)
}

func (t *Table) GetTableArray(key string) (*TableArray, bool) {
	n, ok := t.Items[key]
	if !ok {
		return nil, false
	}
	return AsTableArray(n)
}

func (t *Table) GetTableArrayQualified(key string) (*TableArray, bool) {
	n, ok := t.resolveQualified(key)
	if !ok {
		return nil, false
	}
	return AsTableArray(n)
}

// GetAs combines lookup and scalar downcast. Both "key absent" and "key
// present but wrong type" collapse into false so callers can do optional
// reads without touching the error channel.
func GetAs[T Scalar](t *Table, key string) (T, bool) {
	var zero T
	n, ok := t.Items[key]
	if !ok {
		return zero, false
	}
	return As[T](n)
}

// GetQualifiedAs is GetAs over a dotted path.
func GetQualifiedAs[T Scalar](t *Table, key string) (T, bool) {
	var zero T
	n, ok := t.resolveQualified(key)
	if !ok {
		return zero, false
	}
	return As[T](n)
}

// Insert adds a node under key, replacing any existing entry. Duplicate keys
// are rejected during parsing, not here.
func (t *Table) Insert(key string, n Node) {
	t.Items[key] = n
}

// InsertValue is shorthand for inserting a plain scalar.
func InsertValue[T Scalar](t *Table, key string, v T) {
	t.Insert(key, &Value{Type: scalarKind(v), V: v})
}

func scalarKind(v any) ValueKind {
	switch v.(type) {
	case string:
		return ValueString
	case int64:
		return ValueInt
	case float64:
		return ValueFloat
	case bool:
		return ValueBool
	default:
		return ValueDatetime
	}
}

// =========================
// Qualified Key Resolution
// =========================

// resolveQualified walks all but the last path segment strictly through
// nested tables and resolves the final segment in the terminal table. The
// same path semantics drive the parser's table-header walk.
func (t *Table) resolveQualified(key string) (Node, bool) {
	parts := strings.Split(key, ".")
	cur := t
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur.GetTable(part)
		if !ok {
			return nil, false
		}
		cur = next
	}
	n, ok := cur.Items[parts[len(parts)-1]]
	return n, ok
}

// =========================
// Safe Access Helpers
// =========================

// Get walks an explicit path of table keys from root, one segment per
// argument. Unlike the qualified forms, segments may contain dots.
func Get(root *Table, path ...string) (Node, bool) {
	var cur Node = root
	for _, p := range path {
		t, ok := cur.(*Table)
		if !ok {
			return nil, false
		}
		cur, ok = t.Items[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// ToUntyped converts a node tree into plain Go values: maps, slices, and
// scalars. Useful for handing a parsed document to encoding/json.
func ToUntyped(n Node) any {
	switch v := n.(type) {
	case *Value:
		return v.V
	case *Array:
		out := make([]any, len(v.Elems))
		for i := range v.Elems {
			out[i] = ToUntyped(v.Elems[i])
		}
		return out
	case *Table:
		m := make(map[string]any, len(v.Items))
		for k, child := range v.Items {
			m[k] = ToUntyped(child)
		}
		return m
	case *TableArray:
		out := make([]any, len(v.Tables))
		for i := range v.Tables {
			out[i] = ToUntyped(v.Tables[i])
		}
		return out
	default:
		return nil
	}
}

func MustString(n Node) string {
	v := n.(*Value)
	return v.V.(string)
}

func MustInt(n Node) int64 {
	v := n.(*Value)
	return v.V.(int64)
}
