package toml

import (
	"strconv"
	"strings"
	"time"
)

// =========================
// Rendering
// =========================

// Render serializes a node tree back to TOML-like text. The output is lossy:
// comments, key quoting, and insertion order are not reproduced, and table
// entries come out in map iteration order.
func Render(n Node) string {
	var b strings.Builder
	switch v := n.(type) {
	case *Table:
		renderTable(&b, v, 0)
	case *TableArray:
		renderTableArray(&b, v, 0, "")
	default:
		renderInline(&b, n)
	}
	return b.String()
}

func (t *Table) String() string { return Render(t) }

func (a *Array) String() string { return Render(a) }

func (ta *TableArray) String() string { return Render(ta) }

func (v *Value) String() string { return Render(v) }

func renderTable(b *strings.Builder, t *Table, depth int) {
	indent := strings.Repeat("\t", depth)
	for key, n := range t.Items {
		switch v := n.(type) {
		case *TableArray:
			renderTableArray(b, v, depth, key)
		case *Table:
			b.WriteString(indent)
			b.WriteString(key)
			b.WriteString(" = \n")
			renderTable(b, v, depth+1)
		default:
			b.WriteString(indent)
			b.WriteString(key)
			b.WriteString(" = ")
			renderInline(b, n)
			b.WriteByte('\n')
		}
	}
}

func renderTableArray(b *strings.Builder, ta *TableArray, depth int, key string) {
	indent := strings.Repeat("\t", depth)
	for _, member := range ta.Tables {
		b.WriteString(indent)
		b.WriteString("[[")
		b.WriteString(key)
		b.WriteString("]]\n")
		renderTable(b, member, depth+1)
	}
}

// renderInline handles scalars and arrays, the node kinds that fit on the
// right-hand side of a key.
func renderInline(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Value:
		renderScalar(b, v)
	case *Array:
		b.WriteString("[ ")
		for i, e := range v.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			renderInline(b, e)
		}
		b.WriteString(" ]")
	}
}

func renderScalar(b *strings.Builder, v *Value) {
	switch s := v.V.(type) {
	case string:
		b.WriteString(s)
	case int64:
		b.WriteString(strconv.FormatInt(s, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(s, 'g', -1, 64))
	case bool:
		if s {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case time.Time:
		b.WriteString(s.Format(time.ANSIC))
		b.WriteString(" UTC")
	}
}
