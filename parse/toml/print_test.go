package toml

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) *Table {
	t.Helper()
	root, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	return root
}

func TestRenderScalars(t *testing.T) {
	assert.Equal(t, "hello", Render(&Value{Type: ValueString, V: "hello"}))
	assert.Equal(t, "42", Render(&Value{Type: ValueInt, V: int64(42)}))
	assert.Equal(t, "2.5", Render(&Value{Type: ValueFloat, V: 2.5}))
	assert.Equal(t, "true", Render(&Value{Type: ValueBool, V: true}))
	assert.Equal(t, "false", Render(&Value{Type: ValueBool, V: false}))

	d := time.Date(1979, 5, 27, 7, 32, 0, 0, time.UTC)
	assert.Equal(t, "Sun May 27 07:32:00 1979 UTC", Render(&Value{Type: ValueDatetime, V: d}))
}

func TestRenderArrays(t *testing.T) {
	root := parseOne(t, `x = [1, 2, 3]`)
	arr, _ := root.GetArray("x")
	assert.Equal(t, "[ 1, 2, 3 ]", arr.String())

	root = parseOne(t, `x = [["a"], ["b", "c"]]`)
	arr, _ = root.GetArray("x")
	assert.Equal(t, "[ [ a ], [ b, c ] ]", arr.String())

	root = parseOne(t, `x = []`)
	arr, _ = root.GetArray("x")
	assert.Equal(t, "[  ]", arr.String())
}

func TestRenderTable(t *testing.T) {
	root := parseOne(t, "x = 1\n")
	assert.Equal(t, "x = 1\n", root.String())

	// nested tables indent one tab per depth
	root = parseOne(t, "[a]\ny = 2\n")
	assert.Equal(t, "a = \n\ty = 2\n", root.String())

	root = parseOne(t, "[a.b]\nz = 3\n")
	assert.Equal(t, "a = \n\tb = \n\t\tz = 3\n", root.String())
}

func TestRenderTableArray(t *testing.T) {
	root := parseOne(t, `[[fruit]]
name = "apple"
[[fruit]]
name = "banana"
`)
	assert.Equal(t, "[[fruit]]\n\tname = apple\n[[fruit]]\n\tname = banana\n", root.String())
}

func TestRenderReparse(t *testing.T) {
	// flat scalar documents survive a render/reparse round trip
	root := parseOne(t, "x = 1\ny = 2.5\nb = true\n")
	again := parseOne(t, Render(root))

	x, ok := GetAs[int64](again, "x")
	assert.True(t, ok)
	assert.Equal(t, int64(1), x)
	y, ok := GetAs[float64](again, "y")
	assert.True(t, ok)
	assert.Equal(t, 2.5, y)
	b, ok := GetAs[bool](again, "b")
	assert.True(t, ok)
	assert.True(t, b)
}
