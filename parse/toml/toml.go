package toml

// Package toml implements a parser for a restricted TOML dialect with a
// strong internal AST, deterministic semantics, and safe post-parse access.
//
// Scope:
// - Explicit AST (Table / Array / TableArray / Value)
// - Tables [a.b.c] and table arrays [[a.b.c]]
// - Quoted and bare keys, dotted table paths
// - Strings, 64-bit integers, floats, booleans, UTC datetimes, arrays
// - Deterministic errors with 1-based line numbers
//
// Non-goals (by design):
// - Inline tables and multi-line strings
// - Non-decimal integer literals and underscore separators
// - Timezone offsets other than the literal Z suffix
// - Comment preservation and formatting round-trip
//
// This implementation is suitable for production use as a configuration
// ingestion layer.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// =========================
// Public API
// =========================

// Parse parses input from r until end of stream and returns the root Table.
// Any grammar violation aborts the parse with a *ParseError; there is no
// error recovery and no partial result.
func Parse(r io.Reader) (*Table, error) {
	p := &parser{
		scanner: bufio.NewScanner(r),
		root:    NewTable(),
		tables:  make(map[string]struct{}),
	}
	p.cur = p.root

	for p.nextLine() {
		p.consumeWhitespace()
		if p.eol() || p.peek() == '#' {
			continue
		}
		if p.peek() == '[' {
			// a header always restarts the walk from the document root
			p.cur = p.root
			if err := p.parseTableHeader(); err != nil {
				return nil, err
			}
		} else {
			if err := p.parseKeyValue(); err != nil {
				return nil, err
			}
		}
	}

	if err := p.scanner.Err(); err != nil {
		return nil, err
	}

	return p.root, nil
}

// ParseFile opens path and parses it as a TOML document. An unopenable file
// yields a *ParseError without a line number. The file handle is released
// whether parsing succeeds or fails.
func ParseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Msg: path + " could not be opened for parsing"}
	}
	defer f.Close()
	return Parse(f)
}

// =========================
// Parser Implementation
// =========================

type parser struct {
	scanner *bufio.Scanner
	line    string
	pos     int
	lineNo  int
	root    *Table
	cur     *Table
	// single-table header names already declared; table-array headers are
	// exempt since repetition is their purpose
	tables map[string]struct{}
}

func (p *parser) nextLine() bool {
	if !p.scanner.Scan() {
		return false
	}
	p.line = p.scanner.Text()
	p.pos = 0
	p.lineNo++
	return true
}

func (p *parser) eol() bool { return p.pos >= len(p.line) }

func (p *parser) peek() byte { return p.line[p.pos] }

func (p *parser) consumeWhitespace() {
	for !p.eol() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

// eolOrComment requires that nothing but whitespace or a comment follows on
// the current line.
func (p *parser) eolOrComment() error {
	if !p.eol() && p.peek() != '#' {
		return p.errf("unidentified trailing character %c---did you forget a '#'?", p.peek())
	}
	return nil
}

func (p *parser) errf(format string, args ...any) *ParseError {
	return &ParseError{Line: p.lineNo, Msg: fmt.Sprintf(format, args...)}
}

// =========================
// Table Headers
// =========================

func (p *parser) parseTableHeader() error {
	p.pos++ // opening '['
	if p.eol() {
		return p.errf("unexpected end of table")
	}
	if p.peek() == '[' {
		p.pos++
		return p.parseTableArrayHeader()
	}
	return p.parseSingleTable()
}

func (p *parser) parseSingleTable() error {
	rest := p.line[p.pos:]
	if strings.IndexByte(rest, '[') >= 0 {
		return p.errf("cannot have [ in table name")
	}
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return p.errf("unterminated table")
	}
	name := rest[:end]
	if name == "" {
		return p.errf("empty table")
	}
	if _, dup := p.tables[name]; dup {
		return p.errf("duplicate table")
	}
	if strings.ContainsAny(name, " \t") {
		return p.errf("table name %s cannot have whitespace", name)
	}
	p.tables[name] = struct{}{}

	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return p.errf("empty keytable part")
		}
		if n, ok := p.cur.Items[part]; ok {
			switch v := n.(type) {
			case *Table:
				p.cur = v
			case *TableArray:
				// descending through a table array means its newest member
				p.cur = v.Tables[len(v.Tables)-1]
			default:
				return p.errf("keytable already exists as a value")
			}
		} else {
			next := NewTable()
			p.cur.Insert(part, next)
			p.cur = next
		}
	}

	p.pos += end + 1
	p.consumeWhitespace()
	return p.eolOrComment()
}

func (p *parser) parseTableArrayHeader() error {
	rest := p.line[p.pos:]
	if strings.IndexByte(rest, '[') >= 0 {
		return p.errf("cannot have [ in keytable name")
	}
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return p.errf("unterminated keytable array")
	}
	name := rest[:end]
	if name == "" {
		return p.errf("empty keytable")
	}
	if end+1 >= len(rest) || rest[end+1] != ']' {
		return p.errf("invalid keytable array specifier")
	}

	parts := strings.Split(name, ".")
	for i, part := range parts {
		if part == "" {
			return p.errf("empty keytable part")
		}
		last := i == len(parts)-1
		n, ok := p.cur.Items[part]
		if !ok {
			if last {
				member := NewTable()
				p.cur.Insert(part, &TableArray{Tables: []*Table{member}})
				p.cur = member
			} else {
				next := NewTable()
				p.cur.Insert(part, next)
				p.cur = next
			}
			continue
		}
		if last {
			ta, isTA := n.(*TableArray)
			if !isTA {
				return p.errf("expected keytable array")
			}
			member := NewTable()
			ta.Tables = append(ta.Tables, member)
			p.cur = member
			continue
		}
		switch v := n.(type) {
		case *Table:
			p.cur = v
		case *TableArray:
			p.cur = v.Tables[len(v.Tables)-1]
		default:
			return p.errf("keytable already exists as a value")
		}
	}
	return nil
}

// =========================
// Key / Value Lines
// =========================

func (p *parser) parseKeyValue() error {
	key, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.cur.Contains(key) {
		return p.errf("key %s already present", key)
	}
	if p.eol() || p.peek() != '=' {
		return p.errf("value must follow after a '='")
	}
	p.pos++
	p.consumeWhitespace()
	v, err := p.parseValue()
	if err != nil {
		return err
	}
	p.cur.Insert(key, v)
	p.consumeWhitespace()
	return p.eolOrComment()
}

func (p *parser) parseKey() (string, error) {
	if p.peek() == '"' {
		return p.stringLiteral()
	}
	return p.parseBareKey()
}

func (p *parser) parseBareKey() (string, error) {
	rest := p.line[p.pos:]
	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		eq = len(rest)
	}
	key := strings.TrimRight(rest[:eq], " \t")
	if strings.IndexByte(key, '#') >= 0 {
		return "", p.errf("key %s cannot contain #", key)
	}
	if strings.ContainsAny(key, " \t") {
		return "", p.errf("key %s cannot contain whitespace", key)
	}
	p.pos += eq
	return key, nil
}

// stringLiteral scans a double-quoted literal starting at the current
// position and consumes any whitespace after the closing quote. Literals are
// confined to a single line.
func (p *parser) stringLiteral() (string, error) {
	p.pos++ // opening '"'
	var b strings.Builder
	for !p.eol() {
		switch p.peek() {
		case '\\':
			c, err := p.parseEscapeCode()
			if err != nil {
				return "", err
			}
			b.WriteByte(c)
		case '"':
			p.pos++
			p.consumeWhitespace()
			return b.String(), nil
		default:
			b.WriteByte(p.peek())
			p.pos++
		}
	}
	return "", p.errf("unterminated string literal")
}

func (p *parser) parseEscapeCode() (byte, error) {
	p.pos++ // backslash
	if p.eol() {
		return 0, p.errf("invalid escape sequence")
	}
	var c byte
	switch p.peek() {
	case 'b':
		c = '\b'
	case 't':
		c = '\t'
	case 'n':
		c = '\n'
	case 'f':
		c = '\f'
	case 'r':
		c = '\r'
	case '"':
		c = '"'
	case '/':
		c = '/'
	case '\\':
		c = '\\'
	default:
		return 0, p.errf("invalid escape sequence")
	}
	p.pos++
	return c, nil
}

// =========================
// Value Inference
// =========================

type parseType uint8

const (
	typeString parseType = iota + 1
	typeDate
	typeInt
	typeFloat
	typeBool
	typeArray
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)

// valueType classifies the value starting at the current position by
// single-character lookahead plus bounded scanning, without a tokenizing
// pass. end bounds the scan; it is the end of line except when sizing up the
// first element of an array.
func (p *parser) valueType(end int) (parseType, error) {
	if p.pos >= end {
		return 0, p.errf("failed to parse value type")
	}
	c := p.peek()
	switch {
	case c == '"':
		return typeString, nil
	case p.isDate(end):
		return typeDate, nil
	case isDigit(c) || c == '-':
		return p.numberType(end), nil
	case c == 't' || c == 'f':
		return typeBool, nil
	case c == '[':
		return typeArray, nil
	}
	return 0, p.errf("failed to parse value type")
}

// numberType distinguishes floats from integers: a '.' directly after the
// integer digits makes a float.
func (p *parser) numberType(end int) parseType {
	i := p.pos
	if p.line[i] == '-' {
		i++
	}
	for i < end && isDigit(p.line[i]) {
		i++
	}
	if i < end && p.line[i] == '.' {
		return typeFloat
	}
	return typeInt
}

// isDate matches the contiguous run of date characters at the current
// position against the strict UTC datetime form. Anything else, including
// offset forms, falls through to numeric classification.
func (p *parser) isDate(end int) bool {
	i := p.pos
	for i < end && isDateChar(p.line[i]) {
		i++
	}
	return datePattern.MatchString(p.line[p.pos:i])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isDateChar(c byte) bool {
	return isDigit(c) || c == 'T' || c == 'Z' || c == ':' || c == '-'
}

// =========================
// Value Parsing
// =========================

func (p *parser) parseValue() (Node, error) {
	t, err := p.valueType(len(p.line))
	if err != nil {
		return nil, err
	}
	switch t {
	case typeString:
		s, err := p.stringLiteral()
		if err != nil {
			return nil, err
		}
		return &Value{Type: ValueString, V: s}, nil
	case typeDate:
		return p.parseDate()
	case typeInt, typeFloat:
		return p.parseNumber()
	case typeBool:
		return p.parseBool()
	default:
		return p.parseArray()
	}
}

func (p *parser) parseNumber() (Node, error) {
	start := p.pos
	i := p.pos
	if p.line[i] == '-' {
		i++
	}
	for i < len(p.line) && isDigit(p.line[i]) {
		i++
	}
	if i < len(p.line) && p.line[i] == '.' {
		i++
		if i == len(p.line) {
			return nil, p.errf("floats must have trailing digits")
		}
		for i < len(p.line) && isDigit(p.line[i]) {
			i++
		}
		span := p.line[start:i]
		p.pos = i
		f, err := strconv.ParseFloat(span, 64)
		if err != nil {
			return nil, p.errf("%v", err)
		}
		return &Value{Type: ValueFloat, V: f}, nil
	}
	span := p.line[start:i]
	p.pos = i
	n, err := strconv.ParseInt(span, 10, 64)
	if err != nil {
		return nil, p.errf("%v", err)
	}
	return &Value{Type: ValueInt, V: n}, nil
}

func (p *parser) parseBool() (Node, error) {
	i := p.pos
	for i < len(p.line) && p.line[i] != ' ' && p.line[i] != '\t' && p.line[i] != '#' {
		i++
	}
	span := p.line[p.pos:i]
	p.pos = i
	switch span {
	case "true":
		return &Value{Type: ValueBool, V: true}, nil
	case "false":
		return &Value{Type: ValueBool, V: false}, nil
	}
	return nil, p.errf("attempted to parse invalid boolean value")
}

func (p *parser) parseDate() (Node, error) {
	i := p.pos
	for i < len(p.line) && isDateChar(p.line[i]) {
		i++
	}
	span := p.line[p.pos:i]
	p.pos = i
	d, err := time.ParseInLocation("2006-01-02T15:04:05", strings.TrimSuffix(span, "Z"), time.UTC)
	if err != nil {
		return nil, p.errf("%v", err)
	}
	return &Value{Type: ValueDatetime, V: d}, nil
}

// =========================
// Array Parsing
// =========================

// parseArray handles the homogeneity restriction: an array holds either
// exactly one scalar kind, or nothing but arrays (each checked on its own).
// The first element's span decides which, before any element is parsed.
func (p *parser) parseArray() (Node, error) {
	p.pos++ // opening '['
	if err := p.skipWhitespaceAndComments(); err != nil {
		return nil, err
	}

	if p.peek() == ']' {
		p.pos++
		return &Array{}, nil
	}

	valEnd := p.pos
	for valEnd < len(p.line) {
		c := p.line[valEnd]
		if c == ',' || c == ']' || c == '#' {
			break
		}
		valEnd++
	}
	t, err := p.valueType(valEnd)
	if err != nil {
		return nil, err
	}
	switch t {
	case typeString:
		return p.parseValueArray(ValueString)
	case typeInt:
		return p.parseValueArray(ValueInt)
	case typeFloat:
		return p.parseValueArray(ValueFloat)
	case typeDate:
		return p.parseValueArray(ValueDatetime)
	case typeArray:
		return p.parseNestedArray()
	default:
		return nil, p.errf("unable to parse array")
	}
}

func (p *parser) parseValueArray(want ValueKind) (*Array, error) {
	arr := &Array{}
	for !p.eol() && p.peek() != ']' {
		n, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		v, ok := n.(*Value)
		if !ok || v.Type != want {
			return nil, p.errf("arrays must be heterogeneous")
		}
		arr.Elems = append(arr.Elems, n)
		if err := p.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}
		if p.peek() != ',' {
			break
		}
		p.pos++
		if err := p.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}
	}
	if !p.eol() {
		p.pos++ // closing ']'
	}
	return arr, nil
}

func (p *parser) parseNestedArray() (*Array, error) {
	arr := &Array{}
	for !p.eol() && p.peek() != ']' {
		n, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		sub, ok := n.(*Array)
		if !ok {
			return nil, p.errf("arrays must be heterogeneous")
		}
		arr.Elems = append(arr.Elems, sub)
		if err := p.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}
		if p.peek() != ',' {
			break
		}
		p.pos++
		if err := p.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}
	}
	if !p.eol() {
		p.pos++
	}
	return arr, nil
}

// skipWhitespaceAndComments advances past whitespace inside an array,
// transparently pulling further lines when the current one is spent. Blank
// and comment lines between elements are legal; exhausting the stream with
// the array still open is not.
func (p *parser) skipWhitespaceAndComments() error {
	p.consumeWhitespace()
	for p.eol() || p.peek() == '#' {
		if !p.nextLine() {
			return p.errf("unclosed array")
		}
		p.consumeWhitespace()
	}
	return nil
}
