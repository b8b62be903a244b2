package toml

import "fmt"

// ParseError is the single error kind raised for grammar violations. Every
// violation aborts the whole parse; there is no partial-document result.
type ParseError struct {
	// Line is the 1-based source line the violation was detected on. It is
	// zero only for file-open failures, which happen before any line is read.
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return "toml: " + e.Msg
	}
	return fmt.Sprintf("toml: %s at line %d", e.Msg, e.Line)
}

// KeyError reports a lookup miss from Get or GetQualified. The typed
// convenience accessors never return it; they collapse misses into a false
// second result instead.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return e.Key + " is not a valid key"
}
