// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

// Token is the kind of the next value or structural element of a JSON
// document, as reported by Reader.Peek.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid     Token = iota // invalid token
	BeginArray               // left square bracket "["
	EndArray                 // right square bracket "]"
	BeginObject              // left brace "{"
	EndObject                // right brace "}"
	Name                     // quoted object member name
	String                   // quoted string value
	Number                   // number value
	Boolean                  // constant: true or false
	Null                     // constant: null
	EndDocument              // end of input
)

var tokenStr = [...]string{
	Invalid:     "invalid token",
	BeginArray:  `"["`,
	EndArray:    `"]"`,
	BeginObject: `"{"`,
	EndObject:   `"}"`,
	Name:        "name",
	String:      "string",
	Number:      "number",
	Boolean:     "boolean",
	Null:        "null",
	EndDocument: "end of document",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// Literal constants of the JSON grammar.
const (
	litTrue  = "true"
	litFalse = "false"
	litNull  = "null"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\r' || b == '\n' || b == '\t'
}

func isDigit(b byte) bool    { return '0' <= b && b <= '9' }
func isNumStart(b byte) bool { return b == '-' || isDigit(b) }
func isExpMark(b byte) bool  { return b == 'e' || b == 'E' }

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
