// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/jstream/internal/escape"
	"go4.org/mem"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{`a"b`, `a\"b`},
		{`a\b`, `a\\b`},
		{"a/b", `a\/b`},
		{"\b\f\n\r\t", `\b\f\n\r\t`},
		{"\x00\x1f", "\x00\x1f"},
		{"日本語", "日本語"},
	}
	for _, tc := range tests {
		if got := string(escape.Quote(mem.S(tc.input))); got != tc.want {
			t.Errorf("Quote(%q): got %#q, want %#q", tc.input, got, tc.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"no escapes", "no escapes"},
		{`\"\\\/\b\f\n\r\t`, "\"\\/\b\f\n\r\t"},
		{`x\u0041y`, "xAy"},
		{`\u00e9\u20AC`, "\u00e9\u20ac"},
		{`\u0000\uFFFF`, "\u0000\uffff"},
		{`\ud83d\ude00`, "\ufffd\ufffd"}, // surrogates are not paired
	}
	for _, tc := range tests {
		got, err := escape.Unquote(mem.S(tc.input))
		if err != nil {
			t.Errorf("Unquote(%#q): unexpected error: %v", tc.input, err)
		} else if string(got) != tc.want {
			t.Errorf("Unquote(%#q): got %q, want %q", tc.input, got, tc.want)
		}
	}

	for _, bad := range []string{`\`, `abc\`, `\x`, `\u12`, `\u12x4`, `\U0041`} {
		if got, err := escape.Unquote(mem.S(bad)); err == nil {
			t.Errorf("Unquote(%#q): got %q, want error", bad, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a\"b\\c/d\be\ff\ng\rh\ti", "\x00\u00ff\uffff", "mixed \\\" quotes"} {
		got, err := escape.Unquote(mem.B(escape.Quote(mem.S(s))))
		if err != nil {
			t.Errorf("Unquote(Quote(%q)): unexpected error: %v", s, err)
		} else if string(got) != s {
			t.Errorf("Unquote(Quote(%q)): got %q", s, got)
		}
	}
}

func TestParseHex4(t *testing.T) {
	v, err := escape.ParseHex4(mem.S("aB09"))
	if err != nil || v != 0xab09 {
		t.Errorf("ParseHex4(aB09): got %x, %v; want ab09, nil", v, err)
	}
	if _, err := escape.ParseHex4(mem.S("abc")); err == nil {
		t.Error("ParseHex4(abc): got nil, want error")
	}
}
