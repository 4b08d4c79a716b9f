// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"fmt"
	"strings"
)

// Transcode reads every value from src and writes the same token sequence to
// dst, until src reaches the end of its input. Numbers are carried as float64
// values. Transcode does not flush or close dst.
func Transcode(dst *Writer, src *Reader) error {
	for {
		tok, err := src.Peek()
		if err != nil {
			return err
		} else if tok == EndDocument {
			return dst.Err()
		}
		if err := transcodeOne(dst, src, tok); err != nil {
			return err
		}
		if err := dst.Err(); err != nil {
			return err
		}
	}
}

// transcodeOne copies the token tok, which src has peeked, to dst. A
// container is copied in full.
func transcodeOne(dst *Writer, src *Reader, tok Token) error {
	switch tok {
	case BeginArray:
		if err := src.BeginArray(); err != nil {
			return err
		}
		dst.BeginArray()
		if err := transcodeElems(dst, src, false); err != nil {
			return err
		}
		dst.EndArray()
		return src.EndArray()

	case BeginObject:
		if err := src.BeginObject(); err != nil {
			return err
		}
		dst.BeginObject()
		if err := transcodeElems(dst, src, true); err != nil {
			return err
		}
		dst.EndObject()
		return src.EndObject()

	case String:
		s, err := src.NextString()
		if err != nil {
			return err
		}
		dst.StringValue(s)

	case Number:
		v, err := src.NextFloat64()
		if err != nil {
			return err
		}
		dst.Float64Value(v)

	case Boolean:
		v, err := src.NextBool()
		if err != nil {
			return err
		}
		dst.BoolValue(v)

	case Null:
		if err := src.NextNull(); err != nil {
			return err
		}
		dst.NullValue()

	default:
		return fmt.Errorf("unexpected %v", tok)
	}
	return nil
}

// transcodeElems copies the elements (or members, if named) of the innermost
// open container of src.
func transcodeElems(dst *Writer, src *Reader, named bool) error {
	for {
		ok, err := src.HasNext()
		if err != nil {
			return err
		} else if !ok {
			return nil
		}
		if named {
			name, err := src.NextName()
			if err != nil {
				return err
			}
			dst.Name(name)
		}
		tok, err := src.Peek()
		if err != nil {
			return err
		}
		if err := transcodeOne(dst, src, tok); err != nil {
			return err
		}
	}
}

// PrettyPrintJSON returns an indented rendering of the JSON text s, as written
// by a Writer with pretty printing enabled.
func PrettyPrintJSON(s string) (string, error) { return reformat(s, true) }

// CompactJSON returns the JSON text s with all insignificant whitespace
// removed.
func CompactJSON(s string) (string, error) { return reformat(s, false) }

func reformat(s string, pretty bool) (string, error) {
	var buf strings.Builder
	w := NewWriter(&buf)
	w.PrettyPrint(pretty)
	if err := Transcode(w, NewReaderString(s)); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
