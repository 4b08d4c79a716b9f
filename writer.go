// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"bufio"
	"cmp"
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jstream/internal/escape"

	"go4.org/mem"
)

const indentStep = 4 // spaces per nesting level when pretty-printing

var errIncomplete = errors.New("unclosed array or object")

// A Writer writes a JSON document as a stream of tokens. Each method writes
// one token and returns the Writer, so calls may be chained:
//
//	w := jstream.NewWriter(os.Stdout)
//	w.BeginObject().Name("ok").BoolValue(true).EndObject()
//	if err := w.Close(); err != nil {
//	   log.Fatalf("Write failed: %v", err)
//	}
//
// A call that is not legal in the current structural context, or a value
// that cannot be represented in JSON, records an error. The first error is
// reported by Err, Flush, and Close, and all later calls are ignored.
//
// Output is buffered; call Flush or Close to deliver it. Calling any method
// other than Err, Flush, or Close after Close panics. A Writer is not safe
// for concurrent use by multiple goroutines.
type Writer struct {
	w      *bufio.Writer
	closer io.Closer
	stk    frameStack
	pretty bool
	begun  bool // a top-level value has been started
	closed bool
	off    int // bytes written so far
	err    error
	buf    []byte // scratch space for encoding values
}

// NewWriter constructs a new Writer that delivers output to w. If w
// implements io.Closer, it is closed by the Close method of the Writer.
func NewWriter(w io.Writer) *Writer {
	wr := &Writer{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		wr.closer = c
	}
	return wr
}

// PrettyPrint configures w to indent (true) or compact (false) its output.
// When enabled, each array element and object member begins on a new line
// indented four spaces per level of nesting, names are followed by ": ", and
// closing delimiters are placed on their own line. This must be set before
// the first value is written.
func (w *Writer) PrettyPrint(ok bool) { w.pretty = ok }

// BeginArray writes the opening bracket of an array.
func (w *Writer) BeginArray() *Writer { return w.begin(arrayOpen, '[') }

// BeginObject writes the opening brace of an object.
func (w *Writer) BeginObject() *Writer { return w.begin(objectOpen, '{') }

// EndArray writes the closing bracket of the innermost open array.
func (w *Writer) EndArray() *Writer { return w.end(opEndArray, ']') }

// EndObject writes the closing brace of the innermost open object.
func (w *Writer) EndObject() *Writer { return w.end(opEndObject, '}') }

// Name writes the name of an object member. It must be followed by the value
// of the member.
func (w *Writer) Name(name string) *Writer {
	if !w.usable() {
		return w
	}
	if w.stk.top() == objectValue {
		w.apply(opComma)
		w.put(',')
	}
	if !w.apply(opName) {
		return w
	}
	if w.pretty {
		w.newline()
	}
	w.putString(name)
	w.put(':')
	if w.pretty {
		w.put(' ')
	}
	w.stk.push(property)
	return w
}

// BoolValue writes a Boolean value.
func (w *Writer) BoolValue(v bool) *Writer {
	if w.beforeValue() {
		w.putBytes(strconv.AppendBool(w.buf[:0], v))
	}
	return w
}

// Int32Value writes an integer value.
func (w *Writer) Int32Value(v int32) *Writer { return w.Int64Value(int64(v)) }

// Int64Value writes an integer value.
func (w *Writer) Int64Value(v int64) *Writer {
	if w.beforeValue() {
		w.putBytes(strconv.AppendInt(w.buf[:0], v, 10))
	}
	return w
}

// Float64Value writes a number value. Integral values of magnitude less than
// 1e21 are written without a fraction or exponent. NaN and infinite values
// have no JSON representation, and are reported as a *NumberFormatError.
func (w *Writer) Float64Value(v float64) *Writer {
	if !w.usable() {
		return w
	} else if math.IsNaN(v) || math.IsInf(v, 0) {
		w.err = &NumberFormatError{
			Offset:  w.off,
			Text:    strconv.FormatFloat(v, 'g', -1, 64),
			Message: "not representable in JSON",
		}
		return w
	}
	if w.beforeValue() {
		w.putBytes(appendFloat(w.buf[:0], v))
	}
	return w
}

// StringValue writes a string value.
func (w *Writer) StringValue(s string) *Writer {
	if w.beforeValue() {
		w.putString(s)
	}
	return w
}

// NullableString writes the string value *s, or null if s == nil.
func (w *Writer) NullableString(s *string) *Writer {
	if s == nil {
		return w.NullValue()
	}
	return w.StringValue(*s)
}

// NullValue writes a null value.
func (w *Writer) NullValue() *Writer {
	if w.beforeValue() {
		w.putBytes(append(w.buf[:0], litNull...))
	}
	return w
}

// Err reports the first error recorded by w, or nil.
func (w *Writer) Err() error { return w.err }

// Flush writes any buffered output to the underlying writer. It reports the
// first error recorded by w, if any.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// Close flushes buffered output and closes the underlying writer, if it
// implements io.Closer. It reports an error if an array or object is still
// open. Calling Close more than once has no further effect.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.err == nil && len(w.stk) != 0 {
		w.fail(errIncomplete)
	}
	ferr := w.w.Flush()
	var cerr error
	if w.closer != nil {
		cerr = w.closer.Close()
	}
	return cmp.Or(w.err, ferr, cerr)
}

// usable reports whether w can accept more output. It panics if w is closed.
func (w *Writer) usable() bool {
	if w.closed {
		panic("jstream: write to closed Writer")
	}
	return w.err == nil
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = &StateError{Offset: w.off, Message: err.Error(), err: err}
	}
}

// apply applies o to the innermost frame, recording an error on failure.
func (w *Writer) apply(o op) bool {
	if err := w.stk.apply(o); err != nil {
		w.fail(err)
		return false
	}
	return true
}

// beforeValue accounts for a value about to be written, and writes the
// separators that precede it. It reports whether the value should be written.
func (w *Writer) beforeValue() bool {
	if !w.usable() {
		return false
	}
	top := w.stk.top()
	switch top {
	case topLevel:
		if w.begun {
			w.put('\n')
		}
		w.begun = true
	case arrayValue:
		w.apply(opComma)
		w.put(',')
	}
	if !w.apply(opValue) {
		return false
	}
	if w.pretty && top.isArray() {
		w.newline()
	}
	return true
}

func (w *Writer) begin(f frame, open byte) *Writer {
	if w.beforeValue() {
		w.put(open)
		w.stk.push(f)
	}
	return w
}

func (w *Writer) end(o op, delim byte) *Writer {
	if !w.usable() || !w.apply(o) {
		return w
	}
	if w.pretty {
		w.newline()
	}
	w.put(delim)
	return w
}

// newline writes a line break and the indentation for the current depth.
func (w *Writer) newline() {
	w.put('\n')
	for range w.stk.containers() * indentStep {
		w.put(' ')
	}
}

func (w *Writer) putString(s string) {
	w.buf = append(w.buf[:0], '"')
	w.buf = escape.Append(w.buf, mem.S(s))
	w.buf = append(w.buf, '"')
	w.putBytes(w.buf)
}

func (w *Writer) put(b byte) {
	if err := w.w.WriteByte(b); err != nil && w.err == nil {
		w.err = err
	}
	w.off++
}

func (w *Writer) putBytes(bs []byte) {
	n, err := w.w.Write(bs)
	if err != nil && w.err == nil {
		w.err = err
	}
	w.off += n
}

// appendFloat appends the JSON encoding of a finite v to dst. It uses the
// shortest representation that round-trips, in exponent form only for
// magnitudes below 1e-6 or at least 1e21.
func appendFloat(dst []byte, v float64) []byte {
	abs := math.Abs(v)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	dst = strconv.AppendFloat(dst, v, format, -1, 64)
	if format == 'e' {
		// Clean up e-09 to e-9.
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}
