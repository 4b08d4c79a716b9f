// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import "go4.org/mem"

// escByte maps bytes that must be escaped to the letter following the
// backslash in their escape sequence. Zero means the byte is copied as-is.
var escByte = [256]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

// Quote encodes a string to escape characters for inclusion in a JSON string.
// The enclosing quotation marks are not added.
func Quote(src mem.RO) []byte { return Append(make([]byte, 0, src.Len()), src) }

// Append appends the escaped encoding of src to dst and returns the extended
// slice. Quotation marks, backslash, solidus, backspace, form feed, newline,
// carriage return and tab are escaped; all other bytes are copied verbatim.
func Append(dst []byte, src mem.RO) []byte {
	start := 0
	for i := 0; i < src.Len(); i++ {
		e := escByte[src.At(i)]
		if e == 0 {
			continue
		}
		dst = mem.Append(dst, src.Slice(start, i))
		dst = append(dst, '\\', e)
		start = i + 1
	}
	return mem.Append(dst, src.SliceFrom(start))
}
