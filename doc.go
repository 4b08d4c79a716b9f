// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jstream implements a streaming JSON reader and writer.
//
// Both the Reader and the Writer process a document as a sequence of tokens
// in depth-first order, without building a tree in memory. They enforce the
// strict grammar of RFC 8259: commas must separate elements, and may not lead
// or trail them; numbers must match
//
//	-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
//
// and the top level of a document read by a Reader is a sequence of arrays
// and objects.
//
// # Reading
//
// The Reader type implements a pull parser. The caller consumes each token by
// calling the method that matches its type, and the Reader reports an error
// if the input does not match:
//
//	r := jstream.NewReaderString(`{"array":[1,"zwei"]}`)
//	r.BeginObject()
//	name, _ := r.NextName()  // "array"
//	r.BeginArray()
//	n, _ := r.NextInt32()    // 1
//	s, _ := r.NextString()   // "zwei"
//	r.EndArray()
//	err := r.EndObject()
//
// Call HasNext to check whether an array or object has more elements, and
// Peek to learn the type of the next token. An error of concrete type
// *StateError reports input or calls that do not match the grammar, and an
// error of concrete type *NumberFormatError reports a malformed or
// unrepresentable number. Once a Reader has reported an error it is no
// longer usable.
//
// # Writing
//
// The Writer type implements a push encoder with a chainable API:
//
//	w := jstream.NewWriter(os.Stdout)
//	w.BeginObject().Name("array").BeginArray().
//	   Int32Value(1).StringValue("zwei").
//	   EndArray().EndObject()
//	if err := w.Close(); err != nil {
//	   log.Fatalf("Write failed: %v", err)
//	}
//
// Errors are recorded by the Writer and reported by its Err, Flush, and Close
// methods. Call PrettyPrint to enable indented output.
//
// # Reformatting
//
// The Transcode function copies a document from a Reader to a Writer, and
// PrettyPrintJSON and CompactJSON use it to reformat JSON text.
package jstream
