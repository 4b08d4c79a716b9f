// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jstream

import "github.com/creachadair/mds/mapset"

// NextList reads an array whose elements are each decoded by f, and returns
// the decoded elements in order.
func NextList[T any](r *Reader, f func(*Reader) (T, error)) ([]T, error) {
	if err := r.BeginArray(); err != nil {
		return nil, err
	}
	var out []T
	for {
		ok, err := r.HasNext()
		if err != nil {
			return nil, err
		} else if !ok {
			break
		}
		v, err := f(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := r.EndArray(); err != nil {
		return nil, err
	}
	return out, nil
}

// NextSet reads an array whose elements are each decoded by f, and returns
// the set of distinct decoded elements.
func NextSet[T comparable](r *Reader, f func(*Reader) (T, error)) (mapset.Set[T], error) {
	vs, err := NextList(r, f)
	if err != nil {
		return nil, err
	}
	return mapset.New(vs...), nil
}

// NextOrNull reads a value decoded by f, or a null. For null it returns nil.
func NextOrNull[T any](r *Reader, f func(*Reader) (T, error)) (*T, error) {
	tok, err := r.Peek()
	if err != nil {
		return nil, err
	} else if tok == Null {
		return nil, r.NextNull()
	}
	v, err := f(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// WriteList writes an array containing the elements of vs, each encoded by f.
// Methods of Writer may be passed directly:
//
//	jstream.WriteList(w, names, (*jstream.Writer).StringValue)
func WriteList[T any](w *Writer, vs []T, f func(*Writer, T) *Writer) *Writer {
	w.BeginArray()
	for _, v := range vs {
		f(w, v)
	}
	return w.EndArray()
}
