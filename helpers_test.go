// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jstream_test

import (
	"testing"

	"github.com/creachadair/jstream"
	"github.com/google/go-cmp/cmp"
)

func TestNextList(t *testing.T) {
	r := jstream.NewReaderString(`[1,2,3,4,5]`)
	got, err := jstream.NextList(r, (*jstream.Reader).NextInt32)
	if err != nil {
		t.Fatalf("NextList: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int32{1, 2, 3, 4, 5}, got); diff != "" {
		t.Errorf("NextList (-want, +got):\n%s", diff)
	}

	r = jstream.NewReaderString(`[1,"two"]`)
	if got, err := jstream.NextList(r, (*jstream.Reader).NextInt32); err == nil {
		t.Errorf("NextList: got %v, want error", got)
	}
}

func TestNextSet(t *testing.T) {
	r := jstream.NewReaderString(`[1,2,2,2,3]`)
	got, err := jstream.NextSet(r, (*jstream.Reader).NextInt32)
	if err != nil {
		t.Fatalf("NextSet: unexpected error: %v", err)
	}
	if len(got) != 3 || !got.Has(1) || !got.Has(2) || !got.Has(3) {
		t.Errorf("NextSet: got %v, want {1, 2, 3}", got)
	}
}

func TestNextOrNull(t *testing.T) {
	r := jstream.NewReaderString(`{"a": 2, "b": null}`)
	must(t, r.BeginObject())

	get[string](t)(r.NextName())
	a, err := jstream.NextOrNull(r, (*jstream.Reader).NextInt32)
	if err != nil {
		t.Fatalf("NextOrNull: unexpected error: %v", err)
	} else if a == nil || *a != 2 {
		t.Errorf("NextOrNull: got %v, want 2", a)
	}

	get[string](t)(r.NextName())
	b, err := jstream.NextOrNull(r, (*jstream.Reader).NextInt32)
	if err != nil {
		t.Fatalf("NextOrNull: unexpected error: %v", err)
	} else if b != nil {
		t.Errorf("NextOrNull: got %v, want nil", *b)
	}
	must(t, r.EndObject())
}

func TestWriteList(t *testing.T) {
	got := writeString(t, false, func(w *jstream.Writer) {
		jstream.WriteList(w, []int32{1, 2, 3}, (*jstream.Writer).Int32Value)
	})
	if want := `[1,2,3]`; got != want {
		t.Errorf("WriteList: got %#q, want %#q", got, want)
	}

	got = writeString(t, true, func(w *jstream.Writer) {
		jstream.WriteList(w, nil, (*jstream.Writer).StringValue)
	})
	if want := "[\n]"; got != want {
		t.Errorf("WriteList: got %#q, want %#q", got, want)
	}
}
