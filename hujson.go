// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"bytes"

	"github.com/tailscale/hujson"
)

// NewReaderHuJSON constructs a Reader for src, which may be written in the
// HuJSON dialect: JSON extended with comments and trailing commas. The
// extensions are removed before reading, so the Reader enforces the strict
// grammar on the result. Locations reported by the Reader refer to the
// standardized text, which preserves the line and column of each token. The
// contents of src are not modified.
func NewReaderHuJSON(src []byte) (*Reader, error) {
	std, err := hujson.Standardize(bytes.Clone(src))
	if err != nil {
		return nil, err
	}
	return NewReader(bytes.NewReader(std)), nil
}
