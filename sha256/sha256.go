// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sha256 implements the SHA256 hash algorithm as defined in
// FIPS 180-4, built from 32-bit word operations.
//
// A message is padded into 512-bit blocks, each block is expanded into a
// 64-word schedule, and the schedule is compressed into the running state.
// Blocks of one message are processed strictly in order; independent
// messages share nothing but the constant tables and may be hashed
// concurrently.
package sha256

import (
	"encoding/hex"
	"reflect"

	"github.com/pkg/errors"
)

// Sum256 returns the SHA256 checksum of the data.
func Sum256(data []byte) [Size]byte {
	blocks, err := Pad(data)
	if err != nil {
		// A slice this long cannot be allocated.
		panic(err)
	}
	return sumBlocks(blocks)
}

// SumBits returns the SHA256 checksum of the first bitLen bits of message.
func SumBits(message []byte, bitLen uint64) ([Size]byte, error) {
	blocks, err := PadBits(message, bitLen)
	if err != nil {
		return [Size]byte{}, err
	}
	return sumBlocks(blocks), nil
}

func sumBlocks(blocks []Block) [Size]byte {
	s := IV
	for _, b := range blocks {
		w := Expand(b)
		s = Compress(s, &w)
	}
	return s.Bytes()
}

// Hash returns the lowercase hex SHA256 digest of message, which must be
// text or byte data: a string, a byte slice, or a named type of either
// kind such as json.RawMessage. Anything else yields ErrInvalidInputKind.
func Hash(message interface{}) (string, error) {
	data, err := messageBytes(message)
	if err != nil {
		return "", err
	}
	sum := Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func messageBytes(message interface{}) ([]byte, error) {
	switch m := message.(type) {
	case string:
		return []byte(m), nil
	case []byte:
		return m, nil
	}
	v := reflect.ValueOf(message)
	switch {
	case v.Kind() == reflect.String:
		return []byte(v.String()), nil
	case v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8:
		return v.Bytes(), nil
	}
	return nil, errors.Wrapf(ErrInvalidInputKind, "got %T", message)
}

// HashString returns the lowercase hex SHA256 digest of s.
func HashString(s string) string {
	sum := Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// BlockTrace records how one block moved the running state.
type BlockTrace struct {
	Block    Block
	Schedule Schedule
	In       State
	Out      State
}

// Trace hashes message like Sum256 and records every block step.
func Trace(message []byte) ([]BlockTrace, error) {
	blocks, err := Pad(message)
	if err != nil {
		return nil, err
	}
	traces := make([]BlockTrace, 0, len(blocks))
	s := IV
	for _, b := range blocks {
		t := BlockTrace{Block: b, Schedule: Expand(b), In: s}
		s = Compress(s, &t.Schedule)
		t.Out = s
		traces = append(traces, t)
	}
	return traces, nil
}
