// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

import (
	"encoding/binary"
	"math"
)

// Scope is a byte-order-aware, bounds-checked view over a byte slice with a
// declared logical base offset. Offsets stored inside IFD entries are
// logical: the physical index into Data is offset-Base. Nested scopes (most
// notably some MakerNotes) may carry their own byte order and base; a Scope
// never mutates its parent, it is only ever replaced by a derived value.
//
// Scope is the realization of the ByteReader contract: every method returns
// an error instead of panicking, for any input, including adversarial ones.
type Scope struct {
	Data  []byte
	Order binary.ByteOrder
	Base  int64
}

// Resolve turns a logical offset into a physical index within Data. A base
// that exceeds the logical offset yields a negative index, which is a
// bounds error, not a wraparound.
func (s Scope) Resolve(logical int64) (int, error) {
	phys := logical - s.Base
	if phys < 0 || phys > int64(len(s.Data)) {
		return 0, newParseError(ErrIfdOffsetOutOfBounds, "offset %d is out of bounds (base %d, len %d)", logical, s.Base, len(s.Data))
	}
	return int(phys), nil
}

// Slice returns a sub-slice of Data of length n starting at physical index
// phys, bounds-checked against both the lower and upper bound. Overflow in
// phys+n is itself a bounds error rather than a silent wrap.
func (s Scope) Slice(phys, n int) ([]byte, error) {
	if phys < 0 || n < 0 {
		return nil, newParseError(ErrValueOutOfBounds, "negative slice bounds phys=%d n=%d", phys, n)
	}
	end := int64(phys) + int64(n)
	if end > int64(len(s.Data)) {
		return nil, newParseError(ErrValueOutOfBounds, "value offset %d + size %d exceeds data length %d", phys, n, len(s.Data))
	}
	return s.Data[phys:end], nil
}

func (s Scope) need(phys, n int) error {
	if phys < 0 {
		return newParseError(ErrUnexpectedEOF, "negative physical index %d", phys)
	}
	end := int64(phys) + int64(n)
	if end > int64(len(s.Data)) {
		return newParseError(ErrUnexpectedEOF, "unexpected end of data: need %d bytes at %d, have %d", n, phys, len(s.Data))
	}
	return nil
}

func (s Scope) U8(phys int) (uint8, error) {
	if err := s.need(phys, 1); err != nil {
		return 0, err
	}
	return s.Data[phys], nil
}

func (s Scope) I8(phys int) (int8, error) {
	v, err := s.U8(phys)
	return int8(v), err
}

func (s Scope) U16(phys int) (uint16, error) {
	if err := s.need(phys, 2); err != nil {
		return 0, err
	}
	return s.Order.Uint16(s.Data[phys : phys+2]), nil
}

func (s Scope) I16(phys int) (int16, error) {
	v, err := s.U16(phys)
	return int16(v), err
}

func (s Scope) U32(phys int) (uint32, error) {
	if err := s.need(phys, 4); err != nil {
		return 0, err
	}
	return s.Order.Uint32(s.Data[phys : phys+4]), nil
}

func (s Scope) I32(phys int) (int32, error) {
	v, err := s.U32(phys)
	return int32(v), err
}

func (s Scope) U64(phys int) (uint64, error) {
	if err := s.need(phys, 8); err != nil {
		return 0, err
	}
	return s.Order.Uint64(s.Data[phys : phys+8]), nil
}

func (s Scope) I64(phys int) (int64, error) {
	v, err := s.U64(phys)
	return int64(v), err
}

// F32 and F64 are bit-reinterpreted from the corresponding unsigned integer
// reads, per spec §4.1.
func (s Scope) F32(phys int) (float32, error) {
	v, err := s.U32(phys)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (s Scope) F64(phys int) (float64, error) {
	v, err := s.U64(phys)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// withData returns a derived Scope over new bytes with its own order and
// base, used when a MakerNote rebases (see makernote.go). The parent Scope
// is left untouched.
func (s Scope) withData(data []byte, order binary.ByteOrder, base int64) Scope {
	return Scope{Data: data, Order: order, Base: base}
}
