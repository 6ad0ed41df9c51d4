// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

import (
	"fmt"
	"strings"
)

// URational is a pair of unsigned 32-bit integers (numerator, denominator).
// A denominator of 0 is preserved losslessly: Float64 returns 0.0, String
// returns "n/0", matching spec §3.
type URational struct {
	Num, Den uint32
}

func (r URational) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r URational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// SRational is the signed counterpart of URational.
type SRational struct {
	Num, Den int32
}

func (r SRational) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r SRational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// RawValue is the decoded-but-not-yet-normalized form of an IfdEntry's
// payload: an ordered sequence of the FormatCode's primitive, still bound to
// the scope's byte order. Exactly one of the slice fields is populated,
// selected by Format. ASCII has its trailing nulls stripped; Undef is
// opaque bytes.
type RawValue struct {
	Format FormatCode

	U8s        []uint8
	I8s        []int8
	U16s       []uint16
	I16s       []int16
	U32s       []uint32
	I32s       []int32
	U64s       []uint64
	I64s       []int64
	F32s       []float32
	F64s       []float64
	URationals []URational
	SRationals []SRational
	ASCII      string
	UTF8       string
	Undef      []byte
}

// decodeRawValue interprets raw bytes of the given format and count using
// the scope's byte order. It does not bounds-check length against the
// scope; the caller (ifdentry.go) has already sliced exactly the needed
// bytes.
func decodeRawValue(s Scope, format FormatCode, count uint32, data []byte) (RawValue, error) {
	rv := RawValue{Format: format}
	switch format {
	case FormatASCII:
		rv.ASCII = strings.TrimRight(string(data), "\x00")
	case FormatUTF8:
		rv.UTF8 = strings.TrimRight(string(data), "\x00")
	case FormatUndef:
		rv.Undef = append([]byte(nil), data...)
	case FormatU8:
		rv.U8s = data[:count]
	case FormatI8:
		for i := range int(count) {
			rv.I8s = append(rv.I8s, int8(data[i]))
		}
	case FormatU16:
		for i := range int(count) {
			rv.U16s = append(rv.U16s, s.Order.Uint16(data[i*2:]))
		}
	case FormatI16:
		for i := range int(count) {
			rv.I16s = append(rv.I16s, int16(s.Order.Uint16(data[i*2:])))
		}
	case FormatU32:
		for i := range int(count) {
			rv.U32s = append(rv.U32s, s.Order.Uint32(data[i*4:]))
		}
	case FormatI32:
		for i := range int(count) {
			rv.I32s = append(rv.I32s, int32(s.Order.Uint32(data[i*4:])))
		}
	case FormatU64, FormatIFD64:
		for i := range int(count) {
			rv.U64s = append(rv.U64s, s.Order.Uint64(data[i*8:]))
		}
	case FormatI64:
		for i := range int(count) {
			rv.I64s = append(rv.I64s, int64(s.Order.Uint64(data[i*8:])))
		}
	case FormatF32:
		for i := range int(count) {
			v, err := s.withData(data, s.Order, 0).F32(i * 4)
			if err != nil {
				return RawValue{}, err
			}
			rv.F32s = append(rv.F32s, v)
		}
	case FormatF64:
		for i := range int(count) {
			v, err := s.withData(data, s.Order, 0).F64(i * 8)
			if err != nil {
				return RawValue{}, err
			}
			rv.F64s = append(rv.F64s, v)
		}
	case FormatURational:
		for i := range int(count) {
			off := i * 8
			rv.URationals = append(rv.URationals, URational{
				Num: s.Order.Uint32(data[off:]),
				Den: s.Order.Uint32(data[off+4:]),
			})
		}
	case FormatSRational:
		for i := range int(count) {
			off := i * 8
			rv.SRationals = append(rv.SRationals, SRational{
				Num: int32(s.Order.Uint32(data[off:])),
				Den: int32(s.Order.Uint32(data[off+4:])),
			})
		}
	default:
		return RawValue{}, newParseError(ErrInvalidFormatCode, "unsupported format code %d", format)
	}
	return rv, nil
}

// AttrValue is the public, decoded value type exposed by MetadataBuilder.
// It is distinct from RawValue: endianness has already been normalized,
// strings are trimmed, and enumerated lookups may have been applied.
type AttrValue interface {
	fmt.Stringer
	isAttrValue()
}

type AttrString string

func (AttrString) isAttrValue()    {}
func (v AttrString) String() string { return string(v) }

type AttrInt64 int64

func (AttrInt64) isAttrValue()     {}
func (v AttrInt64) String() string { return fmt.Sprintf("%d", int64(v)) }

type AttrUint64 uint64

func (AttrUint64) isAttrValue()     {}
func (v AttrUint64) String() string { return fmt.Sprintf("%d", uint64(v)) }

type AttrFloat64 float64

func (AttrFloat64) isAttrValue()     {}
func (v AttrFloat64) String() string { return fmt.Sprintf("%v", float64(v)) }

type AttrRational struct {
	Num, Den int64
}

func (AttrRational) isAttrValue() {}
func (v AttrRational) String() string {
	return fmt.Sprintf("%d/%d", v.Num, v.Den)
}

type AttrBytes []byte

func (AttrBytes) isAttrValue()     {}
func (v AttrBytes) String() string { return fmt.Sprintf("% x", []byte(v)) }

type AttrList []AttrValue

func (AttrList) isAttrValue() {}
func (v AttrList) String() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// ToAttrValue normalizes a RawValue into its public, detached AttrValue
// form. Single-element sequences collapse to a scalar; multi-element
// sequences become an AttrList.
func (rv RawValue) ToAttrValue() AttrValue {
	switch rv.Format {
	case FormatASCII:
		return AttrString(rv.ASCII)
	case FormatUTF8:
		return AttrString(rv.UTF8)
	case FormatUndef:
		return AttrBytes(rv.Undef)
	case FormatU8:
		return intList(len(rv.U8s), func(i int) AttrValue { return AttrUint64(rv.U8s[i]) })
	case FormatI8:
		return intList(len(rv.I8s), func(i int) AttrValue { return AttrInt64(rv.I8s[i]) })
	case FormatU16:
		return intList(len(rv.U16s), func(i int) AttrValue { return AttrUint64(rv.U16s[i]) })
	case FormatI16:
		return intList(len(rv.I16s), func(i int) AttrValue { return AttrInt64(rv.I16s[i]) })
	case FormatU32:
		return intList(len(rv.U32s), func(i int) AttrValue { return AttrUint64(rv.U32s[i]) })
	case FormatI32:
		return intList(len(rv.I32s), func(i int) AttrValue { return AttrInt64(rv.I32s[i]) })
	case FormatU64, FormatIFD64:
		return intList(len(rv.U64s), func(i int) AttrValue { return AttrUint64(rv.U64s[i]) })
	case FormatI64:
		return intList(len(rv.I64s), func(i int) AttrValue { return AttrInt64(rv.I64s[i]) })
	case FormatF32:
		return intList(len(rv.F32s), func(i int) AttrValue { return AttrFloat64(rv.F32s[i]) })
	case FormatF64:
		return intList(len(rv.F64s), func(i int) AttrValue { return AttrFloat64(rv.F64s[i]) })
	case FormatURational:
		return intList(len(rv.URationals), func(i int) AttrValue {
			return AttrRational{Num: int64(rv.URationals[i].Num), Den: int64(rv.URationals[i].Den)}
		})
	case FormatSRational:
		return intList(len(rv.SRationals), func(i int) AttrValue {
			return AttrRational{Num: int64(rv.SRationals[i].Num), Den: int64(rv.SRationals[i].Den)}
		})
	default:
		return AttrString("")
	}
}

func intList(n int, at func(int) AttrValue) AttrValue {
	if n == 1 {
		return at(0)
	}
	list := make(AttrList, n)
	for i := range n {
		list[i] = at(i)
	}
	return list
}
