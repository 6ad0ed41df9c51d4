// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

// FormatCode enumerates the TIFF/EXIF primitive types: the 12 classic TIFF
// types, EXIF 3.0's UTF8 extension, and the three BigTIFF 64-bit
// extensions. This supersedes metadecoder_exif.go's classic-only exifType
// enum for the new in-memory core; exifType remains in use by the
// streaming container decoders until they are migrated (see
// metadecoder_exif.go).
type FormatCode uint16

const (
	FormatU8        FormatCode = 1
	FormatASCII     FormatCode = 2
	FormatU16       FormatCode = 3
	FormatU32       FormatCode = 4
	FormatURational FormatCode = 5
	FormatI8        FormatCode = 6
	FormatUndef     FormatCode = 7
	FormatI16       FormatCode = 8
	FormatI32       FormatCode = 9
	FormatSRational FormatCode = 10
	FormatF32       FormatCode = 11
	FormatF64       FormatCode = 12
	// BigTIFF extensions.
	FormatU64   FormatCode = 16
	FormatI64   FormatCode = 17
	FormatIFD64 FormatCode = 18
	// EXIF 3.0 extension.
	FormatUTF8 FormatCode = 129
)

var formatSizes = map[FormatCode]int{
	FormatU8:        1,
	FormatASCII:     1,
	FormatU16:       2,
	FormatU32:       4,
	FormatURational: 8,
	FormatI8:        1,
	FormatUndef:     1,
	FormatI16:       2,
	FormatI32:       4,
	FormatSRational: 8,
	FormatF32:       4,
	FormatF64:       8,
	FormatU64:       8,
	FormatI64:       8,
	FormatIFD64:     8,
	FormatUTF8:      1,
}

// FormatFromU16 accepts only the defined codes. An unrecognized code is not
// an error here; the IFD walker skips the entry rather than failing (spec
// §4.2).
func FormatFromU16(code uint16) (FormatCode, bool) {
	fc := FormatCode(code)
	_, ok := formatSizes[fc]
	return fc, ok
}

// Size returns the per-element byte width; 0 for an unrecognized code.
func (f FormatCode) Size() int {
	return formatSizes[f]
}

func (f FormatCode) String() string {
	switch f {
	case FormatU8:
		return "U8"
	case FormatASCII:
		return "ASCII"
	case FormatU16:
		return "U16"
	case FormatU32:
		return "U32"
	case FormatURational:
		return "URational"
	case FormatI8:
		return "I8"
	case FormatUndef:
		return "Undef"
	case FormatI16:
		return "I16"
	case FormatI32:
		return "I32"
	case FormatSRational:
		return "SRational"
	case FormatF32:
		return "F32"
	case FormatF64:
		return "F64"
	case FormatU64:
		return "U64"
	case FormatI64:
		return "I64"
	case FormatIFD64:
		return "IFD64"
	case FormatUTF8:
		return "UTF8"
	default:
		return "Unknown"
	}
}
