// Copyright 2026 Toni Melisma
// SPDX-License-Identifier: MIT

package imagemeta

import "encoding/binary"

// tiffMagicClassic and tiffMagicBig are the two defined values of the
// 16-bit magic word following a TIFF header's byte-order marker (spec
// §6.2). Classic TIFF IFDs are fully supported by ReadIFD/WalkIFDTree;
// BigTIFF's 64-bit directory layout (8-byte entry count, 20-byte entries,
// 8-byte offsets) is a structurally different IFD shape that this parser
// does not walk. A BigTIFF header is still recognized here — so callers
// get ErrInvalidTIFFMagic only for a genuinely unknown magic, never for a
// real BigTIFF file — and FormatCode/RawValue already carry the U64/I64/
// IFD64 codes BigTIFF values use, but WalkIFDTree on a BigTIFF IFD0 offset
// falls back to reading it as a classic IFD and fails soft (see
// DESIGN.md).
const (
	tiffMagicClassic = 0x002a
	tiffMagicBig     = 0x002b
)

// ParseTIFFHeader validates the 8-byte TIFF header (spec §6.2) and returns
// the root Scope (byte order, Base 0) plus IFD0's logical offset. A caller
// with no valid header has no parse at all. Apart from this check, the only
// fatal ParseTIFF failure is WalkIFDTree's inability to read IFD0 itself;
// every other failure is a Warning threaded through MetadataBuilder.
func ParseTIFFHeader(data []byte) (scope Scope, ifd0Offset int64, err error) {
	if len(data) < 8 {
		return Scope{}, 0, newParseError(ErrUnexpectedEOF, "TIFF header requires 8 bytes, got %d", len(data))
	}

	var order binary.ByteOrder
	switch {
	case data[0] == 'I' && data[1] == 'I':
		order = binary.LittleEndian
	case data[0] == 'M' && data[1] == 'M':
		order = binary.BigEndian
	default:
		return Scope{}, 0, newParseError(ErrInvalidByteOrder, "unrecognized byte-order marker %q", data[0:2])
	}

	magic := order.Uint16(data[2:4])
	if magic != tiffMagicClassic && magic != tiffMagicBig {
		return Scope{}, 0, newParseError(ErrInvalidTIFFMagic, "unrecognized TIFF magic 0x%04X", magic)
	}

	offset := order.Uint32(data[4:8])
	return Scope{Data: data, Order: order, Base: 0}, int64(offset), nil
}

// ParseTIFF is the direct in-memory entry point to the core described in
// spec §2-§4: validate the header, then walk the full IFD0/IFD1/EXIF/GPS/
// Interop/SubIFD/MakerNote tree (ifdtree.go) into a fresh MetadataBuilder.
// It returns the fatal header error directly, and returns WalkIFDTree's
// error (alongside the builder) when IFD0 itself cannot be read: its offset
// is out of bounds or its entry count is truncated. Every other failure
// surfaces as a Warning on the returned builder, not as err.
// Container adapters that already hold a TIFF-shaped byte range (PNG eXIf,
// WebP EXIF chunk, a JPEG APP1 payload past "Exif\0\0", TIFF/DNG/RAW files
// in full) can call this instead of driving WalkIFDTree by hand.
func ParseTIFF(data []byte, tags *Tags, opts BuilderOptions) (*MetadataBuilder, error) {
	scope, ifd0Offset, err := ParseTIFFHeader(data)
	if err != nil {
		return nil, err
	}

	builder := NewMetadataBuilder(tags, opts)
	builder.Format = "TIFF"
	if err := WalkIFDTree(scope, ifd0Offset, builder); err != nil {
		return builder, err
	}
	return builder, nil
}
