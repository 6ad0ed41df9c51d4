// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

import (
	"encoding/binary"
	"math"
)

// WriteEntry is the logical, in-memory counterpart of an on-disk IFD entry
// for the writer: a tag plus its already-encoded value bytes. MakerNote
// entries are represented with their raw bytes and are copied verbatim;
// the writer never re-interprets or re-emits MakerNote internal structure
// (spec §4.8 — offsets inside a MakerNote break on move, a known industry
// hazard addressed only by not moving it).
type WriteEntry struct {
	Tag    uint16
	Format FormatCode
	Count  uint32
	// Inline holds the entry bytes when Format.Size()*Count <= 4.
	Inline []byte
	// OutOfLine holds the entry bytes when they don't fit inline.
	OutOfLine []byte
}

// WriteIFD is one logical directory: its entries in insertion order and the
// next IFD in the chain (nil for end-of-chain). Entries must
// already be sorted the way the caller wants them serialized; the writer
// does not reorder them.
type WriteIFD struct {
	Entries []WriteEntry
	Next    *WriteIFD
}

// WriteTIFF serializes a single logical IFD chain (starting at ifd0) as a
// standard 8-byte-header TIFF byte stream in the given order, following the
// two-pass offset-reflow protocol of spec §4.8: pass one walks the chain to
// assign every entry's out-of-line value a provisional position after the
// final IFD; pass two emits bytes with those positions resolved.
func WriteTIFF(ifd0 *WriteIFD, order binary.AppendByteOrder) ([]byte, error) {
	chain := flattenChain(ifd0)

	// Pass one: compute each IFD's size and the position where out-of-line
	// values begin, in insertion order after the final IFD.
	const headerSize = 8
	ifdSizes := make([]int64, len(chain))
	var totalIfdBytes int64
	for i, ifd := range chain {
		size := int64(2 + 12*len(ifd.Entries) + 4)
		ifdSizes[i] = size
		totalIfdBytes += size
	}

	valueAreaStart := headerSize + totalIfdBytes
	if valueAreaStart > math.MaxUint32 {
		return nil, newParseError(ErrIfdTooLarge, "IFD too large to serialize: size %d exceeds uint32 max", valueAreaStart)
	}

	valueOffsets := make([][]int64, len(chain))
	cursor := valueAreaStart
	for i, ifd := range chain {
		offs := make([]int64, len(ifd.Entries))
		for j, e := range ifd.Entries {
			if len(e.OutOfLine) > 0 {
				offs[j] = cursor
				cursor += int64(len(e.OutOfLine))
			}
		}
		valueOffsets[i] = offs
	}
	if cursor > math.MaxUint32 {
		return nil, newParseError(ErrIfdTooLarge, "IFD too large to serialize: size %d exceeds uint32 max", cursor)
	}

	// Pass two: emit.
	buf := make([]byte, 0, cursor)
	buf = appendHeader(buf, order)

	ifdStart := make([]int64, len(chain))
	pos := int64(headerSize)
	for i := range chain {
		ifdStart[i] = pos
		pos += ifdSizes[i]
	}

	for i, ifd := range chain {
		buf = order.AppendUint16(buf, uint16(len(ifd.Entries)))
		for j, e := range ifd.Entries {
			buf = order.AppendUint16(buf, e.Tag)
			buf = order.AppendUint16(buf, uint16(e.Format))
			buf = order.AppendUint32(buf, e.Count)
			if len(e.OutOfLine) > 0 {
				buf = order.AppendUint32(buf, uint32(valueOffsets[i][j]))
			} else {
				var inline [4]byte
				copy(inline[:], e.Inline)
				buf = append(buf, inline[:]...)
			}
		}
		if i+1 < len(chain) {
			buf = order.AppendUint32(buf, uint32(ifdStart[i+1]))
		} else {
			buf = order.AppendUint32(buf, 0)
		}
	}

	for _, ifd := range chain {
		for _, e := range ifd.Entries {
			if len(e.OutOfLine) > 0 {
				buf = append(buf, e.OutOfLine...)
			}
		}
	}

	return buf, nil
}

func appendHeader(buf []byte, order binary.AppendByteOrder) []byte {
	if order == binary.BigEndian {
		buf = append(buf, 'M', 'M')
	} else {
		buf = append(buf, 'I', 'I')
	}
	buf = order.AppendUint16(buf, 0x002A)
	// IFD0 always starts immediately after the 8-byte header.
	buf = order.AppendUint32(buf, 8)
	return buf
}

func flattenChain(ifd0 *WriteIFD) []*WriteIFD {
	var out []*WriteIFD
	for ifd := ifd0; ifd != nil; ifd = ifd.Next {
		out = append(out, ifd)
	}
	return out
}
