// Copyright 2026 Toni Melisma
// SPDX-License-Identifier: MIT

package imagemeta

import (
	"encoding/binary"
	"testing"

	qt "github.com/frankban/quicktest"
)

// TestParseTIFFHeaderBoundaries exercises the boundary cases of spec §8:
// empty input, a truncated header, and a well-formed-length header with an
// unrecognized magic.
func TestParseTIFFHeaderBoundaries(t *testing.T) {
	c := qt.New(t)

	_, _, err := ParseTIFFHeader(nil)
	c.Assert(err, qt.Not(qt.IsNil))
	c.Assert(err.(*ParseError).Kind, qt.Equals, ErrUnexpectedEOF)

	_, _, err = ParseTIFFHeader([]byte("II\x2a\x00\x08\x00\x00"))
	c.Assert(err, qt.Not(qt.IsNil))
	c.Assert(err.(*ParseError).Kind, qt.Equals, ErrUnexpectedEOF)

	_, _, err = ParseTIFFHeader([]byte("XX\x2a\x00\x08\x00\x00\x00"))
	c.Assert(err, qt.Not(qt.IsNil))
	c.Assert(err.(*ParseError).Kind, qt.Equals, ErrInvalidByteOrder)

	_, _, err = ParseTIFFHeader([]byte("II\xff\xff\x08\x00\x00\x00"))
	c.Assert(err, qt.Not(qt.IsNil))
	c.Assert(err.(*ParseError).Kind, qt.Equals, ErrInvalidTIFFMagic)

	// Minimum valid TIFF: 8-byte header, IFD0 at offset 8 declaring 0
	// entries, immediately followed by a 0 next-IFD offset.
	minimal := []byte{
		'I', 'I', 0x2a, 0x00, 0x08, 0x00, 0x00, 0x00,
		0x00, 0x00, // entry count = 0
		0x00, 0x00, 0x00, 0x00, // next IFD = 0
	}
	scope, ifd0, err := ParseTIFFHeader(minimal)
	c.Assert(err, qt.IsNil)
	c.Assert(ifd0, qt.Equals, int64(8))

	tags := &Tags{}
	builder := NewMetadataBuilder(tags, DefaultBuilderOptions())
	c.Assert(WalkIFDTree(scope, ifd0, builder), qt.IsNil)
	c.Assert(len(tags.EXIF()), qt.Equals, 0)
}

// TestParseTIFFS1EmptyIFD0 is spec §8 scenario S1.
func TestParseTIFFS1EmptyIFD0(t *testing.T) {
	c := qt.New(t)
	data := []byte{
		0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	tags := &Tags{}
	_, err := ParseTIFF(data, tags, DefaultBuilderOptions())
	c.Assert(err, qt.IsNil)
	c.Assert(len(tags.EXIF()), qt.Equals, 0)
}

// TestParseTIFFS2MakeTag is spec §8 scenario S2: an IFD0 with one Make
// ASCII entry whose value lives out-of-line at offset 26.
func TestParseTIFFS2MakeTag(t *testing.T) {
	c := qt.New(t)
	data := make([]byte, 32)
	copy(data[0:8], []byte{0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00})
	// IFD0: 1 entry.
	data[8] = 0x01
	data[9] = 0x00
	// Entry: tag 0x010F (Make), format ASCII(2), count 6, offset 26.
	le16(data[10:], 0x010F)
	le16(data[12:], uint16(FormatASCII))
	le32(data[14:], 6)
	le32(data[18:], 26)
	// next IFD offset = 0.
	le32(data[22:], 0)
	copy(data[26:32], []byte("Canon\x00"))

	tags := &Tags{}
	_, err := ParseTIFF(data, tags, DefaultBuilderOptions())
	c.Assert(err, qt.IsNil)
	makeTag, ok := tags.EXIF()["Make"]
	c.Assert(ok, qt.IsTrue)
	c.Assert(makeTag.Value.(AttrValue).String(), qt.Equals, "Canon")
}

// TestParseTIFFS3RecursiveIfd is spec §8 scenario S3: IFD0's next-IFD
// offset points back at IFD0 itself.
func TestParseTIFFS3RecursiveIfd(t *testing.T) {
	c := qt.New(t)
	data := []byte{
		0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	tags := &Tags{}
	scope, ifd0, err := ParseTIFFHeader(data)
	c.Assert(err, qt.IsNil)
	builder := NewMetadataBuilder(tags, DefaultBuilderOptions())
	c.Assert(WalkIFDTree(scope, ifd0, builder), qt.IsNil)
	c.Assert(len(tags.EXIF()), qt.Equals, 0)

	var sawRecursive bool
	for _, w := range builder.Warnings() {
		if w.Kind == ErrRecursiveIfd {
			sawRecursive = true
		}
	}
	c.Assert(sawRecursive, qt.IsTrue)
}

// TestParseTIFFS4HugeCount is spec §8 scenario S4: an entry whose declared
// count, times its format size, vastly exceeds the file. required is
// computed in 64-bit arithmetic (ifdentry.go's checkedMul), so a 32-bit
// count can never actually overflow it; the huge required size instead
// fails the subsequent bounds check as ErrValueOutOfBounds. Either label
// satisfies the invariant this scenario tests: the entry is skipped and
// parsing continues without a panic (see DESIGN.md for this Open Question
// resolution).
func TestParseTIFFS4HugeCount(t *testing.T) {
	c := qt.New(t)
	data := make([]byte, 26)
	copy(data[0:8], []byte{0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00})
	data[8] = 0x01
	le16(data[10:], 0x00FF)
	le16(data[12:], uint16(FormatU32))
	le32(data[14:], 0xFFFFFFFF)
	le32(data[18:], 0)
	le32(data[22:], 0)

	tags := &Tags{}
	builder, err := ParseTIFF(data, tags, DefaultBuilderOptions())
	c.Assert(err, qt.IsNil)
	c.Assert(len(tags.EXIF()), qt.Equals, 0)

	var sawSkip bool
	for _, w := range builder.Warnings() {
		if w.Kind == ErrValueSizeOverflow || w.Kind == ErrValueOutOfBounds {
			sawSkip = true
		}
	}
	c.Assert(sawSkip, qt.IsTrue)
}

// TestParseTIFFS5TooManyEntries is spec §8 scenario S5: IFD0 advertises
// 50000 entries in a 200-byte file.
func TestParseTIFFS5TooManyEntries(t *testing.T) {
	c := qt.New(t)
	data := make([]byte, 200)
	copy(data[0:8], []byte{0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00})
	le16(data[8:], 50000)

	tags := &Tags{}
	builder, err := ParseTIFF(data, tags, DefaultBuilderOptions())
	c.Assert(err, qt.IsNil)
	c.Assert(len(tags.EXIF()), qt.Equals, 0)

	var sawTooMany bool
	for _, w := range builder.Warnings() {
		if w.Kind == ErrTooManyIfdEntries {
			sawTooMany = true
		}
	}
	c.Assert(sawTooMany, qt.IsTrue)
}

// TestParseTIFFS7AppleMakerNote is spec §8 scenario S7: an Apple MakerNote
// whose payload carries one tag, surfaced under the MakerNotes namespace.
func TestParseTIFFS7AppleMakerNote(t *testing.T) {
	c := qt.New(t)

	// Build the Apple MakerNote payload first: 14-byte header, then an IFD
	// with one entry (tag 0x0003 AETarget, a SHORT value of 7), no further
	// sub-IFDs.
	mn := make([]byte, 14+2+12+4)
	copy(mn[0:10], []byte("Apple iOS\x00"))
	le32(mn[10:], 0x00010001)
	pos := 14
	le16(mn[pos:], 1) // one entry
	pos += 2
	le16(mn[pos:], 0x0003)
	le16(mn[pos+2:], uint16(FormatU16))
	le32(mn[pos+4:], 1)
	le16(mn[pos+8:], 7) // inline value
	pos += 12
	le32(mn[pos:], 0) // next IFD = 0

	// IFD0: Make="Apple\0" (inline doesn't fit, use out-of-line) + ExifIFD
	// pointer. ExifIFD: MakerNote tag pointing at mn bytes appended after.
	var data []byte
	data = append(data, 0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00)

	ifd0Entries := 2
	ifd0Start := len(data)
	le16App(&data, uint16(ifd0Entries))
	// Entry 1: Make, ASCII, count 6, offset resolved later.
	makeEntryPos := len(data)
	le16App(&data, 0x010F)
	le16App(&data, uint16(FormatASCII))
	le32App(&data, 6)
	le32App(&data, 0) // placeholder offset
	// Entry 2: ExifOffset, LONG, count 1, inline offset resolved later.
	exifEntryPos := len(data)
	le16App(&data, 0x8769)
	le16App(&data, uint16(FormatU32))
	le32App(&data, 1)
	le32App(&data, 0) // placeholder offset
	le32App(&data, 0) // next IFD after IFD0 = 0
	_ = ifd0Start

	makeValueOffset := len(data)
	data = append(data, []byte("Apple\x00")...)

	exifIFDOffset := len(data)
	le16App(&data, 1) // one entry: MakerNote
	mnEntryPos := len(data)
	le16App(&data, 0x927C)
	le16App(&data, uint16(FormatUndef))
	le32App(&data, uint32(len(mn)))
	le32App(&data, 0) // placeholder offset
	le32App(&data, 0) // next IFD = 0

	mnOffset := len(data)
	data = append(data, mn...)

	le32(data[makeEntryPos+8:], uint32(makeValueOffset))
	le32(data[exifEntryPos+8:], uint32(exifIFDOffset))
	le32(data[mnEntryPos+8:], uint32(mnOffset))

	tags := &Tags{}
	_, err := ParseTIFF(data, tags, DefaultBuilderOptions())
	c.Assert(err, qt.IsNil)

	found := false
	for name, info := range tags.EXIF() {
		if name == "AETarget" && info.Namespace == "MakerNotes:Apple" {
			found = true
		}
	}
	c.Assert(found, qt.IsTrue)
}

// TestWriteTIFFRoundtrip is spec §8 property 5 in deterministic form: a
// two-IFD chain with both in-line and out-of-line values, serialized by
// WriteTIFF, must parse back to the same decoded tag/value pairs.
func TestWriteTIFFRoundtrip(t *testing.T) {
	c := qt.New(t)

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		orientation := make([]byte, 2)
		order.PutUint16(orientation, 1)
		compression := make([]byte, 2)
		order.PutUint16(compression, 6)

		ifd1 := &WriteIFD{Entries: []WriteEntry{
			{Tag: 0x0103, Format: FormatU16, Count: 1, Inline: compression},
		}}
		ifd0 := &WriteIFD{Entries: []WriteEntry{
			{Tag: 0x010F, Format: FormatASCII, Count: 6, OutOfLine: []byte("Canon\x00")},
			{Tag: 0x0112, Format: FormatU16, Count: 1, Inline: orientation},
		}, Next: ifd1}

		out, err := WriteTIFF(ifd0, order.(binary.AppendByteOrder))
		c.Assert(err, qt.IsNil)

		tags := &Tags{}
		builder, err := ParseTIFF(out, tags, DefaultBuilderOptions())
		c.Assert(err, qt.IsNil)
		c.Assert(builder.Warnings(), qt.HasLen, 0)

		exif := tags.EXIF()
		c.Assert(exif["Make"].Value.(AttrValue).String(), qt.Equals, "Canon")
		c.Assert(exif["Orientation"].Value.(AttrValue).String(), qt.Equals, "Horizontal (normal)")
		c.Assert(exif["Compression"].Value.(AttrValue).String(), qt.Equals, "6")
		c.Assert(exif["Compression"].Namespace, qt.Equals, "IFD1")
	}
}

// TestWriteTIFFMakerNotePreserved checks spec §4.8's MakerNote rule: the
// raw bytes pass through the writer verbatim, with no reinterpretation of
// their internal structure.
func TestWriteTIFFMakerNotePreserved(t *testing.T) {
	c := qt.New(t)

	mn := []byte("Apple iOS\x00\x00\x01\x00\x01opaque-vendor-bytes")
	ifd0 := &WriteIFD{Entries: []WriteEntry{
		{Tag: 0x927C, Format: FormatUndef, Count: uint32(len(mn)), OutOfLine: mn},
	}}

	out, err := WriteTIFF(ifd0, binary.LittleEndian)
	c.Assert(err, qt.IsNil)

	scope, ifd0Offset, err := ParseTIFFHeader(out)
	c.Assert(err, qt.IsNil)
	entries, next, warnings, err := ReadIFD(scope, ifd0Offset, "IFD0")
	c.Assert(err, qt.IsNil)
	c.Assert(warnings, qt.HasLen, 0)
	c.Assert(next, qt.Equals, int64(0))
	c.Assert(entries, qt.HasLen, 1)
	c.Assert(entries[0].Value.Undef, qt.DeepEquals, mn)
}

// TestWalkIFDTreeThumbnail checks that IFD1's JPEGInterchangeFormat
// offset/length pair yields a detached thumbnail copy on the builder.
func TestWalkIFDTreeThumbnail(t *testing.T) {
	c := qt.New(t)

	thumb := []byte{0xff, 0xd8, 0xff, 0xdb, 0x00, 0x01}

	var data []byte
	data = append(data, 0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00)
	// IFD0: 0 entries, next -> IFD1.
	le16App(&data, 0)
	nextPos := len(data)
	le32App(&data, 0) // placeholder
	ifd1Offset := len(data)
	le32(data[nextPos:], uint32(ifd1Offset))
	// IFD1: ThumbnailOffset + ThumbnailLength.
	le16App(&data, 2)
	le16App(&data, 0x0201)
	le16App(&data, uint16(FormatU32))
	le32App(&data, 1)
	thumbOffPos := len(data)
	le32App(&data, 0) // placeholder
	le16App(&data, 0x0202)
	le16App(&data, uint16(FormatU32))
	le32App(&data, 1)
	le32App(&data, uint32(len(thumb)))
	le32App(&data, 0) // next IFD = 0
	thumbOffset := len(data)
	le32(data[thumbOffPos:], uint32(thumbOffset))
	data = append(data, thumb...)

	tags := &Tags{}
	builder, err := ParseTIFF(data, tags, DefaultBuilderOptions())
	c.Assert(err, qt.IsNil)
	c.Assert(builder.Thumbnail, qt.DeepEquals, thumb)
}

func le16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func le32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func le16App(b *[]byte, v uint16) {
	*b = append(*b, byte(v), byte(v>>8))
}

func le32App(b *[]byte, v uint32) {
	*b = append(*b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
