// Copyright 2026 Toni Melisma
// SPDX-License-Identifier: MIT

package imagemeta

import "fmt"

// cr2MarkerOffset is the fixed byte position of Canon's "CR" + version
// marker, right after the standard 8-byte TIFF header.
const cr2MarkerOffset = 8

// imageDecoderCR2 reads Canon CR2. CR2 is a standard TIFF file (IFD0,
// IFD1, and further Canon-specific IFDs including the RAW sensor data)
// with one addition: a "CR" + version marker at a fixed offset. Detecting
// and stripping that marker is the whole of the format; everything else,
// including Canon's MakerNotes, is read by the same IFD walk any other
// TIFF-based file goes through.
//
// NEF (Nikon), ARW (Sony), ORF (Olympus), PEF (Pentax), and RW2
// (Panasonic) are all, likewise, plain TIFF with vendor-specific markers
// or private IFDs layered on; none of those markers are load-bearing for
// metadata extraction, so they decode correctly as RAW (imagedecoder_raw.go)
// without a dedicated adapter. CR2 gets one here because its marker is
// simple, fixed-offset, and worth surfacing as a version tag, per the
// original implementation.
type imageDecoderCR2 struct {
	*baseStreamingDecoder
}

func (e *imageDecoderCR2) decode() error {
	var marker [4]byte
	if err := e.preservePos(func() error {
		e.seek(cr2MarkerOffset)
		e.readBytes(marker[:])
		return nil
	}); err != nil {
		return errInvalidFormat
	}
	if marker[0] != 'C' || marker[1] != 'R' || marker[2] != 0x02 {
		return errInvalidFormat
	}

	e.seek(0)
	raw := &imageDecoderRAW{baseStreamingDecoder: e.baseStreamingDecoder}
	if err := raw.decode(); err != nil {
		return err
	}

	if !e.opts.Sources.Has(EXIF) {
		return nil
	}
	version := fmt.Sprintf("%d.%d", marker[2], marker[3])
	tagInfo := TagInfo{Source: EXIF, Tag: "CR2Version", Namespace: "IFD0", Value: version}
	if !e.opts.ShouldHandleTag(tagInfo) {
		return nil
	}
	return e.opts.HandleTag(tagInfo)
}
