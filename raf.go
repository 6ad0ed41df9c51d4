// Copyright 2026 Toni Melisma
// SPDX-License-Identifier: MIT

package imagemeta

import (
	"encoding/binary"
	"strings"
)

// rafMagic is the 16-byte signature at the start of every Fujifilm RAF
// file.
const rafMagic = "FUJIFILMCCD-RAW "

const (
	rafHeaderSize    = 0x64
	rafVersionOffset = 0x3C
	rafVersionLen    = 4
	rafJPEGOffset    = 0x54
	rafJPEGLenOffset = 0x58
)

// imageDecoderRAF reads Fujifilm's RAF container. RAF wraps a full JPEG
// preview, complete with its own EXIF (including Fujifilm MakerNotes), at a
// big-endian offset/length pair in the fixed-size header; the RAW sensor
// data that follows carries no metadata of its own. Decoding a RAF is
// therefore decoding the embedded JPEG, plus one synthetic RAFVersion tag
// read straight out of the header.
type imageDecoderRAF struct {
	*baseStreamingDecoder
}

func (e *imageDecoderRAF) decode() error {
	header := make([]byte, rafHeaderSize)
	e.readBytes(header)
	if string(header[:len(rafMagic)]) != rafMagic {
		return errInvalidFormat
	}

	if e.opts.Sources.IsZero() {
		return nil
	}

	version := strings.TrimRight(string(header[rafVersionOffset:rafVersionOffset+rafVersionLen]), "\x00")
	jpegOffset := binary.BigEndian.Uint32(header[rafJPEGOffset : rafJPEGOffset+4])
	jpegLength := binary.BigEndian.Uint32(header[rafJPEGLenOffset : rafJPEGLenOffset+4])

	if e.opts.Sources.Has(EXIF) {
		tagInfo := TagInfo{Source: EXIF, Tag: "RAFVersion", Namespace: "IFD0", Value: version}
		if e.opts.ShouldHandleTag(tagInfo) {
			if err := e.opts.HandleTag(tagInfo); err != nil {
				return err
			}
		}
	}

	if jpegOffset == 0 || jpegLength == 0 {
		// No embedded preview to recurse into; RAFVersion is all we have.
		return nil
	}

	e.seek(int64(jpegOffset))
	jpegDec := &imageDecoderJPEG{baseStreamingDecoder: e.baseStreamingDecoder}
	return jpegDec.decode()
}
