// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// Vendor is the closed set of camera/phone makers with a recognized
// MakerNote layout (spec §4.5).
type Vendor int

const (
	VendorUnknown Vendor = iota
	VendorCanon
	VendorNikon
	VendorSony
	VendorOlympus
	VendorPentax
	VendorPanasonic
	VendorFujifilm
	VendorSamsung
	VendorApple
	VendorGoogle
	VendorMotorola
	VendorXiaomi
	VendorOnePlus
	VendorOppo
	VendorVivo
	VendorKodak
	VendorRicoh
	VendorSigma
	VendorHasselblad
	VendorPhaseOne
	VendorDJI
)

// normalizeVendor derives a Vendor from IFD0's Make tag: trimmed of leading
// and trailing whitespace, upper-cased, and stripped of the punctuation
// characters . , - and _ (inner spaces are kept, as in "PHASE ONE"), then
// matched by prefix, grounded on
// the Make strings actually emitted by camera firmware (e.g. "NIKON
// CORPORATION", "SONY", "samsung", "OLYMPUS IMAGING CORP.").
func normalizeVendor(make string) Vendor {
	m := strings.ToUpper(strings.TrimSpace(make))
	m = strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '-', '_':
			return -1
		default:
			return r
		}
	}, m)
	switch {
	case strings.HasPrefix(m, "CANON"):
		return VendorCanon
	case strings.HasPrefix(m, "NIKON"):
		return VendorNikon
	case strings.HasPrefix(m, "SONY"):
		return VendorSony
	case strings.HasPrefix(m, "OLYMPUS"):
		return VendorOlympus
	case strings.HasPrefix(m, "PENTAX"), strings.HasPrefix(m, "RICOH PENTAX"):
		return VendorPentax
	case strings.HasPrefix(m, "PANASONIC"):
		return VendorPanasonic
	case strings.HasPrefix(m, "FUJIFILM"), strings.HasPrefix(m, "FUJI"):
		return VendorFujifilm
	case strings.HasPrefix(m, "SAMSUNG"):
		return VendorSamsung
	case strings.HasPrefix(m, "APPLE"):
		return VendorApple
	case strings.HasPrefix(m, "GOOGLE"):
		return VendorGoogle
	case strings.HasPrefix(m, "MOTOROLA"):
		return VendorMotorola
	case strings.HasPrefix(m, "XIAOMI"):
		return VendorXiaomi
	case strings.HasPrefix(m, "ONEPLUS"):
		return VendorOnePlus
	case strings.HasPrefix(m, "OPPO"):
		return VendorOppo
	case strings.HasPrefix(m, "VIVO"):
		return VendorVivo
	case strings.HasPrefix(m, "KODAK") || strings.HasPrefix(m, "EASTMAN KODAK"):
		return VendorKodak
	case strings.HasPrefix(m, "RICOH"):
		return VendorRicoh
	case strings.HasPrefix(m, "SIGMA"), strings.HasPrefix(m, "FOVEON"):
		return VendorSigma
	case strings.HasPrefix(m, "HASSELBLAD"):
		return VendorHasselblad
	case strings.HasPrefix(m, "PHASE ONE"), strings.HasPrefix(m, "PHASEONE"):
		return VendorPhaseOne
	case strings.HasPrefix(m, "DJI"):
		return VendorDJI
	default:
		return VendorUnknown
	}
}

// dispatchMakerNote derives the scope the vendor's MakerNote payload must
// be read under, per the per-vendor header table of spec §4.5. data is the
// full Undef value of the 0x927C tag; parent is the scope that value was
// read from (used for parent-relative base and for the "parent" byte-order
// default). ok is false when the vendor is unrecognized or the header is
// malformed beyond recovery, in which case the caller preserves the raw
// bytes verbatim (spec §4.5 Fallback).
//
// Per-vendor behavior is grounded directly on
// original_source/crates/exiftool-formats/src/makernotes/*.rs (apple, dji,
// google, hasselblad, kodak, motorola, oneplus, oppo, phaseone, ricoh,
// samsung, sigma, vivo, xiaomi) and, for Canon and Nikon, on
// other_examples' rwcarlsen/goexif mknote package (loadCanon, loadNikonV3).
func dispatchMakerNote(vendor Vendor, data []byte, parent Scope) (scope Scope, payloadOffset int64, ok bool) {
	switch vendor {
	case VendorApple:
		// "Apple iOS\0" (10 bytes) + 4-byte version = 14-byte header, then a
		// standard IFD in the parent's byte order, based at the MakerNote's
		// own start. A missing header degrades to a direct IFD rather than a
		// refusal (matches exiftool-formats/src/makernotes/apple.rs).
		if len(data) < 14 {
			return Scope{}, 0, false
		}
		if bytes.HasPrefix(data, []byte("Apple iOS\x00")) {
			return parent.withData(data, parent.Order, 0), 14, true
		}
		return parent.withData(data, parent.Order, 0), 0, true

	case VendorSigma:
		// "SIGMA\0\0\0" or "FOVEON\0\0", 8-byte header, always little-endian
		// when the header is present; a headerless payload is tried as a
		// direct IFD in the parent's order (exiftool-formats/.../sigma.rs).
		if len(data) < 10 {
			return Scope{}, 0, false
		}
		if bytes.HasPrefix(data, []byte("SIGMA\x00\x00\x00")) || bytes.HasPrefix(data, []byte("FOVEON\x00\x00")) {
			return parent.withData(data, binary.LittleEndian, 0), 8, true
		}
		return parent.withData(data, parent.Order, 0), 0, true

	case VendorRicoh:
		if len(data) < 8 {
			return Scope{}, 0, false
		}
		switch {
		case bytes.HasPrefix(data, []byte("Rv")):
			return parent.withData(data, binary.BigEndian, 0), 2, true
		case bytes.HasPrefix(data, []byte("RICOH\x00")):
			return parent.withData(data, binary.BigEndian, 0), 6, true
		case bytes.HasPrefix(data, []byte("RICOH")):
			// 5-byte marker plus padding.
			return parent.withData(data, binary.BigEndian, 0), 8, true
		default:
			return parent.withData(data, parent.Order, 0), 0, true
		}

	case VendorKodak:
		switch {
		case bytes.HasPrefix(data, []byte("KDK INFO")):
			// Type 2.
			return parent.withData(data, binary.BigEndian, 0), 8, true
		case bytes.HasPrefix(data, []byte("KDK")) && len(data) > 10:
			// Type 3; the header length varies by model
			// (exiftool-formats/.../kodak.rs).
			skip := int64(8)
			if data[3] == 0 {
				skip = 4
			}
			return parent.withData(data, binary.BigEndian, 0), skip, true
		default:
			// Type 1 Kodak MakerNotes carry no header at all.
			return parent.withData(data, parent.Order, 0), 0, true
		}

	case VendorNikon:
		// Type 3: "Nikon\0" + 2-byte version + 2-byte unknown = 10 bytes,
		// then an embedded TIFF header defining a brand new scope (own byte
		// order, base = start of that embedded header). The embedded
		// header's own 4-byte IFD0-offset field (bytes 4:8, same shape as
		// any other TIFF header) is read rather than assumed to be 8:
		// that field is legal to be any value, it is only conventionally 8.
		// Grounded on rwcarlsen/goexif's loadNikonV3, which parses the
		// embedded bytes as a full TIFF header via tiff.Decode rather than
		// hardcoding its IFD0 offset.
		if bytes.HasPrefix(data, []byte("Nikon\x00")) && len(data) >= 18 {
			embedded := data[10:]
			order, embeddedOK := tiffByteOrder(embedded)
			if embeddedOK && len(embedded) >= 8 {
				ifd0Offset := int64(order.Uint32(embedded[4:8]))
				return Scope{Data: embedded, Order: order, Base: 0}, ifd0Offset, true
			}
		}
		// Older Nikon MakerNotes carry no header; parent scope.
		return parent.withData(data, parent.Order, 0), 0, true

	case VendorCanon, VendorSamsung, VendorGoogle, VendorMotorola, VendorXiaomi,
		VendorOnePlus, VendorOppo, VendorVivo, VendorSony, VendorOlympus,
		VendorPentax, VendorPanasonic, VendorFujifilm:
		// No header; the payload is an IFD in the parent's order, based at
		// its own start (Canon grounded on rwcarlsen/goexif's loadCanon; the
		// phone vendors grounded on exiftool-formats/.../{dji,google,
		// motorola,oneplus,oppo,vivo,xiaomi}.rs which share this shape).
		return parent.withData(data, parent.Order, 0), 0, true

	case VendorHasselblad, VendorPhaseOne:
		// No header but a minimum-length guard before treating the payload
		// as a standard IFD (exiftool-formats/.../{hasselblad,phaseone}.rs).
		if len(data) < 2 {
			return Scope{}, 0, false
		}
		return parent.withData(data, parent.Order, 0), 0, true

	case VendorDJI:
		return parent.withData(data, parent.Order, 0), 0, true

	default:
		return Scope{}, 0, false
	}
}

// tiffByteOrder reads the 2-byte marker ("II"/"MM") at the start of an
// embedded TIFF header, as used by Nikon type-3 MakerNotes.
func tiffByteOrder(data []byte) (binary.ByteOrder, bool) {
	if len(data) < 2 {
		return nil, false
	}
	switch {
	case data[0] == 'I' && data[1] == 'I':
		return binary.LittleEndian, true
	case data[0] == 'M' && data[1] == 'M':
		return binary.BigEndian, true
	default:
		return nil, false
	}
}
