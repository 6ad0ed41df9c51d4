// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

import "strings"

// ResolverScope is the closed set of namespaces TagResolver can be
// consulted under (spec §4.6).
type ResolverScope int

const (
	ScopeIFD0 ResolverScope = iota
	ScopeIFD1
	ScopeExif
	ScopeGPS
	ScopeInterop
	ScopeMakerNote
)

// TagDef is the static record a tag number resolves to: its canonical name
// and, for enumerated tags, an ordered table of (numeric code, label) used
// for PrintConv-style resolution.
type TagDef struct {
	Name   string
	Values map[int64]string
}

// LookupTag maps (scope, tag) to a TagDef. IFD0/IFD1/ExifIFD/Interop share
// the teacher's exifFields table (metadecoder_exif_fields.go); GPS uses
// exifFieldsGPS. MakerNote scopes are resolved against the dispatched
// vendor's own table (makernote_tags_*.go). When exifFields' entry for a
// tag is one of the historical space-separated MakerNote-variant lists
// (e.g. 0x927C), a vendor-scoped lookup prefers the name matching that
// vendor over the first-listed alias.
func LookupTag(scope ResolverScope, vendor Vendor, tag uint16) (TagDef, bool) {
	switch scope {
	case ScopeGPS:
		name, ok := exifFieldsGPS[tag]
		if !ok {
			return TagDef{}, false
		}
		return TagDef{Name: name, Values: gpsPrintConv[tag]}, true
	case ScopeMakerNote:
		table := vendorTagTables[vendor]
		if table == nil {
			return TagDef{}, false
		}
		def, ok := table[tag]
		return def, ok
	default:
		name, ok := exifFields[tag]
		if !ok {
			return TagDef{}, false
		}
		if strings.Contains(name, " ") {
			parts := strings.Split(name, " ")
			name = parts[0]
			if vendor != VendorUnknown {
				want := "MakerNote" + vendorName(vendor)
				for _, p := range parts {
					if strings.EqualFold(p, want) {
						name = p
						break
					}
				}
			}
		}
		return TagDef{Name: name, Values: exifPrintConv[tag]}, true
	}
}

// exifPrintConv holds PrintConv enum tables for a handful of well-known
// IFD0/ExifIFD tags, grounded on the teacher's exifValueConverterMap-style
// converters (helpers.go) and on ExifTool's published PrintConv tables (the
// same source metadecoder_exif_fields.go names in its header comment).
var exifPrintConv = map[uint16]map[int64]string{
	0x0112: { // Orientation
		1: "Horizontal (normal)",
		2: "Mirror horizontal",
		3: "Rotate 180",
		4: "Mirror vertical",
		5: "Mirror horizontal and rotate 270 CW",
		6: "Rotate 90 CW",
		7: "Mirror horizontal and rotate 90 CW",
		8: "Rotate 270 CW",
	},
	0x0128: { // ResolutionUnit
		1: "None",
		2: "inches",
		3: "cm",
	},
	0x8822: { // ExposureProgram
		0: "Not Defined",
		1: "Manual",
		2: "Program AE",
		3: "Aperture-priority AE",
		4: "Shutter speed priority AE",
		5: "Creative (Slow speed)",
		6: "Action (High speed)",
		7: "Portrait",
		8: "Landscape",
	},
	0x9207: { // MeteringMode
		0:   "Unknown",
		1:   "Average",
		2:   "Center-weighted average",
		3:   "Spot",
		4:   "Multi-spot",
		5:   "Multi-segment",
		6:   "Partial",
		255: "Other",
	},
	0x9209: { // Flash
		0x0:  "No Flash",
		0x1:  "Fired",
		0x5:  "Fired, Return not detected",
		0x7:  "Fired, Return detected",
		0x8:  "On, Did not fire",
		0x9:  "On, Fired",
		0x10: "Off, Did not fire",
		0x18: "Auto, Did not fire",
		0x19: "Auto, Fired",
	},
	0xa403: { // WhiteBalance
		0: "Auto",
		1: "Manual",
	},
}

// gpsPrintConv carries the enumerated GPS tags, grounded on the generated
// GPS_MAIN value tables in
// original_source/crates/exiftool-tags/src/generated/gps.rs.
var gpsPrintConv = map[uint16]map[int64]string{
	0x0005: { // GPSAltitudeRef
		0: "Above Sea Level",
		1: "Below Sea Level",
		2: "Positive Sea Level (sea-level ref)",
		3: "Negative Sea Level (sea-level ref)",
	},
	0x000a: { // GPSMeasureMode
		2: "2-Dimensional Measurement",
		3: "3-Dimensional Measurement",
	},
	0x001e: { // GPSDifferential
		0: "No Correction",
		1: "Differential Corrected",
	},
}
