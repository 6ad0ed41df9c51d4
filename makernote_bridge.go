// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

import (
	"fmt"
	"path"
)

// decodeMakerNote is the bridge between the streaming IFD0/ExifIFD walk
// above and the in-memory vendor dispatch engine (makernote.go,
// ifdentry.go, tagresolver.go). It is reached from decodeTag once the raw
// MakerNote bytes (tag 0x927C) have been fully materialized. vendor is
// resolved from the Make tag captured earlier in the same IFD0 pass.
//
// Any per-entry failure inside the MakerNote (bad offset, overflowed
// count, unrecognized format) is recorded as a Warning via opts.Warnf and
// the entry is skipped, matching the fail-soft walk used everywhere else
// in this decoder; it never aborts the surrounding EXIF decode. A vendor
// that cannot be dispatched, or whose directory cannot be read at all,
// falls back to emitting the raw bytes under the name "MakerNote", the
// same degradation the teacher already applies to unconvertible values
// elsewhere in this file.
func (e *metaDecoderEXIF) decodeMakerNote(namespace string, data []byte) error {
	vendor := normalizeVendor(e.make)

	parent := Scope{Data: data, Order: e.byteOrder, Base: 0}
	mnScope, payloadOffset, ok := dispatchMakerNote(vendor, data, parent)
	if !ok {
		return e.emitMakerNoteTag(namespace, "MakerNote", data)
	}

	location := fmt.Sprintf("MakerNote(%s)", vendorName(vendor))
	entries, _, warnings, err := ReadIFD(mnScope, payloadOffset, location)
	for _, w := range warnings {
		e.opts.Warnf("%s", w.String())
	}
	if err != nil {
		e.opts.Warnf("%s: %s", location, err)
		return e.emitMakerNoteTag(namespace, "MakerNote", data)
	}

	mnNamespace := path.Join(namespace, fmt.Sprintf("MakerNotes:%s", vendorName(vendor)))
	for _, entry := range entries {
		def, ok := LookupTag(ScopeMakerNote, vendor, entry.Tag)
		name := fmt.Sprintf("%s0x%04X", UnknownPrefix, entry.Tag)
		value := entry.Value.ToAttrValue()
		if ok {
			name = def.Name
			value = applyPrintConv(def, entry.Value)
		}
		if err := e.emitMakerNoteTag(mnNamespace, name, attrValueToAny(value)); err != nil {
			return err
		}
	}
	return nil
}

// emitMakerNoteTag hands a resolved MakerNote tag to the caller through the
// same ShouldHandleTag/HandleTag pair every other tag in this decoder goes
// through. An error returned by HandleTag propagates up through
// decodeMakerNote and decodeTag exactly like the xmpMarker/iptcMarker and
// generic tag paths above: callers that want to stop the walk return
// ErrStopWalking, and any other error is treated as fatal to the decode.
func (e *metaDecoderEXIF) emitMakerNoteTag(namespace, name string, value any) error {
	tagInfo := TagInfo{Source: EXIF, Tag: name, Namespace: namespace, Value: value}
	if !e.opts.ShouldHandleTag(tagInfo) {
		return nil
	}
	return e.opts.HandleTag(tagInfo)
}

// attrValueToAny unwraps an AttrValue into the plain Go value this decoder
// otherwise hands HandleTag (string, a signed/unsigned integer, a float, or
// a byte slice), so a MakerNote tag looks the same to callers as any other
// EXIF tag. AttrRational becomes its "num/den" string form, since this
// decoder has no native rational type of its own for MakerNote values;
// AttrList recurses element-wise.
func attrValueToAny(v AttrValue) any {
	switch v := v.(type) {
	case AttrString:
		return string(v)
	case AttrInt64:
		return int64(v)
	case AttrUint64:
		return uint64(v)
	case AttrFloat64:
		return float64(v)
	case AttrRational:
		return v.String()
	case AttrBytes:
		return []byte(v)
	case AttrList:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = attrValueToAny(e)
		}
		return out
	default:
		return v.String()
	}
}
