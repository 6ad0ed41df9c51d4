// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

import "fmt"

// ifdKind identifies which node of the standard IFD tree a walk is
// currently visiting (spec §4.4).
type ifdKind int

const (
	kindIFD0 ifdKind = iota
	kindIFD1
	kindExif
	kindGPS
	kindInterop
	kindSubIFD
	kindMakerNote
)

const (
	tagExifIFDPointer  = 0x8769
	tagGPSInfoIFD      = 0x8825
	tagInteropIFD      = 0xa005
	tagSubIFDs         = 0x014a
	tagMakerNote       = 0x927c
	tagMake            = 0x010f
	tagThumbnailStart  = 0x0201
	tagThumbnailLen    = 0x0202
	tagICCProfile      = 0x8773
	defaultEntryBudget = 100000
	maxIfdDepth        = 16
)

// walker carries the per-parse traversal state of IfdTree: the set of
// physical IFD offsets already visited (cycle guard), the remaining entry
// budget (DoS guard), and the accumulating MetadataBuilder.
type walker struct {
	visited map[scopeKey]bool
	budget  int
	builder *MetadataBuilder
	make    string
	vendor  Vendor

	// IFD1's JPEGInterchangeFormat offset/length pair, captured during the
	// walk so the thumbnail bytes can be sliced out afterwards.
	thumbOffset uint32
	thumbLen    uint32
}

// WalkIFDTree performs the depth-first traversal of spec §4.4 starting at
// IFD0 within scope, pushing every resolved value into builder. It never
// returns an error for per-entry failures (those become Warnings on
// builder); it returns an error only when IFD0 itself cannot be read,
// matching spec §7's "only the initial header check is fatal" rule.
func WalkIFDTree(scope Scope, ifd0Offset int64, builder *MetadataBuilder) error {
	w := &walker{
		visited: make(map[scopeKey]bool),
		budget:  defaultEntryBudget,
		builder: builder,
	}
	if err := w.walk(scope, ifd0Offset, kindIFD0, 0); err != nil {
		return err
	}
	w.captureThumbnail(scope)
	return nil
}

// captureThumbnail slices IFD1's thumbnail bytes into the builder once the
// whole tree has been walked, so the offset and length tags have both been
// seen regardless of their order within the directory. The output copy is
// detached from the input buffer.
func (w *walker) captureThumbnail(scope Scope) {
	if w.thumbOffset == 0 || w.thumbLen == 0 {
		return
	}
	phys, err := scope.Resolve(int64(w.thumbOffset))
	if err != nil {
		w.builder.addWarning(Warning{Kind: ErrValueOutOfBounds, Location: "IFD1", Err: err})
		return
	}
	b, err := scope.Slice(phys, int(w.thumbLen))
	if err != nil {
		w.builder.addWarning(Warning{Kind: ErrValueOutOfBounds, Location: "IFD1", Err: err})
		return
	}
	w.builder.Thumbnail = append([]byte(nil), b...)
}

func (w *walker) walk(scope Scope, logicalOffset int64, kind ifdKind, depth int) error {
	if depth > maxIfdDepth {
		w.builder.addWarning(Warning{Kind: ErrRecursiveIfd, Location: "max IFD depth exceeded"})
		return nil
	}

	phys, err := scope.Resolve(logicalOffset)
	if err != nil {
		if kind == kindIFD0 {
			return err
		}
		w.builder.addWarning(Warning{Kind: ErrIfdOffsetOutOfBounds, Location: locationFor(kind, w.vendor), Err: err})
		return nil
	}

	key := physKey(scope, phys)
	if w.visited[key] {
		w.builder.addWarning(Warning{Kind: ErrRecursiveIfd, Location: fmt.Sprintf("%s at offset %d", locationFor(kind, w.vendor), logicalOffset)})
		return nil
	}
	w.visited[key] = true

	loc := locationFor(kind, w.vendor)
	entries, next, warnings, err := ReadIFD(scope, logicalOffset, loc)
	for _, wn := range warnings {
		w.builder.addWarning(wn)
	}
	if err != nil {
		// TooManyIfdEntries is always a Warning, even for IFD0 (spec §8
		// scenario S5): a DoS-shaped header should not abort the parse, it
		// should just produce no metadata. Every other IFD0 read failure
		// (a bad offset, a truncated entry-count field) is still fatal.
		if pe, ok := err.(*ParseError); !ok || pe.Kind != ErrTooManyIfdEntries {
			if kind == kindIFD0 {
				return err
			}
		}
		kindErr := ErrIfdOffsetOutOfBounds
		if pe, ok := err.(*ParseError); ok {
			kindErr = pe.Kind
		}
		w.builder.addWarning(Warning{Kind: kindErr, Location: loc, Err: err})
		return nil
	}

	// The budget is charged with the IFD's declared entry count, not the
	// number of entries that survived decoding: malformed entries cost a
	// decode attempt each and must not be free. The count read cannot fail
	// here since ReadIFD just read the same two bytes.
	declared, _ := scope.U16(phys)
	w.budget -= int(declared)
	if w.budget < 0 {
		w.builder.addWarning(Warning{Kind: ErrTooManyIfdEntries, Location: loc, Err: fmt.Errorf("entry budget exhausted")})
		return nil
	}

	for _, e := range entries {
		w.handleEntry(scope, e, kind, depth)
	}

	switch kind {
	case kindIFD0:
		if next != 0 {
			return w.walk(scope, next, kindIFD1, depth+1)
		}
	case kindIFD1:
		if next != 0 {
			w.builder.addWarning(Warning{Kind: ErrRecursiveIfd, Location: "IFD1 chains beyond one thumbnail directory are not followed"})
		}
	}

	return nil
}

func (w *walker) handleEntry(scope Scope, e IfdEntry, kind ifdKind, depth int) {
	if kind == kindIFD0 && e.Tag == tagMake {
		w.make = e.Value.ToAttrValue().String()
		w.vendor = normalizeVendor(w.make)
	}

	// Sidecar capture. The tags still resolve and surface below like any
	// other entry; this only fills the builder's detached byte fields.
	switch {
	case kind == kindIFD1 && e.Tag == tagThumbnailStart:
		w.thumbOffset = firstU32(e.Value)
	case kind == kindIFD1 && e.Tag == tagThumbnailLen:
		w.thumbLen = firstU32(e.Value)
	case kind == kindIFD0 && e.Tag == xmpMarker:
		w.builder.XMP = rawBytes(e.Value)
	case kind == kindIFD0 && e.Tag == tagICCProfile:
		w.builder.ICC = rawBytes(e.Value)
	}

	switch {
	case kind == kindIFD0 && e.Tag == tagExifIFDPointer:
		off := firstU32(e.Value)
		w.walk(scope, int64(off), kindExif, depth+1)
		return
	case kind == kindIFD0 && e.Tag == tagGPSInfoIFD:
		off := firstU32(e.Value)
		w.walk(scope, int64(off), kindGPS, depth+1)
		return
	case kind == kindIFD0 && e.Tag == tagSubIFDs:
		for _, off := range e.Value.U32s {
			w.walk(scope, int64(off), kindSubIFD, depth+1)
		}
		return
	case kind == kindExif && e.Tag == tagInteropIFD:
		off := firstU32(e.Value)
		w.walk(scope, int64(off), kindInterop, depth+1)
		return
	case kind == kindExif && e.Tag == tagMakerNote:
		w.handleMakerNote(scope, e, depth)
		return
	}

	resolverScope := resolverScopeFor(kind)
	def, ok := LookupTag(resolverScope, w.vendor, e.Tag)
	if !ok {
		w.builder.SetUnknown(kind, w.vendor, e.Tag, e.Value.ToAttrValue())
		return
	}
	w.builder.Set(kind, w.vendor, e.Tag, def.Name, applyPrintConv(def, e.Value))
}

func (w *walker) handleMakerNote(scope Scope, e IfdEntry, depth int) {
	data := e.Value.Undef
	if len(data) == 0 {
		return
	}
	mnScope, payloadOffset, ok := dispatchMakerNote(w.vendor, data, scope)
	if !ok {
		w.builder.Set(kindExif, w.vendor, e.Tag, "MakerNote", AttrBytes(data))
		return
	}

	sub := &walker{
		visited: w.visited,
		budget:  w.budget,
		builder: w.builder,
		make:    w.make,
		vendor:  w.vendor,
	}
	if err := sub.walk(mnScope, payloadOffset, kindMakerNote, depth+1); err != nil {
		w.builder.Set(kindExif, w.vendor, e.Tag, "MakerNote", AttrBytes(data))
		return
	}
	w.budget = sub.budget
}

func resolverScopeFor(kind ifdKind) ResolverScope {
	switch kind {
	case kindGPS:
		return ScopeGPS
	case kindExif:
		return ScopeExif
	case kindInterop:
		return ScopeInterop
	case kindMakerNote:
		return ScopeMakerNote
	case kindIFD1:
		return ScopeIFD1
	default:
		return ScopeIFD0
	}
}

func locationFor(kind ifdKind, vendor Vendor) string {
	switch kind {
	case kindIFD0:
		return "IFD0"
	case kindIFD1:
		return "IFD1"
	case kindExif:
		return "ExifIFD"
	case kindGPS:
		return "GPS"
	case kindInterop:
		return "Interop"
	case kindSubIFD:
		return "SubIFD"
	case kindMakerNote:
		return fmt.Sprintf("MakerNote(%s)", vendorName(vendor))
	default:
		return "IFD"
	}
}

// applyPrintConv resolves an enumerated value through TagDef.Values when
// present, per spec §4.6: each element of a multi-count tag is resolved
// independently.
func applyPrintConv(def TagDef, rv RawValue) AttrValue {
	if len(def.Values) == 0 {
		return rv.ToAttrValue()
	}
	resolveOne := func(code int64) AttrValue {
		if label, ok := def.Values[code]; ok {
			return AttrString(label)
		}
		return AttrInt64(code)
	}
	switch rv.Format {
	case FormatU8, FormatU16, FormatU32, FormatU64, FormatIFD64:
		codes := toInt64Slice(rv)
		if len(codes) == 1 {
			return resolveOne(codes[0])
		}
		list := make(AttrList, len(codes))
		for i, c := range codes {
			list[i] = resolveOne(c)
		}
		return list
	default:
		return rv.ToAttrValue()
	}
}

func toInt64Slice(rv RawValue) []int64 {
	switch rv.Format {
	case FormatU8:
		out := make([]int64, len(rv.U8s))
		for i, v := range rv.U8s {
			out[i] = int64(v)
		}
		return out
	case FormatU16:
		out := make([]int64, len(rv.U16s))
		for i, v := range rv.U16s {
			out[i] = int64(v)
		}
		return out
	case FormatU32:
		out := make([]int64, len(rv.U32s))
		for i, v := range rv.U32s {
			out[i] = int64(v)
		}
		return out
	case FormatU64, FormatIFD64:
		out := make([]int64, len(rv.U64s))
		for i, v := range rv.U64s {
			out[i] = int64(v)
		}
		return out
	default:
		return nil
	}
}

// rawBytes returns a detached copy of a byte-shaped value (Undef or U8),
// used for the XMP and ICC sidecars whose on-disk format varies between the
// two.
func rawBytes(rv RawValue) []byte {
	switch rv.Format {
	case FormatUndef:
		return append([]byte(nil), rv.Undef...)
	case FormatU8:
		return append([]byte(nil), rv.U8s...)
	default:
		return nil
	}
}

func firstU32(rv RawValue) uint32 {
	if len(rv.U32s) > 0 {
		return rv.U32s[0]
	}
	return 0
}

// scopeKey identifies one physical IFD position within one scope buffer for
// the cycle guard. The buffer is identified by the address of its first
// byte, so two distinct scopes (e.g. a Nikon type-3 embedded TIFF and its
// parent file) never collide even when their lengths and offsets happen to
// match.
type scopeKey struct {
	data *byte
	phys int
}

func physKey(scope Scope, phys int) scopeKey {
	k := scopeKey{phys: phys}
	if len(scope.Data) > 0 {
		k.data = &scope.Data[0]
	}
	return k
}
