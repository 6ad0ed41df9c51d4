// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

import "fmt"

// BuilderOptions configures MetadataBuilder. EmitUnknownTags resolves the
// third Open Question of spec §9: whether an unrecognized tag surfaces as
// UnknownTag_0x%04X or is silently dropped.
type BuilderOptions struct {
	EmitUnknownTags bool
}

// DefaultBuilderOptions matches the teacher's existing
// UnknownPrefix-on-by-default behavior (metadecoder_exif.go).
func DefaultBuilderOptions() BuilderOptions {
	return BuilderOptions{EmitUnknownTags: true}
}

// MetadataBuilder accumulates resolved (name, AttrValue) pairs produced by
// the IFD walk (ifdtree.go) into the existing Tags collection
// (imagemeta.go), applying the namespace-prefixing and tie-break policy of
// spec §4.4/§4.7: within one scope the latest write wins, but a name
// already set by an earlier-visited scope is never overwritten.
type MetadataBuilder struct {
	opts     BuilderOptions
	tags     *Tags
	warnings []Warning

	Format    string
	Thumbnail []byte
	Preview   []byte
	XMP       []byte
	ICC       []byte
}

func NewMetadataBuilder(tags *Tags, opts BuilderOptions) *MetadataBuilder {
	return &MetadataBuilder{opts: opts, tags: tags}
}

// namespaceFor builds the "IFD0/ExifIFDP"-style or "MakerNotes:Vendor"-style
// path for an ifdKind, following the teacher's existing path.Join-based
// namespace construction in metadecoder_exif.go's decodeTagsAt.
func namespaceFor(kind ifdKind, vendor Vendor) string {
	switch kind {
	case kindIFD0:
		return "IFD0"
	case kindIFD1:
		return "IFD1"
	case kindExif:
		return "IFD0/ExifIFDP"
	case kindGPS:
		return "IFD0/GPSInfoIFD"
	case kindInterop:
		return "IFD0/ExifIFDP/InteroperabilityIFD"
	case kindSubIFD:
		return "IFD0/SubIFD"
	case kindMakerNote:
		return fmt.Sprintf("MakerNotes:%s", vendorName(vendor))
	default:
		return ""
	}
}

// Set resolves a TagDef + AttrValue into the Tags collection, honoring the
// first-write-wins-across-scopes / last-write-wins-within-scope policy.
func (b *MetadataBuilder) Set(kind ifdKind, vendor Vendor, tag uint16, name string, value AttrValue) {
	namespace := namespaceFor(kind, vendor)
	info := TagInfo{Source: EXIF, Tag: name, Namespace: namespace, Value: value}

	existing, found := b.tags.EXIF()[name]
	if found && existing.Namespace != namespace {
		// A different, earlier-visited scope already claimed this name:
		// first occurrence wins (spec §4.4).
		return
	}
	b.tags.Add(info)
}

// SetUnknown records an unresolved tag as UnknownTag_0x%04X, subject to
// BuilderOptions.EmitUnknownTags.
func (b *MetadataBuilder) SetUnknown(kind ifdKind, vendor Vendor, tag uint16, value AttrValue) {
	if !b.opts.EmitUnknownTags {
		return
	}
	name := fmt.Sprintf("%s0x%04X", UnknownPrefix, tag)
	b.Set(kind, vendor, tag, name, value)
}

func (b *MetadataBuilder) addWarning(w Warning) {
	b.warnings = append(b.warnings, w)
}

func (b *MetadataBuilder) Warnings() []Warning { return b.warnings }

func vendorName(v Vendor) string {
	switch v {
	case VendorCanon:
		return "Canon"
	case VendorNikon:
		return "Nikon"
	case VendorSony:
		return "Sony"
	case VendorOlympus:
		return "Olympus"
	case VendorPentax:
		return "Pentax"
	case VendorPanasonic:
		return "Panasonic"
	case VendorFujifilm:
		return "Fujifilm"
	case VendorSamsung:
		return "Samsung"
	case VendorApple:
		return "Apple"
	case VendorGoogle:
		return "Google"
	case VendorMotorola:
		return "Motorola"
	case VendorXiaomi:
		return "Xiaomi"
	case VendorOnePlus:
		return "OnePlus"
	case VendorOppo:
		return "Oppo"
	case VendorVivo:
		return "Vivo"
	case VendorKodak:
		return "Kodak"
	case VendorRicoh:
		return "Ricoh"
	case VendorSigma:
		return "Sigma"
	case VendorHasselblad:
		return "Hasselblad"
	case VendorPhaseOne:
		return "PhaseOne"
	case VendorDJI:
		return "DJI"
	default:
		return "Unknown"
	}
}
