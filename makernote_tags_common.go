// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

// Sony, Olympus, Pentax, Panasonic, and Fujifilm do not appear in
// original_source's kept makernotes/ excerpt. Their tag tables below are
// authored from widely-published ExifTool MakerNotes conventions, in the
// same (tag -> short name) shape as the grounded vendor tables in
// makernote_tags.go and makernote_tags_phone.go. All five dispatch with no
// vendor header and the parent's byte order and base, per spec §4.5's
// "All others" row.
func init() {
	vendorTagTables[VendorSony] = sonyTags
	vendorTagTables[VendorOlympus] = olympusTags
	vendorTagTables[VendorPentax] = pentaxTags
	vendorTagTables[VendorPanasonic] = panasonicTags
	vendorTagTables[VendorFujifilm] = fujifilmTags
}

var sonyTags = map[uint16]TagDef{
	0x0102: tagDef("Quality"),
	0x0104: tagDef("FlashExposureComp"),
	0x0105: tagDef("Teleconverter"),
	0x0112: tagDef("WhiteBalanceFineTune"),
	0x0114: tagDef("CameraSettings"),
	0xb000: tagDef("FileFormat"),
	0xb001: tagDef("SonyModelID"),
	0xb020: tagDef("ColorReproduction"),
	0xb028: tagDef("DynamicRangeOptimizer"),
}

var olympusTags = map[uint16]TagDef{
	0x0200: tagDef("SpecialMode"),
	0x0201: tagDef("Quality"),
	0x0202: tagDef("Macro"),
	0x0204: tagDef("DigitalZoom"),
	0x0207: tagDef("CameraType"),
	0x0209: tagDef("CameraID"),
	0x020b: tagDef("EquipmentVersion"),
	0x1002: tagDef("SharpnessFactor"),
}

var pentaxTags = map[uint16]TagDef{
	0x0001: tagDef("PentaxVersion"),
	0x0002: tagDef("PentaxModelType"),
	0x0003: tagDef("PreviewImageSize"),
	0x0004: tagDef("PreviewImageLength"),
	0x0005: tagDef("PreviewImageStart"),
	0x000d: tagDef("FocusMode"),
	0x000e: tagDef("AFPointSelected"),
}

var panasonicTags = map[uint16]TagDef{
	0x0001: tagDef("ImageQuality"),
	0x0002: tagDef("FirmwareVersion"),
	0x0003: tagDef("WhiteBalance"),
	0x0007: tagDef("FocusMode"),
	0x000f: tagDef("AFAreaMode"),
	0x001a: tagDef("ImageStabilization"),
	0x0023: tagDef("WhiteBalanceBias"),
}

var fujifilmTags = map[uint16]TagDef{
	0x0000: tagDef("Version"),
	0x1000: tagDef("Quality"),
	0x1001: tagDef("Sharpness"),
	0x1002: tagDef("WhiteBalance"),
	0x1003: tagDef("Saturation"),
	0x1006: tagDef("FlashMode"),
	0x1400: tagDef("DynamicRange"),
}
