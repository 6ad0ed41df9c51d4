// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

func init() {
	vendorTagTables[VendorGoogle] = googleTags
	vendorTagTables[VendorMotorola] = motorolaTags
	vendorTagTables[VendorXiaomi] = xiaomiTags
	vendorTagTables[VendorOnePlus] = onePlusTags
	vendorTagTables[VendorOppo] = oppoTags
	vendorTagTables[VendorVivo] = vivoTags
	vendorTagTables[VendorKodak] = kodakTags
	vendorTagTables[VendorRicoh] = ricohTags
}

// googleTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/google.rs.
var googleTags = map[uint16]TagDef{
	0x0001: tagDef("MakerNoteVersion"),
	0x0002: tagDef("HDRPlusUsed"),
	0x0003: tagDef("NightModeUsed"),
	0x0004: tagDef("MotionPhoto"),
	0x0005: tagDef("MicroVideoVersion"),
	0x0006: tagDef("MicroVideoOffset"),
	0x0007: tagDef("MicroVideoPresentationTimestampUs"),
	0x0008: tagDef("PortraitModeUsed"),
	0x0009: tagDef("PortraitVersion"),
	0x000a: tagDef("DepthMap"),
	0x000b: tagDef("SpecialTypeID"),
	0x000c: tagDef("BurstId"),
	0x000d: tagDef("BurstPrimary"),
	0x0010: tagDef("CameraMode"),
	0x0011: tagDef("PhotoSphereInfo"),
	0x0012: tagDef("AstroCaptureMode"),
	0x0013: tagDef("LongExposureUsed"),
	0x0014: tagDef("MacroModeUsed"),
}

// motorolaTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/motorola.rs.
var motorolaTags = map[uint16]TagDef{
	0x0001: tagDef("MakerNoteVersion"),
	0x0100: tagDef("SerialNumber"),
	0x0200: tagDef("SceneMode"),
	0x0201: tagDef("FocusMode"),
	0x0202: tagDef("ExposureMode"),
	0x0203: tagDef("WhiteBalance"),
	0x0204: tagDef("FlashMode"),
	0x0205: tagDef("ISO"),
	0x0300: tagDef("AIScene"),
	0x0301: tagDef("AISceneConfidence"),
	0x0400: tagDef("LensType"),
	0x0401: tagDef("ZoomRatio"),
	0x0500: tagDef("BeautyMode"),
	0x0501: tagDef("BeautyLevel"),
	0x0600: tagDef("HDRMode"),
	0x0601: tagDef("NightMode"),
}

// xiaomiTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/xiaomi.rs.
var xiaomiTags = map[uint16]TagDef{
	0x0001: tagDef("MakerNoteVersion"),
	0x0100: tagDef("SerialNumber"),
	0x0200: tagDef("SceneMode"),
	0x0201: tagDef("AEMode"),
	0x0202: tagDef("FocusMode"),
	0x0203: tagDef("AWBMode"),
	0x0204: tagDef("FocusDistance"),
	0x0205: tagDef("FNumber"),
	0x0206: tagDef("ExposureProgram"),
	0x0207: tagDef("FlashMode"),
	0x0208: tagDef("FlashStatus"),
	0x0210: tagDef("AISceneDetection"),
	0x0211: tagDef("AISceneType"),
	0x0212: tagDef("BeautifyLevel"),
	0x0213: tagDef("NightMode"),
	0x0214: tagDef("HDRMode"),
	0x0215: tagDef("PortraitMode"),
	0x0216: tagDef("UltraWideAngle"),
	0x0217: tagDef("MacroMode"),
	0x0218: tagDef("ZoomLevel"),
}

// onePlusTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/oneplus.rs.
var onePlusTags = map[uint16]TagDef{
	0x0001: tagDef("MakerNoteVersion"),
	0x0002: tagDef("DeviceModel"),
	0x0100: tagDef("SerialNumber"),
	0x0200: tagDef("SceneMode"),
	0x0201: tagDef("FocusMode"),
	0x0202: tagDef("ExposureMode"),
	0x0203: tagDef("WhiteBalance"),
	0x0204: tagDef("FlashMode"),
	0x0210: tagDef("AIScene"),
	0x0211: tagDef("AISceneType"),
	0x0300: tagDef("LensType"),
	0x0301: tagDef("ZoomLevel"),
	0x0400: tagDef("NightMode"),
	0x0401: tagDef("HDRMode"),
	0x0402: tagDef("ProMode"),
	0x0500: tagDef("BeautyMode"),
	0x0501: tagDef("PortraitMode"),
	0x0600: tagDef("VideoMode"),
}

// oppoTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/oppo.rs.
var oppoTags = map[uint16]TagDef{
	0x0001: tagDef("MakerNoteVersion"),
	0x0002: tagDef("DeviceModel"),
	0x0003: tagDef("FirmwareVersion"),
	0x0100: tagDef("SerialNumber"),
	0x0200: tagDef("SceneMode"),
	0x0201: tagDef("FocusMode"),
	0x0202: tagDef("ExposureMode"),
	0x0203: tagDef("WhiteBalance"),
	0x0204: tagDef("FlashMode"),
	0x0210: tagDef("AIScene"),
	0x0211: tagDef("AISceneType"),
	0x0212: tagDef("AISceneConfidence"),
	0x0300: tagDef("LensType"),
	0x0301: tagDef("ZoomLevel"),
	0x0302: tagDef("DigitalZoom"),
	0x0400: tagDef("NightMode"),
	0x0401: tagDef("HDRMode"),
	0x0402: tagDef("ProMode"),
	0x0500: tagDef("BeautyMode"),
	0x0501: tagDef("PortraitMode"),
}

// vivoTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/vivo.rs.
var vivoTags = map[uint16]TagDef{
	0x0001: tagDef("MakerNoteVersion"),
	0x0002: tagDef("DeviceModel"),
	0x0003: tagDef("FirmwareVersion"),
	0x0100: tagDef("SerialNumber"),
	0x0200: tagDef("SceneMode"),
	0x0201: tagDef("FocusMode"),
	0x0202: tagDef("ExposureMode"),
	0x0203: tagDef("WhiteBalance"),
	0x0204: tagDef("FlashMode"),
	0x0210: tagDef("AIScene"),
	0x0211: tagDef("AISceneType"),
	0x0220: tagDef("ZEISSOptimization"),
	0x0300: tagDef("LensType"),
	0x0301: tagDef("ZoomLevel"),
	0x0302: tagDef("GimbalStabilization"),
	0x0400: tagDef("NightMode"),
	0x0401: tagDef("HDRMode"),
	0x0402: tagDef("ProMode"),
	0x0500: tagDef("BeautyMode"),
	0x0501: tagDef("PortraitMode"),
}

// kodakTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/kodak.rs (type
// 1/2/3 header variants, spec §4.5's Kodak row).
var kodakTags = map[uint16]TagDef{
	0x0001: tagDef("KodakModel"),
	0x0003: tagDef("YearCreated"),
	0x0005: tagDef("BurstMode"),
	0x000e: tagDef("ImageWidth"),
	0x000f: tagDef("ImageHeight"),
	0x0010: tagDef("MonthDayCreated"),
	0x0011: tagDef("TimeCreated"),
	0x0012: tagDef("BurstMode2"),
	0x001c: tagDef("SerialNumber"),
	0x001d: tagDef("WhiteBalance"),
	0x0024: tagDef("FlashMode"),
	0x0025: tagDef("FlashFired"),
	0x0026: tagDef("ISOSetting"),
	0x0027: tagDef("ISO"),
	0x0028: tagDef("TotalZoom"),
	0x0029: tagDef("DateTimeStamp"),
	0x0102: tagDef("FocusMode"),
	0x0104: tagDef("Quality"),
	0x0108: tagDef("Flash"),
	0x0109: tagDef("RedEyeReduction"),
}

// ricohTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/ricoh.rs
// ("Rv"/"RICOH\0"/"RICOH"+pad header variants, spec §4.5's Ricoh row).
var ricohTags = map[uint16]TagDef{
	0x0001: tagDef("MakerNoteType"),
	0x0002: tagDef("FirmwareVersion"),
	0x0005: tagDef("SerialNumber"),
	0x000e: tagDef("ImageInfo"),
	0x1001: tagDef("ManometerPressure"),
	0x1002: tagDef("ManometerReading"),
	0x1003: tagDef("AccelerometerX"),
	0x1004: tagDef("AccelerometerY"),
	0x1005: tagDef("AccelerometerZ"),
	0x1006: tagDef("CompassHeading"),
	0x1007: tagDef("ManualWhiteBalance"),
	0x1009: tagDef("DigitalZoom"),
	0x1100: tagDef("FaceInfo"),
	0x2001: tagDef("RicohSubdir"),
}
