// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

// vendorTagTables is the registry TagResolver consults for
// ScopeMakerNote lookups (tagresolver.go). One table per Vendor; a nil
// entry means the vendor is recognized by dispatch (makernote.go) but has
// no known tag table, in which case entries surface as
// UnknownTag_0x%04X (subject to BuilderOptions.EmitUnknownTags).
var vendorTagTables = map[Vendor]map[uint16]TagDef{
	VendorApple:      appleTags,
	VendorDJI:        djiTags,
	VendorCanon:      canonTags,
	VendorNikon:      nikonTags,
	VendorSamsung:    samsungTags,
	VendorHasselblad: hasselbladTags,
	VendorPhaseOne:   phaseOneTags,
	VendorSigma:      sigmaTags,
}

func tagDef(name string) TagDef { return TagDef{Name: name} }

// appleTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/apple.rs.
var appleTags = map[uint16]TagDef{
	0x0001: tagDef("MakerNoteVersion"),
	0x0002: tagDef("AEStable"),
	0x0003: tagDef("AETarget"),
	0x0004: tagDef("AEAverage"),
	0x0005: tagDef("AFStable"),
	0x0006: tagDef("AccelerationVector"),
	0x0007: tagDef("HDRImageType"),
	0x0008: tagDef("BurstUUID"),
	0x000a: tagDef("TargetExposureDuration"),
	0x000b: tagDef("FocusDistanceRange"),
	0x000c: tagDef("FocusRange"),
	0x000e: tagDef("HDRGain"),
	0x0013: tagDef("PhotoIdentifier"),
	0x0014: tagDef("ImageCaptureRequestID"),
	0x0015: tagDef("FocusPosition"),
	0x0016: tagDef("HDRHeadroom"),
	0x0017: tagDef("SemanticRendering"),
	0x0019: tagDef("GainControl"),
	0x0021: tagDef("PhotoZoomFactor"),
	0x0023: tagDef("ContentIdentifier"),
	0x0025: tagDef("ImageCaptureType"),
	0x0026: tagDef("ImageUniqueID"),
	0x0027: tagDef("LivePhotoVideoIndex"),
	0x002b: tagDef("QualityHint"),
	0x002c: tagDef("LuminanceNoiseAmplitude"),
	0x0031: tagDef("MediaGroupUUID"),
	0x0033: tagDef("CaptureMode"),
	0x0038: tagDef("FrontFacingCamera"),
}

// djiTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/dji.rs and the
// generated DJI_MAIN table (exiftool-tags/src/generated/dji.rs).
var djiTags = map[uint16]TagDef{
	0x0001: tagDef("Make"),
	0x0003: tagDef("SpeedX"),
	0x0004: tagDef("SpeedY"),
	0x0005: tagDef("SpeedZ"),
	0x0006: tagDef("Pitch"),
	0x0007: tagDef("Yaw"),
	0x0008: tagDef("Roll"),
	0x0009: tagDef("CameraPitch"),
	0x000a: tagDef("CameraYaw"),
	0x000b: tagDef("CameraRoll"),
}

// canonTags is grounded on rwcarlsen/goexif's mknote package shape
// (Canon MakerNotes carry no header, parent scope) and the Canon
// CameraSettings / Camera Info tag ids it names.
var canonTags = map[uint16]TagDef{
	0x0001: tagDef("CanonCameraSettings"),
	0x0002: tagDef("CanonFocalLength"),
	0x0004: tagDef("CanonShotInfo"),
	0x0006: tagDef("CanonImageType"),
	0x0007: tagDef("CanonFirmwareVersion"),
	0x0009: tagDef("OwnerName"),
	0x000c: tagDef("SerialNumber"),
	0x000f: tagDef("CanonCustomFunctions"),
	0x0095: tagDef("LensModel"),
	0x00a0: tagDef("CanonImageSize"),
}

// nikonTags covers tag names common to both the no-header classic layout
// and the type-3 embedded-TIFF layout (rwcarlsen/goexif's loadNikonV3).
var nikonTags = map[uint16]TagDef{
	0x0001: tagDef("MakerNoteVersion"),
	0x0002: tagDef("ISOSpeed"),
	0x0004: tagDef("Quality"),
	0x0005: tagDef("WhiteBalance"),
	0x0007: tagDef("FocusMode"),
	0x000b: tagDef("WhiteBalanceFineTune"),
	0x0011: tagDef("PreviewIFD"),
	0x001b: tagDef("FlashInfo"),
	0x0083: tagDef("LensType"),
	0x0084: tagDef("Lens"),
}

// samsungTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/samsung.rs.
var samsungTags = map[uint16]TagDef{
	0x0001: tagDef("MakerNoteVersion"),
	0x0002: tagDef("DeviceType"),
	0x0003: tagDef("SamsungModelID"),
	0x0021: tagDef("PictureWizard"),
	0x0030: tagDef("LocalLocationName"),
	0x0031: tagDef("LocationName"),
	0x0035: tagDef("Preview"),
	0x0043: tagDef("CameraTemperature"),
	0x0050: tagDef("RawDataByteOrder"),
	0x0060: tagDef("RawDataCFAPattern"),
	0x0100: tagDef("FaceDetect"),
	0x0120: tagDef("FaceRecognition"),
	0x0123: tagDef("FaceName"),
	0x0140: tagDef("SmartRange"),
	0x0a01: tagDef("FirmwareName"),
	0xa001: tagDef("ColorSpace2"),
	0xa003: tagDef("ExposureCompensation"),
	0xa004: tagDef("Contrast"),
	0xa010: tagDef("ColorMode"),
	0xa011: tagDef("Sharpness"),
}

// hasselbladTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/hasselblad.rs.
var hasselbladTags = map[uint16]TagDef{
	0x0002: tagDef("SerialNumber"),
	0x0003: tagDef("Model"),
	0x0004: tagDef("RawMode"),
	0x0005: tagDef("WhiteBalance"),
	0x0006: tagDef("SharpnessMode"),
	0x0008: tagDef("FlashMode"),
	0x0009: tagDef("FlashInfo"),
	0x000b: tagDef("AELock"),
	0x0010: tagDef("ExposureMode"),
	0x0011: tagDef("ExposureCompensation"),
	0x0012: tagDef("MeteringMode"),
	0x0015: tagDef("DriveMode"),
	0x001a: tagDef("FocusMode"),
	0x001b: tagDef("ColorMode"),
	0x001c: tagDef("ColorProfile"),
	0x0020: tagDef("WhiteBalancePreset"),
	0x0021: tagDef("Sharpness"),
	0x0022: tagDef("Contrast"),
	0x0023: tagDef("Saturation"),
	0x0028: tagDef("ISO"),
}

// phaseOneTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/phaseone.rs.
var phaseOneTags = map[uint16]TagDef{
	0x0100: tagDef("CameraOrientation"),
	0x0102: tagDef("Software"),
	0x0105: tagDef("SerialNumber"),
	0x0106: tagDef("ISO"),
	0x0107: tagDef("ImageFormat"),
	0x0108: tagDef("RawFormat"),
	0x0109: tagDef("SensorWidth"),
	0x010a: tagDef("SensorHeight"),
	0x010b: tagDef("SensorLeftMargin"),
	0x010c: tagDef("SensorTopMargin"),
	0x010d: tagDef("ImageWidth"),
	0x010e: tagDef("ImageHeight"),
	0x0110: tagDef("DateTimeOriginal"),
	0x0112: tagDef("SensorTemperature"),
	0x0203: tagDef("SensorTemperature2"),
	0x0210: tagDef("StripOffsets"),
	0x0211: tagDef("StripByteCounts"),
	0x021c: tagDef("WhiteBalance"),
	0x0220: tagDef("UserCrop"),
	0x0301: tagDef("ShutterSpeedValue"),
}

// sigmaTags is grounded on
// original_source/crates/exiftool-formats/src/makernotes/sigma.rs ("SIGMA"
// and "FOVEON" headers, forced little-endian).
var sigmaTags = map[uint16]TagDef{
	0x0002: tagDef("SerialNumber"),
	0x0003: tagDef("DriveMode"),
	0x0004: tagDef("ResolutionMode"),
	0x0005: tagDef("AFMode"),
	0x0006: tagDef("FocusSetting"),
	0x0007: tagDef("WhiteBalance"),
	0x0008: tagDef("ExposureMode"),
	0x0009: tagDef("MeteringMode"),
	0x000a: tagDef("LensFocalRange"),
	0x000b: tagDef("ColorSpace"),
	0x000c: tagDef("ExposureCompensation"),
	0x000d: tagDef("Contrast"),
	0x000e: tagDef("Shadow"),
	0x000f: tagDef("Highlight"),
	0x0010: tagDef("Saturation"),
	0x0011: tagDef("Sharpness"),
	0x0012: tagDef("X3FillLight"),
	0x0014: tagDef("ColorAdjustment"),
	0x0015: tagDef("AdjustmentMode"),
	0x0016: tagDef("Quality"),
}
