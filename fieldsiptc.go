// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

// Source: https://exiftool.org/TagNames/IPTC.html
//
// The record/dataset table the IPTC decoder resolves against. RecordName is
// filled in at init from iptcRerordNames (metadecoder_iptc.go).
var iptcFieldDefs = []iptcField{
	// Record 1: IPTCEnvelope.
	{Record: 1, ID: 0, Name: "EnvelopeRecordVersion", Format: "short"},
	{Record: 1, ID: 5, Name: "Destination", Format: "string", Repeatable: true},
	{Record: 1, ID: 20, Name: "FileFormat", Format: "short"},
	{Record: 1, ID: 22, Name: "FileVersion", Format: "short"},
	{Record: 1, ID: 30, Name: "ServiceIdentifier", Format: "string"},
	{Record: 1, ID: 40, Name: "EnvelopeNumber", Format: "string"},
	{Record: 1, ID: 50, Name: "ProductID", Format: "string", Repeatable: true},
	{Record: 1, ID: 60, Name: "EnvelopePriority", Format: "string"},
	{Record: 1, ID: 70, Name: "DateSent", Format: "string"},
	{Record: 1, ID: 80, Name: "TimeSent", Format: "string"},
	{Record: 1, ID: 90, Name: "CodedCharacterSet", Format: "string"},
	{Record: 1, ID: 100, Name: "UniqueObjectName", Format: "string"},
	{Record: 1, ID: 120, Name: "ARMIdentifier", Format: "short"},
	{Record: 1, ID: 122, Name: "ARMVersion", Format: "short"},

	// Record 2: IPTCApplication.
	{Record: 2, ID: 0, Name: "ApplicationRecordVersion", Format: "short"},
	{Record: 2, ID: 3, Name: "ObjectTypeReference", Format: "string"},
	{Record: 2, ID: 4, Name: "ObjectAttributeReference", Format: "string", Repeatable: true},
	{Record: 2, ID: 5, Name: "ObjectName", Format: "string"},
	{Record: 2, ID: 7, Name: "EditStatus", Format: "string"},
	{Record: 2, ID: 8, Name: "EditorialUpdate", Format: "string"},
	{Record: 2, ID: 10, Name: "Urgency", Format: "string"},
	{Record: 2, ID: 12, Name: "SubjectReference", Format: "string", Repeatable: true},
	{Record: 2, ID: 15, Name: "Category", Format: "string"},
	{Record: 2, ID: 20, Name: "SupplementalCategories", Format: "string", Repeatable: true},
	{Record: 2, ID: 22, Name: "FixtureIdentifier", Format: "string"},
	{Record: 2, ID: 25, Name: "Keywords", Format: "string", Repeatable: true},
	{Record: 2, ID: 26, Name: "ContentLocationCode", Format: "string", Repeatable: true},
	{Record: 2, ID: 27, Name: "ContentLocationName", Format: "string", Repeatable: true},
	{Record: 2, ID: 30, Name: "ReleaseDate", Format: "string"},
	{Record: 2, ID: 35, Name: "ReleaseTime", Format: "string"},
	{Record: 2, ID: 37, Name: "ExpirationDate", Format: "string"},
	{Record: 2, ID: 38, Name: "ExpirationTime", Format: "string"},
	{Record: 2, ID: 40, Name: "SpecialInstructions", Format: "string"},
	{Record: 2, ID: 42, Name: "ActionAdvised", Format: "string"},
	{Record: 2, ID: 45, Name: "ReferenceService", Format: "string", Repeatable: true},
	{Record: 2, ID: 47, Name: "ReferenceDate", Format: "string", Repeatable: true},
	{Record: 2, ID: 50, Name: "ReferenceNumber", Format: "string", Repeatable: true},
	{Record: 2, ID: 55, Name: "DateCreated", Format: "string"},
	{Record: 2, ID: 60, Name: "TimeCreated", Format: "string"},
	{Record: 2, ID: 62, Name: "DigitalCreationDate", Format: "string"},
	{Record: 2, ID: 63, Name: "DigitalCreationTime", Format: "string"},
	{Record: 2, ID: 65, Name: "OriginatingProgram", Format: "string"},
	{Record: 2, ID: 70, Name: "ProgramVersion", Format: "string"},
	{Record: 2, ID: 75, Name: "ObjectCycle", Format: "string"},
	{Record: 2, ID: 80, Name: "By-line", Format: "string", Repeatable: true},
	{Record: 2, ID: 85, Name: "By-lineTitle", Format: "string", Repeatable: true},
	{Record: 2, ID: 90, Name: "City", Format: "string"},
	{Record: 2, ID: 92, Name: "Sub-location", Format: "string"},
	{Record: 2, ID: 95, Name: "Province-State", Format: "string"},
	{Record: 2, ID: 100, Name: "Country-PrimaryLocationCode", Format: "string"},
	{Record: 2, ID: 101, Name: "Country-PrimaryLocationName", Format: "string"},
	{Record: 2, ID: 103, Name: "OriginalTransmissionReference", Format: "string"},
	{Record: 2, ID: 105, Name: "Headline", Format: "string"},
	{Record: 2, ID: 110, Name: "Credit", Format: "string"},
	{Record: 2, ID: 115, Name: "Source", Format: "string"},
	{Record: 2, ID: 116, Name: "CopyrightNotice", Format: "string"},
	{Record: 2, ID: 118, Name: "Contact", Format: "string", Repeatable: true},
	{Record: 2, ID: 120, Name: "Caption-Abstract", Format: "string"},
	{Record: 2, ID: 122, Name: "Writer-Editor", Format: "string", Repeatable: true},
	{Record: 2, ID: 130, Name: "ImageType", Format: "string"},
	{Record: 2, ID: 131, Name: "ImageOrientation", Format: "string"},
	{Record: 2, ID: 135, Name: "LanguageIdentifier", Format: "string"},

	// Record 3: IPTCNewsPhoto.
	{Record: 3, ID: 0, Name: "NewsPhotoVersion", Format: "short"},
	{Record: 3, ID: 10, Name: "IPTCPictureNumber", Format: "string"},
	{Record: 3, ID: 20, Name: "IPTCImageWidth", Format: "short"},
	{Record: 3, ID: 30, Name: "IPTCImageHeight", Format: "short"},
	{Record: 3, ID: 40, Name: "IPTCPixelWidth", Format: "short"},
	{Record: 3, ID: 50, Name: "IPTCPixelHeight", Format: "short"},
	{Record: 3, ID: 70, Name: "QuantizationMethod", Format: "byte"},

	// Record 7: IPTCPreObjectData.
	{Record: 7, ID: 10, Name: "SizeMode", Format: "byte"},
	{Record: 7, ID: 20, Name: "MaxSubfileSize", Format: "uint32"},
	{Record: 7, ID: 90, Name: "ObjectSizeAnnounced", Format: "uint32"},
	{Record: 7, ID: 95, Name: "MaximumObjectSize", Format: "uint32"},

	// Record 8: IPTCObjectData.
	{Record: 8, ID: 10, Name: "SubFile", Format: "string", Repeatable: true},

	// Record 9: IPTCPostObjectData.
	{Record: 9, ID: 10, Name: "ConfirmedObjectSize", Format: "uint32"},
}
