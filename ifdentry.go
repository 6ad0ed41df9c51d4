// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagemeta

import "strconv"

// maxIfdEntries is the hard cap on the number of entries a single IFD may
// declare. Spec sources disagree between the structural limit (65535, a
// u16) and an implicit, safety-motivated 4096; this implementation picks
// the stricter value as its primary DoS defense (see DESIGN.md).
const maxIfdEntries = 4096

// IfdEntry is the four-tuple on-disk record: tag, format, count, and the
// resolved value. The on-disk layout is 2+2+4+4 bytes; the trailing 4 bytes
// are either the value itself (when format.Size()*count <= 4) or a logical
// offset to the value.
type IfdEntry struct {
	Tag    uint16
	Format FormatCode
	Count  uint32
	Value  RawValue
}

// ReadIFD reads one IFD at a logical offset within scope, following the
// seven-step protocol: resolve the offset, cap and read the entry count,
// read each 12-byte entry, compute the required byte size with checked
// multiplication, resolve in-line vs out-of-line values, decode, and
// finally read the next-IFD offset. Any per-entry failure is recorded as a
// Warning and the entry is skipped rather than aborting the whole IFD;
// only a failure to resolve the IFD offset itself, to read its entry
// count, or an entry count above maxIfdEntries (ErrTooManyIfdEntries) is
// returned as an error.
func ReadIFD(scope Scope, logicalOffset int64, location string) ([]IfdEntry, int64, []Warning, error) {
	var warnings []Warning

	phys, err := scope.Resolve(logicalOffset)
	if err != nil {
		return nil, 0, nil, err
	}

	count, err := scope.U16(phys)
	if err != nil {
		return nil, 0, nil, err
	}
	if int(count) > maxIfdEntries {
		return nil, 0, nil, newParseError(ErrTooManyIfdEntries, "IFD entry count %d exceeds maximum %d", count, maxIfdEntries)
	}

	entries := make([]IfdEntry, 0, count)
	pos := phys + 2

	for i := range int(count) {
		entryLoc := location + " entry " + strconv.Itoa(i)

		tag, err := scope.U16(pos)
		if err != nil {
			warnings = append(warnings, Warning{Kind: ErrUnexpectedEOF, Location: entryLoc, Err: err})
			break
		}
		fmtCode, err := scope.U16(pos + 2)
		if err != nil {
			warnings = append(warnings, Warning{Kind: ErrUnexpectedEOF, Location: entryLoc, Err: err})
			break
		}
		entryCount, err := scope.U32(pos + 4)
		if err != nil {
			warnings = append(warnings, Warning{Kind: ErrUnexpectedEOF, Location: entryLoc, Err: err})
			break
		}

		format, ok := FormatFromU16(fmtCode)
		if !ok {
			// Unknown format codes are skipped at the IFD level, not a
			// failure; they show up in the wild (spec §4.2).
			pos += 12
			continue
		}

		size := format.Size()
		required, overflow := checkedMul(uint64(size), uint64(entryCount))
		if overflow {
			warnings = append(warnings, Warning{
				Kind: ErrValueSizeOverflow, Location: entryLoc,
				Err: newParseError(ErrValueSizeOverflow, "value size overflow: format size %d * count %d overflows", size, entryCount),
			})
			pos += 12
			continue
		}

		var valueBytes []byte
		if required <= 4 {
			valueBytes, err = scope.Slice(pos+8, int(required))
			if err != nil {
				warnings = append(warnings, Warning{Kind: ErrValueOutOfBounds, Location: entryLoc, Err: err})
				pos += 12
				continue
			}
		} else {
			valueOffset, err := scope.U32(pos + 8)
			if err != nil {
				warnings = append(warnings, Warning{Kind: ErrUnexpectedEOF, Location: entryLoc, Err: err})
				pos += 12
				continue
			}
			valuePhys, err := scope.Resolve(int64(valueOffset))
			if err != nil {
				warnings = append(warnings, Warning{Kind: ErrValueOutOfBounds, Location: entryLoc, Err: err})
				pos += 12
				continue
			}
			valueBytes, err = scope.Slice(valuePhys, int(required))
			if err != nil {
				warnings = append(warnings, Warning{Kind: ErrValueOutOfBounds, Location: entryLoc, Err: err})
				pos += 12
				continue
			}
		}

		rv, err := decodeRawValue(scope, format, entryCount, valueBytes)
		if err != nil {
			warnings = append(warnings, Warning{Kind: ErrInvalidFormatCode, Location: entryLoc, Err: err})
			pos += 12
			continue
		}

		entries = append(entries, IfdEntry{Tag: tag, Format: format, Count: entryCount, Value: rv})
		pos += 12
	}

	next, err := scope.U32(pos)
	if err != nil {
		// A truncated next-IFD offset ends the chain rather than failing
		// the whole read; the entries already collected are valid.
		return entries, 0, warnings, nil
	}

	return entries, int64(next), warnings, nil
}

// checkedMul multiplies two uint64 values, reporting overflow instead of
// wrapping, matching spec §4.3 step 4's requirement.
func checkedMul(a, b uint64) (result uint64, overflow bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	result = a * b
	return result, result/a != b
}
