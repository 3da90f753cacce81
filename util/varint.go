// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - maximum possible number of bytes in Varint64
const Varint64MaximumBytes = 9

// ToVarint64 - convert a 64 bit unsigned integer to Varint64
//
// Structure of the result
// byte 1:  ext | B06 | B05 | B04 | B03 | B02 | B01 | B00
// byte 2:  ext | B13 | B12 | B11 | B10 | B09 | B08 | B07
// ...
// byte 8:  ext | B55 | B54 | B53 | B52 | B51 | B50 | B49
// byte 9:  B63 | B62 | B61 | B60 | B59 | B58 | B57 | B56
func ToVarint64(value uint64) []byte {
	return AppendVarint64(make([]byte, 0, Varint64MaximumBytes), value)
}

// AppendVarint64 - append the Varint64 form of value to a buffer
func AppendVarint64(buffer []byte, value uint64) []byte {
	if value < 0x80 {
		return append(buffer, byte(value))
	}

	for i := 0; i < Varint64MaximumBytes && value != 0; i += 1 {
		ext := uint64(0x80)
		if value < 0x80 {
			ext = 0x00
		}
		buffer = append(buffer, byte(value|ext))
		value >>= 7
	}
	return buffer
}

// FromVarint64 - convert an array of up to Varint64MaximumBytes to a uint64
//
// also return the number of bytes used as second value
// returns 0, 0 if varint64 buffer is truncated
func FromVarint64(buffer []byte) (uint64, int) {
	result := uint64(0)

	shift := uint(0)
	count := 0

	for count < len(buffer) {
		currByte := uint64(buffer[count])
		count += 1
		if count < Varint64MaximumBytes {
			result |= currByte & 0x7f << shift
			if 0 == currByte&0x80 {
				return result, count
			}
		} else {
			result |= currByte << shift
			return result, count
		}
		shift += 7
	}
	return 0, 0
}

// AppendBytes - append data prefixed by Varint64(length)
func AppendBytes(buffer []byte, data []byte) []byte {
	buffer = AppendVarint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

// AppendString - append a string prefixed by Varint64(length)
func AppendString(buffer []byte, s string) []byte {
	buffer = AppendVarint64(buffer, uint64(len(s)))
	return append(buffer, s...)
}

// FromBytes - read a Varint64(length) prefixed field
//
// returns nil, 0 if the buffer is truncated
// the result shares storage with buffer
func FromBytes(buffer []byte) ([]byte, int) {
	length, n := FromVarint64(buffer)
	if 0 == n || uint64(len(buffer)-n) < length {
		return nil, 0
	}
	end := n + int(length)
	return buffer[n:end], end
}
