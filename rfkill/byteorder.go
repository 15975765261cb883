// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill

import (
	"encoding/binary"
	"unsafe"
)

// the kernel writes the index in host byte order
var byteOrder = getByteOrder()

// get byte order
func getByteOrder() binary.ByteOrder {
	var order binary.ByteOrder
	if isLittleEndian() {
		order = binary.LittleEndian
	} else {
		order = binary.BigEndian
	}
	return order
}

func isLittleEndian() bool {
	n := 0x1234
	f := *((*byte)(unsafe.Pointer(&n)))
	return (f ^ 0x34) == 0
}
