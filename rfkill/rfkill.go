// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package rfkill talks to the kernel rfkill subsystem through /dev/rfkill
// using the legacy 8-byte event record. The extended record is not
// supported.
package rfkill

import (
	"github.com/linuxdeepin/go-lib/log"
)

var (
	// DevicePath is the shared rfkill character device.
	DevicePath = "/dev/rfkill"
	// SysClassPath is the sysfs directory holding one rfkill<idx> entry per switch.
	SysClassPath = "/sys/class/rfkill"
)

var logger = log.NewLogger("daemon/rfkill")

func SetLogger(l *log.Logger) {
	logger = l
}
