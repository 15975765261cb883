// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkilld

//go:generate go build -o target/ github.com/linuxdeepin/dde-rfkill/bin/dde-rfkill-daemon
//go:generate go build -o target/ github.com/linuxdeepin/dde-rfkill/bin/dde-rfkill
