// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill

import (
	"github.com/godbus/dbus/v5"
)

// keys of the a{sv} form of an Event
const (
	KeyIndex     = "Index"
	KeyType      = "Type"
	KeyOperation = "Operation"
	KeySoft      = "Soft"
	KeyHard      = "Hard"
)

// ToVariantMap returns e in its a{sv} bus form. Enumerations are sent as
// their labels.
func (e Event) ToVariantMap() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		KeyIndex:     dbus.MakeVariant(e.Index),
		KeyType:      dbus.MakeVariant(e.Type.Label()),
		KeyOperation: dbus.MakeVariant(e.Op.String()),
		KeySoft:      dbus.MakeVariant(e.Soft),
		KeyHard:      dbus.MakeVariant(e.Hard),
	}
}
