// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill

import (
	"strings"
)

// RadioType is the class of radio an rfkill switch controls.
// RadioType include/uapi/linux/rfkill.h
type RadioType uint8

const (
	TypeAll RadioType = iota
	TypeWLAN
	TypeBluetooth
	TypeUWB
	TypeWiMAX
	TypeWWAN
	TypeGPS
	TypeFM
	TypeNFC
	TypeNumRfkillTypes
)

var radioTypeLabels = [...]string{
	TypeAll:            "All",
	TypeWLAN:           "Wireless LAN",
	TypeBluetooth:      "Bluetooth",
	TypeUWB:            "Ultra-Wideband",
	TypeWiMAX:          "WiMAX",
	TypeWWAN:           "Wireless WAN",
	TypeGPS:            "GPS",
	TypeFM:             "FM",
	TypeNFC:            "NFC",
	TypeNumRfkillTypes: "NumRfkillTypes",
}

// short names as used by util-linux rfkill and /sys/class/rfkill/*/type
var radioTypeNames = [...]string{
	TypeAll:            "all",
	TypeWLAN:           "wlan",
	TypeBluetooth:      "bluetooth",
	TypeUWB:            "uwb",
	TypeWiMAX:          "wimax",
	TypeWWAN:           "wwan",
	TypeGPS:            "gps",
	TypeFM:             "fm",
	TypeNFC:            "nfc",
	TypeNumRfkillTypes: "",
}

var radioTypeAliases = map[string]RadioType{
	"wifi":          TypeWLAN,
	"ultrawideband": TypeUWB,
}

// RadioTypeFromCode converts a kernel type code.
func RadioTypeFromCode(code uint8) (RadioType, error) {
	if code > uint8(TypeNumRfkillTypes) {
		return 0, &InvalidCodeError{Kind: "radio type", Value: code}
	}
	return RadioType(code), nil
}

// RadioTypeFromLabel matches label exactly against the kernel labels,
// e.g. "Wireless LAN".
func RadioTypeFromLabel(label string) (RadioType, error) {
	for i, l := range radioTypeLabels {
		if l == label {
			return RadioType(i), nil
		}
	}
	return 0, &UnknownLabelError{Label: label}
}

// RadioTypeFromName accepts the short names (wlan, wifi, bluetooth ...).
// Matching is case-insensitive. Labels are accepted as well.
func RadioTypeFromName(name string) (RadioType, error) {
	lower := strings.ToLower(name)
	for i, n := range radioTypeNames {
		if n != "" && n == lower {
			return RadioType(i), nil
		}
	}
	if typ, ok := radioTypeAliases[lower]; ok {
		return typ, nil
	}
	return RadioTypeFromLabel(name)
}

func (typ RadioType) Code() uint8 {
	return uint8(typ)
}

func (typ RadioType) Label() string {
	if int(typ) < len(radioTypeLabels) {
		return radioTypeLabels[typ]
	}
	return ""
}

// Name returns the short name, empty for TypeNumRfkillTypes.
func (typ RadioType) Name() string {
	if int(typ) < len(radioTypeNames) {
		return radioTypeNames[typ]
	}
	return ""
}

func (typ RadioType) String() string {
	return typ.Label()
}

func (typ RadioType) MarshalText() ([]byte, error) {
	return []byte(typ.Label()), nil
}

func (typ *RadioType) UnmarshalText(text []byte) error {
	v, err := RadioTypeFromLabel(string(text))
	if err != nil {
		return err
	}
	*typ = v
	return nil
}
