// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/linuxdeepin/dde-rfkill/rfkill"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type deviceInfo struct {
	ID     uint32 `json:"id" yaml:"id"`
	Type   string `json:"type" yaml:"type"`
	Device string `json:"device" yaml:"device"`
	Soft   string `json:"soft" yaml:"soft"`
	Hard   string `json:"hard" yaml:"hard"`
}

func blockedString(blocked bool) string {
	if blocked {
		return "blocked"
	}
	return "unblocked"
}

// newDeviceInfo prefers the sysfs attributes and falls back to the
// event flags when they can't be read.
func newDeviceInfo(ev rfkill.Event) deviceInfo {
	info := deviceInfo{
		ID:   ev.Index,
		Type: ev.Type.Name(),
		Soft: blockedString(ev.Soft),
		Hard: blockedString(ev.Hard),
	}
	state, err := rfkill.GetSysState(ev.Index)
	if err != nil {
		logger.Debugf("read sysfs state of rfkill%d failed: %v", ev.Index, err)
		info.Device, _ = ev.Name()
		return info
	}
	info.Device = state.Name
	info.Soft = blockedString(state.Soft)
	info.Hard = blockedString(state.Hard)
	return info
}

type eventInfo struct {
	Time      string `json:"time" yaml:"time"`
	ID        uint32 `json:"id" yaml:"id"`
	Type      uint8  `json:"type" yaml:"type"`
	Operation string `json:"op" yaml:"op"`
	Soft      bool   `json:"soft" yaml:"soft"`
	Hard      bool   `json:"hard" yaml:"hard"`
}

type printer interface {
	printDevices(infos []deviceInfo) error
	printEvent(ev rfkill.Event) error
}

func newPrinter(w io.Writer, format string) (printer, error) {
	switch format {
	case formatText:
		return &textPrinter{w: w}, nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return &encoderPrinter{enc: enc}, nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return &encoderPrinter{enc: enc, flush: enc.Close}, nil
	}
	return nil, xerrors.Errorf("unknown format %q", format)
}

func newEventInfo(ev rfkill.Event) eventInfo {
	return eventInfo{
		Time:      time.Now().Format(time.RFC3339Nano),
		ID:        ev.Index,
		Type:      ev.Type.Code(),
		Operation: ev.Op.String(),
		Soft:      ev.Soft,
		Hard:      ev.Hard,
	}
}

type textPrinter struct {
	w io.Writer
}

func (p *textPrinter) printDevices(infos []deviceInfo) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tDEVICE\tSOFT\tHARD")
	for _, info := range infos {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", info.ID, info.Type, info.Device, info.Soft, info.Hard)
	}
	return tw.Flush()
}

func (p *textPrinter) printEvent(ev rfkill.Event) error {
	info := newEventInfo(ev)
	_, err := fmt.Fprintf(p.w, "%s: idx %d type %d op %d soft %d hard %d\n",
		info.Time, info.ID, info.Type, ev.Op.Code(), boolToInt(ev.Soft), boolToInt(ev.Hard))
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type encoder interface {
	Encode(v interface{}) error
}

type encoderPrinter struct {
	enc   encoder
	flush func() error
}

func (p *encoderPrinter) printDevices(infos []deviceInfo) error {
	if infos == nil {
		infos = []deviceInfo{}
	}
	err := p.enc.Encode(map[string][]deviceInfo{"rfkilldevices": infos})
	if err != nil {
		return err
	}
	if p.flush != nil {
		return p.flush()
	}
	return nil
}

func (p *encoderPrinter) printEvent(ev rfkill.Event) error {
	return p.enc.Encode(newEventInfo(ev))
}
