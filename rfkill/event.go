// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill

import (
	"fmt"
)

// WireEventSize is the size of the legacy struct rfkill_event.
const WireEventSize = 8

// field offsets inside struct rfkill_event
const (
	offIndex = 0
	offType  = 4
	offOp    = 5
	offSoft  = 6
	offHard  = 7
)

// WireEvent is the byte-exact legacy rfkill record. The zero value is
// the zeroed record. Setters return an updated copy.
type WireEvent struct {
	idx  uint32
	typ  uint8
	op   uint8
	soft uint8
	hard uint8
}

func (ev WireEvent) WithIndex(idx uint32) WireEvent {
	ev.idx = idx
	return ev
}

func (ev WireEvent) WithRadioType(typ RadioType) WireEvent {
	ev.typ = typ.Code()
	return ev
}

func (ev WireEvent) WithOperation(op Operation) WireEvent {
	ev.op = op.Code()
	return ev
}

func (ev WireEvent) SoftBlock() WireEvent {
	ev.soft = 1
	return ev
}

func (ev WireEvent) SoftUnblock() WireEvent {
	ev.soft = 0
	return ev
}

func (ev WireEvent) Index() uint32   { return ev.idx }
func (ev WireEvent) TypeCode() uint8 { return ev.typ }
func (ev WireEvent) OpCode() uint8   { return ev.op }
func (ev WireEvent) SoftByte() uint8 { return ev.soft }
func (ev WireEvent) HardByte() uint8 { return ev.hard }

func (ev WireEvent) String() string {
	return fmt.Sprintf("{idx: %d, type: %d, op: %d, soft: %d, hard: %d}",
		ev.idx, ev.typ, ev.op, ev.soft, ev.hard)
}

func (ev WireEvent) put(buf []byte) {
	byteOrder.PutUint32(buf[offIndex:], ev.idx)
	buf[offType] = ev.typ
	buf[offOp] = ev.op
	buf[offSoft] = ev.soft
	buf[offHard] = ev.hard
}

func (ev *WireEvent) get(buf []byte) {
	ev.idx = byteOrder.Uint32(buf[offIndex:])
	ev.typ = buf[offType]
	ev.op = buf[offOp]
	ev.soft = buf[offSoft]
	ev.hard = buf[offHard]
}

func (ev WireEvent) MarshalBinary() ([]byte, error) {
	buf := make([]byte, WireEventSize)
	ev.put(buf)
	return buf, nil
}

func (ev *WireEvent) UnmarshalBinary(data []byte) error {
	if len(data) != WireEventSize {
		return &LengthMismatchError{Got: len(data), Want: WireEventSize}
	}
	ev.get(data)
	return nil
}

// Event is the decoded form of a WireEvent.
type Event struct {
	Index uint32
	Type  RadioType
	Op    Operation
	Soft  bool
	Hard  bool
}

// DecodeEvent validates both enumeration codes of ev.
// Soft is set only for a soft byte of 1 and Hard only for a hard byte
// of 2. This matches what has been observed from the device so far;
// do not unify the two checks without confirming against the kernel.
func DecodeEvent(ev WireEvent) (Event, error) {
	typ, err := RadioTypeFromCode(ev.typ)
	if err != nil {
		return Event{}, &DecodeError{Err: err}
	}
	op, err := OperationFromCode(ev.op)
	if err != nil {
		return Event{}, &DecodeError{Err: err}
	}
	return Event{
		Index: ev.idx,
		Type:  typ,
		Op:    op,
		Soft:  ev.soft == 1,
		Hard:  ev.hard == 2,
	}, nil
}

// Name resolves the switch name, e.g. hci0 or phy0.
func (e Event) Name() (string, error) {
	return GetName(e.Index)
}

// Blocked reports whether the switch is soft or hard blocked.
func (e Event) Blocked() bool {
	return e.Soft || e.Hard
}

func (e Event) String() string {
	return fmt.Sprintf("idx %d type %s op %s soft %v hard %v",
		e.Index, e.Type, e.Op, e.Soft, e.Hard)
}
