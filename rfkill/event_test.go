// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestWireEventDefault(t *testing.T) {
	var ev WireEvent
	data, err := ev.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, WireEventSize), data)
}

func TestWireEventBuilder(t *testing.T) {
	base := WireEvent{}.WithIndex(7)
	blocked := base.WithRadioType(TypeBluetooth).WithOperation(OpChange).SoftBlock()

	// value semantics
	assert.Equal(t, uint8(0), base.SoftByte())
	assert.Equal(t, uint8(0), base.TypeCode())

	assert.Equal(t, uint32(7), blocked.Index())
	assert.Equal(t, uint8(2), blocked.TypeCode())
	assert.Equal(t, uint8(2), blocked.OpCode())
	assert.Equal(t, uint8(1), blocked.SoftByte())
	assert.Equal(t, uint8(0), blocked.HardByte())
	assert.Equal(t, uint8(0), blocked.SoftUnblock().SoftByte())

	ev, err := DecodeEvent(blocked)
	require.NoError(t, err)
	assert.Equal(t, Event{
		Index: 7,
		Type:  TypeBluetooth,
		Op:    OpChange,
		Soft:  true,
		Hard:  false,
	}, ev)
}

func TestWireEventLayout(t *testing.T) {
	ev := WireEvent{}.WithIndex(0x01020304).WithRadioType(TypeWWAN).
		WithOperation(OpChangeAll).SoftBlock()
	data, err := ev.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, WireEventSize)

	assert.Equal(t, uint32(0x01020304), byteOrder.Uint32(data[0:4]))
	assert.Equal(t, []byte{5, 3, 1, 0}, data[4:])

	var back WireEvent
	require.NoError(t, back.UnmarshalBinary(data))
	assert.Equal(t, ev, back)
}

func TestWireEventUnmarshalLength(t *testing.T) {
	var ev WireEvent
	for _, n := range []int{0, 5, 7, 9} {
		err := ev.UnmarshalBinary(make([]byte, n))
		var lenErr *LengthMismatchError
		require.True(t, xerrors.As(err, &lenErr), "len %d", n)
		assert.Equal(t, n, lenErr.Got)
		assert.Equal(t, WireEventSize, lenErr.Want)
	}
}

func TestDecodeEventFlags(t *testing.T) {
	for b := 0; b <= 255; b++ {
		ev, err := DecodeEvent(WireEvent{soft: uint8(b)})
		require.NoError(t, err)
		assert.Equal(t, b == 1, ev.Soft, "soft byte %d", b)
		assert.False(t, ev.Hard)

		ev, err = DecodeEvent(WireEvent{hard: uint8(b)})
		require.NoError(t, err)
		assert.Equal(t, b == 2, ev.Hard, "hard byte %d", b)
		assert.False(t, ev.Soft)
	}
}

func TestDecodeEventInvalid(t *testing.T) {
	tests := []struct {
		wire WireEvent
		kind string
		val  uint8
	}{
		{WireEvent{typ: 200}, "radio type", 200},
		{WireEvent{typ: 10}, "radio type", 10},
		{WireEvent{typ: 1, op: 4}, "operation", 4},
		{WireEvent{typ: 200, op: 200}, "radio type", 200},
	}
	for _, test := range tests {
		_, err := DecodeEvent(test.wire)
		var decodeErr *DecodeError
		require.True(t, xerrors.As(err, &decodeErr))
		var codeErr *InvalidCodeError
		require.True(t, xerrors.As(err, &codeErr))
		assert.Equal(t, test.kind, codeErr.Kind)
		assert.Equal(t, test.val, codeErr.Value)
	}
}

func TestEventToVariantMap(t *testing.T) {
	ev := Event{Index: 3, Type: TypeWLAN, Op: OpDelete, Soft: true}
	m := ev.ToVariantMap()
	assert.Equal(t, uint32(3), m[KeyIndex].Value())
	assert.Equal(t, "Wireless LAN", m[KeyType].Value())
	assert.Equal(t, "Delete", m[KeyOperation].Value())
	assert.Equal(t, true, m[KeySoft].Value())
	assert.Equal(t, false, m[KeyHard].Value())
	assert.True(t, ev.Blocked())
}
