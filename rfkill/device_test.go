// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

type fakeHandle struct {
	reads    [][]byte
	readErr  error
	written  [][]byte
	writeN   int
	writeErr error
	closed   int
	closeErr error
	fd       int
}

func (h *fakeHandle) Read(p []byte) (int, error) {
	if len(h.reads) == 0 {
		if h.readErr != nil {
			return -1, h.readErr
		}
		return -1, unix.EAGAIN
	}
	n := copy(p, h.reads[0])
	h.reads = h.reads[1:]
	return n, nil
}

func (h *fakeHandle) Write(p []byte) (int, error) {
	if h.writeErr != nil {
		return -1, h.writeErr
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	h.written = append(h.written, buf)
	if h.writeN > 0 {
		return h.writeN, nil
	}
	return len(p), nil
}

func (h *fakeHandle) Close() error {
	h.closed++
	return h.closeErr
}

func (h *fakeHandle) Fd() int {
	if h.fd != 0 {
		return h.fd
	}
	return 42
}

func wireBytes(t *testing.T, ev WireEvent) []byte {
	data, err := ev.MarshalBinary()
	require.NoError(t, err)
	return data
}

func TestReadEventSentinelType(t *testing.T) {
	h := &fakeHandle{reads: [][]byte{
		wireBytes(t, WireEvent{}.WithIndex(1).WithRadioType(TypeNumRfkillTypes).WithOperation(OpAdd)),
	}}
	d := &Device{h: h}

	ev, err := d.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), ev.Index)
	assert.Equal(t, TypeNumRfkillTypes, ev.Type)
	assert.Equal(t, OpAdd, ev.Op)
}

func TestReadEventShort(t *testing.T) {
	h := &fakeHandle{reads: [][]byte{{1, 0, 0, 0, 2}}}
	d := &Device{h: h}

	_, err := d.ReadEvent()
	var lenErr *LengthMismatchError
	require.True(t, xerrors.As(err, &lenErr))
	assert.Equal(t, 5, lenErr.Got)
	assert.Equal(t, WireEventSize, lenErr.Want)

	var decodeErr *DecodeError
	assert.False(t, xerrors.As(err, &decodeErr))
	assert.False(t, IsWouldBlock(err))
}

func TestReadEventWouldBlock(t *testing.T) {
	d := &Device{h: &fakeHandle{}}

	_, err := d.ReadEvent()
	require.Error(t, err)
	assert.True(t, IsWouldBlock(err))
	assert.True(t, errors.Is(err, unix.EAGAIN))
	assert.True(t, errors.Is(err, ErrWouldBlock))

	var lenErr *LengthMismatchError
	assert.False(t, xerrors.As(err, &lenErr))
}

func TestReadEventOSError(t *testing.T) {
	d := &Device{h: &fakeHandle{readErr: unix.EIO}}

	_, err := d.ReadEvent()
	require.Error(t, err)
	assert.True(t, errors.Is(err, unix.EIO))
	assert.False(t, IsWouldBlock(err))
}

func TestReadEventDecodeError(t *testing.T) {
	raw := wireBytes(t, WireEvent{}.WithIndex(3))
	raw[offType] = 200
	d := &Device{h: &fakeHandle{reads: [][]byte{raw}}}

	_, err := d.ReadEvent()
	var decodeErr *DecodeError
	require.True(t, xerrors.As(err, &decodeErr))
	var lenErr *LengthMismatchError
	assert.False(t, xerrors.As(err, &lenErr))
}

func TestReadAll(t *testing.T) {
	bad := wireBytes(t, WireEvent{})
	bad[offOp] = 9
	h := &fakeHandle{reads: [][]byte{
		wireBytes(t, WireEvent{}.WithIndex(0).WithRadioType(TypeWLAN)),
		bad,
		wireBytes(t, WireEvent{}.WithIndex(1).WithRadioType(TypeBluetooth).SoftBlock()),
	}}
	d := &Device{h: h}

	events, err := d.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, TypeWLAN, events[0].Type)
	assert.Equal(t, TypeBluetooth, events[1].Type)
	assert.True(t, events[1].Soft)

	h.reads = [][]byte{{1, 2, 3}}
	events, err = d.ReadAll()
	assert.Empty(t, events)
	var lenErr *LengthMismatchError
	assert.True(t, xerrors.As(err, &lenErr))
}

func TestWriteEvent(t *testing.T) {
	h := &fakeHandle{}
	d := &Device{h: h}

	ev := WireEvent{}.WithRadioType(TypeWLAN).WithOperation(OpChangeAll).SoftBlock()
	assert.True(t, d.WriteEvent(ev))
	require.Len(t, h.written, 1)
	assert.Equal(t, wireBytes(t, ev), h.written[0])

	h.writeN = 4
	assert.False(t, d.WriteEvent(ev))

	h.writeErr = unix.EPERM
	assert.False(t, d.WriteEvent(ev))
}

func TestClose(t *testing.T) {
	h := &fakeHandle{}
	d := &Device{h: h}

	require.NoError(t, d.Close())
	assert.Equal(t, 1, h.closed)
	assert.Equal(t, -1, d.Fd())

	assert.ErrorIs(t, d.Close(), os.ErrClosed)
	assert.Equal(t, 1, h.closed)

	_, err := d.ReadEvent()
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.False(t, d.WriteEvent(WireEvent{}))
}

func TestCloseError(t *testing.T) {
	h := &fakeHandle{closeErr: unix.EBADF}
	d := &Device{h: h}

	err := d.Close()
	require.Error(t, err)
	assert.True(t, errors.Is(err, unix.EBADF))
}

func TestOpenMissingDevice(t *testing.T) {
	old := DevicePath
	DevicePath = t.TempDir() + "/rfkill"
	defer func() { DevicePath = old }()

	_, err := Open()
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func newPipeDevice(t *testing.T) (*Device, int) {
	var p [2]int
	require.NoError(t, unix.Pipe2(p[:], unix.O_CLOEXEC|unix.O_NONBLOCK))
	t.Cleanup(func() {
		_ = unix.Close(p[0])
		_ = unix.Close(p[1])
	})
	return &Device{h: &fakeHandle{fd: p[0]}}, p[1]
}

func TestWaitReadable(t *testing.T) {
	d, w := newPipeDevice(t)
	_, err := unix.Write(w, []byte{0})
	require.NoError(t, err)

	assert.NoError(t, d.Wait(context.Background()))
}

func TestWaitCancel(t *testing.T) {
	d, _ := newPipeDevice(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, d.Wait(ctx))

	ctx, cancel = context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	result := make(chan error, 1)
	go func() {
		result <- d.Wait(ctx)
	}()
	select {
	case err := <-result:
		assert.Equal(t, context.DeadlineExceeded, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after cancel")
	}
}

func TestWaitHangup(t *testing.T) {
	var p [2]int
	require.NoError(t, unix.Pipe2(p[:], unix.O_CLOEXEC|unix.O_NONBLOCK))
	defer unix.Close(p[0])
	require.NoError(t, unix.Close(p[1]))
	d := &Device{h: &fakeHandle{fd: p[0]}}

	// the write end is gone, poll reports POLLHUP
	assert.Error(t, d.Wait(context.Background()))
}

func TestWaitClosed(t *testing.T) {
	d := &Device{}
	assert.Equal(t, os.ErrClosed, d.Wait(context.Background()))
}
