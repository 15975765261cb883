// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill

import (
	"context"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

type handle interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	Fd() int
}

type fdHandle int

func (fd fdHandle) Read(p []byte) (int, error) {
	return unix.Read(int(fd), p)
}

func (fd fdHandle) Write(p []byte) (int, error) {
	return unix.Write(int(fd), p)
}

func (fd fdHandle) Close() error {
	return unix.Close(int(fd))
}

func (fd fdHandle) Fd() int {
	return int(fd)
}

// Device is an open handle on /dev/rfkill. It is not safe for
// concurrent use.
type Device struct {
	h handle
}

// Open opens the rfkill device read-write and non-blocking.
func Open() (*Device, error) {
	fd, err := unix.Open(DevicePath, unix.O_RDWR|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: DevicePath, Err: err}
	}
	logger.Debugf("open %s, fd: %d", DevicePath, fd)
	return &Device{h: fdHandle(fd)}, nil
}

// Fd returns the descriptor for readiness polling, -1 after Close.
func (d *Device) Fd() int {
	if d.h == nil {
		return -1
	}
	return d.h.Fd()
}

// ReadEvent reads one pending event. When nothing is pending the
// returned error is ErrWouldBlock, check it with IsWouldBlock.
func (d *Device) ReadEvent() (Event, error) {
	if d.h == nil {
		return Event{}, os.ErrClosed
	}
	var buf [WireEventSize]byte
	n, err := d.h.Read(buf[:])
	if err != nil {
		if err == unix.EAGAIN {
			return Event{}, ErrWouldBlock
		}
		return Event{}, xerrors.Errorf("read %s: %w", DevicePath, err)
	}
	if n != WireEventSize {
		return Event{}, &LengthMismatchError{Got: n, Want: WireEventSize}
	}

	var wire WireEvent
	wire.get(buf[:])
	return DecodeEvent(wire)
}

// ReadAll drains the pending events. Right after Open the kernel queues
// one OpAdd event per registered switch, so this lists the switches.
// Records that fail to decode are skipped.
func (d *Device) ReadAll() ([]Event, error) {
	var events []Event
	for {
		ev, err := d.ReadEvent()
		if err != nil {
			if IsWouldBlock(err) {
				return events, nil
			}
			var decodeErr *DecodeError
			if xerrors.As(err, &decodeErr) {
				logger.Warning(err)
				continue
			}
			return events, err
		}
		events = append(events, ev)
	}
}

// Wait blocks until an event is readable or ctx is done. The device is
// polled without a timeout, cancellation wakes the poll through an eventfd.
func (d *Device) Wait(ctx context.Context) error {
	if d.h == nil {
		return os.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	efd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return xerrors.Errorf("eventfd: %w", err)
	}
	stop := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			var buf [8]byte
			byteOrder.PutUint64(buf[:], 1)
			_, _ = unix.Write(efd, buf[:])
		case <-stop:
		}
	}()
	defer func() {
		close(stop)
		<-exited
		_ = unix.Close(efd)
	}()

	fds := []unix.PollFd{
		{Fd: int32(d.h.Fd()), Events: unix.POLLIN},
		{Fd: int32(efd), Events: unix.POLLIN},
	}
	for {
		_, err := unix.Poll(fds, -1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return xerrors.Errorf("poll %s: %w", DevicePath, err)
		}
		if fds[1].Revents&unix.POLLIN != 0 {
			return ctx.Err()
		}
		if fds[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
			return xerrors.Errorf("poll %s: revents %#x", DevicePath, fds[0].Revents)
		}
		if fds[0].Revents&unix.POLLIN != 0 {
			return nil
		}
	}
}

// WriteEvent writes ev to the device and reports whether the whole
// record was accepted. Failures are logged.
func (d *Device) WriteEvent(ev WireEvent) bool {
	logger.Debug("writing event to rfkill:", ev)
	if d.h == nil {
		logger.Warning("failed to change rfkill state:", os.ErrClosed)
		return false
	}
	var buf [WireEventSize]byte
	ev.put(buf[:])
	n, err := d.h.Write(buf[:])
	if err != nil {
		logger.Warningf("failed to change rfkill state, event: %v, err: %v", ev, err)
		return false
	}
	if n != WireEventSize {
		logger.Warningf("failed to change rfkill state, event: %v, err: %v",
			ev, &LengthMismatchError{Got: n, Want: WireEventSize})
		return false
	}
	return true
}

// Close releases the device. The error must not be ignored: a failed
// close means the descriptor is in an unknown state.
func (d *Device) Close() error {
	if d.h == nil {
		return os.ErrClosed
	}
	h := d.h
	d.h = nil
	err := h.Close()
	if err != nil {
		return xerrors.Errorf("close %s: %w", DevicePath, err)
	}
	return nil
}
