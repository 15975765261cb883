// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill

import (
	"fmt"

	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

// ErrWouldBlock is returned by ReadEvent when no event is pending on the
// non-blocking device. It matches unix.EAGAIN with errors.Is.
var ErrWouldBlock error = wouldBlockError{}

type wouldBlockError struct{}

func (wouldBlockError) Error() string {
	return "rfkill: no event available"
}

func (wouldBlockError) Is(target error) bool {
	return target == unix.EAGAIN
}

// InvalidCodeError a raw code does not map to any enumeration value.
type InvalidCodeError struct {
	Kind  string
	Value uint8
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid %s code %d", e.Kind, e.Value)
}

type UnknownLabelError struct {
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown radio type label %q", e.Label)
}

// LengthMismatchError an I/O call transferred a byte count other than
// WireEventSize.
type LengthMismatchError struct {
	Got  int
	Want int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("invalid response length: %d, expected %d", e.Got, e.Want)
}

// DecodeError wraps the code error that made a record undecodable.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "failed to parse event: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsWouldBlock reports whether err means "nothing new" on a non-blocking read.
func IsWouldBlock(err error) bool {
	return xerrors.Is(err, ErrWouldBlock) || xerrors.Is(err, unix.EAGAIN) ||
		xerrors.Is(err, unix.EWOULDBLOCK)
}
