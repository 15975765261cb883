// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill

// Operation is the op field of an event.
type Operation uint8

const (
	// OpAdd a switch appeared
	OpAdd Operation = iota
	// OpDelete a switch disappeared
	OpDelete
	// OpChange the switch block state changed
	OpChange
	// OpChangeAll apply the state to all switches of a type
	OpChangeAll
)

var operationNames = [...]string{
	OpAdd:       "Add",
	OpDelete:    "Delete",
	OpChange:    "Change",
	OpChangeAll: "ChangeAll",
}

func OperationFromCode(code uint8) (Operation, error) {
	if code > uint8(OpChangeAll) {
		return 0, &InvalidCodeError{Kind: "operation", Value: code}
	}
	return Operation(code), nil
}

func (op Operation) Code() uint8 {
	return uint8(op)
}

func (op Operation) String() string {
	if int(op) < len(operationNames) {
		return operationNames[op]
	}
	return ""
}

func (op Operation) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}
