// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/xerrors"
)

const nameMaxLen = 128

type nameFile interface {
	Read(p []byte) (int, error)
	Close() error
}

var openNameFile = func(filename string) (nameFile, error) {
	return os.Open(filename)
}

func switchDir(idx uint32) string {
	return filepath.Join(SysClassPath, fmt.Sprintf("rfkill%d", idx))
}

// GetName returns the name of rfkill switch idx, e.g. hci0.
func GetName(idx uint32) (name string, err error) {
	filename := filepath.Join(switchDir(idx), "name")
	f, err := openNameFile(filename)
	if err != nil {
		return "", xerrors.Errorf("failed to open name file: %w", err)
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = xerrors.Errorf("failed to close name file: %w", closeErr)
		}
	}()

	var buf [nameMaxLen]byte
	n, err := f.Read(buf[:])
	if err != nil && err != io.EOF {
		return "", xerrors.Errorf("failed to read name file: %w", err)
	}
	data := buf[:n]
	if pos := bytes.IndexByte(data, '\n'); pos >= 0 {
		data = data[:pos]
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// SysState is what sysfs reports for one switch.
type SysState struct {
	Index uint32
	Name  string
	Type  RadioType
	Soft  bool
	Hard  bool
}

// GetSysState reads the name, type, soft and hard attributes of switch idx.
func GetSysState(idx uint32) (SysState, error) {
	state := SysState{Index: idx}
	var err error
	state.Name, err = GetName(idx)
	if err != nil {
		return state, err
	}

	dir := switchDir(idx)
	typ, err := readFile(filepath.Join(dir, "type"))
	if err != nil {
		return state, err
	}
	state.Type, err = RadioTypeFromName(typ)
	if err != nil {
		return state, err
	}

	soft, err := readFile(filepath.Join(dir, "soft"))
	if err != nil {
		return state, err
	}
	hard, err := readFile(filepath.Join(dir, "hard"))
	if err != nil {
		return state, err
	}
	state.Soft = soft == "1"
	state.Hard = hard == "1"
	return state, nil
}

func readFile(filename string) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(content)), nil
}
