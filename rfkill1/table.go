// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill1

import (
	"sort"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-rfkill/rfkill"
)

type switchState struct {
	Index uint32
	Name  string
	Type  rfkill.RadioType
	Soft  bool
	Hard  bool
}

func (s *switchState) blocked() bool {
	return s.Soft || s.Hard
}

func (s *switchState) toVariantMap() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		rfkill.KeyIndex: dbus.MakeVariant(s.Index),
		"Name":          dbus.MakeVariant(s.Name),
		rfkill.KeyType:  dbus.MakeVariant(s.Type.Label()),
		rfkill.KeySoft:  dbus.MakeVariant(s.Soft),
		rfkill.KeyHard:  dbus.MakeVariant(s.Hard),
	}
}

// switchTable mirrors the switches the kernel reported through events.
type switchTable struct {
	mu       sync.RWMutex
	switches map[uint32]*switchState
	getName  func(idx uint32) (string, error)
}

func newSwitchTable(getName func(uint32) (string, error)) *switchTable {
	return &switchTable{
		switches: make(map[uint32]*switchState),
		getName:  getName,
	}
}

// apply updates the table and reports whether anything changed.
func (t *switchTable) apply(ev rfkill.Event) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch ev.Op {
	case rfkill.OpAdd, rfkill.OpChange:
		s, ok := t.switches[ev.Index]
		if !ok {
			s = &switchState{Index: ev.Index, Type: ev.Type}
			name, err := t.getName(ev.Index)
			if err != nil {
				logger.Warningf("get name of rfkill%d failed, err: %v", ev.Index, err)
			}
			s.Name = name
			t.switches[ev.Index] = s
			s.Soft, s.Hard = ev.Soft, ev.Hard
			return true
		}
		changed := s.Soft != ev.Soft || s.Hard != ev.Hard
		s.Soft, s.Hard = ev.Soft, ev.Hard
		return changed

	case rfkill.OpDelete:
		if _, ok := t.switches[ev.Index]; !ok {
			return false
		}
		delete(t.switches, ev.Index)
		return true

	case rfkill.OpChangeAll:
		changed := false
		for _, s := range t.switches {
			if ev.Type != rfkill.TypeAll && s.Type != ev.Type {
				continue
			}
			if s.Soft != ev.Soft {
				s.Soft = ev.Soft
				changed = true
			}
		}
		return changed
	}
	return false
}

func (t *switchTable) get(idx uint32) (switchState, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.switches[idx]
	if !ok {
		return switchState{}, false
	}
	return *s, true
}

func (t *switchTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.switches)
}

// blocked reports whether typ has at least one switch and all of its
// switches are soft or hard blocked. TypeAll looks at every switch.
func (t *switchTable) blocked(typ rfkill.RadioType) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, s := range t.switches {
		if typ != rfkill.TypeAll && s.Type != typ {
			continue
		}
		count++
		if !s.blocked() {
			return false
		}
	}
	return count > 0
}

// list returns a copy of the switches sorted by index.
func (t *switchTable) list() []switchState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]switchState, 0, len(t.switches))
	for _, s := range t.switches {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Index < result[j].Index
	})
	return result
}
