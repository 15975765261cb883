// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill1

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/linuxdeepin/dde-rfkill/rfkill"
	"github.com/linuxdeepin/go-lib/utils"
)

const (
	configFile = "/var/lib/dde-daemon/rfkill/config.json"
)

// config keeps the last requested soft block state per radio type.
// A type missing from Blocked was never requested and is left alone.
type config struct {
	core utils.Config
	mu   sync.Mutex

	// radio type label -> soft blocked
	Blocked map[string]bool
}

func newConfig(file string) *config {
	c := &config{
		Blocked: make(map[string]bool),
	}
	c.core.SetConfigFile(file)
	return c
}

func (c *config) load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	blocked := c.Blocked
	c.Blocked = nil
	err := c.core.Load(c)
	if err != nil {
		c.Blocked = blocked
		return err
	}
	if c.Blocked == nil {
		c.Blocked = make(map[string]bool)
	}
	return nil
}

func (c *config) save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := os.MkdirAll(filepath.Dir(c.core.GetConfigFile()), 0755)
	if err != nil {
		return err
	}
	return c.core.Save(c)
}

func (c *config) setBlocked(typ rfkill.RadioType, blocked bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if typ == rfkill.TypeAll {
		// all overrides every type
		c.Blocked = make(map[string]bool)
	}
	c.Blocked[typ.Label()] = blocked
}

type requestedState struct {
	typ     rfkill.RadioType
	blocked bool
}

// requests returns the stored states in the order they must be applied:
// TypeAll first, then the others by type code.
func (c *config) requests() []requestedState {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]requestedState, 0, len(c.Blocked))
	for label, blocked := range c.Blocked {
		typ, err := rfkill.RadioTypeFromLabel(label)
		if err != nil || typ == rfkill.TypeNumRfkillTypes {
			logger.Warningf("ignore config entry %q", label)
			continue
		}
		result = append(result, requestedState{typ: typ, blocked: blocked})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].typ < result[j].typ
	})
	return result
}

func (c *config) equal(other map[string]bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Blocked) != len(other) {
		return false
	}
	for k, v := range c.Blocked {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (c *config) snapshot() map[string]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make(map[string]bool, len(c.Blocked))
	for k, v := range c.Blocked {
		result[k] = v
	}
	return result
}
