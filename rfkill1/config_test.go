// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill1

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/linuxdeepin/dde-rfkill/rfkill"
	C "gopkg.in/check.v1"
)

type testWrapper struct{}

func init() {
	C.Suite(&testWrapper{})
}

func Test(t *testing.T) {
	C.TestingT(t)
}

func (*testWrapper) TestConfigSaveLoad(c *C.C) {
	file := filepath.Join(c.MkDir(), "rfkill", "config.json")
	cfg := newConfig(file)
	cfg.setBlocked(rfkill.TypeWLAN, true)
	cfg.setBlocked(rfkill.TypeBluetooth, false)
	c.Assert(cfg.save(), C.IsNil)

	other := newConfig(file)
	c.Assert(other.load(), C.IsNil)
	blocked, ok := other.snapshot()[rfkill.TypeWLAN.Label()]
	c.Check(ok, C.Equals, true)
	c.Check(blocked, C.Equals, true)
	blocked, ok = other.snapshot()[rfkill.TypeBluetooth.Label()]
	c.Check(ok, C.Equals, true)
	c.Check(blocked, C.Equals, false)
	_, ok = other.snapshot()[rfkill.TypeNFC.Label()]
	c.Check(ok, C.Equals, false)
	c.Check(other.equal(cfg.snapshot()), C.Equals, true)
}

func (*testWrapper) TestConfigLoadMissing(c *C.C) {
	cfg := newConfig(filepath.Join(c.MkDir(), "none.json"))
	cfg.setBlocked(rfkill.TypeGPS, true)
	c.Check(cfg.load(), C.NotNil)
	// a failed load keeps the current state
	blocked, ok := cfg.snapshot()[rfkill.TypeGPS.Label()]
	c.Check(ok, C.Equals, true)
	c.Check(blocked, C.Equals, true)
}

func (*testWrapper) TestConfigAllOverrides(c *C.C) {
	cfg := newConfig(filepath.Join(c.MkDir(), "config.json"))
	cfg.setBlocked(rfkill.TypeWLAN, true)
	cfg.setBlocked(rfkill.TypeAll, false)
	c.Check(cfg.snapshot(), C.DeepEquals, map[string]bool{"All": false})
}

func (*testWrapper) TestConfigRequestsOrder(c *C.C) {
	file := filepath.Join(c.MkDir(), "config.json")
	content := `{"Blocked":{"Bluetooth":true,"All":false,"Wireless LAN":true,"bogus":true,"NumRfkillTypes":true}}`
	c.Assert(os.WriteFile(file, []byte(content), 0644), C.IsNil)

	cfg := newConfig(file)
	c.Assert(cfg.load(), C.IsNil)
	c.Check(cfg.requests(), C.DeepEquals, []requestedState{
		{typ: rfkill.TypeAll, blocked: false},
		{typ: rfkill.TypeWLAN, blocked: true},
		{typ: rfkill.TypeBluetooth, blocked: true},
	})
}
