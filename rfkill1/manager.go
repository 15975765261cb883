// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill1

import (
	"context"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-rfkill/rfkill"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
	"golang.org/x/xerrors"
)

type rfkillDevice interface {
	ReadAll() ([]rfkill.Event, error)
	Wait(ctx context.Context) error
	WriteEvent(ev rfkill.WireEvent) bool
	Close() error
}

//go:generate dbusutil-gen -type Manager manager.go
//go:generate dbusutil-gen em -type Manager

type Manager struct {
	service busService
	dev     rfkillDevice
	devMu   sync.Mutex
	table   *switchTable
	config  *config
	watcher *configWatcher

	cancel context.CancelFunc
	done   chan struct{}

	PropsMu          sync.RWMutex
	HasDevices       bool
	AllBlocked       bool
	WifiBlocked      bool
	BluetoothBlocked bool

	// nolint
	signals *struct {
		Event struct {
			event map[string]dbus.Variant
		}
	}
}

func newManager(service busService, dev rfkillDevice, cfg *config) *Manager {
	return &Manager{
		service: service,
		dev:     dev,
		table:   newSwitchTable(rfkill.GetName),
		config:  cfg,
	}
}

func (*Manager) GetInterfaceName() string {
	return dbusInterface
}

func (m *Manager) start() {
	err := m.config.load()
	if err != nil {
		logger.Debugf("load rfkill config failed, err: %v", err)
	}
	m.recover()

	m.watcher, err = newConfigWatcher(m.config.core.GetConfigFile(), m.reloadConfig)
	if err != nil {
		logger.Warningf("watch rfkill config failed, err: %v", err)
	}

	var ctx context.Context
	ctx, m.cancel = context.WithCancel(context.Background())
	m.done = make(chan struct{})
	go m.listenRfkill(ctx)
}

// destroy stops the monitor and releases the device.
func (m *Manager) destroy() error {
	if m.cancel != nil {
		m.cancel()
		<-m.done
		m.cancel = nil
	}
	if m.watcher != nil {
		err := m.watcher.stop()
		if err != nil {
			logger.Warning(err)
		}
		m.watcher = nil
	}

	m.devMu.Lock()
	defer m.devMu.Unlock()
	if m.dev == nil {
		return nil
	}
	err := m.dev.Close()
	m.dev = nil
	return err
}

// recover applies the stored soft block states.
func (m *Manager) recover() {
	logger.Debug("recover last state")
	for _, req := range m.config.requests() {
		ok := m.writeEvent(newChangeAllEvent(req.typ, req.blocked))
		if !ok {
			logger.Warningf("recover %s failed, blocked: %v", req.typ.Name(), req.blocked)
		}
	}
}

func (m *Manager) reloadConfig() {
	old := m.config.snapshot()
	err := m.config.load()
	if err != nil {
		logger.Warningf("reload rfkill config failed, err: %v", err)
		return
	}
	if m.config.equal(old) {
		return
	}
	logger.Info("rfkill config changed, apply it")
	m.recover()
}

func (m *Manager) listenRfkill(ctx context.Context) {
	defer close(m.done)
	for {
		err := m.dev.Wait(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Debug("rfkill monitor stop")
			} else {
				logger.Warningf("wait rfkill event failed, err: %v", err)
			}
			return
		}

		m.devMu.Lock()
		events, err := m.dev.ReadAll()
		m.devMu.Unlock()
		for _, ev := range events {
			m.handleEvent(ev)
		}
		if err != nil {
			var lenErr *rfkill.LengthMismatchError
			if xerrors.As(err, &lenErr) {
				logger.Warning(err)
				continue
			}
			logger.Warningf("read rfkill event failed, err: %v", err)
			return
		}
	}
}

func (m *Manager) handleEvent(ev rfkill.Event) {
	logger.Debug("rfkill event:", ev)
	m.table.apply(ev)
	m.updateProps()

	err := m.service.Emit(m, "Event", ev.ToVariantMap())
	if err != nil {
		logger.Warning(err)
	}
}

func (m *Manager) updateProps() {
	m.PropsMu.Lock()
	defer m.PropsMu.Unlock()
	m.setPropHasDevices(m.table.len() > 0)
	m.setPropAllBlocked(m.table.blocked(rfkill.TypeAll))
	m.setPropWifiBlocked(m.table.blocked(rfkill.TypeWLAN))
	m.setPropBluetoothBlocked(m.table.blocked(rfkill.TypeBluetooth))
}

func (m *Manager) writeEvent(ev rfkill.WireEvent) bool {
	m.devMu.Lock()
	defer m.devMu.Unlock()
	if m.dev == nil {
		return false
	}
	return m.dev.WriteEvent(ev)
}

func newChangeAllEvent(typ rfkill.RadioType, blocked bool) rfkill.WireEvent {
	ev := rfkill.WireEvent{}.WithRadioType(typ).WithOperation(rfkill.OpChangeAll)
	if blocked {
		return ev.SoftBlock()
	}
	return ev.SoftUnblock()
}

func newChangeEvent(s switchState, blocked bool) rfkill.WireEvent {
	ev := rfkill.WireEvent{}.WithIndex(s.Index).WithRadioType(s.Type).WithOperation(rfkill.OpChange)
	if blocked {
		return ev.SoftBlock()
	}
	return ev.SoftUnblock()
}

func (m *Manager) block(typ rfkill.RadioType, blocked bool) error {
	if typ == rfkill.TypeNumRfkillTypes {
		return xerrors.Errorf("invalid radio type %q", typ.Label())
	}
	if !m.writeEvent(newChangeAllEvent(typ, blocked)) {
		return xerrors.Errorf("set %s blocked %v failed", typ.Name(), blocked)
	}
	logger.Infof("set rfkill state success, type: %v, blocked: %v", typ.Name(), blocked)

	m.config.setBlocked(typ, blocked)
	err := m.config.save()
	if err != nil {
		logger.Warningf("save rfkill config failed, err: %v", err)
	}
	return nil
}

func (m *Manager) blockDevice(idx uint32, blocked bool) error {
	s, ok := m.table.get(idx)
	if !ok {
		return xerrors.Errorf("no rfkill switch %d", idx)
	}
	if !m.writeEvent(newChangeEvent(s, blocked)) {
		return xerrors.Errorf("set rfkill%d blocked %v failed", idx, blocked)
	}
	return nil
}

func (m *Manager) ListDevices() ([]map[string]dbus.Variant, *dbus.Error) {
	switches := m.table.list()
	result := make([]map[string]dbus.Variant, 0, len(switches))
	for i := range switches {
		result = append(result, switches[i].toVariantMap())
	}
	return result, nil
}

func (m *Manager) GetName(idx uint32) (string, *dbus.Error) {
	if s, ok := m.table.get(idx); ok && s.Name != "" {
		return s.Name, nil
	}
	name, err := rfkill.GetName(idx)
	if err != nil {
		return "", dbusutil.ToError(err)
	}
	return name, nil
}

// Block soft blocks or unblocks every switch of a radio type, typ is a
// label ("Wireless LAN") or a short name ("wlan").
func (m *Manager) Block(sender dbus.Sender, typ string, blocked bool) *dbus.Error {
	radioType, err := rfkill.RadioTypeFromName(typ)
	if err != nil {
		return dbusutil.ToError(err)
	}
	err = checkAuthorization(actionIdBlock, string(sender))
	if err != nil {
		return dbusutil.ToError(err)
	}
	err = m.block(radioType, blocked)
	if err != nil {
		logger.Warning(err)
		return dbusutil.ToError(err)
	}
	return nil
}

func (m *Manager) BlockDevice(sender dbus.Sender, idx uint32, blocked bool) *dbus.Error {
	err := checkAuthorization(actionIdBlock, string(sender))
	if err != nil {
		return dbusutil.ToError(err)
	}
	err = m.blockDevice(idx, blocked)
	if err != nil {
		logger.Warning(err)
		return dbusutil.ToError(err)
	}
	return nil
}

func (m *Manager) DumpState() *dbus.Error {
	if logger.GetLogLevel() == log.LevelDebug {
		logger.Debugf("switches: %s, config: %s", spew.Sdump(m.table.list()), spew.Sdump(m.config.snapshot()))
	} else {
		logger.Info("switches:", m.table.list())
	}
	return nil
}
