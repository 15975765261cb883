// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill1

import (
	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-rfkill/loader"
	"github.com/linuxdeepin/dde-rfkill/rfkill"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
)

const (
	dbusServiceName = "org.deepin.dde.Rfkill1"
	dbusPath        = "/org/deepin/dde/Rfkill1"
	dbusInterface   = dbusServiceName

	actionIdBlock = "org.deepin.dde.rfkill1.block"
)

var logger = log.NewLogger("daemon/rfkill1")

// busService is the part of *dbusutil.Service used by the module.
type busService interface {
	Export(path dbus.ObjectPath, implements ...dbusutil.Implementer) error
	StopExport(impl dbusutil.Implementer) error
	RequestName(name string) error
	Emit(v dbusutil.Implementer, signalName string, values ...interface{}) error
	EmitPropertyChanged(v dbusutil.Implementer, propertyName string, value interface{}) error
}

var (
	openDevice = func() (rfkillDevice, error) {
		dev, err := rfkill.Open()
		if err != nil {
			return nil, err
		}
		return dev, nil
	}
	getService = func() busService {
		return loader.GetService()
	}
)

func init() {
	rfkill.SetLogger(logger)
	loader.Register(NewModule())
}

type Module struct {
	m          *Manager
	configFile string
	*loader.ModuleBase
}

func NewModule() *Module {
	m := &Module{configFile: configFile}
	m.ModuleBase = loader.NewModuleBase("rfkill", m, logger)
	return m
}

func (m *Module) GetDependencies() []string {
	return nil
}

func (m *Module) Start() error {
	if m.m != nil {
		return nil
	}
	logger.Debug("rfkill module start")
	dev, err := openDevice()
	if err != nil {
		return err
	}

	service := getService()
	m.m = newManager(service, dev, newConfig(m.configFile))
	err = service.Export(dbusPath, m.m)
	if err != nil {
		_ = m.m.destroy()
		m.m = nil
		return err
	}

	err = service.RequestName(dbusServiceName)
	if err != nil {
		_ = service.StopExport(m.m)
		_ = m.m.destroy()
		m.m = nil
		return err
	}

	m.m.start()
	return nil
}

func (m *Module) Stop() error {
	if m.m == nil {
		return nil
	}
	service := getService()
	err := service.StopExport(m.m)
	if err != nil {
		logger.Warning(err)
	}
	err = m.m.destroy()
	m.m = nil
	return err
}
