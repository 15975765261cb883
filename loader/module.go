// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"fmt"
	"sync"

	"github.com/linuxdeepin/go-lib/log"
)

type Module interface {
	Name() string
	IsEnable() bool
	Enable(bool) error
	GetDependencies() []string
	SetLogLevel(log.Priority)
	LogLevel() log.Priority
	WaitEnable()
	ModuleImpl
}

type Modules map[string]Module

type ModuleImpl interface {
	Start() error // keep Start sync, the loader logs the returned error
	Stop() error
}

type ModuleBase struct {
	impl    ModuleImpl
	enabled bool
	name    string
	log     *log.Logger
	mu      sync.Mutex
	ready   chan struct{}
}

func NewModuleBase(name string, impl ModuleImpl, logger *log.Logger) *ModuleBase {
	return &ModuleBase{
		name:  name,
		impl:  impl,
		log:   logger,
		ready: make(chan struct{}),
	}
}

func (d *ModuleBase) Enable(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.enabled == enable {
		if enable {
			return fmt.Errorf("%s daemon is already started", d.name)
		}
		return fmt.Errorf("%s daemon is not started", d.name)
	}

	if d.impl != nil {
		fn := d.impl.Stop
		if enable {
			fn = d.impl.Start
		}
		if err := fn(); err != nil {
			if enable {
				d.markReady()
			}
			return err
		}
	}
	d.enabled = enable
	if enable {
		d.markReady()
	}
	return nil
}

// markReady releases WaitEnable callers, once.
func (d *ModuleBase) markReady() {
	select {
	case <-d.ready:
	default:
		close(d.ready)
	}
}

func (d *ModuleBase) IsEnable() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// WaitEnable returns once Start has been attempted, whether or not it
// succeeded.
func (d *ModuleBase) WaitEnable() {
	<-d.ready
}

func (d *ModuleBase) Name() string {
	return d.name
}

func (d *ModuleBase) SetLogLevel(pri log.Priority) {
	d.log.SetLogLevel(pri)
}

func (d *ModuleBase) LogLevel() log.Priority {
	return d.log.GetLogLevel()
}
