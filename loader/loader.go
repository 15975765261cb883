// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"fmt"
	"sync"
	"time"

	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
)

type EnableFlag int

const (
	EnableFlagNone EnableFlag = 1 << iota
	EnableFlagIgnoreMissingModule
	EnableFlagForceStart
)

func (flags EnableFlag) HasFlag(flag EnableFlag) bool {
	return flags&flag != 0
}

const (
	ErrorCircleDependencies int = iota
	ErrorMissingModule
	ErrorInternalError
	ErrorConflict
)

type EnableError struct {
	ModuleName string
	Code       int
	detail     string
}

func (e *EnableError) Error() string {
	switch e.Code {
	case ErrorCircleDependencies:
		return "dependency circle"
	case ErrorMissingModule:
		return fmt.Sprintf("%s is missing", e.ModuleName)
	case ErrorInternalError:
		return fmt.Sprintf("%s started failed: %s", e.ModuleName, e.detail)
	case ErrorConflict:
		return fmt.Sprintf("tring to enable disabled module(%s)", e.ModuleName)
	}
	panic("EnableError: Unknown Error, Should not be reached")
}

type Loader struct {
	modules Modules
	log     *log.Logger
	lock    sync.Mutex
	service *dbusutil.Service
}

func (l *Loader) SetLogLevel(pri log.Priority) {
	l.log.SetLogLevel(pri)

	l.lock.Lock()
	defer l.lock.Unlock()

	for _, module := range l.modules {
		module.SetLogLevel(pri)
	}
}

func (l *Loader) AddModule(m Module) {
	l.lock.Lock()
	defer l.lock.Unlock()
	name := m.Name()
	_, exist := l.modules[name]
	if exist {
		l.log.Debug("Register", name, "is already registered")
		return
	}
	l.log.Debug("Register module:", name)
	l.modules[name] = m
}

func (l *Loader) List() []Module {
	l.lock.Lock()
	defer l.lock.Unlock()
	modules := make([]Module, 0, len(l.modules))
	for _, m := range l.modules {
		modules = append(modules, m)
	}
	return modules
}

func (l *Loader) GetModule(name string) Module {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.modules[name]
}

func (l *Loader) waitDependencies(module Module) {
	for _, dependencyName := range module.GetDependencies() {
		if dep, ok := l.modules[dependencyName]; ok {
			dep.WaitEnable()
		}
	}
}

func (l *Loader) EnableModules(enablingModules []string, disableModules []string, flag EnableFlag) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	startTime := time.Now()
	builder := NewDAGBuilder(l, enablingModules, disableModules, flag)
	names, err := builder.Execute()
	if err != nil {
		return err
	}
	l.log.Infof("topo sort done, cost %s", time.Since(startTime))

	var wg sync.WaitGroup
	var failedMu sync.Mutex
	var failed *EnableError
	for _, name := range names {
		module := l.modules[name]
		name := name

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.log.Info("enable module", name)
			startTime := time.Now()

			l.waitDependencies(module)
			l.log.Info("module", name, "wait done, cost", time.Since(startTime))

			err := module.Enable(true)
			if err != nil {
				l.log.Errorf("enable module %s failed: %s, cost %s", name, err, time.Since(startTime))
				failedMu.Lock()
				if failed == nil {
					failed = &EnableError{ModuleName: name, Code: ErrorInternalError, detail: err.Error()}
				}
				failedMu.Unlock()
			} else {
				l.log.Infof("enable module %s done cost %s", name, time.Since(startTime))
			}
		}()
	}

	wg.Wait()

	l.log.Infof("enable modules done, cost add up to %s", time.Since(startTime))
	if failed != nil {
		// the others stay enabled
		return failed
	}
	return nil
}

// DisableModules stops the enabled modules in reverse start order.
func (l *Loader) DisableModules() {
	l.lock.Lock()
	defer l.lock.Unlock()

	names := make([]string, 0, len(l.modules))
	for name := range l.modules {
		names = append(names, name)
	}
	builder := NewDAGBuilder(l, names, nil, EnableFlagIgnoreMissingModule)
	order, err := builder.Execute()
	if err != nil {
		l.log.Warning(err)
		order = names
	}
	for i := len(order) - 1; i >= 0; i-- {
		module := l.modules[order[i]]
		if !module.IsEnable() {
			continue
		}
		err := module.Enable(false)
		if err != nil {
			l.log.Warningf("disable module %s failed: %v", order[i], err)
		}
	}
}
