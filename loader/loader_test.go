// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/linuxdeepin/go-lib/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type startRecorder struct {
	mu    sync.Mutex
	order []string
}

func (r *startRecorder) add(name string) {
	r.mu.Lock()
	r.order = append(r.order, name)
	r.mu.Unlock()
}

func (r *startRecorder) index(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.order {
		if n == name {
			return i
		}
	}
	return -1
}

type testModule struct {
	*ModuleBase
	dependencies string
	startErr     error
	started      *startRecorder
	stopped      *startRecorder
}

func newTestModule(name, dependencies string, started, stopped *startRecorder) *testModule {
	daemon := &testModule{
		dependencies: dependencies,
		started:      started,
		stopped:      stopped,
	}
	daemon.ModuleBase = NewModuleBase(name, daemon, log.NewLogger(name))
	return daemon
}

func (d *testModule) GetDependencies() []string {
	if d.dependencies == "" {
		return nil
	}
	return strings.Split(d.dependencies, " ")
}

func (d *testModule) Start() error {
	if d.startErr != nil {
		return d.startErr
	}
	d.started.add(d.Name())
	return nil
}

func (d *testModule) Stop() error {
	if d.stopped != nil {
		d.stopped.add(d.Name())
	}
	return nil
}

func resetLoader() {
	loaderInitializer.Do(func() {})
	_loader = &Loader{
		modules: Modules{},
		log:     log.NewLogger("daemon/loader"),
	}
}

func TestEnableModulesOrder(t *testing.T) {
	resetLoader()
	started, stopped := &startRecorder{}, &startRecorder{}
	Register(newTestModule("rfkill", "config dbus", started, stopped))
	Register(newTestModule("config", "", started, stopped))
	Register(newTestModule("dbus", "config", started, stopped))

	require.NoError(t, StartAll())
	assert.Len(t, started.order, 3)
	assert.Less(t, started.index("config"), started.index("dbus"))
	assert.Less(t, started.index("dbus"), started.index("rfkill"))
	for _, m := range List() {
		assert.True(t, m.IsEnable(), m.Name())
	}

	StopAll()
	assert.Equal(t, []string{"rfkill", "dbus", "config"}, stopped.order)
	for _, m := range List() {
		assert.False(t, m.IsEnable(), m.Name())
	}
}

func TestEnableModulesErrors(t *testing.T) {
	tests := []struct {
		modules []*testModule
		flag    EnableFlag
		err     error
	}{
		{
			modules: []*testModule{
				newTestModule("1", "2", &startRecorder{}, nil),
				newTestModule("2", "3", &startRecorder{}, nil),
				newTestModule("3", "1", &startRecorder{}, nil),
			},
			flag: EnableFlagNone,
			err:  &EnableError{Code: ErrorCircleDependencies},
		},
		{
			modules: []*testModule{
				newTestModule("1", "missing", &startRecorder{}, nil),
			},
			flag: EnableFlagNone,
			err:  &EnableError{ModuleName: "missing", Code: ErrorMissingModule},
		},
		{
			modules: []*testModule{
				newTestModule("1", "missing", &startRecorder{}, nil),
			},
			flag: EnableFlagIgnoreMissingModule,
			err:  nil,
		},
	}
	for _, test := range tests {
		resetLoader()
		var names []string
		for _, m := range test.modules {
			Register(m)
			names = append(names, m.Name())
		}
		err := EnableModules(names, nil, test.flag)
		assert.Equal(t, test.err, err)
	}
}

func TestEnableModulesConflict(t *testing.T) {
	resetLoader()
	Register(newTestModule("1", "2", &startRecorder{}, nil))
	Register(newTestModule("2", "", &startRecorder{}, nil))

	err := EnableModules([]string{"1"}, []string{"2"}, EnableFlagNone)
	assert.Equal(t, &EnableError{ModuleName: "2", Code: ErrorConflict}, err)
}

func TestStartFailureReleasesDependents(t *testing.T) {
	resetLoader()
	started := &startRecorder{}
	failing := newTestModule("device", "", started, nil)
	failing.startErr = errors.New("no such device")
	Register(failing)
	Register(newTestModule("service", "device", started, nil))

	err := StartAll()
	assert.Equal(t, &EnableError{ModuleName: "device", Code: ErrorInternalError, detail: "no such device"}, err)
	assert.EqualError(t, err, "device started failed: no such device")
	assert.False(t, GetModule("device").IsEnable())
	assert.True(t, GetModule("service").IsEnable())
	assert.Equal(t, []string{"service"}, started.order)
}
