// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"sort"

	"github.com/linuxdeepin/go-lib/log"
)

// DAGBuilder collects the modules to enable together with their
// dependencies and orders them so every module comes after the ones it
// depends on.
type DAGBuilder struct {
	modules         Modules
	enablingModules []string
	disableModules  map[string]struct{}
	flag            EnableFlag

	log *log.Logger

	// edges: dependency -> dependents
	edges    map[string][]string
	inDegree map[string]int
	missing  map[string]struct{}
}

func NewDAGBuilder(loader *Loader, enablingModules []string, disableModules []string, flag EnableFlag) *DAGBuilder {
	disableModulesMap := map[string]struct{}{}
	for _, name := range disableModules {
		if _, ok := loader.modules[name]; !ok {
			loader.log.Warningf("disabled module(%s) is no existed", name)
			continue
		}
		disableModulesMap[name] = struct{}{}
	}

	return &DAGBuilder{
		modules:         loader.modules,
		enablingModules: enablingModules,
		disableModules:  disableModulesMap,
		flag:            flag,
		log:             loader.log,
		edges:           make(map[string][]string),
		inDegree:        make(map[string]int),
		missing:         make(map[string]struct{}),
	}
}

func (builder *DAGBuilder) addNode(name string) bool {
	if _, ok := builder.inDegree[name]; ok {
		return false
	}
	builder.inDegree[name] = 0
	return true
}

func (builder *DAGBuilder) buildDAG() error {
	queue := make([]string, 0, len(builder.enablingModules))
	for _, name := range builder.enablingModules {
		if builder.addNode(name) {
			queue = append(queue, name)
		}
	}
	for len(queue) != 0 {
		name := queue[0]
		queue = queue[1:]
		module, ok := builder.modules[name]
		if !ok {
			if builder.flag.HasFlag(EnableFlagIgnoreMissingModule) {
				builder.log.Info("no such a module named", name)
				builder.missing[name] = struct{}{}
				continue
			}
			return &EnableError{ModuleName: name, Code: ErrorMissingModule}
		}
		if _, ok := builder.disableModules[name]; ok {
			if !builder.flag.HasFlag(EnableFlagForceStart) {
				return &EnableError{ModuleName: name, Code: ErrorConflict}
			}
		}
		for _, dependency := range module.GetDependencies() {
			if builder.addNode(dependency) {
				queue = append(queue, dependency)
			}
			builder.edges[dependency] = append(builder.edges[dependency], name)
			builder.inDegree[name]++
		}
	}
	return nil
}

// Execute returns the module names in start order.
func (builder *DAGBuilder) Execute() ([]string, error) {
	err := builder.buildDAG()
	if err != nil {
		return nil, err
	}

	var ready []string
	for name, degree := range builder.inDegree {
		if degree == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(builder.inDegree))
	for len(ready) != 0 {
		name := ready[0]
		ready = ready[1:]
		if _, ok := builder.missing[name]; !ok {
			order = append(order, name)
		}
		dependents := builder.edges[name]
		sort.Strings(dependents)
		for _, dependent := range dependents {
			builder.inDegree[dependent]--
			if builder.inDegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}
	if len(order)+len(builder.missing) != len(builder.inDegree) {
		return nil, &EnableError{Code: ErrorCircleDependencies}
	}
	return order, nil
}
