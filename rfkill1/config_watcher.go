// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rfkill1

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const configReloadDelay = 500 * time.Millisecond

// configWatcher calls onChange, debounced, after the config file was
// written, created or replaced by someone.
type configWatcher struct {
	watcher  *fsnotify.Watcher
	file     string
	onChange func()
	quit     chan struct{}
	done     chan struct{}
}

func newConfigWatcher(file string, onChange func()) (*configWatcher, error) {
	dir := filepath.Dir(file)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// watch the directory, the file may be replaced by rename
	err = watcher.Add(dir)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}

	w := &configWatcher{
		watcher:  watcher,
		file:     filepath.Clean(file),
		onChange: onChange,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *configWatcher) loop() {
	defer close(w.done)
	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.file {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("config file event:", ev)
			if timer == nil {
				timer = time.NewTimer(configReloadDelay)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(configReloadDelay)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warning("config watcher error:", err)

		case <-w.quit:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *configWatcher) stop() error {
	close(w.quit)
	err := w.watcher.Close()
	<-w.done
	return err
}
