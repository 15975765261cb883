// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/linuxdeepin/dde-rfkill/loader"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"

	// modules:
	_ "github.com/linuxdeepin/dde-rfkill/rfkill1"
)

const (
	dbusServiceName = "org.deepin.dde.Rfkill1"
)

var logger = log.NewLogger("daemon/dde-rfkill-daemon")

var optDebug bool

func main() {
	flag.BoolVar(&optDebug, "debug", false, "debug mode")
	flag.Parse()
	if optDebug {
		logger.SetLogLevel(log.LevelDebug)
		loader.ToggleLogDebug(true)
	}

	service, err := dbusutil.NewSystemService()
	if err != nil {
		logger.Fatal("failed to new system service", err)
	}

	hasOwner, err := service.NameHasOwner(dbusServiceName)
	if err != nil {
		logger.Fatal("failed to call NameHasOwner:", err)
	}
	if hasOwner {
		logger.Warningf("name %q already has the owner", dbusServiceName)
		os.Exit(1)
	}

	loader.SetService(service)
	err = loader.StartAll()
	if err != nil {
		logger.Fatal("failed to start modules:", err)
	}
	if m := loader.GetModule("rfkill"); m == nil || !m.IsEnable() {
		logger.Fatal("rfkill module is not running")
	}
	handleSignals()
	service.Wait()
	loader.StopAll()
}

func handleSignals() {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		sig := <-sigc
		logger.Info("received signal:", sig)
		loader.StopAll()
		os.Exit(0)
	}()
}
