// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/linuxdeepin/dde-rfkill/rfkill"
	"github.com/linuxdeepin/go-lib/log"
	"golang.org/x/xerrors"
)

var logger = log.NewLogger("dde-rfkill")

func init() {
	rfkill.SetLogger(logger)
}

var (
	optDebug  bool
	optFormat string
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: %s [options] <command> [args]

Commands:
  list [type]             list switches, optionally of one type
  block <id|type|all>     soft block a switch or every switch of a type
  unblock <id|type|all>   soft unblock a switch or every switch of a type
  event                   print events as they arrive
  name <id>               print the name of a switch

Options:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.BoolVar(&optDebug, "debug", false, "debug mode")
	flag.StringVar(&optFormat, "format", formatText, "output format: text, json or yaml")
	flag.Parse()
	if optDebug {
		logger.SetLogLevel(log.LevelDebug)
	}

	out, err := newPrinter(os.Stdout, optFormat)
	if err != nil {
		logger.Warning(err)
		os.Exit(2)
	}

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"list"}
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "list":
		err = cmdList(out, args)
	case "block":
		err = cmdBlock(args, true)
	case "unblock":
		err = cmdBlock(args, false)
	case "event":
		err = cmdEvent(out)
	case "name":
		err = cmdName(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Warning(err)
		os.Exit(1)
	}
}

// closeDevice treats a failed release as fatal.
func closeDevice(dev *rfkill.Device) {
	err := dev.Close()
	if err != nil {
		logger.Fatal("close rfkill device failed:", err)
	}
}

func cmdList(out printer, args []string) error {
	filter := rfkill.TypeAll
	if len(args) > 0 {
		var err error
		filter, err = rfkill.RadioTypeFromName(args[0])
		if err != nil {
			return err
		}
	}

	dev, err := rfkill.Open()
	if err != nil {
		return err
	}
	events, err := dev.ReadAll()
	closeDevice(dev)
	if err != nil {
		return err
	}

	var infos []deviceInfo
	for _, ev := range events {
		if ev.Op != rfkill.OpAdd {
			continue
		}
		if filter != rfkill.TypeAll && ev.Type != filter {
			continue
		}
		infos = append(infos, newDeviceInfo(ev))
	}
	return out.printDevices(infos)
}

func cmdBlock(args []string, blocked bool) error {
	if len(args) != 1 {
		return xerrors.New("expect one argument: <id|type|all>")
	}

	ev := rfkill.WireEvent{}
	if idx, err := strconv.ParseUint(args[0], 10, 32); err == nil {
		ev = ev.WithIndex(uint32(idx)).WithOperation(rfkill.OpChange)
	} else {
		typ, err := rfkill.RadioTypeFromName(args[0])
		if err != nil {
			return err
		}
		ev = ev.WithRadioType(typ).WithOperation(rfkill.OpChangeAll)
	}
	if blocked {
		ev = ev.SoftBlock()
	} else {
		ev = ev.SoftUnblock()
	}

	dev, err := rfkill.Open()
	if err != nil {
		return err
	}
	ok := dev.WriteEvent(ev)
	closeDevice(dev)
	if !ok {
		return xerrors.Errorf("failed to %s %s", blockVerb(blocked), args[0])
	}
	return nil
}

func blockVerb(blocked bool) string {
	if blocked {
		return "block"
	}
	return "unblock"
}

func cmdEvent(out printer) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dev, err := rfkill.Open()
	if err != nil {
		return err
	}
	defer closeDevice(dev)

	for {
		err = dev.Wait(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		events, readErr := dev.ReadAll()
		for _, ev := range events {
			err = out.printEvent(ev)
			if err != nil {
				return err
			}
		}
		if readErr != nil {
			var lenErr *rfkill.LengthMismatchError
			if !xerrors.As(readErr, &lenErr) {
				return readErr
			}
			logger.Warning(readErr)
		}
	}
}

func cmdName(args []string) error {
	if len(args) != 1 {
		return xerrors.New("expect one argument: <id>")
	}
	idx, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return xerrors.Errorf("invalid id %q: %w", args[0], err)
	}
	name, err := rfkill.GetName(uint32(idx))
	if err != nil {
		return err
	}
	fmt.Println(name)
	return nil
}
