// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/lassandro/golc3/internal/translate"
	"github.com/lassandro/golc3/pkg/config"
	"github.com/lassandro/golc3/pkg/console"
	"github.com/lassandro/golc3/pkg/encoding"
	"github.com/lassandro/golc3/pkg/machine"
)

var helpvar bool
var verbosevar bool
var pcvar string
var configvar string

var log *logrus.Entry

var f = translate.From

const usage = "golc3 [-v] [-pc x3000] [-config run.star] image-file ..."

const (
	exitOK        = 0
	exitLoad      = 1
	exitUsage     = 2
	exitFatal     = 3
	exitInterrupt = -2
)

func init() {
	exe, _ := os.Executable()
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log = logrus.WithField("prog", filepath.Base(exe))
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&verbosevar, "v", false, "Enables debug logging")
	flag.StringVar(&pcvar, "pc", "", "Initial program counter (hex)")
	flag.StringVar(&configvar, "config", "", "Starlark run configuration")
	flag.Parse()
}

func loadImage(mc *machine.Machine, path string) error {
	file, err := os.Open(path)

	if err != nil {
		return err
	}

	defer file.Close()

	if err := mc.LoadImage(file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

func golc3() int {
	if helpvar {
		fmt.Println(usage)
		return exitOK
	}

	cfg := &config.Config{}

	if configvar != "" {
		var err error

		if cfg, err = config.Load(configvar); err != nil {
			log.WithError(err).Error(f("failed to load config: %s", configvar))
			return exitUsage
		}
	}

	if verbosevar || cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	images := append(cfg.Images, flag.Args()...)

	if len(images) == 0 {
		log.Error(usage)
		return exitUsage
	}

	tty := console.NewTerminal(os.Stdin, os.Stdout)

	mc := machine.New(tty)
	mc.Log = log

	if cfg.HaltMessage != nil {
		mc.HaltMessage = *cfg.HaltMessage
	}

	if cfg.Prompt != nil {
		mc.Prompt = *cfg.Prompt
	}

	for _, path := range images {
		if err := loadImage(mc, path); err != nil {
			log.WithError(err).Error(f("failed to load image: %s", path))
			return exitLoad
		}
	}

	if pcvar != "" {
		pc, err := encoding.DecodeHex(pcvar)

		if err != nil {
			log.WithError(err).Error(f("invalid -pc: %s", pcvar))
			return exitUsage
		}

		mc.State.Program = pc
	} else if cfg.Program != nil {
		mc.State.Program = *cfg.Program
	}

	if err := tty.EnterRaw(); err != nil {
		log.WithError(err).Error(f("failed to configure terminal"))
		return exitFatal
	}

	defer tty.Restore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	defer signal.Stop(c)

	// Input traps block in the console, so an interrupt cannot wait for the
	// loop to notice the cancellation.
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			cancel()
			tty.Restore()
			fmt.Println()
			os.Exit(exitInterrupt)
		}
	}()

	if err := mc.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return exitInterrupt
		}

		entry := log.WithError(err)

		var runtimeErr *machine.ErrRuntime
		if errors.As(err, &runtimeErr) {
			entry = entry.WithFields(runtimeErr.Fields())
		}

		tty.Restore()
		entry.Error(f("machine stopped"))

		return exitFatal
	}

	return exitOK
}

func main() {
	os.Exit(golc3())
}
