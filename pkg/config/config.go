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

// Package config reads run configurations written in Starlark.
//
// A configuration file assigns any of these globals:
//
//	images = ["rogue.obj"]      # loaded before images named on the command line
//	pc = USER_SPACE + 0x10      # initial program counter
//	verbose = True
//	halt_message = "bye"
//	prompt = "> "
//
// Relative image paths are taken from the directory holding the file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/lassandro/golc3/internal/translate"
	"github.com/lassandro/golc3/pkg/machine"
)

var f = translate.From

var ErrConfigType = errors.New(f("wrong type"))

type Config struct {
	Images      []string
	Program     *uint16
	Verbose     bool
	HaltMessage *string
	Prompt      *string
}

var predeclared = starlark.StringDict{
	"TRAP_TABLE": starlark.MakeInt(int(machine.MEMSPACE_TRAP_TABLE)),
	"INT_TABLE":  starlark.MakeInt(int(machine.MEMSPACE_INT_TABLE)),
	"SUPERVISOR": starlark.MakeInt(int(machine.MEMSPACE_SUPERVISOR)),
	"USER_SPACE": starlark.MakeInt(int(machine.MEMSPACE_USER)),
	"DEVICES":    starlark.MakeInt(int(machine.MEMSPACE_DEVICES)),
}

// Load executes the configuration file at path.
func Load(path string) (*Config, error) {
	cfg, err := parse(path, nil)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for i, image := range cfg.Images {
		if !filepath.IsAbs(image) {
			cfg.Images[i] = filepath.Join(dir, image)
		}
	}

	return cfg, nil
}

// Parse executes configuration source. Image paths are returned as written.
func Parse(filename string, src string) (*Config, error) {
	return parse(filename, src)
}

func parse(filename string, src interface{}) (*Config, error) {
	thread := starlark.Thread{Name: filename}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, &thread, filename, src, predeclared)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}

	if value, ok := globals["images"]; ok {
		list, ok := value.(*starlark.List)
		if !ok {
			return nil, typeError("images", "list", value)
		}

		for i := 0; i < list.Len(); i++ {
			image, ok := starlark.AsString(list.Index(i))
			if !ok {
				return nil, typeError("images", "list of strings", value)
			}

			cfg.Images = append(cfg.Images, image)
		}
	}

	if value, ok := globals["pc"]; ok {
		number, ok := value.(starlark.Int)
		if !ok {
			return nil, typeError("pc", "int", value)
		}

		pc, ok := number.Int64()
		if !ok || pc < 0 || pc >= machine.MEMORY_SIZE {
			return nil, fmt.Errorf("pc: %w: %v out of range", ErrConfigType, value)
		}

		program := uint16(pc)
		cfg.Program = &program
	}

	if value, ok := globals["verbose"]; ok {
		verbose, ok := value.(starlark.Bool)
		if !ok {
			return nil, typeError("verbose", "bool", value)
		}

		cfg.Verbose = bool(verbose)
	}

	if cfg.HaltMessage, err = optionalString(globals, "halt_message"); err != nil {
		return nil, err
	}

	if cfg.Prompt, err = optionalString(globals, "prompt"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func optionalString(globals starlark.StringDict, name string) (*string, error) {
	value, ok := globals[name]
	if !ok {
		return nil, nil
	}

	str, ok := starlark.AsString(value)
	if !ok {
		return nil, typeError(name, "string", value)
	}

	return &str, nil
}

func typeError(name string, want string, value starlark.Value) error {
	return fmt.Errorf("%s: %w: want %s, have %s", name, ErrConfigType, want, value.Type())
}
