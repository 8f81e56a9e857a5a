// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadFrom loads a TOML, YAML, or JSON file, depending on its extension.
func LoadFrom(file string) (*Config, error) {
	return LoadFromFS(os.DirFS("."), file)
}

func LoadFromFS(fsys fs.FS, file string) (*Config, error) {
	var format func([]byte, any) error
	switch s := filepath.Ext(file); s {
	case ".toml", ".tml":
		format = toml.Unmarshal
	case ".yaml", ".yml":
		format = yaml.Unmarshal
	case ".json":
		format = json.Unmarshal
	default:
		return nil, errors.BadRequest.WithFormat("unknown file type %s", s)
	}

	b, err := fs.ReadFile(fsys, filepath.ToSlash(file))
	if err != nil {
		return nil, errors.BadRequest.WithFormat("load %s: %w", file, err)
	}

	c := new(Config)
	c.file = file
	c.fs = fsys
	err = c.Load(b, format)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Load decodes the config with the given format, expands variables, applies
// defaults, and validates the result.
func (c *Config) Load(b []byte, format func([]byte, any) error) error {
	// Round trip through JSON so every format uses the same field names
	var v any
	err := format(b, &v)
	if err != nil {
		return errors.BadRequest.WithFormat("decode config: %w", err)
	}
	b, err = json.Marshal(v)
	if err != nil {
		return errors.BadRequest.WithFormat("decode config: %w", err)
	}
	err = json.Unmarshal(b, c)
	if err != nil {
		return errors.BadRequest.WithFormat("decode config: %w", err)
	}

	err = c.applyDotEnv()
	if err != nil {
		return errors.BadRequest.Wrap(err)
	}

	c.applyDefaults()
	return c.Validate()
}

func (c *Config) applyDotEnv() error {
	if c.DotEnv == nil || !*c.DotEnv {
		return nil
	}
	if c.fs == nil {
		return errors.BadRequest.With("dot-env requires a config file")
	}

	file := filepath.ToSlash(filepath.Join(filepath.Dir(c.file), ".env"))
	f, err := c.fs.Open(file)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	env, err := godotenv.Parse(f)
	if err != nil {
		return err
	}

	// Variables come from .env only, never from the process environment
	var errs []error
	expandEnv(reflect.ValueOf(c), func(name string) string {
		value, ok := env[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%q is not defined", name))
		}
		return value
	})
	return errors.Join(errs...)
}

func expandEnv(v reflect.Value, expand func(string) string) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(os.Expand(v.String(), expand))
		}

	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			expandEnv(v.Elem(), expand)
		}

	case reflect.Struct:
		typ := v.Type()
		for i, n := 0, typ.NumField(); i < n; i++ {
			if typ.Field(i).IsExported() {
				expandEnv(v.Field(i), expand)
			}
		}
	}
}

// SaveTo writes the config as TOML, YAML, or JSON, depending on the file's
// extension.
func (c *Config) SaveTo(file string) error {
	var format func(any) ([]byte, error)
	switch s := filepath.Ext(file); s {
	case ".toml", ".tml":
		format = marshalTOML
	case ".yaml", ".yml":
		format = yaml.Marshal
	case ".json":
		format = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	default:
		return errors.BadRequest.WithFormat("unknown file type %s", s)
	}

	b, err := c.Marshal(format)
	if err != nil {
		return err
	}
	return os.WriteFile(file, b, 0600)
}

func (c *Config) Marshal(format func(any) ([]byte, error)) ([]byte, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	var v any
	err = json.Unmarshal(b, &v)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	b, err = format(wholeNumbers(v))
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return b, nil
}

func marshalTOML(v any) ([]byte, error) {
	b := new(bytes.Buffer)
	err := toml.NewEncoder(b).Encode(v)
	return b.Bytes(), err
}

// wholeNumbers converts floats produced by decoding JSON back to integers so
// they are not written as 1.0e+02.
func wholeNumbers(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, u := range v {
			v[k] = wholeNumbers(u)
		}
		return v
	case []any:
		for i, u := range v {
			v[i] = wholeNumbers(u)
		}
		return v
	case float64:
		if v == float64(int64(v)) {
			return int64(v)
		}
		return v
	default:
		return v
	}
}
