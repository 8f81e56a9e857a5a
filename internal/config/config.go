// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package config loads the configuration of nftctl: the network endpoint, the
// collection being managed, and logging.
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gitlab.com/accumulatenetwork/nft-collection/internal/logging"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/client/toncenter"
)

const DefaultTimeout = 15 * time.Second

type Config struct {
	file string
	fs   fs.FS

	// DotEnv enables ${VAR} expansion from the .env file next to the
	// config file.
	DotEnv *bool `json:"dot-env,omitempty"`

	Network    Network    `json:"network"`
	Collection Collection `json:"collection"`
	Logging    Logging    `json:"logging"`
}

type Network struct {
	Endpoint string   `json:"endpoint,omitempty" validate:"omitempty,url"`
	APIKey   string   `json:"api-key,omitempty"`
	Testnet  bool     `json:"testnet,omitempty"`
	Timeout  Duration `json:"timeout,omitempty"`
}

type Collection struct {
	// Address is the address of a deployed collection. If it is empty the
	// address is derived from the code and initial data.
	Address   string `json:"address,omitempty" validate:"omitempty,ton-addr"`
	Workchain int8   `json:"workchain,omitempty"`
	Owner     string `json:"owner,omitempty" validate:"omitempty,ton-addr"`

	CollectionContent string `json:"collection-content,omitempty"`
	CommonContent     string `json:"common-content,omitempty" validate:"cell-bytes"`

	// ContractCode and ItemCode are paths, relative to the config file, of
	// BoC files. The files may be binary or base64.
	ContractCode string `json:"contract-code,omitempty"`
	ItemCode     string `json:"item-code,omitempty"`

	Royalty   *Royalty `json:"royalty,omitempty"`
	MintPrice string   `json:"mint-price,omitempty"`
}

type Royalty struct {
	Factor  uint16 `json:"factor"`
	Base    uint16 `json:"base"`
	Address string `json:"address,omitempty" validate:"omitempty,ton-addr"`
}

type Logging struct {
	Level  string `json:"level,omitempty"`
	Format string `json:"format,omitempty" validate:"omitempty,oneof=plain text json"`
}

// Duration is a [time.Duration] that is written as a string, such as 15s.
type Duration time.Duration

func (d Duration) Get() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns a config for the given network with defaults applied.
func Default(testnet bool) *Config {
	c := new(Config)
	c.Network.Testnet = testnet
	c.applyDefaults()
	return c
}

func (c *Config) FilePath() string { return c.file }

func (c *Config) applyDefaults() {
	if c.Network.Endpoint == "" {
		if c.Network.Testnet {
			c.Network.Endpoint = toncenter.TestnetEndpoint
		} else {
			c.Network.Endpoint = toncenter.MainnetEndpoint
		}
	}
	if c.Network.Timeout == 0 {
		c.Network.Timeout = Duration(DefaultTimeout)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = logging.LogFormatPlain
	}
}

// resolve returns the path of a file referenced by the config.
func (c *Config) resolve(path string) string {
	if c.file == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(c.file), path)
}

func (c *Config) readFile(path string) ([]byte, error) {
	path = c.resolve(path)
	if c.fs == nil || filepath.IsAbs(path) {
		return os.ReadFile(path)
	}
	return fs.ReadFile(c.fs, filepath.ToSlash(filepath.Clean(path)))
}
