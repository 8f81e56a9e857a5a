// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/client/toncenter"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/collection"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
)

var owner = address.New(0, sha256.Sum256([]byte("owner")))

func mkfs(files map[string]string) fstest.MapFS {
	fs := fstest.MapFS{}
	for name, data := range files {
		fs[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fs
}

func TestLoadFormats(t *testing.T) {
	t.Run("TOML", func(t *testing.T) {
		fs := mkfs(map[string]string{
			"nft.toml": `
				[network]
				testnet = true
				timeout = "30s"

				[collection]
				owner = "` + owner.String() + `"
				mint-price = "0.5"

				[collection.royalty]
				factor = 5
				base = 100`,
		})

		cfg, err := LoadFromFS(fs, "nft.toml")
		require.NoError(t, err)
		require.Equal(t, toncenter.TestnetEndpoint, cfg.Network.Endpoint)
		require.Equal(t, 30*time.Second, cfg.Network.Timeout.Get())
		require.Equal(t, owner.String(), cfg.Collection.Owner)
		require.Equal(t, "0.5", cfg.Collection.MintPrice)
		require.Equal(t, uint16(5), cfg.Collection.Royalty.Factor)
		require.Equal(t, "info", cfg.Logging.Level)
		require.Equal(t, "plain", cfg.Logging.Format)
	})

	t.Run("YAML", func(t *testing.T) {
		fs := mkfs(map[string]string{
			"nft.yaml": "network:\n  endpoint: http://localhost:8081/jsonRPC\n  api-key: secret\nlogging:\n  level: debug\n  format: json\n",
		})

		cfg, err := LoadFromFS(fs, "nft.yaml")
		require.NoError(t, err)
		require.Equal(t, "http://localhost:8081/jsonRPC", cfg.Network.Endpoint)
		require.Equal(t, "secret", cfg.Network.APIKey)
		require.Equal(t, DefaultTimeout, cfg.Network.Timeout.Get())
		require.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("JSON", func(t *testing.T) {
		fs := mkfs(map[string]string{
			"nft.json": `{"collection": {"address": "` + owner.Raw() + `", "workchain": -1}}`,
		})

		cfg, err := LoadFromFS(fs, "nft.json")
		require.NoError(t, err)
		require.Equal(t, int8(-1), cfg.Collection.Workchain)
		addr, err := cfg.CollectionAddress()
		require.NoError(t, err)
		require.True(t, owner.Equal(addr))
	})

	t.Run("Unknown extension", func(t *testing.T) {
		_, err := LoadFromFS(mkfs(map[string]string{"nft.ini": ""}), "nft.ini")
		require.ErrorIs(t, err, errors.BadRequest)
	})
}

func TestDotenv(t *testing.T) {
	// When dot-env is set, ${KEY} is resolved
	t.Run("Set", func(t *testing.T) {
		fs := mkfs(map[string]string{
			".env": `
				KEY=secret`,
			"nft.toml": `
				dot-env = true
				[network]
				api-key = "${KEY}"`,
		})

		cfg, err := LoadFromFS(fs, "nft.toml")
		require.NoError(t, err)
		require.Equal(t, "secret", cfg.Network.APIKey)
	})

	// When dot-env is unset, ${KEY} is left as is
	t.Run("Unset", func(t *testing.T) {
		fs := mkfs(map[string]string{
			".env": `
				KEY=secret`,
			"nft.toml": `
				[network]
				api-key = "${KEY}"`,
		})

		cfg, err := LoadFromFS(fs, "nft.toml")
		require.NoError(t, err)
		require.Equal(t, "${KEY}", cfg.Network.APIKey)
	})

	t.Run("Wrong var", func(t *testing.T) {
		fs := mkfs(map[string]string{
			".env": `
				KEY=secret`,
			"nft.toml": `
				dot-env = true
				[network]
				api-key = "${OTHER}"`,
		})

		_, err := LoadFromFS(fs, "nft.toml")
		require.ErrorIs(t, err, errors.BadRequest)
		require.Contains(t, err.Error(), `"OTHER" is not defined`)
	})

	t.Run("Subdirectory", func(t *testing.T) {
		fs := mkfs(map[string]string{
			"conf/.env": `KEY=secret`,
			"conf/nft.toml": `
				dot-env = true
				[network]
				api-key = "${KEY}"`,
		})

		cfg, err := LoadFromFS(fs, "conf/nft.toml")
		require.NoError(t, err)
		require.Equal(t, "secret", cfg.Network.APIKey)
	})
}

func TestValidation(t *testing.T) {
	cases := map[string]string{
		"Bad owner": `
			[collection]
			owner = "not an address"`,
		"Long common content": `
			[collection]
			common-content = "` + strings.Repeat("x", 128) + `"`,
		"Bad format": `
			[logging]
			format = "xml"`,
		"Bad endpoint": `
			[network]
			endpoint = "not a url"`,
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFromFS(mkfs(map[string]string{"nft.toml": data}), "nft.toml")
			require.ErrorIs(t, err, errors.ValidationError)
		})
	}
}

func TestCollectionConfig(t *testing.T) {
	code, err := cell.BeginCell().StoreUint(0xc0de, 16).EndCell()
	require.NoError(t, err)
	item, err := cell.BeginCell().StoreUint(0xdeadbeef, 32).EndCell()
	require.NoError(t, err)

	fs := mkfs(map[string]string{
		"build/collection.boc": string(code.ToBOC()),
		"build/item.b64":       item.ToBase64() + "\n",
		"nft.toml": `
			[collection]
			owner = "` + owner.String() + `"
			collection-content = "https://psalmfill.github.io/tiwiflix-ton-nft/collection.json"
			common-content = "https://psalmfill.github.io/tiwiflix-ton-nft/"
			contract-code = "build/collection.boc"
			item-code = "build/item.b64"
			mint-price = "1"

			[collection.royalty]
			factor = 10
			base = 100`,
	})

	cfg, err := LoadFromFS(fs, "nft.toml")
	require.NoError(t, err)

	cc, gotCode, err := cfg.CollectionConfig()
	require.NoError(t, err)
	require.True(t, code.Equal(gotCode))
	require.True(t, item.Equal(cc.ItemCode))
	require.Equal(t, uint64(1000000000), cc.MintPrice)
	require.True(t, owner.Equal(cc.Royalty.Address))

	// Same inputs as the collection package's own vectors
	coll, err := collection.CreateFromConfig(cc, gotCode, 0)
	require.NoError(t, err)
	require.Equal(t, "EQDzwatgoVL9NKO3ExeZzd-ISEKOg5s1YAGN17slhzpuz5in", coll.Address.String())

	t.Run("Missing code", func(t *testing.T) {
		cfg := *cfg
		cfg.Collection.ItemCode = "build/missing.boc"
		_, _, err := cfg.CollectionConfig()
		require.ErrorIs(t, err, errors.BadRequest)
	})

	t.Run("Missing owner", func(t *testing.T) {
		cfg := Default(false)
		_, _, err := cfg.CollectionConfig()
		require.ErrorIs(t, err, errors.BadRequest)
	})
}

func TestRoyaltyDefaults(t *testing.T) {
	code := mustCode(t)
	fs := mkfs(map[string]string{
		"build/collection.b64": code.ToBase64(),
		"build/item.b64":       code.ToBase64(),
		"default.toml": `
			[collection]
			owner = "` + owner.String() + `"
			contract-code = "build/collection.b64"
			item-code = "build/item.b64"`,
		"zero.toml": `
			[collection]
			owner = "` + owner.String() + `"
			contract-code = "build/collection.b64"
			item-code = "build/item.b64"

			[collection.royalty]
			factor = 0
			base = 0`,
		"above.toml": `
			[collection]
			owner = "` + owner.String() + `"
			contract-code = "build/collection.b64"
			item-code = "build/item.b64"

			[collection.royalty]
			factor = 11
			base = 10`,
	})

	load := func(file string) *collection.Config {
		cfg, err := LoadFromFS(fs, file)
		require.NoError(t, err)
		cc, _, err := cfg.CollectionConfig()
		require.NoError(t, err)
		return cc
	}

	// No royalty section means no royalties, paid to the owner
	cc := load("default.toml")
	require.Equal(t, uint16(0), cc.Royalty.Factor)
	require.Equal(t, uint16(0), cc.Royalty.Base)
	require.True(t, owner.Equal(cc.Royalty.Address))

	// An explicit zero royalty derives the same contract
	zero := load("zero.toml")
	require.Equal(t, cc.Royalty, zero.Royalty)
	a, err := collection.CreateFromConfig(cc, code, 0)
	require.NoError(t, err)
	b, err := collection.CreateFromConfig(zero, code, 0)
	require.NoError(t, err)
	require.True(t, a.Address.Equal(b.Address))

	above := load("above.toml")
	require.Equal(t, uint16(11), above.Royalty.Factor)
	require.Equal(t, uint16(10), above.Royalty.Base)
	_, err = collection.CreateFromConfig(above, code, 0)
	require.NoError(t, err)
}

func mustCode(t *testing.T) *cell.Cell {
	t.Helper()
	c, err := cell.BeginCell().StoreUint(0xc0de, 16).EndCell()
	require.NoError(t, err)
	return c
}

func TestSave(t *testing.T) {
	cfg := Default(true)
	cfg.Network.APIKey = "secret"
	cfg.Collection.Owner = owner.String()
	cfg.Collection.Royalty = &Royalty{Factor: 10, Base: 100}

	for _, ext := range []string{".toml", ".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, cfg.SaveTo(filepath.Join(dir, "nft"+ext)))

			loaded, err := LoadFromFS(os.DirFS(dir), "nft"+ext)
			require.NoError(t, err)
			require.Equal(t, cfg.Network, loaded.Network)
			require.Equal(t, cfg.Collection, loaded.Collection)
			require.Equal(t, cfg.Logging, loaded.Logging)
		})
	}

	require.ErrorIs(t, cfg.SaveTo("nft.txt"), errors.BadRequest)
}
