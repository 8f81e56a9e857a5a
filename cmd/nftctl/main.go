// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/nft-collection/internal/config"
	"gitlab.com/accumulatenetwork/nft-collection/internal/deeplink"
	. "gitlab.com/accumulatenetwork/nft-collection/internal/util/cmd"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/client/toncenter"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/collection"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
)

func main() {
	_ = cmdMain.Execute()
}

var cmdMain = &cobra.Command{
	Use:   "nftctl",
	Short: "Deploy and manage an NFT collection contract",
	Run:   printUsageAndExit1,
}

var flagMain = struct {
	Config     string
	Testnet    bool
	Endpoint   string
	APIKey     string
	LogLevel   string
	LogFormat  string
	Collection string
}{}

func init() {
	flags := cmdMain.PersistentFlags()
	flags.StringVarP(&flagMain.Config, "config", "c", "", "Config file (TOML, YAML, or JSON)")
	flags.BoolVar(&flagMain.Testnet, "testnet", false, "Use testnet")
	flags.StringVar(&flagMain.Endpoint, "endpoint", "", "toncenter JSON-RPC endpoint")
	flags.StringVar(&flagMain.APIKey, "api-key", os.Getenv("TONCENTER_API_KEY"), "toncenter API key")
	flags.StringVar(&flagMain.LogLevel, "log-level", "", "Log level, e.g. info or error;toncenter=debug")
	flags.StringVar(&flagMain.LogFormat, "log-format", "", "Log format (plain, json)")
	flags.StringVarP(&flagMain.Collection, "collection", "a", "", "Address of the collection")
}

func printUsageAndExit1(cmd *cobra.Command, _ []string) {
	_ = cmd.Usage()
	os.Exit(1)
}

// env is everything a command needs, built from the config file and the
// global flags.
type env struct {
	Config *config.Config
	Logger zerolog.Logger
	Client *toncenter.Client
	Links  *deeplink.Submitter
}

func setup() *env {
	var cfg *config.Config
	var err error
	if flagMain.Config != "" {
		dir, file := filepath.Split(flagMain.Config)
		if dir == "" {
			dir = "."
		}
		cfg, err = config.LoadFromFS(os.DirFS(dir), file)
		Checkf(err, "load %s", flagMain.Config)
	} else {
		cfg = config.Default(flagMain.Testnet)
	}

	if flagMain.Testnet && !cfg.Network.Testnet {
		cfg.Network.Testnet = true
		if flagMain.Endpoint == "" && cfg.Network.Endpoint == toncenter.MainnetEndpoint {
			cfg.Network.Endpoint = toncenter.TestnetEndpoint
		}
	}
	setIf(&cfg.Network.Endpoint, flagMain.Endpoint)
	setIf(&cfg.Network.APIKey, flagMain.APIKey)
	setIf(&cfg.Logging.Level, flagMain.LogLevel)
	setIf(&cfg.Logging.Format, flagMain.LogFormat)
	setIf(&cfg.Collection.Address, flagMain.Collection)

	e := &env{Config: cfg}
	e.Logger, err = cfg.Logging.NewLogger(os.Stderr)
	Check(err)
	e.Logger = e.Logger.With().Str("module", "nftctl").Logger()

	e.Client, err = cfg.Network.NewClient(e.Logger)
	Check(err)

	e.Links = deeplink.New(cfg.Network.Testnet, e.Logger)
	e.Links.OnLink = func(link string) error {
		fmt.Println(link)
		return nil
	}
	return e
}

func setIf(ptr *string, value string) {
	if value != "" {
		*ptr = value
	}
}

func (e *env) options() []collection.Option {
	return []collection.Option{
		collection.Logger(e.Logger, "module", "collection"),
		collection.Submitter(e.Links),
		collection.Querier(e.Client),
		collection.DeployWaiter(e.Client),
	}
}

// open returns a handle to the deployed collection.
func (e *env) open() *collection.Collection {
	addr, err := e.Config.CollectionAddress()
	Check(err)
	c, err := collection.CreateFromAddress(addr, e.options()...)
	Check(err)
	return c
}

func (e *env) format(addr *address.Address) string {
	return addr.Format(address.FormatOptions{Bounceable: true, Testnet: e.Config.Network.Testnet, URLSafe: true})
}

func contextForMainProcess() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
