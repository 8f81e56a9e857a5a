// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	. "gitlab.com/accumulatenetwork/nft-collection/internal/util/cmd"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/collection"
)

var cmdDeploy = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the collection described by the config file",
	Args:  cobra.NoArgs,
	Run:   deploy,
}

var flagDeploy = struct {
	Value string
	Wait  bool
}{}

func init() {
	cmdMain.AddCommand(cmdDeploy)
	cmdDeploy.Flags().StringVar(&flagDeploy.Value, "value", "0.05", "TON to send with the deploy message")
	cmdDeploy.Flags().BoolVar(&flagDeploy.Wait, "wait", false, "Wait until the collection is active")
}

func deploy(_ *cobra.Command, _ []string) {
	e := setup()
	value := parseTON("value", flagDeploy.Value)

	cfg, code, err := e.Config.CollectionConfig()
	Check(err)
	c, err := collection.CreateFromConfig(cfg, code, e.Config.Collection.Workchain, e.options()...)
	Check(err)
	fmt.Printf("Collection address: %s\n", e.format(c.Address))

	ctx, cancel := contextForMainProcess()
	defer cancel()

	_, err = c.SendDeploy(ctx, value)
	Check(err)

	if !flagDeploy.Wait {
		return
	}
	Check(c.WaitForDeploy(ctx))
	fmt.Printf("Collection deployed at %s\n", e.format(c.Address))
}
