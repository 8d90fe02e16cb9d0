package main

import (
	"fmt"

	"github.com/ZhuZhengyi/blockchain-go/hashutil"
	"github.com/ZhuZhengyi/blockchain-go/store"
	"github.com/ZhuZhengyi/blockchain-go/utxoindex"
	"github.com/pkg/errors"
)

func runCreateBlockchain(cfg *createBlockchainConfig) error {
	address := cfg.Positional.Address
	if !hashutil.ValidateAddress(address) {
		return errors.Errorf("address %s is not valid", address)
	}

	chain, err := store.Create(chainDataDir, address)
	if err != nil {
		return err
	}
	defer chain.Close()

	if err := utxoindex.New(chain).Reindex(); err != nil {
		return err
	}

	log.Infof("created blockchain at %s, genesis reward to %s", chainDataDir, address)
	fmt.Printf("Create blockchain addr: %s Done!\n", address)
	return nil
}
