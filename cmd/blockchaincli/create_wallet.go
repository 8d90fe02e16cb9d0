package main

import (
	"fmt"
	"path/filepath"

	"github.com/ZhuZhengyi/blockchain-go/walletstore"
)

func runCreateWallet(cfg *createWalletConfig) error {
	path, err := filepath.Abs(walletstore.WalletFile)
	if err != nil {
		return err
	}

	store, err := walletstore.Load(path)
	if err != nil {
		return err
	}

	address, err := store.CreateWallet()
	if err != nil {
		return err
	}

	fmt.Printf("Your new address: %s\n", address)
	return nil
}
