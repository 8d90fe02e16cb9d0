package main

import (
	"fmt"
	"path/filepath"

	"github.com/ZhuZhengyi/blockchain-go/walletstore"
)

func runListAddresses(cfg *listAddressesConfig) error {
	path, err := filepath.Abs(walletstore.WalletFile)
	if err != nil {
		return err
	}

	store, err := walletstore.Load(path)
	if err != nil {
		return err
	}

	for _, address := range store.GetAddresses() {
		fmt.Println(address)
	}
	return nil
}
