package main

import "github.com/ZhuZhengyi/blockchain-go/store"

// chainDataDir is where the embedded leveldb chain store lives,
// relative to the working directory.
const chainDataDir = "./data/blockchain"

// openChain opens the existing chain store, failing if none exists.
func openChain() (*store.Chain, error) {
	return store.Open(chainDataDir)
}
