// Command blockchaincli is the operator-facing entry point for the
// blockchain node: creating a chain, managing a local wallet, sending
// coins, and starting the gossip server (spec.md §5).
package main

import (
	"fmt"
	"os"

	"github.com/ZhuZhengyi/blockchain-go/logger"
)

func main() {
	logger.InitLogRotators("./logs/blockchain.log", "./logs/blockchain_err.log")
	logger.SetLogLevels("info")

	subCommand, config := parseCommandLine()

	var err error
	switch subCommand {
	case createBlockchainSubCmd:
		err = runCreateBlockchain(config.(*createBlockchainConfig))
	case createWalletSubCmd:
		err = runCreateWallet(config.(*createWalletConfig))
	case getBalanceSubCmd:
		err = runGetBalance(config.(*getBalanceConfig))
	case listAddressesSubCmd:
		err = runListAddresses(config.(*listAddressesConfig))
	case sendSubCmd:
		err = runSend(config.(*sendConfig))
	case printChainSubCmd:
		err = runPrintChain(config.(*printChainConfig))
	case reindexUTXOSubCmd:
		err = runReindexUTXO(config.(*reindexUTXOConfig))
	case startNodeSubCmd:
		err = runStartNode(config.(*startNodeConfig))
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}
