package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	createBlockchainSubCmd = "create-blockchain"
	createWalletSubCmd     = "create-wallet"
	getBalanceSubCmd       = "get-balance"
	listAddressesSubCmd    = "list-addresses"
	sendSubCmd             = "send"
	printChainSubCmd       = "print-chain"
	reindexUTXOSubCmd      = "reindex-utxo"
	startNodeSubCmd        = "start-node"
)

type createBlockchainConfig struct {
	Positional struct {
		Address string `positional-arg-name:"address" description:"Address to send the genesis block reward to"`
	} `positional-args:"yes" required:"yes"`
}

type createWalletConfig struct{}

type getBalanceConfig struct {
	Positional struct {
		Address string `positional-arg-name:"address" description:"Wallet address"`
	} `positional-args:"yes" required:"yes"`
}

type listAddressesConfig struct{}

type sendConfig struct {
	Positional struct {
		From   string `positional-arg-name:"from" description:"Source wallet address"`
		To     string `positional-arg-name:"to" description:"Destination wallet address"`
		Amount int32  `positional-arg-name:"amount" description:"Amount to send"`
		Mine   int    `positional-arg-name:"mine" description:"1 to mine immediately on this node, 0 to relay to the central node"`
	} `positional-args:"yes" required:"yes"`
}

type printChainConfig struct{}

type reindexUTXOConfig struct{}

type startNodeConfig struct {
	Miner string `long:"miner" description:"Enable mining mode, paying block rewards to this address"`
}

// parseCommandLine parses os.Args and returns the name of the active
// subcommand plus its parsed config.
func parseCommandLine() (subCommand string, config interface{}) {
	parser := flags.NewParser(nil, flags.HelpFlag|flags.PassDoubleDash)

	createBlockchainConf := &createBlockchainConfig{}
	parser.AddCommand(createBlockchainSubCmd, "Create a new blockchain",
		"Mine the genesis block paying its reward to the given address, and create the chain store.", createBlockchainConf)

	createWalletConf := &createWalletConfig{}
	parser.AddCommand(createWalletSubCmd, "Create a new wallet",
		"Generate a keypair and print its derived address.", createWalletConf)

	getBalanceConf := &getBalanceConfig{}
	parser.AddCommand(getBalanceSubCmd, "Print an address's balance",
		"Sum every unspent output locked to the given address.", getBalanceConf)

	listAddressesConf := &listAddressesConfig{}
	parser.AddCommand(listAddressesSubCmd, "List local wallet addresses",
		"Print every address held in the local wallet file.", listAddressesConf)

	sendConf := &sendConfig{}
	parser.AddCommand(sendSubCmd, "Send coins between addresses",
		"Build and sign a UTXO transaction, then either mine it locally or relay it to the central node.", sendConf)

	printChainConf := &printChainConfig{}
	parser.AddCommand(printChainSubCmd, "Print every block in the chain",
		"Walk the chain tip to genesis, printing each block's transactions.", printChainConf)

	reindexUTXOConf := &reindexUTXOConfig{}
	parser.AddCommand(reindexUTXOSubCmd, "Rebuild the UTXO index",
		"Rescan the full chain and rebuild the chainstate cache from scratch.", reindexUTXOConf)

	startNodeConf := &startNodeConfig{}
	parser.AddCommand(startNodeSubCmd, "Start a gossip node",
		"Serve the p2p protocol on this node's configured address.", startNodeConf)

	_, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
		return "", nil
	}

	if parser.Active == nil {
		fprintUsageAndExit(parser)
	}

	switch parser.Active.Name {
	case createBlockchainSubCmd:
		config = createBlockchainConf
	case createWalletSubCmd:
		config = createWalletConf
	case getBalanceSubCmd:
		config = getBalanceConf
	case listAddressesSubCmd:
		config = listAddressesConf
	case sendSubCmd:
		config = sendConf
	case printChainSubCmd:
		config = printChainConf
	case reindexUTXOSubCmd:
		config = reindexUTXOConf
	case startNodeSubCmd:
		config = startNodeConf
	}

	return parser.Active.Name, config
}

func fprintUsageAndExit(parser *flags.Parser) {
	parser.WriteHelp(os.Stderr)
	os.Exit(1)
}
