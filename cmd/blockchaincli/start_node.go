package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/hashutil"
	"github.com/ZhuZhengyi/blockchain-go/mempool"
	"github.com/ZhuZhengyi/blockchain-go/nodeconfig"
	"github.com/ZhuZhengyi/blockchain-go/p2p"
	"github.com/ZhuZhengyi/blockchain-go/peerset"
	"github.com/ZhuZhengyi/blockchain-go/utxoindex"
)

func runStartNode(cfg *startNodeConfig) error {
	if cfg.Miner != "" {
		if !hashutil.ValidateAddress(cfg.Miner) {
			return errors.New("ERROR: mining address is not valid")
		}
		nodeconfig.Global().SetMiningAddr(cfg.Miner)
	}

	chain, err := openChain()
	if err != nil {
		return err
	}

	idx := utxoindex.New(chain)
	if err := idx.Reindex(); err != nil {
		return err
	}

	srv := p2p.NewServer(chain, idx, mempool.NewPool(), mempool.NewBlockInTransit(), peerset.New(), nodeconfig.Global())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-interrupt
		log.Infof("shutting down")
		srv.Close()
		chain.Close()
	}()

	log.Infof("starting node on %s", nodeconfig.Global().GetNodeAddr())
	return srv.Run(nodeconfig.Global().GetNodeAddr())
}
