package p2p

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/block"
	"github.com/ZhuZhengyi/blockchain-go/netmsg"
	"github.com/ZhuZhengyi/blockchain-go/transaction"
)

// handleVersion reconciles chain height with the sending peer: if ours
// is behind, request its block hashes; if it's behind, tell it ours.
// Either way, remember the peer.
func (s *Server) handleVersion(peerAddr string, env netmsg.Envelope) error {
	payload, err := netmsg.DecodeVersion(env)
	if err != nil {
		return err
	}

	localBestHeight, err := s.chain.BestHeight()
	if err != nil {
		return err
	}

	if localBestHeight < payload.BestHeight {
		s.sendGetBlocks(payload.AddrFrom)
	}
	if localBestHeight > payload.BestHeight {
		s.sendVersion(payload.AddrFrom, localBestHeight)
	}

	if !s.peers.NodeIsKnown(peerAddr) {
		s.peers.AddNode(payload.AddrFrom)
	}
	return nil
}

// handleGetBlocks replies with the full list of block hashes we hold.
func (s *Server) handleGetBlocks(env netmsg.Envelope) error {
	payload, err := netmsg.DecodeGetBlocks(env)
	if err != nil {
		return err
	}

	var hashes [][]byte
	it := s.chain.Iterator()
	for {
		b, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		hashBytes, err := b.HashBytes()
		if err != nil {
			return err
		}
		hashes = append(hashes, hashBytes)
	}

	s.sendInv(payload.AddrFrom, netmsg.OpBlock, hashes)
	return nil
}

// handleGetData serves a single requested block or pooled transaction.
func (s *Server) handleGetData(env netmsg.Envelope) error {
	payload, err := netmsg.DecodeGetData(env)
	if err != nil {
		return err
	}

	switch payload.OpType {
	case netmsg.OpTx:
		txidHex := hex.EncodeToString(payload.ID)
		if tx, ok := s.pool.Get(txidHex); ok {
			s.sendTx(payload.AddrFrom, tx)
		}
	case netmsg.OpBlock:
		hash := hex.EncodeToString(payload.ID)
		b, err := s.chain.GetBlock(hash)
		if err != nil {
			return nil // unknown block requested; nothing to serve
		}
		s.sendBlock(payload.AddrFrom, b)
	default:
		return errors.Errorf("p2p: unknown getdata op_type %q", payload.OpType)
	}
	return nil
}

// handleInv tracks advertised block hashes for download, or requests an
// unpooled transaction.
func (s *Server) handleInv(env netmsg.Envelope) error {
	payload, err := netmsg.DecodeInv(env)
	if err != nil {
		return err
	}
	if len(payload.Items) == 0 {
		return nil
	}

	switch payload.OpType {
	case netmsg.OpBlock:
		s.transit.AddBlocks(payload.Items)
		first := payload.Items[0]
		s.sendGetData(payload.AddrFrom, netmsg.OpBlock, first)
		s.transit.Remove(first)
	case netmsg.OpTx:
		txid := payload.Items[0]
		if !s.pool.Contains(hex.EncodeToString(txid)) {
			s.sendGetData(payload.AddrFrom, netmsg.OpTx, txid)
		}
	default:
		return errors.Errorf("p2p: unknown inv op_type %q", payload.OpType)
	}
	return nil
}

// handleBlock persists a received block, continues downloading any
// still-in-transit blocks from the same peer, or reindexes once the
// download completes.
func (s *Server) handleBlock(env netmsg.Envelope) error {
	payload, err := netmsg.DecodeBlock(env)
	if err != nil {
		return err
	}

	b, err := block.Deserialize(payload.Block)
	if err != nil {
		return err
	}
	if err := s.chain.AddBlock(b); err != nil {
		return err
	}
	log.Infof("added block %s", b.Hash)

	if s.transit.Len() > 0 {
		next, _ := s.transit.First()
		s.sendGetData(payload.AddrFrom, netmsg.OpBlock, next)
		s.transit.Remove(next)
	} else if err := s.index.Reindex(); err != nil {
		return err
	}
	return nil
}

// handleTx pools a received transaction, relays it if we are the
// central node, and mines a new block if we are a miner past the
// pending-transaction threshold.
func (s *Server) handleTx(env netmsg.Envelope) error {
	payload, err := netmsg.DecodeTx(env)
	if err != nil {
		return err
	}

	tx, err := transaction.Deserialize(payload.Transaction)
	if err != nil {
		return err
	}
	s.pool.Add(tx)

	localAddr := s.cfg.GetNodeAddr()
	if localAddr == netmsg.CentralNode {
		for _, peer := range s.peers.GetNodes() {
			if peer.Addr == localAddr || peer.Addr == payload.AddrFrom {
				continue
			}
			s.sendInv(peer.Addr, netmsg.OpTx, [][]byte{tx.ID})
		}
	}

	if s.cfg.IsMiner() && s.pool.Len() >= netmsg.TransactionThreshold {
		return s.mineAndBroadcast(localAddr)
	}
	return nil
}

// mineAndBroadcast mines every pooled transaction plus a fresh coinbase
// into a new block, reindexes the UTXO set, drains the mempool, and
// announces the new block to every known peer.
func (s *Server) mineAndBroadcast(localAddr string) error {
	miningAddr, ok := s.cfg.GetMiningAddr()
	if !ok {
		return errors.New("p2p: miner has no configured mining address")
	}

	coinbase, err := transaction.NewCoinbaseTx(miningAddr)
	if err != nil {
		return err
	}
	txs := append(s.pool.GetAll(), coinbase)

	newBlock, err := s.chain.MineBlock(txs)
	if err != nil {
		return err
	}
	if err := s.index.Reindex(); err != nil {
		return err
	}

	for _, tx := range txs {
		s.pool.Remove(hex.EncodeToString(tx.ID))
	}

	hashBytes, err := newBlock.HashBytes()
	if err != nil {
		return err
	}
	for _, peer := range s.peers.GetNodes() {
		if peer.Addr == localAddr {
			continue
		}
		s.sendInv(peer.Addr, netmsg.OpBlock, [][]byte{hashBytes})
	}
	return nil
}
