package p2p

import (
	"encoding/json"
	"net"
	"time"

	"github.com/ZhuZhengyi/blockchain-go/block"
	"github.com/ZhuZhengyi/blockchain-go/netmsg"
	"github.com/ZhuZhengyi/blockchain-go/transaction"
)

func (s *Server) sendVersion(addr string, bestHeight uint64) {
	env, err := netmsg.NewVersion(s.cfg.GetNodeAddr(), bestHeight)
	if err != nil {
		log.Errorf("error building version envelope: %+v", err)
		return
	}
	s.sendData(addr, env)
}

func (s *Server) sendGetBlocks(addr string) {
	env, err := netmsg.NewGetBlocks(s.cfg.GetNodeAddr())
	if err != nil {
		log.Errorf("error building getblocks envelope: %+v", err)
		return
	}
	s.sendData(addr, env)
}

func (s *Server) sendGetData(addr string, opType netmsg.OpType, id []byte) {
	env, err := netmsg.NewGetData(s.cfg.GetNodeAddr(), opType, id)
	if err != nil {
		log.Errorf("error building getdata envelope: %+v", err)
		return
	}
	s.sendData(addr, env)
}

func (s *Server) sendInv(addr string, opType netmsg.OpType, items [][]byte) {
	env, err := netmsg.NewInv(s.cfg.GetNodeAddr(), opType, items)
	if err != nil {
		log.Errorf("error building inv envelope: %+v", err)
		return
	}
	s.sendData(addr, env)
}

func (s *Server) sendTx(addr string, tx *transaction.Transaction) {
	env, err := netmsg.NewTx(s.cfg.GetNodeAddr(), tx.Serialize())
	if err != nil {
		log.Errorf("error building tx envelope: %+v", err)
		return
	}
	s.sendData(addr, env)
}

func (s *Server) sendBlock(addr string, b *block.Block) {
	env, err := netmsg.NewBlock(s.cfg.GetNodeAddr(), b.Serialize())
	if err != nil {
		log.Errorf("error building block envelope: %+v", err)
		return
	}
	s.sendData(addr, env)
}

// sendData dials addr and writes env as a single JSON value. A dead
// peer is evicted from the peer set rather than retried.
func (s *Server) sendData(addr string, env netmsg.Envelope) {
	log.Infof("sending %s to %s", env.Type, addr)

	conn, err := net.DialTimeout("tcp", addr, writeTimeout)
	if err != nil {
		log.Errorf("%s is not reachable: %+v", addr, err)
		s.peers.EvictNode(addr)
		return
	}
	defer conn.Close()

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := json.NewEncoder(conn).Encode(env); err != nil {
		log.Errorf("error sending %s to %s: %+v", env.Type, addr, err)
	}
}
