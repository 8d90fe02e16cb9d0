// Package p2p implements the gossip network a node speaks over plain
// TCP, framed as a stream of netmsg.Envelope JSON values (spec.md §4.6).
// Grounded on original_source/src/server.rs's Server/serve loop.
package p2p

import (
	"encoding/json"
	"net"
	"time"

	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/logger"
	"github.com/ZhuZhengyi/blockchain-go/logs"
	"github.com/ZhuZhengyi/blockchain-go/mempool"
	"github.com/ZhuZhengyi/blockchain-go/netmsg"
	"github.com/ZhuZhengyi/blockchain-go/nodeconfig"
	"github.com/ZhuZhengyi/blockchain-go/peerset"
	"github.com/ZhuZhengyi/blockchain-go/store"
	"github.com/ZhuZhengyi/blockchain-go/util/panics"
	"github.com/ZhuZhengyi/blockchain-go/utxoindex"
)

var log logs.Logger

// spawn is set in init, after log, so that recovered panics are logged
// through the SRVR logger.
var spawn func(func())

func init() {
	log, _ = logger.Get(logger.SubsystemTags.SRVR)
	spawn = panics.GoroutineWrapperFunc(log)
}

// writeTimeout bounds how long an outbound send may block, so one dead
// peer can never wedge the node.
const writeTimeout = 1 * time.Second

// Server is one node's gossip endpoint: it serves inbound connections
// and dials outbound ones to relay blocks and transactions.
type Server struct {
	chain   *store.Chain
	index   *utxoindex.Index
	pool    *mempool.Pool
	transit *mempool.BlockInTransit
	peers   *peerset.Set
	cfg     *nodeconfig.Config

	listener net.Listener
}

// NewServer wires a Server to the given chain, UTXO index, mempool,
// block-in-transit tracker, peer set, and runtime config.
func NewServer(
	chain *store.Chain,
	index *utxoindex.Index,
	pool *mempool.Pool,
	transit *mempool.BlockInTransit,
	peers *peerset.Set,
	cfg *nodeconfig.Config,
) *Server {
	return &Server{
		chain:   chain,
		index:   index,
		pool:    pool,
		transit: transit,
		peers:   peers,
		cfg:     cfg,
	}
}

// Run binds addr and serves inbound connections until Close is called.
// If addr is not the central bootstrap node, it first sends a version
// handshake to the central node.
func (s *Server) Run(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "p2p: listen")
	}
	s.listener = listener

	if addr != netmsg.CentralNode {
		bestHeight, err := s.chain.BestHeight()
		if err != nil {
			return errors.Wrap(err, "p2p: read best height")
		}
		log.Infof("sending version handshake, best_height=%d", bestHeight)
		s.sendVersion(netmsg.CentralNode, bestHeight)
	}

	log.Infof("listening on %s", addr)
	for {
		conn, err := listener.Accept()
		if err != nil {
			return errors.Wrap(err, "p2p: accept")
		}
		spawn(func() {
			if err := s.serve(conn); err != nil {
				log.Errorf("error serving %s: %+v", conn.RemoteAddr(), err)
			}
		})
	}
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// serve decodes and dispatches a stream of envelopes from one
// connection until it closes or sends malformed data.
func (s *Server) serve(conn net.Conn) error {
	defer conn.Close()
	peerAddr := conn.RemoteAddr().String()

	dec := json.NewDecoder(conn)
	for {
		var env netmsg.Envelope
		if err := dec.Decode(&env); err != nil {
			return nil // peer closed the stream; not an error
		}
		log.Infof("received %s from %s", env.Type, peerAddr)

		if err := s.dispatch(peerAddr, env); err != nil {
			log.Errorf("error handling %s from %s: %+v", env.Type, peerAddr, err)
		}
	}
}

func (s *Server) dispatch(peerAddr string, env netmsg.Envelope) error {
	switch env.Type {
	case netmsg.TypeVersion:
		return s.handleVersion(peerAddr, env)
	case netmsg.TypeGetBlocks:
		return s.handleGetBlocks(env)
	case netmsg.TypeGetData:
		return s.handleGetData(env)
	case netmsg.TypeInv:
		return s.handleInv(env)
	case netmsg.TypeBlock:
		return s.handleBlock(env)
	case netmsg.TypeTx:
		return s.handleTx(env)
	default:
		return errors.Errorf("p2p: unknown envelope type %q", env.Type)
	}
}
