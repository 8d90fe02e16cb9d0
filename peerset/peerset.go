// Package peerset tracks the set of known peer addresses a node gossips
// with (spec.md §4.5, §4.6). Grounded on original_source/src/node.rs's
// Node/Nodes.
package peerset

import (
	"sync"

	"github.com/ZhuZhengyi/blockchain-go/netmsg"
)

// Peer is a single known node, addressed by "host:port".
type Peer struct {
	Addr string
}

// Set is a concurrency-safe, deduplicated, order-preserving list of
// known peers.
type Set struct {
	mu    sync.RWMutex
	peers []Peer
}

// New returns a peer set seeded with the central node, the way the
// original's GLOBAL_NODES static always does nodes.add_node(CENTERAL_NODE)
// at construction: the central node is always present in every node's
// peer table, independent of any handshake.
func New() *Set {
	return &Set{peers: []Peer{{Addr: netmsg.CentralNode}}}
}

// AddNode appends addr if it is not already known.
func (s *Set) AddNode(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.peers {
		if p.Addr == addr {
			return
		}
	}
	s.peers = append(s.peers, Peer{Addr: addr})
	log.Infof("added peer %s", addr)
}

// EvictNode removes addr from the set, if present.
func (s *Set) EvictNode(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.peers {
		if p.Addr == addr {
			s.peers = append(s.peers[:i], s.peers[i+1:]...)
			log.Infof("evicted peer %s", addr)
			return
		}
	}
}

// First returns the first known peer, if any.
func (s *Set) First() (Peer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.peers) == 0 {
		return Peer{}, false
	}
	return s.peers[0], true
}

// GetNodes returns a snapshot of every known peer.
func (s *Set) GetNodes() []Peer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Peer, len(s.peers))
	copy(out, s.peers)
	return out
}

// Len reports the number of known peers.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.peers)
}

// NodeIsKnown reports whether addr is already in the set.
func (s *Set) NodeIsKnown(addr string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.peers {
		if p.Addr == addr {
			return true
		}
	}
	return false
}
