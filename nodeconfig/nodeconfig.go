// Package nodeconfig holds this node's runtime configuration: its own
// gossip address and, if it mines, its mining address (spec.md §4.6).
// Grounded on original_source/src/config.rs's Config.
package nodeconfig

import (
	"os"
	"sync"
)

// defaultNodeAddr is used when the NODE_ADDRESS environment variable is
// unset.
const defaultNodeAddr = "127.0.0.1:2001"

// nodeAddressEnvVar is the environment variable this node's gossip
// address is read from at startup.
const nodeAddressEnvVar = "NODE_ADDRESS"

// Config is a concurrency-safe runtime configuration, safe for use as a
// process-wide singleton.
type Config struct {
	mu         sync.RWMutex
	nodeAddr   string
	miningAddr string
	isMiner    bool
}

// global is the process-wide configuration instance, matching the
// original's GLOBAL_CONFIG singleton.
var global = New()

// Global returns the process-wide Config singleton.
func Global() *Config {
	return global
}

// New returns a Config whose node address defaults to the NODE_ADDRESS
// environment variable, falling back to defaultNodeAddr.
func New() *Config {
	nodeAddr := defaultNodeAddr
	if addr := os.Getenv(nodeAddressEnvVar); addr != "" {
		nodeAddr = addr
	}
	return &Config{nodeAddr: nodeAddr}
}

// GetNodeAddr returns this node's gossip address.
func (c *Config) GetNodeAddr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nodeAddr
}

// SetMiningAddr marks this node as a miner paying block rewards to addr.
func (c *Config) SetMiningAddr(addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.miningAddr = addr
	c.isMiner = true
	log.Infof("enabled mining, rewards paid to %s", addr)
}

// GetMiningAddr returns the configured mining address, and whether one
// has been set.
func (c *Config) GetMiningAddr() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.miningAddr, c.isMiner
}

// IsMiner reports whether a mining address has been configured.
func (c *Config) IsMiner() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isMiner
}
