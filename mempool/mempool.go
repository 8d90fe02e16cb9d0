// Package mempool holds transactions that have been relayed but not yet
// mined, and tracks block hashes currently being downloaded from peers
// (spec.md §4.4, §4.6). Grounded on
// original_source/src/memory_pool.rs's MemoryPool and BlockInTransit.
package mempool

import (
	"encoding/hex"
	"sync"

	"github.com/ZhuZhengyi/blockchain-go/transaction"
)

// Pool is a concurrency-safe set of pending transactions, keyed by
// hex-encoded transaction id.
type Pool struct {
	mu  sync.RWMutex
	txs map[string]*transaction.Transaction
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{txs: make(map[string]*transaction.Transaction)}
}

// Contains reports whether txidHex is already pooled.
func (p *Pool) Contains(txidHex string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.txs[txidHex]
	return ok
}

// Add inserts tx into the pool, keyed by its own id.
func (p *Pool) Add(tx *transaction.Transaction) {
	txidHex := hex.EncodeToString(tx.ID)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.txs[txidHex] = tx
	log.Debugf("pooled transaction %s", txidHex)
}

// Get returns the pooled transaction with the given hex id, if any.
func (p *Pool) Get(txidHex string) (*transaction.Transaction, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	tx, ok := p.txs[txidHex]
	return tx, ok
}

// Remove evicts the transaction with the given hex id, if present.
func (p *Pool) Remove(txidHex string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.txs, txidHex)
	log.Debugf("removed pooled transaction %s", txidHex)
}

// GetAll returns every pooled transaction, in no particular order.
func (p *Pool) GetAll() []*transaction.Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()

	all := make([]*transaction.Transaction, 0, len(p.txs))
	for _, tx := range p.txs {
		all = append(all, tx)
	}
	return all
}

// Len reports the number of pooled transactions.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.txs)
}
