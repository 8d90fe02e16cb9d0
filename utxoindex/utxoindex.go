// Package utxoindex maintains the chainstate tree: a cache, keyed by
// transaction id, of each transaction's still-unspent outputs. It exists
// so that balance and spendable-output queries never have to rescan the
// full chain (spec.md §4.2).
package utxoindex

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/block"
	"github.com/ZhuZhengyi/blockchain-go/store"
	"github.com/ZhuZhengyi/blockchain-go/transaction"
)

// Chain is the subset of store.Chain the index needs, so tests can stub
// it out independently of a real leveldb handle.
type Chain interface {
	FindUTXO() (map[string][]transaction.TxOutput, error)
	GetUTXOEntry(txid []byte) ([]byte, bool, error)
	PutUTXOEntry(txid, value []byte) error
	DeleteUTXOEntry(txid []byte) error
	ForEachUTXOEntry(fn func(txid, value []byte) error) error
	ClearUTXOEntries() error
}

// Index wraps a Chain with the chainstate cache.
type Index struct {
	chain Chain
}

// New wraps chain with a UTXO index.
func New(chain Chain) *Index {
	return &Index{chain: chain}
}

var _ Chain = (*store.Chain)(nil)

// Update incorporates block's transactions into the chainstate cache:
// each spent input's referenced output is removed (or the whole entry
// dropped if that was its last output), and each transaction's own
// outputs are inserted fresh. Grounded on UTXOSet::update in
// original_source/src/utxo_set.rs.
func (idx *Index) Update(b *block.Block) error {
	for _, tx := range b.Transactions {
		if !tx.IsCoinbase() {
			for _, in := range tx.Vin {
				data, ok, err := idx.chain.GetUTXOEntry(in.TxID)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				outs, err := transaction.DeserializeOutputs(data)
				if err != nil {
					return err
				}

				var updated []transaction.TxOutput
				for i, out := range outs {
					if i != in.OutID {
						updated = append(updated, out)
					}
				}

				if len(updated) == 0 {
					if err := idx.chain.DeleteUTXOEntry(in.TxID); err != nil {
						return err
					}
				} else if err := idx.chain.PutUTXOEntry(in.TxID, transaction.SerializeOutputs(updated)); err != nil {
					return err
				}
			}
		}

		if err := idx.chain.PutUTXOEntry(tx.ID, transaction.SerializeOutputs(tx.Vout)); err != nil {
			return err
		}
	}
	return nil
}

// Reindex rebuilds the chainstate cache from scratch by rescanning the
// whole chain via Chain.FindUTXO.
func (idx *Index) Reindex() error {
	if err := idx.chain.ClearUTXOEntries(); err != nil {
		return err
	}

	utxo, err := idx.chain.FindUTXO()
	if err != nil {
		return errors.Wrap(err, "utxoindex: scan chain")
	}

	for txIDHex, outs := range utxo {
		txID, err := hex.DecodeString(txIDHex)
		if err != nil {
			return errors.Wrap(err, "utxoindex: decode txid")
		}
		if err := idx.chain.PutUTXOEntry(txID, transaction.SerializeOutputs(outs)); err != nil {
			return err
		}
	}
	log.Infof("reindexed chainstate, %d transactions with unspent outputs", len(utxo))
	return nil
}

// CountTransactions returns the number of transactions with at least one
// cached unspent output.
func (idx *Index) CountTransactions() (int, error) {
	count := 0
	err := idx.chain.ForEachUTXOEntry(func(txid, value []byte) error {
		count++
		return nil
	})
	return count, err
}

// FindUTXO returns every cached unspent output locked to pubKeyHash.
func (idx *Index) FindUTXO(pubKeyHash []byte) ([]transaction.TxOutput, error) {
	var found []transaction.TxOutput
	err := idx.chain.ForEachUTXOEntry(func(txid, value []byte) error {
		outs, err := transaction.DeserializeOutputs(value)
		if err != nil {
			return err
		}
		for _, out := range outs {
			if out.IsLockedWithKey(pubKeyHash) {
				found = append(found, out)
			}
		}
		return nil
	})
	return found, err
}

// FindSpendableOutputs accumulates cached unspent outputs locked to
// pubKeyHash until amount is covered. It implements
// transaction.SpendableOutputsFinder.
func (idx *Index) FindSpendableOutputs(pubKeyHash []byte, amount int32) (int32, map[string][]int, error) {
	var accumulated int32
	unspentOutputs := make(map[string][]int)

	err := idx.chain.ForEachUTXOEntry(func(txid, value []byte) error {
		if accumulated >= amount {
			return nil
		}
		outs, err := transaction.DeserializeOutputs(value)
		if err != nil {
			return err
		}

		txIDHex := hex.EncodeToString(txid)
		for i, out := range outs {
			if out.IsLockedWithKey(pubKeyHash) && accumulated < amount {
				accumulated += out.Cost
				unspentOutputs[txIDHex] = append(unspentOutputs[txIDHex], i)
			}
		}
		return nil
	})
	return accumulated, unspentOutputs, err
}
