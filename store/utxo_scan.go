package store

import (
	"encoding/hex"

	"github.com/ZhuZhengyi/blockchain-go/transaction"
)

// FindUTXO scans the whole chain, tip to genesis, and returns every
// unspent transaction output, keyed by hex-encoded transaction id.
//
// For each transaction, its outputs not yet marked spent are emitted
// first, and only then are its own inputs marked spent. Because the chain
// is walked tip-first, an output spent in a later (closer-to-tip) block is
// marked spent before its block is reached and is never reported as
// unspent. A spend of an output by a later transaction in the same block
// is not seen, since that output is emitted before the spender's inputs
// are recorded.
func (c *Chain) FindUTXO() (map[string][]transaction.TxOutput, error) {
	unspentTXOs := make(map[string][]transaction.TxOutput)
	spentTXOs := make(map[string]map[int]bool)

	it := c.Iterator()
	for {
		b, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		for _, tx := range b.Transactions {
			txID := hex.EncodeToString(tx.ID)

			for outIdx, out := range tx.Vout {
				if spentTXOs[txID][outIdx] {
					continue
				}
				unspentTXOs[txID] = append(unspentTXOs[txID], out)
			}

			if tx.IsCoinbase() {
				continue
			}
			for _, in := range tx.Vin {
				inTxID := hex.EncodeToString(in.TxID)
				if spentTXOs[inTxID] == nil {
					spentTXOs[inTxID] = make(map[int]bool)
				}
				spentTXOs[inTxID][in.OutID] = true
			}
		}
	}

	return unspentTXOs, nil
}
