package transaction

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/hashutil"
)

// ErrInsufficientFunds is returned by NewUTXOTransaction when the sender's
// spendable outputs do not cover the requested amount.
var ErrInsufficientFunds = errors.New("Error! not enough funds")

// SpendableOutputsFinder accumulates unspent outputs locked to a pubkey
// hash until amount is covered, as implemented by utxoindex.Index.
type SpendableOutputsFinder interface {
	FindSpendableOutputs(pubKeyHash []byte, amount int32) (int32, map[string][]int, error)
}

// NewUTXOTransaction builds, but does not sign, a transaction sending
// amount from the from address (whose raw public key is senderPubKey) to
// the to address, spending whatever combination of from's unspent
// outputs covers it. Every input's PubKey is pre-populated with
// senderPubKey so that Sign/Verify can later derive its pubkey hash. The
// caller is responsible for signing the result (see Sign).
func NewUTXOTransaction(from, to string, amount int32, senderPubKey []byte, finder SpendableOutputsFinder) (*Transaction, error) {
	pubKeyHash := hashutil.PubKeyHashFromAddress(from)

	accumulated, validOutputs, err := finder.FindSpendableOutputs(pubKeyHash, amount)
	if err != nil {
		return nil, err
	}
	if accumulated < amount {
		return nil, ErrInsufficientFunds
	}

	var vin []TxInput
	for txIDHex, outs := range validOutputs {
		txID, err := hex.DecodeString(txIDHex)
		if err != nil {
			return nil, errors.Wrap(err, "invalid txid in spendable outputs")
		}
		for _, outID := range outs {
			vin = append(vin, TxInput{TxID: txID, OutID: outID, PubKey: senderPubKey})
		}
	}

	vout := []TxOutput{*NewTxOutput(amount, to)}
	if accumulated > amount {
		vout = append(vout, *NewTxOutput(accumulated-amount, from))
	}

	tx := &Transaction{Vin: vin, Vout: vout}
	tx.ID = tx.hash()
	return tx, nil
}
