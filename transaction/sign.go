package transaction

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/ecdsap256"
)

// Finder looks up a previously persisted transaction by id, as required
// to resolve the pub_key_hash of each input's referenced output during
// signing and verification (spec.md §4.3).
type Finder interface {
	FindTransaction(txid []byte) (*Transaction, error)
}

// trimmedCopy builds a copy of tx whose every input has empty Signature
// and PubKey, per spec.md §4.3 step 1.
func (tx *Transaction) trimmedCopy() *Transaction {
	vin := make([]TxInput, len(tx.Vin))
	for i, in := range tx.Vin {
		vin[i] = TxInput{TxID: in.TxID, OutID: in.OutID}
	}
	vout := make([]TxOutput, len(tx.Vout))
	copy(vout, tx.Vout)

	return &Transaction{ID: tx.ID, Vin: vin, Vout: vout}
}

// digestForInput resolves prev.Vout[vin[i].OutID].PubKeyHash, sets it
// temporarily on the trimmed copy's i'th input, hashes, then clears it
// back to empty — per spec.md §4.3 step 2.
func digestForInput(cp *Transaction, i int, prevOut *TxOutput) []byte {
	cp.Vin[i].PubKey = prevOut.PubKeyHash
	cp.ID = cp.hash()
	digest := cp.ID
	cp.Vin[i].PubKey = nil
	return digest
}

// resolvePrevOutputs looks up, for every non-coinbase input, the output
// it references and the transaction that holds it.
func resolvePrevOutputs(tx *Transaction, finder Finder) ([]*TxOutput, []*Transaction, error) {
	outs := make([]*TxOutput, len(tx.Vin))
	prevTxs := make([]*Transaction, len(tx.Vin))
	for i, in := range tx.Vin {
		prevTx, err := finder.FindTransaction(in.TxID)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "unable to find transaction referenced by input %d", i)
		}
		if in.OutID < 0 || in.OutID >= len(prevTx.Vout) {
			return nil, nil, errors.Errorf("input %d references out-of-range output %d", i, in.OutID)
		}
		outs[i] = &prevTx.Vout[in.OutID]
		prevTxs[i] = prevTx
	}
	return outs, prevTxs, nil
}

// Sign signs every input of tx with pkcs8, using finder to resolve each
// input's referenced output, then recomputes tx.ID over the signed
// content. Coinbase transactions are left unsigned.
func (tx *Transaction) Sign(pkcs8 []byte, finder Finder) error {
	if tx.IsCoinbase() {
		return nil
	}

	prevOuts, _, err := resolvePrevOutputs(tx, finder)
	if err != nil {
		return err
	}

	cp := tx.trimmedCopy()
	for i := range tx.Vin {
		digest := digestForInput(cp, i, prevOuts[i])
		sig, err := ecdsap256.Sign(pkcs8, digest)
		if err != nil {
			return errors.Wrapf(err, "unable to sign input %d", i)
		}
		tx.Vin[i].Signature = sig
	}
	tx.ID = tx.hash()

	return nil
}

// Verify verifies every input's signature against its referenced
// output's pubkey hash, and that the referenced transaction's content
// still hashes to its own stored id (spec.md §4.3's "both peers and
// persistence rely on byte-equal round-trip" invariant) — catching an
// on-disk tamper of a previously spent output even though the trimmed
// signing digest itself never covers an output's cost. Coinbase
// transactions verify unconditionally.
func (tx *Transaction) Verify(finder Finder) (bool, error) {
	if tx.IsCoinbase() {
		return true, nil
	}

	prevOuts, prevTxs, err := resolvePrevOutputs(tx, finder)
	if err != nil {
		return false, err
	}

	cp := tx.trimmedCopy()
	for i, in := range tx.Vin {
		if !bytes.Equal(prevTxs[i].hash(), prevTxs[i].ID) {
			return false, nil
		}
		if !in.UsesKey(prevOuts[i].PubKeyHash) {
			return false, nil
		}

		digest := digestForInput(cp, i, prevOuts[i])
		if !ecdsap256.Verify(in.PubKey, in.Signature, digest) {
			return false, nil
		}
	}

	return true, nil
}
