// Package transaction implements UTXO-based transactions: inputs that
// reference a previous output, outputs locked to a pubkey hash, coinbase
// construction, and the trimmed-copy signing/verification pipeline
// described in spec.md §4.3.
package transaction

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/ecdsap256"
	"github.com/ZhuZhengyi/blockchain-go/hashutil"
	"github.com/ZhuZhengyi/blockchain-go/wire"
)

// Subsidy is the fixed block-reward amount of a coinbase transaction's
// sole output.
const Subsidy = 10

// TxInput references a previously unspent output.
type TxInput struct {
	TxID      []byte // the referenced transaction's id
	OutID     int    // index into the referenced transaction's Vout
	Signature []byte
	PubKey    []byte
}

// UsesKey reports whether this input was signed by the keypair whose
// pubkey hashes to pubKeyHash.
func (in *TxInput) UsesKey(pubKeyHash []byte) bool {
	return bytes.Equal(hashutil.HashPubKey(in.PubKey), pubKeyHash)
}

// TxOutput is a spendable amount locked to a pubkey hash.
type TxOutput struct {
	Cost       int32
	PubKeyHash []byte
}

// NewTxOutput locks cost to the given address's pubkey hash.
func NewTxOutput(cost int32, address string) *TxOutput {
	return &TxOutput{
		Cost:       cost,
		PubKeyHash: hashutil.PubKeyHashFromAddress(address),
	}
}

// IsLockedWithKey reports whether this output is spendable by pubKeyHash.
func (out *TxOutput) IsLockedWithKey(pubKeyHash []byte) bool {
	return bytes.Equal(out.PubKeyHash, pubKeyHash)
}

// Transaction is a set of inputs spending prior outputs into a new set of
// outputs.
type Transaction struct {
	ID   []byte
	Vin  []TxInput
	Vout []TxOutput
}

// IsCoinbase reports whether tx is a coinbase transaction: exactly one
// input whose PubKey is empty. Per spec.md §9, the signature field (a
// random UUID on coinbase inputs) must never be consulted here.
func (tx *Transaction) IsCoinbase() bool {
	return len(tx.Vin) == 1 && len(tx.Vin[0].PubKey) == 0
}

// NewCoinbaseTx builds a coinbase transaction paying Subsidy to to.
func NewCoinbaseTx(to string) (*Transaction, error) {
	signature, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "unable to generate coinbase nonce")
	}

	tx := &Transaction{
		Vin: []TxInput{{
			TxID:      nil,
			OutID:     -1,
			Signature: signature[:],
			PubKey:    nil,
		}},
		Vout: []TxOutput{*NewTxOutput(Subsidy, to)},
	}
	tx.ID = tx.hash()
	return tx, nil
}

// hash computes SHA-256 over a copy of tx serialized with ID cleared.
func (tx *Transaction) hash() []byte {
	cp := &Transaction{Vin: tx.Vin, Vout: tx.Vout}
	return hashutil.Sha256(cp.Serialize())
}

// Serialize produces the canonical binary encoding of tx, including its
// ID field, in declared field order.
func (tx *Transaction) Serialize() []byte {
	w := wire.NewWriter()
	w.WriteVarBytes(tx.ID)

	w.WriteUint32LE(uint32(len(tx.Vin)))
	for _, in := range tx.Vin {
		w.WriteVarBytes(in.TxID)
		w.WriteInt32LE(int32(in.OutID))
		w.WriteVarBytes(in.Signature)
		w.WriteVarBytes(in.PubKey)
	}

	w.WriteUint32LE(uint32(len(tx.Vout)))
	for _, out := range tx.Vout {
		w.WriteInt32LE(out.Cost)
		w.WriteVarBytes(out.PubKeyHash)
	}

	return w.Bytes()
}

// Deserialize parses the canonical binary encoding produced by Serialize.
func Deserialize(data []byte) (*Transaction, error) {
	r := wire.NewReader(data)

	id, err := r.ReadVarBytes()
	if err != nil {
		return nil, errors.Wrap(err, "transaction: read id")
	}

	vinLen, err := r.ReadUint32LE()
	if err != nil {
		return nil, errors.Wrap(err, "transaction: read vin length")
	}
	vin := make([]TxInput, vinLen)
	for i := range vin {
		txid, err := r.ReadVarBytes()
		if err != nil {
			return nil, errors.Wrap(err, "transaction: read vin txid")
		}
		outID, err := r.ReadInt32LE()
		if err != nil {
			return nil, errors.Wrap(err, "transaction: read vin outid")
		}
		sig, err := r.ReadVarBytes()
		if err != nil {
			return nil, errors.Wrap(err, "transaction: read vin signature")
		}
		pubKey, err := r.ReadVarBytes()
		if err != nil {
			return nil, errors.Wrap(err, "transaction: read vin pubkey")
		}
		vin[i] = TxInput{TxID: txid, OutID: int(outID), Signature: sig, PubKey: pubKey}
	}

	voutLen, err := r.ReadUint32LE()
	if err != nil {
		return nil, errors.Wrap(err, "transaction: read vout length")
	}
	vout := make([]TxOutput, voutLen)
	for i := range vout {
		cost, err := r.ReadInt32LE()
		if err != nil {
			return nil, errors.Wrap(err, "transaction: read vout cost")
		}
		pubKeyHash, err := r.ReadVarBytes()
		if err != nil {
			return nil, errors.Wrap(err, "transaction: read vout pubkeyhash")
		}
		vout[i] = TxOutput{Cost: cost, PubKeyHash: pubKeyHash}
	}

	return &Transaction{ID: id, Vin: vin, Vout: vout}, nil
}
