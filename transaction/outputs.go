package transaction

import (
	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/wire"
)

// SerializeOutputs produces the canonical binary encoding of a standalone
// output list, used by the UTXO index to persist each transaction's
// unspent outputs under its txid key.
func SerializeOutputs(outs []TxOutput) []byte {
	w := wire.NewWriter()
	w.WriteUint32LE(uint32(len(outs)))
	for _, out := range outs {
		w.WriteInt32LE(out.Cost)
		w.WriteVarBytes(out.PubKeyHash)
	}
	return w.Bytes()
}

// DeserializeOutputs parses the encoding produced by SerializeOutputs.
func DeserializeOutputs(data []byte) ([]TxOutput, error) {
	r := wire.NewReader(data)

	count, err := r.ReadUint32LE()
	if err != nil {
		return nil, errors.Wrap(err, "transaction: read outputs count")
	}
	outs := make([]TxOutput, count)
	for i := range outs {
		cost, err := r.ReadInt32LE()
		if err != nil {
			return nil, errors.Wrap(err, "transaction: read output cost")
		}
		pubKeyHash, err := r.ReadVarBytes()
		if err != nil {
			return nil, errors.Wrap(err, "transaction: read output pubkeyhash")
		}
		outs[i] = TxOutput{Cost: cost, PubKeyHash: pubKeyHash}
	}
	return outs, nil
}
