// Package block implements the block record and its proof-of-work mining
// loop (spec.md §3, §4.1).
package block

import (
	"encoding/hex"
	"time"

	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/hashutil"
	"github.com/ZhuZhengyi/blockchain-go/transaction"
	"github.com/ZhuZhengyi/blockchain-go/wire"
)

// NoneHash is the literal pre_block_hash value of the genesis block.
const NoneHash = "None"

// Block is a mined, immutable unit of the chain.
type Block struct {
	Timestamp    uint64
	Nonce        int64
	Height       uint64
	Hash         string
	PreBlockHash string
	Transactions []*transaction.Transaction
}

// currentTimestampMillis returns the current time as unsigned milliseconds
// since epoch, matching the original's current_timestamp().
func currentTimestampMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}

// New mines and returns a new block extending preBlockHash at the given
// height with the given transactions.
func New(preBlockHash string, txs []*transaction.Transaction, height uint64) (*Block, error) {
	b := &Block{
		Timestamp:    currentTimestampMillis(),
		Height:       height,
		PreBlockHash: preBlockHash,
		Transactions: txs,
	}

	nonce, hash, err := Mine(b)
	if err != nil {
		return nil, err
	}
	b.Nonce = nonce
	b.Hash = hash

	return b, nil
}

// GenerateGenesisBlock mines the genesis block: height 0, PreBlockHash
// NoneHash, sole transaction the given coinbase.
func GenerateGenesisBlock(coinbase *transaction.Transaction) (*Block, error) {
	return New(NoneHash, []*transaction.Transaction{coinbase}, 0)
}

// HashTransactions returns SHA-256 of the concatenation of all contained
// transactions' ids, per spec.md §3 (no Merkle tree, per Non-goals).
func (b *Block) HashTransactions() []byte {
	var all []byte
	for _, tx := range b.Transactions {
		all = append(all, tx.ID...)
	}
	return hashutil.Sha256(all)
}

// Serialize produces the canonical binary encoding of b, used for
// persistence in the block store.
func (b *Block) Serialize() []byte {
	w := wire.NewWriter()
	w.WriteUint64LE(b.Timestamp)
	w.WriteInt64LE(b.Nonce)
	w.WriteUint64LE(b.Height)
	w.WriteVarBytes([]byte(b.Hash))
	w.WriteVarBytes([]byte(b.PreBlockHash))

	w.WriteUint32LE(uint32(len(b.Transactions)))
	for _, tx := range b.Transactions {
		txBytes := tx.Serialize()
		w.WriteVarBytes(txBytes)
	}

	return w.Bytes()
}

// Deserialize parses the canonical binary encoding produced by Serialize.
func Deserialize(data []byte) (*Block, error) {
	r := wire.NewReader(data)

	timestamp, err := r.ReadUint64LE()
	if err != nil {
		return nil, errors.Wrap(err, "block: read timestamp")
	}
	nonce, err := r.ReadInt64LE()
	if err != nil {
		return nil, errors.Wrap(err, "block: read nonce")
	}
	height, err := r.ReadUint64LE()
	if err != nil {
		return nil, errors.Wrap(err, "block: read height")
	}
	hashBytes, err := r.ReadVarBytes()
	if err != nil {
		return nil, errors.Wrap(err, "block: read hash")
	}
	preHashBytes, err := r.ReadVarBytes()
	if err != nil {
		return nil, errors.Wrap(err, "block: read pre_block_hash")
	}

	txCount, err := r.ReadUint32LE()
	if err != nil {
		return nil, errors.Wrap(err, "block: read tx count")
	}
	txs := make([]*transaction.Transaction, txCount)
	for i := range txs {
		txBytes, err := r.ReadVarBytes()
		if err != nil {
			return nil, errors.Wrap(err, "block: read tx bytes")
		}
		tx, err := transaction.Deserialize(txBytes)
		if err != nil {
			return nil, errors.Wrap(err, "block: deserialize tx")
		}
		txs[i] = tx
	}

	return &Block{
		Timestamp:    timestamp,
		Nonce:        nonce,
		Height:       height,
		Hash:         string(hashBytes),
		PreBlockHash: string(preHashBytes),
		Transactions: txs,
	}, nil
}

// HashBytes returns the block's hash as raw bytes, decoded from its
// lowercase-hex Hash field.
func (b *Block) HashBytes() ([]byte, error) {
	return hex.DecodeString(b.Hash)
}
