package block

import (
	"encoding/hex"
	"math/big"

	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/hashutil"
	"github.com/ZhuZhengyi/blockchain-go/wire"
)

// TargetBits is the fixed PoW difficulty exponent (spec.md §3: no
// difficulty adjustment, per Non-goals).
const TargetBits = 8

// maxNonce bounds the nonce search; with TargetBits=8 it is never reached
// in practice (spec.md §4.1).
const maxNonce = int64(1<<63 - 1)

// target is 1 << (256 - TargetBits).
func target() *big.Int {
	t := big.NewInt(1)
	return t.Lsh(t, 256-TargetBits)
}

// preimage builds the PoW hash preimage for b at the given nonce:
// pre_block_hash bytes, SHA-256(tx ids), timestamp (8 bytes BE), nonce
// (8 bytes BE), per spec.md §3.
func preimage(b *Block, nonce int64) []byte {
	w := wire.NewWriter()
	w.WriteRaw([]byte(b.PreBlockHash))
	w.WriteRaw(b.HashTransactions())
	w.WriteUint64BE(b.Timestamp)
	w.WriteInt64BE(nonce)
	return w.Bytes()
}

// Mine searches for the first nonce whose SHA-256(preimage) digest,
// interpreted as a big-endian unsigned integer, is strictly less than the
// PoW target. It returns the winning nonce and the lowercase-hex digest.
func Mine(b *Block) (nonce int64, hash string, err error) {
	t := target()

	for nonce = 0; nonce < maxNonce; nonce++ {
		digest := hashutil.Sha256(preimage(b, nonce))
		hashInt := new(big.Int).SetBytes(digest)
		if hashInt.Cmp(t) < 0 {
			return nonce, hex.EncodeToString(digest), nil
		}
	}

	return 0, "", errors.New("proof-of-work: exhausted nonce space")
}

// Validate reports whether b's Hash/Nonce satisfy the PoW target.
func Validate(b *Block) bool {
	digest := hashutil.Sha256(preimage(b, b.Nonce))
	if hex.EncodeToString(digest) != b.Hash {
		return false
	}
	hashInt := new(big.Int).SetBytes(digest)
	return hashInt.Cmp(target()) < 0
}
