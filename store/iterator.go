package store

import (
	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/block"
)

// Iterator walks the chain from the tip down to the genesis block,
// following each block's PreBlockHash link. It is single-use: once
// exhausted, construct a fresh one via Chain.Iterator.
type Iterator struct {
	chain   *Chain
	current string
	done    bool
}

// Iterator returns a new tip-to-genesis walker over c.
func (c *Chain) Iterator() *Iterator {
	return &Iterator{chain: c, current: c.Tip()}
}

// Next returns the next block in the walk, or ok=false once the genesis
// block's predecessor (block.NoneHash) is reached.
func (it *Iterator) Next() (b *block.Block, ok bool, err error) {
	if it.done {
		return nil, false, nil
	}

	b, err = it.chain.GetBlock(it.current)
	if err != nil {
		return nil, false, errors.Wrap(err, "store: iterate chain")
	}

	if b.PreBlockHash == block.NoneHash {
		it.done = true
	} else {
		it.current = b.PreBlockHash
	}
	return b, true, nil
}
