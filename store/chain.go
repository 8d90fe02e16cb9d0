// Package store persists the block chain in an embedded goleveldb
// database, mirroring the teacher's dbaccess/database2 bucket-over-KV
// layout (spec.md §3, §4.2).
package store

import (
	"encoding/hex"
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/ZhuZhengyi/blockchain-go/block"
	"github.com/ZhuZhengyi/blockchain-go/transaction"
)

var (
	blocksBucket = MakeBucket("blocks")
	metaBucket   = MakeBucket("meta")
)

var tipMetaKey = metaBucket.Key([]byte("tip_block_hash"))

// ErrNoExistingChain is returned by Open when the data directory holds no
// chain yet.
var ErrNoExistingChain = errors.New("store: no existing chain")

// ErrChainExists is returned by Create when the data directory already
// holds a chain.
var ErrChainExists = errors.New("store: chain already exists")

// Chain is the on-disk block chain: an append-only set of mined blocks
// plus a cached tip hash.
type Chain struct {
	db *leveldb.DB

	mu  sync.RWMutex
	tip string // lowercase-hex hash of the tip block
}

// Create mines the genesis block paying the given address and persists a
// brand new chain at dataDir. It fails if a chain already exists there.
func Create(dataDir, genesisAddress string) (*Chain, error) {
	db, err := leveldb.OpenFile(dataDir, nil)
	if err != nil {
		return nil, errors.Wrap(err, "store: open leveldb")
	}

	if _, err := db.Get(tipMetaKey, nil); err != leveldb.ErrNotFound {
		db.Close()
		if err == nil {
			return nil, ErrChainExists
		}
		return nil, errors.Wrap(err, "store: probe existing chain")
	}

	coinbase, err := transaction.NewCoinbaseTx(genesisAddress)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: build genesis coinbase")
	}
	genesis, err := block.GenerateGenesisBlock(coinbase)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: mine genesis block")
	}

	hashBytes, err := genesis.HashBytes()
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: decode genesis hash")
	}

	batch := new(leveldb.Batch)
	batch.Put(blocksBucket.Key(hashBytes), genesis.Serialize())
	batch.Put(tipMetaKey, []byte(genesis.Hash))
	if err := db.Write(batch, nil); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: persist genesis block")
	}

	log.Infof("created chain at %s, genesis block %s", dataDir, genesis.Hash)
	return &Chain{db: db, tip: genesis.Hash}, nil
}

// Open loads an existing chain at dataDir. It fails if none exists.
func Open(dataDir string) (*Chain, error) {
	db, err := leveldb.OpenFile(dataDir, nil)
	if err != nil {
		return nil, errors.Wrap(err, "store: open leveldb")
	}

	tipBytes, err := db.Get(tipMetaKey, nil)
	if err == leveldb.ErrNotFound {
		db.Close()
		return nil, ErrNoExistingChain
	}
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: read tip")
	}

	return &Chain{db: db, tip: string(tipBytes)}, nil
}

// Close releases the underlying database handle.
func (c *Chain) Close() error {
	return c.db.Close()
}

// Tip returns the current tip block's hash.
func (c *Chain) Tip() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tip
}

// setTip updates the cached tip and persists it.
func (c *Chain) setTip(hash string) error {
	if err := c.db.Put(tipMetaKey, []byte(hash), nil); err != nil {
		return errors.Wrap(err, "store: persist tip")
	}
	c.mu.Lock()
	c.tip = hash
	c.mu.Unlock()
	return nil
}

// GetBlock fetches and deserializes the block with the given lowercase-hex
// hash.
func (c *Chain) GetBlock(hash string) (*block.Block, error) {
	hashBytes, err := hex.DecodeString(hash)
	if err != nil {
		return nil, errors.Wrap(err, "store: decode block hash")
	}

	data, err := c.db.Get(blocksBucket.Key(hashBytes), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.Errorf("store: block %s not found", hash)
	}
	if err != nil {
		return nil, errors.Wrap(err, "store: read block")
	}

	return block.Deserialize(data)
}

// TipBlock fetches the current tip block.
func (c *Chain) TipBlock() (*block.Block, error) {
	return c.GetBlock(c.Tip())
}

// BestHeight returns the tip block's height.
func (c *Chain) BestHeight() (uint64, error) {
	tip, err := c.TipBlock()
	if err != nil {
		return 0, err
	}
	return tip.Height, nil
}

// AddBlock persists b if it is not already known, and advances the tip
// when b extends the current best chain. Insertion and the tip update
// happen in a single atomic batch, matching the teacher's pattern of
// wrapping related writes in one dbaccess transaction.
func (c *Chain) AddBlock(b *block.Block) error {
	hashBytes, err := b.HashBytes()
	if err != nil {
		return errors.Wrap(err, "store: decode block hash")
	}

	key := blocksBucket.Key(hashBytes)
	if _, err := c.db.Get(key, nil); err == nil {
		log.Debugf("block %s already known, skipping", b.Hash)
		return nil // idempotent: already have this block
	} else if err != leveldb.ErrNotFound {
		return errors.Wrap(err, "store: probe existing block")
	}

	tipBlock, err := c.TipBlock()
	if err != nil {
		return errors.Wrap(err, "store: load tip block")
	}

	batch := new(leveldb.Batch)
	batch.Put(key, b.Serialize())
	if b.Height > tipBlock.Height {
		batch.Put(tipMetaKey, []byte(b.Hash))
	}
	if err := c.db.Write(batch, nil); err != nil {
		return errors.Wrap(err, "store: persist block")
	}

	if b.Height > tipBlock.Height {
		c.mu.Lock()
		c.tip = b.Hash
		c.mu.Unlock()
	}
	log.Infof("added block %s at height %d", b.Hash, b.Height)
	return nil
}

// MineBlock verifies every non-coinbase transaction against the chain,
// mines a new block extending the tip, and persists it atomically.
func (c *Chain) MineBlock(txs []*transaction.Transaction) (*block.Block, error) {
	for _, tx := range txs {
		if tx.IsCoinbase() {
			continue
		}
		ok, err := tx.Verify(c)
		if err != nil {
			return nil, errors.Wrap(err, "store: verify transaction")
		}
		if !ok {
			return nil, errors.Errorf("store: invalid signature on transaction %x", tx.ID)
		}
	}

	tipBlock, err := c.TipBlock()
	if err != nil {
		return nil, errors.Wrap(err, "store: load tip block")
	}

	newBlock, err := block.New(tipBlock.Hash, txs, tipBlock.Height+1)
	if err != nil {
		return nil, errors.Wrap(err, "store: mine block")
	}
	minr.Infof("mined block %s at height %d with %d transactions", newBlock.Hash, newBlock.Height, len(txs))

	if err := c.AddBlock(newBlock); err != nil {
		return nil, err
	}
	return newBlock, nil
}

// FindTransaction walks the chain from the tip down to genesis looking for
// a transaction with the given id. It implements transaction.Finder.
func (c *Chain) FindTransaction(txid []byte) (*transaction.Transaction, error) {
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
			if string(tx.ID) == string(txid) {
				return tx, nil
			}
		}
	}
	return nil, errors.Errorf("store: transaction %x not found", txid)
}

// rangeAllBlockKeys calls fn for every persisted block key/value pair in
// key order, without walking the chain by PreBlockHash linkage, so blocks
// not reachable from the tip are included. Nothing in the package calls
// it.
func (c *Chain) rangeAllBlockKeys(fn func(key, value []byte) error) error {
	iter := c.db.NewIterator(util.BytesPrefix(blocksBucket.Path()), nil)
	defer iter.Release()
	for iter.Next() {
		if err := fn(iter.Key(), iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}
