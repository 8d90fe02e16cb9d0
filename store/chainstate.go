package store

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var chainstateBucket = MakeBucket("chainstate")

// GetUTXOEntry returns the raw UTXO-index value stored under txid, and
// whether an entry exists at all.
func (c *Chain) GetUTXOEntry(txid []byte) ([]byte, bool, error) {
	data, err := c.db.Get(chainstateBucket.Key(txid), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "store: read utxo entry")
	}
	return data, true, nil
}

// PutUTXOEntry stores the raw UTXO-index value for txid.
func (c *Chain) PutUTXOEntry(txid, value []byte) error {
	return errors.Wrap(c.db.Put(chainstateBucket.Key(txid), value, nil), "store: write utxo entry")
}

// DeleteUTXOEntry removes the UTXO-index entry for txid.
func (c *Chain) DeleteUTXOEntry(txid []byte) error {
	return errors.Wrap(c.db.Delete(chainstateBucket.Key(txid), nil), "store: delete utxo entry")
}

// ForEachUTXOEntry iterates every key/value pair in the chainstate
// bucket, yielding the raw (unprefixed) txid and its raw value.
func (c *Chain) ForEachUTXOEntry(fn func(txid, value []byte) error) error {
	iter := c.db.NewIterator(util.BytesPrefix(chainstateBucket.Path()), nil)
	defer iter.Release()

	prefixLen := len(chainstateBucket.Path())
	for iter.Next() {
		key := iter.Key()
		txid := make([]byte, len(key)-prefixLen)
		copy(txid, key[prefixLen:])
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		if err := fn(txid, value); err != nil {
			return err
		}
	}
	return errors.Wrap(iter.Error(), "store: iterate utxo entries")
}

// ClearUTXOEntries deletes every entry in the chainstate bucket, used
// before a full reindex.
func (c *Chain) ClearUTXOEntries() error {
	iter := c.db.NewIterator(util.BytesPrefix(chainstateBucket.Path()), nil)
	defer iter.Release()

	batch := new(leveldb.Batch)
	for iter.Next() {
		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		batch.Delete(key)
	}
	if err := iter.Error(); err != nil {
		return errors.Wrap(err, "store: iterate utxo entries for clear")
	}
	return errors.Wrap(c.db.Write(batch, nil), "store: clear utxo entries")
}
