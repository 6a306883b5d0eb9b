// Package chain keeps a toy block chain in which every block commits to
// the SHA256 of its predecessor.
package chain

import (
	"encoding/binary"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	set "gopkg.in/fatih/set.v0"

	"massnet.org/hashcore/ccache"
	"massnet.org/hashcore/database/storage"
	_ "massnet.org/hashcore/database/storage/ldbstorage"
	"massnet.org/hashcore/database/storage/memstorage"
	"massnet.org/hashcore/hashutil"
	"massnet.org/hashcore/logging"
)

var (
	ErrChainBroken    = errors.New("chain broken")
	ErrEmptyChain     = errors.New("chain has no genesis block")
	ErrDuplicateBlock = errors.New("duplicate block hash")
	ErrBlockNotFound  = errors.New("block not found")
)

var (
	blockKeyPrefix = []byte("b")
	tipKey         = []byte("tip")
)

func blockKey(index uint64) []byte {
	key := make([]byte, len(blockKeyPrefix)+8)
	copy(key, blockKeyPrefix)
	binary.BigEndian.PutUint64(key[len(blockKeyPrefix):], index)
	return key
}

// Chain is safe for concurrent use.
type Chain struct {
	mu    sync.RWMutex
	store storage.Storage
	cache *ccache.CCache
	tip   *Block
	now   func() time.Time
}

// New loads the chain kept in store, writing a genesis block into an
// empty store. cacheSize bounds the block hash cache.
func New(store storage.Storage, cacheSize int) (*Chain, error) {
	return newChain(store, cacheSize, time.Now)
}

func newChain(store storage.Storage, cacheSize int, now func() time.Time) (*Chain, error) {
	c := &Chain{
		store: store,
		cache: ccache.NewCCache(cacheSize),
		now:   now,
	}

	index, tipHash, err := c.loadTip()
	switch err {
	case nil:
		tip, err := c.load(index)
		if err != nil {
			return nil, err
		}
		if h := tip.Hash(); h != tipHash {
			return nil, errors.Wrapf(ErrChainBroken, "tip block %d hashes to %v, recorded %v", index, h, tipHash)
		}
		c.tip = tip
	case storage.ErrNotFound:
		if err := c.put(NewBlock(nil, GenesisData, c.now())); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	logging.VPrint(logging.DEBUG, "chain loaded", logging.LogFormat{
		"height": c.tip.Index,
		"tip":    c.tip.Hash(),
	})
	return c, nil
}

// Open opens the chain database of dbtype at dir, creating it when
// missing.
func Open(dbtype, dir string, cacheSize int) (*Chain, error) {
	var (
		store storage.Storage
		err   error
	)
	if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
		store, err = storage.CreateStorage(dbtype, dir)
	} else {
		store, err = storage.OpenStorage(dbtype, dir)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open %s storage at %s", dbtype, dir)
	}
	return load(store, dbtype, dir, cacheSize)
}

// OpenReadOnly opens an existing chain database for reading. AddBlock
// fails on the returned chain.
func OpenReadOnly(dbtype, dir string, cacheSize int) (*Chain, error) {
	store, err := storage.OpenStorage(dbtype, dir, storage.ReadOnly)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s storage at %s", dbtype, dir)
	}
	return load(store, dbtype, dir, cacheSize, storage.ReadOnly)
}

func load(store storage.Storage, dbtype, dir string, cacheSize int, args ...interface{}) (*Chain, error) {
	if dbtype != memstorage.DbType {
		if err := storage.CheckCompatibility(dbtype, dir, args...); err != nil {
			store.Close()
			return nil, err
		}
	}
	c, err := New(store, cacheSize)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func (c *Chain) Close() error {
	return c.store.Close()
}

// The tip record is the index of the newest block followed by its hash.
const tipRecordSize = 8 + hashutil.HashSize

func (c *Chain) loadTip() (uint64, hashutil.Hash, error) {
	buf, err := c.store.Get(tipKey)
	if err != nil {
		return 0, hashutil.Hash{}, err
	}
	if len(buf) != tipRecordSize {
		return 0, hashutil.Hash{}, errors.Wrapf(ErrChainBroken, "tip record of %d bytes", len(buf))
	}
	var h hashutil.Hash
	copy(h[:], buf[8:])
	return binary.BigEndian.Uint64(buf[:8]), h, nil
}

// put stores b and moves the tip to it in one batch.
func (c *Chain) put(b *Block) error {
	data, err := b.marshal()
	if err != nil {
		return err
	}
	h := b.Hash()
	var tipBuf [tipRecordSize]byte
	binary.BigEndian.PutUint64(tipBuf[:8], b.Index)
	copy(tipBuf[8:], h[:])

	batch := c.store.NewBatch()
	defer batch.Release()
	if err = batch.Put(blockKey(b.Index), data); err != nil {
		return err
	}
	if err = batch.Put(tipKey, tipBuf[:]); err != nil {
		return err
	}
	if err = c.store.Write(batch); err != nil {
		return err
	}
	c.tip = b
	c.cache.Add(b.Index, h)
	return nil
}

func (c *Chain) load(index uint64) (*Block, error) {
	data, err := c.store.Get(blockKey(index))
	if err == storage.ErrNotFound {
		return nil, errors.Wrapf(ErrBlockNotFound, "index %d", index)
	}
	if err != nil {
		return nil, err
	}
	b, err := unmarshalBlock(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode block %d", index)
	}
	return b, nil
}

// AddBlock appends a block carrying data after the current tip.
func (c *Chain) AddBlock(data string) (*Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := NewBlock(c.tip, data, c.now())
	if err := c.put(b); err != nil {
		return nil, err
	}
	logging.VPrint(logging.DEBUG, "block added", logging.LogFormat{
		"index": b.Index,
		"hash":  b.Hash(),
	})
	return b, nil
}

// Tip returns the newest block.
func (c *Chain) Tip() *Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tip
}

// Height returns the index of the newest block.
func (c *Chain) Height() uint64 {
	return c.Tip().Index
}

// Block returns the block at index.
func (c *Chain) Block(index uint64) (*Block, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.load(index)
}

// BlockHash returns the hash of the block at index, served from cache
// when possible.
func (c *Chain) BlockHash(index uint64) (hashutil.Hash, error) {
	if h, ok := c.cache.Get(index); ok {
		return h, nil
	}
	b, err := c.Block(index)
	if err != nil {
		return hashutil.Hash{}, err
	}
	h := b.Hash()
	c.cache.Add(index, h)
	return h, nil
}

// Blocks returns every stored block in index order.
func (c *Chain) Blocks() ([]*Block, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	iter := c.store.NewIterator(storage.BytesPrefix(blockKeyPrefix))
	defer iter.Release()

	var blocks []*Block
	for iter.Next() {
		b, err := unmarshalBlock(iter.Value())
		if err != nil {
			return nil, errors.Wrapf(err, "decode block key %x", iter.Key())
		}
		blocks = append(blocks, b)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// Verify recomputes every block hash from storage and checks that each
// block links to its predecessor.
func (c *Chain) Verify() error {
	blocks, err := c.Blocks()
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return ErrEmptyChain
	}

	seen := set.New(set.ThreadSafe).(*set.Set)
	var prev *Block
	for i, b := range blocks {
		if b.Index != uint64(i) {
			return errors.Wrapf(ErrChainBroken, "block %d stored at position %d", b.Index, i)
		}
		if prev == nil {
			if b.PrevHash != (hashutil.Hash{}) {
				return errors.Wrap(ErrChainBroken, "genesis has a previous hash")
			}
		} else if want := prev.Hash(); b.PrevHash != want {
			return errors.Wrapf(ErrChainBroken, "block %d links to %v, want %v", b.Index, b.PrevHash, want)
		}
		h := b.Hash()
		if seen.Has(h) {
			return errors.Wrapf(ErrDuplicateBlock, "block %d hash %v", b.Index, h)
		}
		seen.Add(h)
		prev = b
	}
	index, tipHash, err := c.loadTip()
	if err != nil {
		return err
	}
	if prev.Index != index {
		return errors.Wrapf(ErrChainBroken, "last stored block %d, tip %d", prev.Index, index)
	}
	if h := prev.Hash(); h != tipHash {
		return errors.Wrapf(ErrChainBroken, "tip block %d hashes to %v, recorded %v", index, h, tipHash)
	}
	return nil
}
