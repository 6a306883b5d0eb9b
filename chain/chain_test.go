package chain

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"massnet.org/hashcore/database/storage"
	"massnet.org/hashcore/database/storage/memstorage"
	"massnet.org/hashcore/hashutil"
)

func fixedClock() func() time.Time {
	t := time.Unix(1500000000, 0)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestChain(t *testing.T) (*Chain, storage.Storage) {
	store, err := memstorage.NewMemStorage("")
	require.NoError(t, err)
	c, err := newChain(store, 8, fixedClock())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, store
}

func TestGenesis(t *testing.T) {
	c, _ := newTestChain(t)

	g := c.Tip()
	assert.Equal(t, uint64(0), g.Index)
	assert.Equal(t, GenesisData, g.Data)
	assert.Equal(t, hashutil.Hash{}, g.PrevHash)
	assert.NoError(t, c.Verify())
}

func TestAddBlock(t *testing.T) {
	c, _ := newTestChain(t)

	for i, data := range []string{"alice pays bob", "bob pays carol", "carol pays dave"} {
		prev := c.Tip()
		b, err := c.AddBlock(data)
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), b.Index)
		assert.Equal(t, prev.Hash(), b.PrevHash)
		assert.True(t, b.Time().After(prev.Time()))
	}
	assert.Equal(t, uint64(3), c.Height())

	blocks, err := c.Blocks()
	require.NoError(t, err)
	require.Len(t, blocks, 4)
	for i := 1; i < len(blocks); i++ {
		assert.Equal(t, blocks[i-1].Hash(), blocks[i].PrevHash)
	}

	h, err := c.BlockHash(2)
	require.NoError(t, err)
	assert.Equal(t, blocks[2].Hash(), h)

	_, err = c.Block(10)
	assert.True(t, errors.Is(err, ErrBlockNotFound))
	assert.NoError(t, c.Verify())
}

func TestBlockHashCache(t *testing.T) {
	c, _ := newTestChain(t)
	for i := 0; i < 20; i++ {
		_, err := c.AddBlock("x")
		require.NoError(t, err)
	}
	// the cache holds only the 8 newest hashes
	_, err := c.BlockHash(1)
	require.NoError(t, err)
	_, err = c.BlockHash(1)
	require.NoError(t, err)
	_, err = c.BlockHash(20)
	require.NoError(t, err)
	hits, misses := c.cache.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
}

func tamper(t *testing.T, store storage.Storage, index uint64, fn func(b *Block)) {
	data, err := store.Get(blockKey(index))
	require.NoError(t, err)
	b, err := unmarshalBlock(data)
	require.NoError(t, err)
	fn(b)
	data, err = b.marshal()
	require.NoError(t, err)
	require.NoError(t, store.Put(blockKey(index), data))
}

func TestVerifyDetectsTampering(t *testing.T) {
	tests := []struct {
		name  string
		index uint64
		fn    func(b *Block)
		want  error
	}{
		{"data", 1, func(b *Block) { b.Data = "mallory pays mallory" }, ErrChainBroken},
		{"timestamp", 2, func(b *Block) { b.Timestamp++ }, ErrChainBroken},
		{"prev hash", 2, func(b *Block) { b.PrevHash[0] ^= 1 }, ErrChainBroken},
		{"genesis", 0, func(b *Block) { b.Data = "Other Genesis" }, ErrChainBroken},
		{"tip", 3, func(b *Block) { b.Data = "rewritten" }, ErrChainBroken},
		{"index", 3, func(b *Block) { b.Index = 7 }, ErrChainBroken},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, store := newTestChain(t)
			for _, data := range []string{"a", "b", "c"} {
				_, err := c.AddBlock(data)
				require.NoError(t, err)
			}
			require.NoError(t, c.Verify())

			tamper(t, store, test.index, test.fn)
			err := c.Verify()
			assert.True(t, errors.Is(err, test.want), "got %v", err)
		})
	}
}

func TestVerifyEmptyStore(t *testing.T) {
	c, store := newTestChain(t)
	require.NoError(t, store.Delete(blockKey(0)))
	assert.Equal(t, ErrEmptyChain, c.Verify())
}

func TestHeaderLayout(t *testing.T) {
	b := &Block{Index: 1, Timestamp: 2, Data: "hi"}
	b.PrevHash[0] = 0xaa
	header := b.Header()
	require.Len(t, header, 16+hashutil.HashSize+2)
	assert.Equal(t, byte(1), header[7])
	assert.Equal(t, byte(2), header[15])
	assert.Equal(t, byte(0xaa), header[16])
	assert.Equal(t, "hi", string(header[16+hashutil.HashSize:]))
	assert.Equal(t, hashutil.SHA256(header), b.Hash())

	// moving bytes between data and timestamp must change the hash
	other := &Block{Index: 1, Timestamp: 21, Data: "i", PrevHash: b.PrevHash}
	assert.NotEqual(t, b.Hash(), other.Hash())
}

func TestOpenPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chain")

	c, err := Open("leveldb", dir, 16)
	require.NoError(t, err)
	genesis := c.Tip()
	b, err := c.AddBlock("persist me")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = Open("leveldb", dir, 16)
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, uint64(1), c.Height())
	assert.Equal(t, b.Hash(), c.Tip().Hash())
	g, err := c.Block(0)
	require.NoError(t, err)
	assert.Equal(t, genesis.Hash(), g.Hash())
	assert.NoError(t, c.Verify())
}

func TestOpenReadOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chain")

	_, err := OpenReadOnly("leveldb", dir, 16)
	assert.Error(t, err)

	c, err := Open("leveldb", dir, 16)
	require.NoError(t, err)
	_, err = c.AddBlock("one")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = OpenReadOnly("leveldb", dir, 16)
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, uint64(1), c.Height())
	assert.NoError(t, c.Verify())
	_, err = c.AddBlock("two")
	assert.Error(t, err)
	assert.Equal(t, uint64(1), c.Height())
}

func TestOpenReadOnlyLeavesDirUntouched(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chain")
	c, err := Open("leveldb", dir, 16)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	verFile := filepath.Join(dir, ".ver")
	require.NoError(t, os.Remove(verFile))

	c, err = OpenReadOnly("leveldb", dir, 16)
	require.NoError(t, err)
	require.NoError(t, c.Close())
	_, err = os.Stat(verFile)
	assert.True(t, os.IsNotExist(err), "read-only open wrote %s", verFile)
}

func TestOpenRejectsBrokenTip(t *testing.T) {
	store, err := memstorage.NewMemStorage("")
	require.NoError(t, err)
	c, err := newChain(store, 8, fixedClock())
	require.NoError(t, err)
	_, err = c.AddBlock("a")
	require.NoError(t, err)

	tamper(t, store, 1, func(b *Block) { b.Data = "b" })
	_, err = New(store, 8)
	assert.True(t, errors.Is(err, ErrChainBroken), "got %v", err)
	store.Close()
}
