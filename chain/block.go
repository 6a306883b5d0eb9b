package chain

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"massnet.org/hashcore/hashutil"
)

// GenesisData is the payload of block 0.
const GenesisData = "Genesis Block"

// Block is one link of the chain. Its hash covers every field, so
// changing any stored block breaks the PrevHash of its successor.
type Block struct {
	Index     uint64        `json:"index"`
	Timestamp int64         `json:"timestamp"`
	Data      string        `json:"data"`
	PrevHash  hashutil.Hash `json:"prev_hash"`
}

// NewBlock builds the block following prev. A nil prev builds genesis
// with an all-zero PrevHash.
func NewBlock(prev *Block, data string, now time.Time) *Block {
	b := &Block{
		Timestamp: now.UnixNano(),
		Data:      data,
	}
	if prev != nil {
		b.Index = prev.Index + 1
		b.PrevHash = prev.Hash()
	}
	return b
}

// Header serializes the block as index || timestamp || prev hash || data,
// fixed-width fields first so no two blocks share an encoding.
func (b *Block) Header() []byte {
	buf := make([]byte, 16+hashutil.HashSize+len(b.Data))
	binary.BigEndian.PutUint64(buf[0:8], b.Index)
	binary.BigEndian.PutUint64(buf[8:16], uint64(b.Timestamp))
	copy(buf[16:], b.PrevHash[:])
	copy(buf[16+hashutil.HashSize:], b.Data)
	return buf
}

// Hash returns the SHA256 of the block header.
func (b *Block) Hash() hashutil.Hash {
	return hashutil.SHA256(b.Header())
}

// Time returns the block timestamp.
func (b *Block) Time() time.Time {
	return time.Unix(0, b.Timestamp)
}

func (b *Block) marshal() ([]byte, error) {
	return json.Marshal(b)
}

func unmarshalBlock(data []byte) (*Block, error) {
	b := new(Block)
	if err := json.Unmarshal(data, b); err != nil {
		return nil, err
	}
	return b, nil
}
