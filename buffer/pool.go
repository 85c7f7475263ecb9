package buffer

import (
	"errors"
	"fmt"

	"github.com/opd-ai/audionode/ring"
)

// ErrInvalidPoolSize indicates a pool was requested with no blocks or with
// zero-capacity blocks.
var ErrInvalidPoolSize = errors.New("invalid block pool size")

// Block is a fixed-capacity sample buffer travelling between domains.
type Block struct {
	samples  []float64
	channels int
	pool     *Pool
}

// Samples returns the valid samples held by the block.
func (b *Block) Samples() []float64 {
	return b.samples
}

// Channels returns the interleaved channel count the samples were captured at.
func (b *Block) Channels() int {
	return b.channels
}

// Fill copies src into the block and records its channel count. It reports
// false when src does not fit the block's fixed capacity.
func (b *Block) Fill(src []float64, channels int) bool {
	if len(src) > cap(b.samples) {
		return false
	}
	b.samples = b.samples[:len(src)]
	copy(b.samples, src)
	b.channels = channels
	return true
}

// Release hands the block back to the pool it came from. Releasing a nil
// block is a no-op.
func (b *Block) Release() {
	if b == nil || b.pool == nil {
		return
	}
	b.pool.Put(b)
}

// Pool is a preallocated set of Blocks.
type Pool struct {
	free      *ring.Ring[*Block]
	blockSize int
	size      int
}

// NewPool preallocates count blocks of blockSize samples each.
func NewPool(count, blockSize int) (*Pool, error) {
	if count <= 0 || blockSize <= 0 {
		return nil, fmt.Errorf("%w: count=%d block_size=%d", ErrInvalidPoolSize, count, blockSize)
	}

	p := &Pool{
		free:      ring.New[*Block](count),
		blockSize: blockSize,
		size:      count,
	}
	backing := make([]float64, count*blockSize)
	for i := 0; i < count; i++ {
		p.free.Push(&Block{
			samples: backing[i*blockSize : i*blockSize : (i+1)*blockSize],
			pool:    p,
		})
	}
	return p, nil
}

// Get takes a block from the pool, or returns nil when every block is in
// use.
func (p *Pool) Get() *Block {
	b, ok := p.free.Pop()
	if !ok {
		return nil
	}
	return b
}

// Put returns a block to the pool. Blocks from another pool are ignored.
func (p *Pool) Put(b *Block) {
	if b == nil || b.pool != p {
		return
	}
	b.samples = b.samples[:0]
	b.channels = 0
	p.free.Push(b)
}

// Available returns the number of blocks currently free.
func (p *Pool) Available() int {
	return p.free.Len()
}

// Size returns the number of blocks the pool was built with.
func (p *Pool) Size() int {
	return p.size
}

// BlockSize returns the capacity in samples of every block.
func (p *Pool) BlockSize() int {
	return p.blockSize
}
