// Package batch hashes many files at once on a bounded worker pool and
// hands results back in the order the files were given.
package batch

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/orcaman/concurrent-map"
	"github.com/panjf2000/ants"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/mem"

	"massnet.org/hashcore/hashutil"
	"massnet.org/hashcore/logging"
	"massnet.org/hashcore/sha256"
)

var ErrHasherClosed = errors.New("hasher closed")

// Result is the outcome of hashing one file.
type Result struct {
	Index    int
	Name     string
	Digest   hashutil.Hash
	Size     int64
	Streamed bool
	Err      error
}

func (r *Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Name, r.Err)
	}
	return fmt.Sprintf("%v  %s", r.Digest, r.Name)
}

// Hasher is safe for concurrent use.
type Hasher struct {
	pool            *ants.Pool
	streamThreshold int64
	// digests memoizes results by path, size and modification time.
	digests   cmap.ConcurrentMap
	available func() (uint64, error)
}

// NewHasher starts a pool of workers goroutines. Files larger than
// streamThreshold, or than half the available memory, are hashed through
// the streaming digest instead of being read whole.
func NewHasher(workers int, streamThreshold int64) (*Hasher, error) {
	pool, err := ants.NewPoolPreMalloc(workers)
	if err != nil {
		return nil, err
	}
	return &Hasher{
		pool:            pool,
		streamThreshold: streamThreshold,
		digests:         cmap.New(),
		available:       availableMemory,
	}, nil
}

func availableMemory() (uint64, error) {
	stat, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return stat.Available, nil
}

func (h *Hasher) Close() {
	h.pool.Release()
}

// Workers returns the pool capacity.
func (h *Hasher) Workers() int {
	return h.pool.Cap()
}

// streamLimit returns the size above which files are streamed.
func (h *Hasher) streamLimit() int64 {
	limit := h.streamThreshold
	avail, err := h.available()
	if err != nil {
		logging.VPrint(logging.WARN, "fail to read available memory", logging.LogFormat{"err": err})
		return limit
	}
	if half := int64(avail / 2); half < limit {
		limit = half
	}
	return limit
}

// Each hashes paths concurrently and calls fn once per path, in the order
// of paths. Per-file failures are reported in Result.Err. Each stops early
// when fn returns an error or ctx is done.
func (h *Hasher) Each(ctx context.Context, paths []string, fn func(*Result) error) error {
	limit := h.streamLimit()
	done := make(chan *Result, len(paths))

	submitted := 0
	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		i, path := i, path
		if err := h.pool.Submit(func() {
			done <- h.sumFile(i, path, limit)
		}); err != nil {
			return errors.Wrap(ErrHasherClosed, err.Error())
		}
		submitted++
	}
	logging.VPrint(logging.DEBUG, "batch submitted", logging.LogFormat{
		"files":        submitted,
		"stream_limit": limit,
	})

	queue := newResultQueue()
	for emitted := 0; emitted < submitted; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-done:
			queue.Push(r)
		}
		for _, r := range queue.PopReady() {
			if err := fn(r); err != nil {
				return err
			}
			emitted++
		}
	}
	if submitted < len(paths) {
		return ctx.Err()
	}
	return nil
}

// SumFiles returns one result per path, in the order of paths.
func (h *Hasher) SumFiles(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, 0, len(paths))
	err := h.Each(ctx, paths, func(r *Result) error {
		results = append(results, r)
		return nil
	})
	return results, err
}

func memoKey(path string, fi os.FileInfo) string {
	return fmt.Sprintf("%s|%d|%d", path, fi.Size(), fi.ModTime().UnixNano())
}

func (h *Hasher) sumFile(index int, path string, limit int64) *Result {
	r := &Result{Index: index, Name: path}

	fi, err := os.Stat(path)
	if err != nil {
		r.Err = err
		return r
	}
	if fi.IsDir() {
		r.Err = errors.Errorf("%s is a directory", path)
		return r
	}
	key := memoKey(path, fi)
	if v, ok := h.digests.Get(key); ok {
		cached := *v.(*Result)
		cached.Index = index
		return &cached
	}

	r.Size = fi.Size()
	if r.Size > limit {
		r.Streamed = true
		r.Digest, r.Err = streamFile(path)
	} else {
		r.Digest, r.Err = readFile(path)
	}
	if r.Err == nil {
		h.digests.Set(key, r)
	}
	return r
}

func readFile(path string) (hashutil.Hash, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return hashutil.Hash{}, err
	}
	return hashutil.SHA256(data), nil
}

func streamFile(path string) (hashutil.Hash, error) {
	f, err := os.Open(path)
	if err != nil {
		return hashutil.Hash{}, err
	}
	defer f.Close()
	return SumReader(f)
}

// SumReader hashes everything r yields.
func SumReader(r io.Reader) (hashutil.Hash, error) {
	d := sha256.New()
	if _, err := io.Copy(d, r); err != nil {
		return hashutil.Hash{}, errors.Wrap(err, "read input")
	}
	var h hashutil.Hash
	copy(h[:], d.Sum(nil))
	return h, nil
}

// SumMessages hashes every message on the pool and returns the digests in
// input order.
func (h *Hasher) SumMessages(ctx context.Context, messages [][]byte) ([]hashutil.Hash, error) {
	digests := make([]hashutil.Hash, len(messages))
	done := make(chan struct{}, len(messages))
	for i := range messages {
		i := i
		if err := h.pool.Submit(func() {
			digests[i] = sha256.Sum256(messages[i])
			done <- struct{}{}
		}); err != nil {
			return nil, errors.Wrap(ErrHasherClosed, err.Error())
		}
	}
	for range messages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-done:
		}
	}
	return digests, nil
}
