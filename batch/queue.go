package batch

import (
	"sync"

	"gopkg.in/karalabe/cookiejar.v2/collections/prque"
)

// resultQueue holds results that finished ahead of their turn. Lower
// indexes have higher priority.
type resultQueue struct {
	*prque.Prque
	sync.Mutex
	next int
}

func newResultQueue() *resultQueue {
	return &resultQueue{
		Prque: prque.New(),
	}
}

func (rq *resultQueue) Push(r *Result) {
	rq.Lock()
	defer rq.Unlock()
	rq.Prque.Push(r, -float32(r.Index))
}

// PopReady pops every queued result whose turn has come, in index order.
func (rq *resultQueue) PopReady() []*Result {
	rq.Lock()
	defer rq.Unlock()

	var ready []*Result
	for !rq.Empty() {
		item, priority := rq.Prque.Pop()
		r := item.(*Result)
		if r.Index != rq.next {
			rq.Prque.Push(r, priority)
			break
		}
		ready = append(ready, r)
		rq.next++
	}
	return ready
}
