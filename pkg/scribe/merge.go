package scribe

import "container/heap"

// MergeByTimestamp merges per-file record batches into a single slice
// ordered by timestamp (oldest first), giving a unified timeline across
// files. Each batch is expected in chronological order, as the vendor
// writes its files. Records with a zero timestamp sort first; records
// with equal timestamps keep their batch order.
func MergeByTimestamp(batches ...[]Record) []Record {
	total := 0
	for _, batch := range batches {
		total += len(batch)
	}
	if total == 0 {
		return nil
	}

	h := &recordHeap{}
	heap.Init(h)
	for i, batch := range batches {
		if len(batch) > 0 {
			heap.Push(h, mergeItem{record: batch[0], batch: i})
		}
	}

	merged := make([]Record, 0, total)
	for h.Len() > 0 {
		item := heap.Pop(h).(mergeItem)
		merged = append(merged, item.record)

		// Refill from the same batch
		next := item.pos + 1
		if next < len(batches[item.batch]) {
			heap.Push(h, mergeItem{
				record: batches[item.batch][next],
				batch:  item.batch,
				pos:    next,
			})
		}
	}

	return merged
}

// mergeItem tracks a record's batch and position for the priority queue.
type mergeItem struct {
	record Record
	batch  int
	pos    int
}

// recordHeap implements heap.Interface for timestamp-ordered merging.
type recordHeap []mergeItem

func (h recordHeap) Len() int { return len(h) }

func (h recordHeap) Less(i, j int) bool {
	if h[i].record.Timestamp.Equal(h[j].record.Timestamp) {
		return h[i].batch < h[j].batch
	}
	return h[i].record.Timestamp.Before(h[j].record.Timestamp)
}

func (h recordHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *recordHeap) Push(x interface{}) {
	*h = append(*h, x.(mergeItem))
}

func (h *recordHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
