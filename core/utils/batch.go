package utils

// Batch splits items into consecutive chunks of at most size elements.
// The chunks share the backing array of items. size <= 0 yields one chunk.
func Batch[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 || size >= len(items) {
		return [][]T{items}
	}

	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end:end])
	}
	return batches
}

// ForEachBatch calls fn for every chunk of items, stopping at the first error.
func ForEachBatch[T any](items []T, size int, fn func(batch []T) error) error {
	for _, b := range Batch(items, size) {
		if err := fn(b); err != nil {
			return err
		}
	}
	return nil
}
