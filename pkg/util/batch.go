package util

// Chunk 按 size 切分切片，返回的子切片共享底层数组且容量受限，size<=0 时整体一批。
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 || size > len(items) {
		size = len(items)
	}
	res := make([][]T, 0, (len(items)+size-1)/size)
	for len(items) > size {
		res = append(res, items[:size:size])
		items = items[size:]
	}
	return append(res, items)
}
