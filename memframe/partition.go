package memframe

import (
	xxhash "github.com/cespare/xxhash/v2"

	"github.com/go-dataset/dataset"
)

// bucket accumulates the rows of one partition during PartitionBy
type bucket struct {
	key  string
	rows []int
}

// PartitionBy splits this Table into one Table per distinct combination of
// key-column values. The default result is ListShape, ordered by first
// occurrence of each key; the Keyed option requests a KeyedShape mapping
// instead, keyed by the comma-joined string form of the key cells. DropKeys
// excludes the key columns from the partition Tables.
func (t *tableImpl) PartitionBy(keys []string, opts ...dataset.PartitionOption) (*dataset.Partitions, error) {
	conf := dataset.BuildPartitionConfig(opts...)
	keyIdx, err := t.keyIndices(keys)
	if err != nil {
		return nil, err
	}
	// hash rows into buckets, preserving first-occurrence order
	var order []*bucket
	buckets := make(map[uint64]*bucket)
	for i := 0; i < t.numRows; i++ {
		key := keyOf(t, keyIdx, i)
		hash := xxhash.Sum64String(key)
		b, ok := buckets[hash]
		if !ok {
			b = &bucket{key: key}
			buckets[hash] = b
			order = append(order, b)
		}
		b.rows = append(b.rows, i)
	}
	build := func(b *bucket) dataset.Frame {
		part := t.takeRows(b.rows)
		if !conf.IncludeKeys {
			part = part.dropColumns(keys)
		}
		return part
	}
	if conf.Keyed {
		parts := make(map[string]dataset.Frame, len(order))
		for _, b := range order {
			parts[b.key] = build(b)
		}
		return dataset.KeyedPartitions(parts), nil
	}
	parts := make([]dataset.Frame, len(order))
	for i, b := range order {
		parts[i] = build(b)
	}
	return dataset.ListPartitions(parts), nil
}

// dropColumns returns a Table without the named columns
func (t *tableImpl) dropColumns(names []string) *tableImpl {
	dropped := make(map[string]bool, len(names))
	for _, name := range names {
		dropped[name] = true
	}
	var cols []column
	for _, col := range t.cols {
		if !dropped[col.name] {
			cols = append(cols, col)
		}
	}
	return createTableImpl(cols, t.numRows)
}
