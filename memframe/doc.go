// Package memframe implements the dataset.Frame contract with a compact,
// in-memory columnar engine: an eager Table, a deferred LazyTable, and
// grouped, dynamic-grouped and rolling views of both. It exists so Datasets
// have a concrete collaborator to wrap, and doubles as a reference for
// implementing the contract over other engines.
package memframe
