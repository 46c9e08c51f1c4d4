package dataset

// FrameKind identifies which member of the recognized tabular family a Frame
// belongs to. Only values satisfying the Frame interface are ever re-wrapped
// by a Dataset; everything else is treated as plain data.
type FrameKind int

const (
	// EagerFrame is a fully-materialized, in-memory table
	EagerFrame FrameKind = iota
	// LazyFrame is a deferred query over a table, executed on collection
	LazyFrame
	// GroupedFrame is a grouped view of an eager table
	GroupedFrame
	// DynamicGroupedFrame is a time/index-windowed grouped view of an eager table
	DynamicGroupedFrame
	// RollingFrame is a rolling-window view of an eager table
	RollingFrame
	// LazyGroupedFrame is a grouped view of a lazy table
	LazyGroupedFrame
)

// String returns a textual representation of this FrameKind
func (k FrameKind) String() string {
	switch k {
	case EagerFrame:
		return "eager"
	case LazyFrame:
		return "lazy"
	case GroupedFrame:
		return "grouped"
	case DynamicGroupedFrame:
		return "dynamic_grouped"
	case RollingFrame:
		return "rolling"
	case LazyGroupedFrame:
		return "lazy_grouped"
	default:
		return "unknown"
	}
}

// Row is a single row of a Frame, keyed by column name
type Row map[string]interface{}

// A RowIterator iterates over the Rows of a Frame. Iteration never yields
// Frames, so results are returned as-is rather than being re-wrapped.
type RowIterator interface {
	HasNext() bool      // HasNext returns true iff this RowIterator can produce another Row
	Next() (Row, error) // Next returns the next Row, or errors.NoMoreRowsError if none remain
}

// A Frame is the contract a tabular container must satisfy to be wrapped by a
// Dataset. It enumerates the full capability set the proxy forwards to:
// comparison and arithmetic by named operator, item access, iteration, joins,
// partitioning and concatenation. Engines expose richer surfaces through
// extension interfaces; the proxy reaches those via Dataset.Apply.
type Frame interface {
	Kind() FrameKind                                                    // Kind returns which family member this Frame is
	Len() int                                                           // Len returns the number of rows in this Frame
	IsEmpty() bool                                                      // IsEmpty returns true iff this Frame contains no rows
	Get(key interface{}) (interface{}, error)                           // Get retrieves a column, row or sub-Frame by key
	Rows() RowIterator                                                  // Rows iterates over this Frame's rows in order
	Reversed() RowIterator                                              // Reversed iterates over this Frame's rows in reverse order
	Compare(op CompareOp, other interface{}) (Frame, error)            // Compare applies a named comparison against a Frame or plain value
	Operate(op BinaryOp, other interface{}) (Frame, error)             // Operate applies a named arithmetic operator against a Frame or plain value
	Join(other Frame, opts ...JoinOption) (Frame, error)               // Join performs an equality join against another same-family Frame
	JoinAsof(other Frame, opts ...JoinOption) (Frame, error)           // JoinAsof performs a nearest-key join against another same-family Frame
	PartitionBy(keys []string, opts ...PartitionOption) (*Partitions, error) // PartitionBy splits this Frame by key columns
	Concat(others []Frame, opts ...ConcatOption) (Frame, error)        // Concat combines this Frame with others into one Frame
}
