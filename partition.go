package dataset

// PartitionShape tags which of the two valid result shapes a PartitionBy
// produced. Any other value indicates a broken engine contract.
type PartitionShape int

const (
	// ListShape is an ordered sequence of Frames, one per partition
	ListShape PartitionShape = iota + 1
	// KeyedShape is a mapping from partition key to Frame
	KeyedShape
)

// Partitions is the tagged result of Frame.PartitionBy: exactly one of List
// or Keyed is populated, according to Shape.
type Partitions struct {
	Shape PartitionShape
	List  []Frame
	Keyed map[string]Frame
}

// ListPartitions constructs a ListShape Partitions from an ordered sequence of Frames
func ListPartitions(frames []Frame) *Partitions {
	return &Partitions{Shape: ListShape, List: frames}
}

// KeyedPartitions constructs a KeyedShape Partitions from a key-to-Frame mapping
func KeyedPartitions(frames map[string]Frame) *Partitions {
	return &Partitions{Shape: KeyedShape, Keyed: frames}
}
