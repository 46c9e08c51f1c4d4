package dataset

// JoinType identifies the matching behaviour of an equality join
type JoinType int

const (
	// InnerJoin keeps only rows with a match on both sides
	InnerJoin JoinType = iota
	// LeftJoin keeps all left-hand rows, filling unmatched right-hand columns with nil
	LeftJoin
)

// AsofStrategy identifies the matching direction of an asof join
type AsofStrategy int

const (
	// AsofBackward matches the nearest key less than or equal to the left key
	AsofBackward AsofStrategy = iota
	// AsofForward matches the nearest key greater than or equal to the left key
	AsofForward
)

// JoinConfig configures a Join or JoinAsof between two Frames. Callers build
// one via JoinOptions; engines read it via BuildJoinConfig.
type JoinConfig struct {
	On           []string     // key columns, required
	How          JoinType     // matching behaviour. Defaults to InnerJoin
	Suffix       string       // appended to colliding right-hand column names. Defaults to "_right"
	Strategy     AsofStrategy // asof matching direction. Defaults to AsofBackward
	Tolerance    float64      // maximum asof key distance, when HasTolerance is set
	HasTolerance bool
}

// A JoinOption configures one aspect of a JoinConfig.
// See https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis for details of approach
type JoinOption func(*JoinConfig)

// On sets the key columns for a join
func On(cols ...string) JoinOption {
	return func(c *JoinConfig) {
		c.On = cols
	}
}

// How sets the matching behaviour for an equality join
func How(how JoinType) JoinOption {
	return func(c *JoinConfig) {
		c.How = how
	}
}

// Suffix overrides the suffix appended to colliding right-hand column names
func Suffix(suffix string) JoinOption {
	return func(c *JoinConfig) {
		c.Suffix = suffix
	}
}

// Strategy sets the matching direction for an asof join
func Strategy(strategy AsofStrategy) JoinOption {
	return func(c *JoinConfig) {
		c.Strategy = strategy
	}
}

// Tolerance limits how far an asof match may sit from the left-hand key
func Tolerance(tolerance float64) JoinOption {
	return func(c *JoinConfig) {
		c.Tolerance = tolerance
		c.HasTolerance = true
	}
}

// BuildJoinConfig applies opts to a default JoinConfig. Intended for engine
// implementations; callers should pass JoinOptions through unmodified.
func BuildJoinConfig(opts ...JoinOption) *JoinConfig {
	conf := &JoinConfig{
		How:      InnerJoin,
		Suffix:   "_right",
		Strategy: AsofBackward,
	}
	for _, opt := range opts {
		opt(conf)
	}
	return conf
}

// ConcatMethod identifies how Frames are combined by Concat
type ConcatMethod int

const (
	// VerticalConcat stacks Frames with identical schemas
	VerticalConcat ConcatMethod = iota
	// DiagonalConcat stacks Frames with differing schemas, filling missing columns with nil
	DiagonalConcat
)

// ConcatConfig configures a Frame concatenation
type ConcatConfig struct {
	Method ConcatMethod // Defaults to VerticalConcat
}

// A ConcatOption configures one aspect of a ConcatConfig
type ConcatOption func(*ConcatConfig)

// Method sets how Frames are combined
func Method(method ConcatMethod) ConcatOption {
	return func(c *ConcatConfig) {
		c.Method = method
	}
}

// BuildConcatConfig applies opts to a default ConcatConfig
func BuildConcatConfig(opts ...ConcatOption) *ConcatConfig {
	conf := &ConcatConfig{Method: VerticalConcat}
	for _, opt := range opts {
		opt(conf)
	}
	return conf
}

// PartitionConfig configures a PartitionBy operation
type PartitionConfig struct {
	Keyed       bool // return the KeyedShape mapping instead of the ordered ListShape
	IncludeKeys bool // keep key columns in the partitioned Frames. Defaults to true
}

// A PartitionOption configures one aspect of a PartitionConfig
type PartitionOption func(*PartitionConfig)

// Keyed requests the KeyedShape mapping result instead of the ordered list
func Keyed() PartitionOption {
	return func(c *PartitionConfig) {
		c.Keyed = true
	}
}

// DropKeys excludes the key columns from the partitioned Frames
func DropKeys() PartitionOption {
	return func(c *PartitionConfig) {
		c.IncludeKeys = false
	}
}

// BuildPartitionConfig applies opts to a default PartitionConfig
func BuildPartitionConfig(opts ...PartitionOption) *PartitionConfig {
	conf := &PartitionConfig{IncludeKeys: true}
	for _, opt := range opts {
		opt(conf)
	}
	return conf
}
