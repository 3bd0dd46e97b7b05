package dex

// DefaultMaxDepth bounds nesting of arrays and annotations in encoded values.
const DefaultMaxDepth = 1024

// MaxAllowedDepth is the largest MaxDepth honored. Larger values are clamped.
const MaxAllowedDepth = 65535

// Options configures decoding and validation.
type Options struct {
	// MaxDepth bounds how deeply encoded arrays and annotations may nest.
	// 0 means DefaultMaxDepth; values above MaxAllowedDepth are clamped.
	MaxDepth int

	// ValidateOrdering makes the decoder reject annotation elements and
	// directory entries that are not strictly ascending by index.
	ValidateOrdering bool

	// VerifyPrototypes makes ParsePrototype cross-check the shorty against
	// the full types.
	VerifyPrototypes bool

	// TypeCacheSize is the number of parsed type descriptors a Resolver keeps.
	// 0 means DefaultTypeCacheSize.
	TypeCacheSize int

	// Workers bounds concurrent class assembly. 0 means one per class up to
	// runtime.GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		MaxDepth:         DefaultMaxDepth,
		ValidateOrdering: true,
		VerifyPrototypes: true,
		TypeCacheSize:    DefaultTypeCacheSize,
	}
}

func (o Options) maxDepth() int {
	switch {
	case o.MaxDepth <= 0:
		return DefaultMaxDepth
	case o.MaxDepth > MaxAllowedDepth:
		return MaxAllowedDepth
	default:
		return o.MaxDepth
	}
}

func (o Options) typeCacheSize() int {
	if o.TypeCacheSize <= 0 {
		return DefaultTypeCacheSize
	}
	return o.TypeCacheSize
}
