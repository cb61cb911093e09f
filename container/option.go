package container

// DefaultCapacity is the capacity New allocates when no OptionInitialCapacity is given.
const DefaultCapacity = 10

// Growth selects how the backing store grows once every slot is in use.
type Growth int

const (
	// GrowthLinear adds exactly one slot per growth event. Appending n
	// elements past the initial capacity costs O(n²) copies in total.
	GrowthLinear Growth = iota

	// GrowthDoubling doubles the capacity (or allocates one slot when the
	// capacity is zero), giving amortized O(1) appends.
	GrowthDoubling
)

// String returns the name used for the policy in configuration files.
func (g Growth) String() string {
	switch g {
	case GrowthLinear:
		return "linear"
	case GrowthDoubling:
		return "doubling"
	default:
		return "unknown growth"
	}
}

// Removal selects how RemoveValue walks the container.
type Removal int

const (
	// RemovalFilter removes every occurrence of the value.
	RemovalFilter Removal = iota

	// RemovalScan removes matches while scanning forward over the slots.
	// Because each removal shifts the tail left, an occurrence directly
	// following a removed one is skipped.
	RemovalScan
)

// String returns the name used for the mode in configuration files.
func (r Removal) String() string {
	switch r {
	case RemovalFilter:
		return "filter"
	case RemovalScan:
		return "scan"
	default:
		return "unknown removal"
	}
}

// Config is a configuration of a Container.
type Config struct {
	// InitialCapacity is the number of slots allocated up front.
	// Negative values are treated as zero.
	InitialCapacity int

	// Growth is the policy applied when the store runs out of slots.
	Growth Growth

	// Removal is the mode RemoveValue uses.
	Removal Removal

	// StrictRender makes Render fail with ErrNothingToRender when no slot
	// is occupied instead of returning "[]".
	StrictRender bool
}

// DefaultConfig returns the configuration New starts from.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: DefaultCapacity,
		Growth:          GrowthLinear,
		Removal:         RemovalFilter,
	}
}

// Option changes a Config.
type Option interface {
	apply(*Config)
}

// Options is a helper wrapper around []Option.
type Options []Option

func (opts Options) apply(cfg *Config) {
	for _, opt := range opts {
		opt.apply(cfg)
	}
}

// Config returns DefaultConfig with every option applied in order.
func (opts Options) Config() Config {
	cfg := DefaultConfig()
	opts.apply(&cfg)
	return cfg
}

// OptionInitialCapacity sets Config.InitialCapacity.
type OptionInitialCapacity int

func (o OptionInitialCapacity) apply(cfg *Config) {
	cfg.InitialCapacity = int(o)
}

// OptionGrowth sets Config.Growth.
type OptionGrowth Growth

func (o OptionGrowth) apply(cfg *Config) {
	cfg.Growth = Growth(o)
}

// OptionRemoval sets Config.Removal.
type OptionRemoval Removal

func (o OptionRemoval) apply(cfg *Config) {
	cfg.Removal = Removal(o)
}

// OptionStrictRender sets Config.StrictRender.
type OptionStrictRender bool

func (o OptionStrictRender) apply(cfg *Config) {
	cfg.StrictRender = bool(o)
}
