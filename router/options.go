package router

import "fmt"

const (
	DefaultMaxHops       = 3
	DefaultMaxPaths      = 4
	DefaultSteps         = 100
	DefaultMaxCandidates = 256
)

// Options bounds the route search. Zero values take the defaults.
type Options struct {
	// MaxHops is the longest path, in pools, the search will consider.
	MaxHops int `yaml:"maxHops" json:"maxHops"`
	// MaxPaths is the number of pool-disjoint paths a trade may be split across.
	MaxPaths int `yaml:"maxPaths" json:"maxPaths"`
	// Steps is the number of increments the allocator splits the amount into.
	Steps int `yaml:"steps" json:"steps"`
	// MaxCandidates caps path enumeration.
	MaxCandidates int `yaml:"maxCandidates" json:"maxCandidates"`
}

// DefaultOptions returns the default search bounds.
func DefaultOptions() Options {
	return Options{
		MaxHops:       DefaultMaxHops,
		MaxPaths:      DefaultMaxPaths,
		Steps:         DefaultSteps,
		MaxCandidates: DefaultMaxCandidates,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxHops == 0 {
		o.MaxHops = DefaultMaxHops
	}
	if o.MaxPaths == 0 {
		o.MaxPaths = DefaultMaxPaths
	}
	if o.Steps == 0 {
		o.Steps = DefaultSteps
	}
	if o.MaxCandidates == 0 {
		o.MaxCandidates = DefaultMaxCandidates
	}
	return o
}

// SinglePath returns o limited to one path. A single router call executes exactly one
// path, so swap routes are searched with these options.
func (o Options) SinglePath() Options {
	o.MaxPaths = 1
	return o
}

// Validate rejects negative bounds.
func (o Options) Validate() error {
	if o.MaxHops < 0 || o.MaxPaths < 0 || o.Steps < 0 || o.MaxCandidates < 0 {
		return fmt.Errorf("router options must not be negative: %+v", o)
	}
	return nil
}
