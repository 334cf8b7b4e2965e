package lift

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options configures the lambda-lifting pass. The zero value is not
// valid; use DefaultOptions or LoadOptions.
type Options struct {
	// SupercombinatorHint is the name-supply hint used when minting a
	// freshly abstracted supercombinator (spec.md §4.2 uses "#sc").
	SupercombinatorHint string `yaml:"supercombinator_hint"`

	// DeterministicOrder sorts a binding's captured free variables by
	// name before building its supercombinator's parameter list and
	// call site. spec.md §9 allows either choice as long as the
	// parameter list and the call site agree; this repository always
	// keeps them in agreement (see DESIGN.md) regardless of this
	// setting. Disabling it does not select an alternate deterministic
	// order — captureList (abstract.go) falls back to Go's randomized
	// map iteration, so capture order becomes genuinely nondeterministic
	// across runs, consistent only within a single run's transform, the
	// same nondeterminism spec.md §9 attributes to the reference
	// implementation's unordered map.
	DeterministicOrder bool `yaml:"deterministic_order"`
}

// DefaultOptions returns the options the driver uses when none are
// supplied explicitly.
func DefaultOptions() Options {
	return Options{
		SupercombinatorHint: "#sc",
		DeterministicOrder:  true,
	}
}

// LoadOptions reads Options from a YAML file, following the teacher's
// eval_harness.LoadSpec shape: read, unmarshal over DefaultOptions (so
// a field the file omits keeps its default), validate. A
// supercombinator_hint that is present but empty is an error.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read lift config: %w", err)
	}

	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("failed to parse lift config YAML: %w", err)
	}

	if opts.SupercombinatorHint == "" {
		return Options{}, fmt.Errorf("lift config missing required field: supercombinator_hint")
	}

	return opts, nil
}
