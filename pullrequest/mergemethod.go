package pullrequest

import (
	"errors"
	"fmt"
)

// ErrUnknownMergeMethod is returned for values outside
// Merge, Rebase and Squash.
var ErrUnknownMergeMethod = errors.New("unknown merge method")

// MergeMethod is the strategy GitHub uses to integrate
// a pull request into its base branch.
type MergeMethod int

const (
	// Merge creates a merge commit.
	Merge MergeMethod = iota
	// Rebase rebases the head commits onto the base
	// branch.
	Rebase
	// Squash squashes the head commits into one.
	Squash
)

var mergeMethodNames = map[MergeMethod]string{
	Merge:  "merge",
	Rebase: "rebase",
	Squash: "squash",
}

// String returns the wire token, or a diagnostic form
// for unknown values.
func (m MergeMethod) String() string {
	if name, ok := mergeMethodNames[m]; ok {
		return name
	}

	return fmt.Sprintf("MergeMethod(%d)", int(m))
}

// Valid reports whether m is one of the three known
// strategies.
func (m MergeMethod) Valid() bool {
	_, ok := mergeMethodNames[m]

	return ok
}

// MarshalText encodes m as "merge", "rebase" or
// "squash".
func (m MergeMethod) MarshalText() ([]byte, error) {
	name, ok := mergeMethodNames[m]
	if !ok {
		return nil, fmt.Errorf(
			"%w: %d", ErrUnknownMergeMethod, int(m),
		)
	}

	return []byte(name), nil
}

// UnmarshalText is the inverse of MarshalText.
func (m *MergeMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseMergeMethod(string(text))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

// ParseMergeMethod maps a wire token back to its
// MergeMethod. Matching is exact.
func ParseMergeMethod(s string) (MergeMethod, error) {
	for m, name := range mergeMethodNames {
		if name == s {
			return m, nil
		}
	}

	return 0, fmt.Errorf(
		"%w: %q", ErrUnknownMergeMethod, s,
	)
}
