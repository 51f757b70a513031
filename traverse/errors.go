package traverse

import "github.com/pkg/errors"

var (
	// ErrIndexOutOfRange is returned by ElementSet.At for an index outside
	// [0, Len()).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidSpec is returned by Traverse for a Spec that cannot run,
	// such as Closest without a predicate.
	ErrInvalidSpec = errors.New("invalid traversal spec")
)
