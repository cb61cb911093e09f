package container

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrIndexOutOfRange is matched by every *IndexError via errors.Is.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNothingToRender is returned by Render in strict mode when the
	// container has no occupied slot.
	ErrNothingToRender = errors.New("nothing to render: container has no occupied slots")
)

// IndexError reports an index that is negative or not less than the capacity.
type IndexError struct {
	Index    int
	Capacity int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Capacity)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
