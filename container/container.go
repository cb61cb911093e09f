// Package container provides Container, a generic resizable array with
// positional and value-based insertion and removal.
//
// The backing store has a fixed number of slots. Append writes at a cursor
// and grows the store when the cursor reaches the capacity; by default the
// store grows by exactly one slot at a time. Every slot carries an explicit
// occupied tag, so the zero value of T is an ordinary element and never
// stands for an empty slot.
//
// A Container is not safe for concurrent use. Callers sharing one between
// goroutines must synchronize access themselves.
package container

import (
	"fmt"
	"strings"
)

// NotFound is returned by IndexOf when no occupied slot holds the value.
const NotFound = -1

type slot[T comparable] struct {
	value    T
	occupied bool
}

// Stats counts the work done by growth events.
type Stats struct {
	// Grows is the number of times the backing store was reallocated.
	Grows int

	// SlotsCopied is the total number of slots copied into new backing stores.
	SlotsCopied int
}

// Container is a resizable array of T.
type Container[T comparable] struct {
	slots    []slot[T]
	size     int // capacity, always len(slots)
	cursor   int // next slot Append writes to
	occupied int // number of occupied slots
	config   Config
	stats    Stats
}

// New creates a Container with DefaultCapacity slots unless
// OptionInitialCapacity says otherwise.
func New[T comparable](opts ...Option) *Container[T] {
	return newContainer[T](Options(opts).Config())
}

// WithCapacity creates a Container with n slots. A negative n yields an
// empty backing store.
func WithCapacity[T comparable](n int, opts ...Option) *Container[T] {
	cfg := Options(opts).Config()
	cfg.InitialCapacity = n
	return newContainer[T](cfg)
}

func newContainer[T comparable](cfg Config) *Container[T] {
	size := max(cfg.InitialCapacity, 0)
	return &Container[T]{
		slots:  make([]slot[T], size),
		size:   size,
		config: cfg,
	}
}

// Append writes v at the cursor, growing the store first when it is full.
func (c *Container[T]) Append(v T) {
	if c.isFull() {
		c.expand()
	}
	c.put(c.cursor, v)
	c.cursor++
}

// Insert shifts every slot from at onward one position right and writes v
// at at. Every successful Insert grows the store, so no element is ever
// shifted off the end.
func (c *Container[T]) Insert(v T, at int) error {
	if err := c.checkIndex(at); err != nil {
		return err
	}
	c.expand()
	c.shiftRight(at)
	c.put(at, v)
	return nil
}

// RemoveAt removes the element at at. Later slots move one position left
// and the final slot becomes empty.
func (c *Container[T]) RemoveAt(at int) error {
	if err := c.checkIndex(at); err != nil {
		return err
	}
	c.shiftLeft(at)
	return nil
}

// RemoveValue removes occurrences of v according to the configured Removal
// mode and reports how many elements were removed. It is a no-op when v is
// absent.
func (c *Container[T]) RemoveValue(v T) int {
	if c.config.Removal == RemovalScan {
		return c.removeScan(v)
	}
	return c.removeFilter(v)
}

// Get returns the element at at. An empty slot yields the zero value of T;
// use Occupied to tell the two apart.
func (c *Container[T]) Get(at int) (T, error) {
	if err := c.checkIndex(at); err != nil {
		var zero T
		return zero, err
	}
	return c.slots[at].value, nil
}

// Set overwrites the slot at at with v.
func (c *Container[T]) Set(v T, at int) error {
	if err := c.checkIndex(at); err != nil {
		return err
	}
	c.put(at, v)
	return nil
}

// Occupied reports whether the slot at at holds an element.
func (c *Container[T]) Occupied(at int) (bool, error) {
	if err := c.checkIndex(at); err != nil {
		return false, err
	}
	return c.slots[at].occupied, nil
}

// IndexOf returns the lowest index whose slot holds v, or NotFound.
func (c *Container[T]) IndexOf(v T) int {
	for i := 0; i < c.size; i++ {
		if c.matches(i, v) {
			return i
		}
	}
	return NotFound
}

// Length returns the capacity of the container, not the number of elements
// it holds. It is the same value as Cap; see Len for the element count.
func (c *Container[T]) Length() int {
	return c.size
}

// Cap returns the number of allocated slots.
func (c *Container[T]) Cap() int {
	return c.size
}

// Len returns the number of occupied slots.
func (c *Container[T]) Len() int {
	return c.occupied
}

// Cursor returns the index Append writes to next.
func (c *Container[T]) Cursor() int {
	return c.cursor
}

// Stats returns the growth work done so far.
func (c *Container[T]) Stats() Stats {
	return c.stats
}

// Render formats the occupied slots in storage order as "[e0, e1, ...]".
// In strict mode an empty container fails with ErrNothingToRender; otherwise
// it renders as "[]".
func (c *Container[T]) Render() (string, error) {
	if c.occupied == 0 && c.config.StrictRender {
		return "", ErrNothingToRender
	}
	return c.render(), nil
}

// String is Render without the strict mode check.
func (c *Container[T]) String() string {
	return c.render()
}

func (c *Container[T]) render() string {
	var s strings.Builder
	s.WriteByte('[')
	n := 0
	for _, sl := range c.slots {
		if !sl.occupied {
			continue
		}
		if n > 0 {
			s.WriteString(", ")
		}
		s.WriteString(fmt.Sprint(sl.value))
		n++
	}
	s.WriteByte(']')
	return s.String()
}

func (c *Container[T]) removeFilter(v T) int {
	var matched []int
	for i := 0; i < c.size; i++ {
		if c.matches(i, v) {
			matched = append(matched, i)
		}
	}
	// back to front, so earlier indices stay valid
	for i := len(matched) - 1; i >= 0; i-- {
		c.shiftLeft(matched[i])
	}
	return len(matched)
}

func (c *Container[T]) removeScan(v T) int {
	removed := 0
	for i := 0; i < c.size; i++ {
		if c.matches(i, v) {
			c.shiftLeft(i)
			removed++
		}
	}
	return removed
}

func (c *Container[T]) matches(i int, v T) bool {
	return c.slots[i].occupied && c.slots[i].value == v
}

func (c *Container[T]) checkIndex(at int) error {
	if at < 0 || at >= c.size {
		return &IndexError{Index: at, Capacity: c.size}
	}
	return nil
}

func (c *Container[T]) isFull() bool {
	return c.cursor >= c.size
}

func (c *Container[T]) put(at int, v T) {
	if !c.slots[at].occupied {
		c.occupied++
	}
	c.slots[at] = slot[T]{value: v, occupied: true}
}

// expand reallocates the backing store according to the growth policy and
// copies every slot to the same position.
func (c *Container[T]) expand() {
	newSize := c.size + 1
	if c.config.Growth == GrowthDoubling {
		newSize = max(1, 2*c.size)
	}
	slots := make([]slot[T], newSize)
	c.stats.SlotsCopied += copy(slots, c.slots)
	c.stats.Grows++
	c.slots = slots
	c.size = newSize
}

// shiftRight moves slots [at, size-1) to [at+1, size) and leaves at empty.
// The last slot must be empty on entry.
func (c *Container[T]) shiftRight(at int) {
	copy(c.slots[at+1:], c.slots[at:c.size-1])
	c.slots[at] = slot[T]{}
	if at <= c.cursor {
		c.cursor++
	}
}

// shiftLeft drops the slot at at, moves the following slots one position
// left and clears the final slot.
func (c *Container[T]) shiftLeft(at int) {
	if c.slots[at].occupied {
		c.occupied--
	}
	copy(c.slots[at:], c.slots[at+1:])
	c.slots[c.size-1] = slot[T]{}
	if at < c.cursor {
		c.cursor--
	}
}
