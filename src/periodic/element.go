package periodic

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidElement is returned by Validate when a record breaks the
// position/weight constraints.
var ErrInvalidElement = errors.New("invalid element")

// ErrNotFound is returned when an operation names an id that is not in the
// live collection.
var ErrNotFound = errors.New("element not found")

// Element is one row of the table.
type Element struct {
	ID       string  `json:"id" yaml:"id"`
	Position int     `json:"position" yaml:"position"`
	Name     string  `json:"name" yaml:"name"`
	Weight   float64 `json:"weight" yaml:"weight"`
	Symbol   string  `json:"symbol" yaml:"symbol"`
}

// Validate checks the constraints enforced when a record is edited.
// Records loaded from storage are not re-validated.
func (e Element) Validate() error {
	if e.Position <= 0 {
		return fmt.Errorf("%w: position must be greater than zero", ErrInvalidElement)
	}
	if e.Weight < 0 {
		return fmt.Errorf("%w: weight must be greater than or equal to zero", ErrInvalidElement)
	}
	return nil
}

// sortElements orders elements in place by position, then weight.
func sortElements(elements []Element) []Element {
	sort.SliceStable(elements, func(i, j int) bool {
		if elements[i].Position == elements[j].Position {
			return elements[i].Weight < elements[j].Weight
		}
		return elements[i].Position < elements[j].Position
	})
	return elements
}

// cloneElements returns a copy that shares nothing with src.
func cloneElements(src []Element) []Element {
	out := make([]Element, len(src))
	copy(out, src)
	return out
}

func indexOf(elements []Element, id string) int {
	for i, e := range elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}
