package periodic

import (
	"context"
	"fmt"
)

// DialogWidth is the width the edit and confirm dialogs are opened with.
const DialogWidth = 330

// EditRequest describes the record handed to an EditDialog.
type EditRequest struct {
	Element Element
	// IsNew is set when the record is a fresh skeleton for Add.
	IsNew bool
	Width float32
}

// EditDialog collects one record's fields from the user. It returns the
// edited record and true when the user saved a valid record, or false when
// the dialog was cancelled. Edit blocks until the dialog closes.
type EditDialog interface {
	Edit(ctx context.Context, req EditRequest) (Element, bool, error)
}

// ConfirmKind tells a ConfirmDialog which destructive action it guards.
type ConfirmKind int

const (
	ConfirmRemove ConfirmKind = iota
	ConfirmReset
)

func (k ConfirmKind) String() string {
	switch k {
	case ConfirmRemove:
		return "remove"
	case ConfirmReset:
		return "reset"
	default:
		return fmt.Sprintf("ConfirmKind(%d)", int(k))
	}
}

type ConfirmRequest struct {
	Kind  ConfirmKind
	Width float32
}

// ConfirmDialog asks the user to confirm a destructive action. Confirm
// blocks until the dialog closes.
type ConfirmDialog interface {
	Confirm(ctx context.Context, req ConfirmRequest) (bool, error)
}

// Actions runs the user-level flows: open a dialog, wait for the answer,
// then apply the mutation through dispatch on the table's goroutine.
//
// The methods block on the dialogs, so a UI calls them from a goroutine of
// their own.
type Actions struct {
	Table    *Table
	Editor   EditDialog
	Confirm  ConfirmDialog
	IDs      IDGenerator
	Dispatch func(func())
	// Width is passed to the dialogs; zero means DialogWidth.
	Width float32
}

// AddElement opens the editor on a blank record with a fresh id and adds
// the result. It reports whether a record was added.
func (a *Actions) AddElement(ctx context.Context) (bool, error) {
	req := EditRequest{
		Element: Element{ID: a.ids().NewID()},
		IsNew:   true,
		Width:   a.width(),
	}
	e, ok, err := a.Editor.Edit(ctx, req)
	if err != nil || !ok {
		return false, err
	}
	return true, a.apply(func() error { return a.Table.Add(e) })
}

// EditElement opens the editor on the record with the given id and stores
// the result.
func (a *Actions) EditElement(ctx context.Context, id string) (bool, error) {
	var current Element
	var lookupErr error
	a.dispatch(func() { current, lookupErr = a.Table.Lookup(id) })
	if lookupErr != nil {
		return false, lookupErr
	}
	e, ok, err := a.Editor.Edit(ctx, EditRequest{Element: current, Width: a.width()})
	if err != nil || !ok {
		return false, err
	}
	return true, a.apply(func() error { return a.Table.Edit(id, e) })
}

// RemoveElement asks for confirmation and removes the record.
func (a *Actions) RemoveElement(ctx context.Context, id string) (bool, error) {
	yes, err := a.Confirm.Confirm(ctx, ConfirmRequest{Kind: ConfirmRemove, Width: a.width()})
	if err != nil || !yes {
		return false, err
	}
	return true, a.apply(func() error { return a.Table.Remove(id) })
}

// ResetTable asks for confirmation and resets the table to the default
// dataset.
func (a *Actions) ResetTable(ctx context.Context) (bool, error) {
	yes, err := a.Confirm.Confirm(ctx, ConfirmRequest{Kind: ConfirmReset, Width: 250})
	if err != nil || !yes {
		return false, err
	}
	return true, a.apply(a.Table.Reset)
}

func (a *Actions) apply(fn func() error) error {
	var err error
	a.dispatch(func() { err = fn() })
	return err
}

func (a *Actions) dispatch(fn func()) {
	if a.Dispatch == nil {
		fn()
		return
	}
	a.Dispatch(fn)
}

func (a *Actions) width() float32 {
	if a.Width <= 0 {
		return DialogWidth
	}
	return a.Width
}

func (a *Actions) ids() IDGenerator {
	if a.IDs == nil {
		return UUIDGenerator{}
	}
	return a.IDs
}
