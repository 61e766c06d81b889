// Package periodic holds the state behind the element table: the sorted
// collection, the filter, and the undo/redo history, persisted through a
// key-value Store.
//
// A Table is driven from a single goroutine. Front ends that run dialogs or
// timers elsewhere hand mutations back with a dispatch function (see Actions
// and FilterDebouncer).
package periodic

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
)

// Table is the state manager for the element collection.
type Table struct {
	store    Store
	ids      IDGenerator
	log      *slog.Logger
	onChange func()

	elements []Element
	filter   string
	history  History
}

// Option configures a Table.
type Option func(*Table)

// WithIDGenerator sets the generator used when seeding the default dataset.
func WithIDGenerator(ids IDGenerator) Option {
	return func(t *Table) { t.ids = ids }
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Table) { t.log = logger }
}

// WithOnChange registers a callback run after every state change, including
// filter changes.
func WithOnChange(fn func()) Option {
	return func(t *Table) { t.onChange = fn }
}

// NewTable returns an empty table over store. Call Initialize before use.
func NewTable(store Store, opts ...Option) *Table {
	t := &Table{
		store: store,
		ids:   UUIDGenerator{},
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetOnChange replaces the change callback.
func (t *Table) SetOnChange(fn func()) {
	t.onChange = fn
}

// Initialize loads the persisted collection and history. Missing or
// malformed data falls back to the default dataset, which is saved, and
// empty stacks.
func (t *Table) Initialize() error {
	elements, ok, err := t.loadElements()
	if err != nil {
		return err
	}
	if ok {
		t.elements = sortElements(elements)
	} else {
		t.elements = seedElements(t.ids)
		if err := t.saveElements(); err != nil {
			return err
		}
		t.log.Debug("seeded default dataset", "count", len(t.elements))
	}

	past, err := t.loadStack(HistoryKey)
	if err != nil {
		return err
	}
	future, err := t.loadStack(FutureKey)
	if err != nil {
		return err
	}
	t.history.restore(past, future)

	t.log.Debug("table initialized",
		"elements", len(t.elements),
		"history", len(past),
		"future", len(future))
	t.changed()
	return nil
}

func (t *Table) loadElements() ([]Element, bool, error) {
	raw, ok, err := t.store.Get(DataKey)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", DataKey, err)
	}
	if !ok || raw == "" {
		return nil, false, nil
	}
	var elements []Element
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		t.log.Warn("ignoring malformed persisted table", "key", DataKey, "error", err)
		return nil, false, nil
	}
	if elements == nil {
		elements = []Element{}
	}
	return elements, true, nil
}

func (t *Table) loadStack(key string) ([][]Element, error) {
	raw, ok, err := t.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var stack [][]Element
	if err := json.Unmarshal([]byte(raw), &stack); err != nil {
		t.log.Warn("ignoring malformed persisted history", "key", key, "error", err)
		return nil, nil
	}
	return stack, nil
}

// Add appends e as a new record. Validation is the caller's job.
func (t *Table) Add(e Element) error {
	t.record()
	next := append(cloneElements(t.elements), e)
	t.elements = sortElements(next)
	t.log.Info("element added", "id", e.ID, "name", e.Name)
	return t.commit()
}

// Edit replaces the record with the given id by patch. The record keeps its
// id. An unknown id returns ErrNotFound and changes nothing.
func (t *Table) Edit(id string, patch Element) error {
	idx := indexOf(t.elements, id)
	if idx < 0 {
		return fmt.Errorf("edit %s: %w", id, ErrNotFound)
	}
	t.record()
	next := cloneElements(t.elements)
	patch.ID = id
	next[idx] = patch
	t.elements = sortElements(next)
	t.log.Info("element edited", "id", id, "name", patch.Name)
	return t.commit()
}

// Remove drops the record with the given id. A missing id still records a
// history entry and leaves the collection as it was.
func (t *Table) Remove(id string) error {
	t.record()
	next := make([]Element, 0, len(t.elements))
	for _, e := range t.elements {
		if e.ID != id {
			next = append(next, e)
		}
	}
	t.elements = sortElements(next)
	t.log.Info("element removed", "id", id)
	return t.commit()
}

// Replace swaps in a whole new collection as a single undoable step.
func (t *Table) Replace(elements []Element) error {
	t.record()
	t.elements = sortElements(cloneElements(elements))
	t.log.Info("table replaced", "count", len(t.elements))
	return t.commit()
}

// Undo restores the collection from before the last mutation. It reports
// false, and does nothing, when there is no history.
func (t *Table) Undo() (bool, error) {
	prev, ok := t.history.Undo(t.elements)
	if !ok {
		return false, nil
	}
	t.elements = prev
	t.log.Info("undo", "history", t.history.PastLen(), "future", t.history.FutureLen())
	return true, t.commit()
}

// Redo re-applies the last undone mutation.
func (t *Table) Redo() (bool, error) {
	next, ok := t.history.Redo(t.elements)
	if !ok {
		return false, nil
	}
	t.elements = next
	t.log.Info("redo", "history", t.history.PastLen(), "future", t.history.FutureLen())
	return true, t.commit()
}

// Reset discards everything persisted and reseeds the default dataset with
// fresh ids. Both history stacks are cleared; only the new collection is
// written back.
func (t *Table) Reset() error {
	for _, key := range []string{DataKey, HistoryKey, FutureKey} {
		if err := t.store.Remove(key); err != nil {
			return fmt.Errorf("reset: remove %s: %w", key, err)
		}
	}
	t.elements = seedElements(t.ids)
	t.history.Clear()
	defer t.changed()
	if err := t.saveElements(); err != nil {
		return err
	}
	t.log.Info("table reset", "count", len(t.elements))
	return nil
}

// PushToServer would send the collection to a remote service. There is no
// remote; it saves locally and logs.
func (t *Table) PushToServer() error {
	if err := t.saveElements(); err != nil {
		return err
	}
	t.log.Info("push to server skipped: no remote configured", "count", len(t.elements))
	return nil
}

// SetFilter sets the active filter. The query is trimmed and lower-cased.
func (t *Table) SetFilter(query string) {
	q := NormalizeQuery(query)
	if q == t.filter {
		return
	}
	t.filter = q
	t.log.Debug("filter applied", "query", q)
	t.changed()
}

// Filter returns the active filter string.
func (t *Table) Filter() string { return t.filter }

// Visible returns the sorted records that match the active filter.
func (t *Table) Visible() []Element {
	return filterElements(t.elements, t.filter)
}

// Elements returns a copy of the whole sorted collection.
func (t *Table) Elements() []Element { return cloneElements(t.elements) }

func (t *Table) Len() int { return len(t.elements) }

// Lookup returns the record with the given id.
func (t *Table) Lookup(id string) (Element, error) {
	idx := indexOf(t.elements, id)
	if idx < 0 {
		return Element{}, fmt.Errorf("lookup %s: %w", id, ErrNotFound)
	}
	return t.elements[idx], nil
}

func (t *Table) CanUndo() bool   { return t.history.CanUndo() }
func (t *Table) CanRedo() bool   { return t.history.CanRedo() }
func (t *Table) HistoryLen() int { return t.history.PastLen() }
func (t *Table) FutureLen() int  { return t.history.FutureLen() }

// record snapshots the current collection before a mutation.
func (t *Table) record() {
	t.history.Push(t.elements)
}

// commit persists the collection and both stacks, then notifies.
func (t *Table) commit() error {
	defer t.changed()
	if err := t.saveElements(); err != nil {
		return err
	}
	return t.saveHistory()
}

func (t *Table) saveElements() error {
	b, err := json.Marshal(t.elements)
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	if err := t.store.Set(DataKey, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", DataKey, err)
	}
	return nil
}

func (t *Table) saveHistory() error {
	past, future := t.history.stacks()
	for _, s := range []struct {
		key   string
		stack [][]Element
	}{
		{HistoryKey, past},
		{FutureKey, future},
	} {
		stack := s.stack
		if stack == nil {
			stack = [][]Element{}
		}
		b, err := json.Marshal(stack)
		if err != nil {
			return fmt.Errorf("encode %s: %w", s.key, err)
		}
		if err := t.store.Set(s.key, string(b)); err != nil {
			return fmt.Errorf("save %s: %w", s.key, err)
		}
	}
	return nil
}

func (t *Table) changed() {
	if t.onChange != nil {
		t.onChange()
	}
}
