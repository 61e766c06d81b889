package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/plusk0/periodic-table/src/periodic"
)

// colResizer is a small draggable widget used to resize columns.
type colResizer struct {
	widget.BaseWidget
	onDrag func(dx float32)
	rect   *canvas.Rectangle
}

func newColResizer(onDrag func(dx float32)) *colResizer {
	r := &colResizer{onDrag: onDrag}
	r.ExtendBaseWidget(r)
	return r
}

func (r *colResizer) CreateRenderer() fyne.WidgetRenderer {
	if r.rect == nil {
		r.rect = canvas.NewRectangle(color.NRGBA{R: 200, G: 200, B: 200, A: 200})
	}
	return &resizerRenderer{rect: r.rect, objs: []fyne.CanvasObject{r.rect}}
}

func (r *colResizer) Dragged(e *fyne.DragEvent) {
	if r.onDrag != nil {
		r.onDrag(e.Dragged.DX)
	}
}

func (r *colResizer) DragEnd() {}

type resizerRenderer struct {
	rect *canvas.Rectangle
	objs []fyne.CanvasObject
}

func (rr *resizerRenderer) MinSize() fyne.Size           { return fyne.NewSize(6, 24) }
func (rr *resizerRenderer) Layout(size fyne.Size)        { rr.rect.Resize(size) }
func (rr *resizerRenderer) Refresh()                     { rr.rect.Refresh() }
func (rr *resizerRenderer) Objects() []fyne.CanvasObject { return rr.objs }
func (rr *resizerRenderer) Destroy()                     {}

// rowOverlay is a transparent object over a row: a tap edits the row, a
// secondary tap asks to remove it.
type rowOverlay struct {
	canvas.Rectangle
	onTap          func()
	onTapSecondary func()
}

func (o *rowOverlay) Tapped(*fyne.PointEvent) {
	if o.onTap != nil {
		o.onTap()
	}
}

func (o *rowOverlay) TappedSecondary(*fyne.PointEvent) {
	if o.onTapSecondary != nil {
		o.onTapSecondary()
	}
}

func newRowOverlay(onTap, onTapSecondary func()) *rowOverlay {
	o := &rowOverlay{onTap: onTap, onTapSecondary: onTapSecondary}
	o.FillColor = color.Transparent
	o.StrokeColor = color.Transparent
	return o
}

// column describes one data column of the grid.
type column struct {
	label string
	value func(periodic.Element) string
	align fyne.TextAlign
}

var gridColumns = []column{
	{"Position", func(e periodic.Element) string { return strconv.Itoa(e.Position) }, fyne.TextAlignTrailing},
	{"Name", func(e periodic.Element) string { return e.Name }, fyne.TextAlignLeading},
	{"Weight", func(e periodic.Element) string { return periodic.FormatWeight(e.Weight) }, fyne.TextAlignTrailing},
	{"Symbol", func(e periodic.Element) string { return e.Symbol }, fyne.TextAlignLeading},
}

const (
	minColWidth      = 40.0
	singleLineHeight = 36.0
	actionsWidth     = 110.0
)

// tableView is the window: toolbar, filter box and the element grid.
type tableView struct {
	win     fyne.Window
	log     *slog.Logger
	table   *periodic.Table
	actions *periodic.Actions
	filter  *periodic.FilterDebouncer
	ids     periodic.IDGenerator
	ctx     context.Context

	rows      *fyne.Container
	colWidths []float32
	undoBtn   *widget.Button
	redoBtn   *widget.Button
	status    *widget.Label
}

// runWindow opens the desktop window over e's table and blocks until it is
// closed.
func runWindow(e *env) error {
	a := app.NewWithID("io.github.plusk0.periodic")
	win := a.NewWindow("Periodic Table")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	win.SetOnClosed(cancel)

	v := newTableView(ctx, win, e)
	win.SetContent(v.build())
	win.Resize(fyne.NewSize(e.cfg.WindowWidth, e.cfg.WindowHeight))
	win.ShowAndRun()
	return nil
}

func newTableView(ctx context.Context, win fyne.Window, e *env) *tableView {
	v := &tableView{
		win:   win,
		log:   e.log,
		table: e.table,
		ids:   e.ids,
		ctx:   ctx,
		rows:  container.NewVBox(),
	}
	v.colWidths = []float32{90, 180, 120, 90}
	v.actions = &periodic.Actions{
		Table:    e.table,
		Editor:   &fyneEditDialog{win: win},
		Confirm:  &fyneConfirmDialog{win: win},
		IDs:      e.ids,
		Dispatch: fyne.DoAndWait,
		Width:    e.cfg.DialogWidth,
	}
	v.filter = periodic.NewFilterDebouncer(e.table, nil, e.cfg.DebounceDelay(), fyne.Do)
	e.table.SetOnChange(v.refresh)
	return v
}

// build returns the window content.
func (v *tableView) build() fyne.CanvasObject {
	addBtn := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), func() {
		v.run("add element", v.actions.AddElement)
	})
	v.undoBtn = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), func() {
		if _, err := v.table.Undo(); err != nil {
			dialog.ShowError(err, v.win)
		}
	})
	v.redoBtn = widget.NewButtonWithIcon("Redo", theme.ContentRedoIcon(), func() {
		if _, err := v.table.Redo(); err != nil {
			dialog.ShowError(err, v.win)
		}
	})
	resetBtn := widget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), func() {
		v.run("reset table", v.actions.ResetTable)
	})
	pushBtn := widget.NewButtonWithIcon("Push", theme.UploadIcon(), func() {
		if err := v.table.PushToServer(); err != nil {
			dialog.ShowError(err, v.win)
			return
		}
		v.status.SetText("Saved")
	})
	openBtn := widget.NewButtonWithIcon("Open file", theme.FolderOpenIcon(), v.importFile)
	saveBtn := widget.NewButtonWithIcon("Save file", theme.DocumentSaveIcon(), v.exportFile)

	filterEntry := widget.NewEntry()
	filterEntry.SetPlaceHolder("Filter by name, symbol, position or weight")
	filterEntry.OnChanged = v.filter.Apply
	clearBtn := widget.NewButtonWithIcon("", theme.ContentClearIcon(), func() {
		filterEntry.OnChanged = nil
		filterEntry.SetText("")
		filterEntry.OnChanged = v.filter.Apply
		v.filter.Clear()
	})

	toolbar := container.NewHBox(addBtn, v.undoBtn, v.redoBtn, widget.NewSeparator(), resetBtn, pushBtn, widget.NewSeparator(), openBtn, saveBtn)
	filterBar := container.NewBorder(nil, nil, widget.NewIcon(theme.SearchIcon()), clearBtn, filterEntry)
	v.status = widget.NewLabel("")

	scroll := container.NewScroll(v.rows)
	scroll.SetMinSize(fyne.NewSize(600, 300))

	v.refresh()
	return container.NewBorder(container.NewVBox(toolbar, filterBar), v.status, nil, nil, scroll)
}

// run starts a dialog-driven action off the UI goroutine and reports its
// error back on it.
func (v *tableView) run(what string, action func(context.Context) (bool, error)) {
	go func() {
		if _, err := action(v.ctx); err != nil {
			if v.ctx.Err() != nil {
				return
			}
			v.log.Error(what+" failed", "error", err)
			fyne.Do(func() { dialog.ShowError(err, v.win) })
		}
	}()
}

// refresh re-renders the grid from the table. It runs on the UI goroutine.
func (v *tableView) refresh() {
	if v.undoBtn != nil {
		setEnabled(v.undoBtn, v.table.CanUndo())
		setEnabled(v.redoBtn, v.table.CanRedo())
	}
	visible := v.table.Visible()
	if v.status != nil {
		msg := fmt.Sprintf("%d of %d elements", len(visible), v.table.Len())
		if f := v.table.Filter(); f != "" {
			msg += fmt.Sprintf(" matching %q", f)
		}
		v.status.SetText(msg)
	}
	populateGrid(v, visible)
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

// populateGrid rebuilds header + rows in a VBox so header and cells use the
// same widths.
func populateGrid(v *tableView, elements []periodic.Element) {
	v.rows.Objects = nil

	headerBg := canvas.NewRectangle(color.NRGBA{R: 240, G: 240, B: 240, A: 20})
	headerRow := container.NewHBox()
	for ci, col := range gridColumns {
		label := widget.NewLabelWithStyle(col.label, col.align, fyne.TextStyle{Bold: true})
		cell := container.NewStack(headerBg, label)

		widx := ci
		res := newColResizer(func(dx float32) {
			newW := float32(math.Max(minColWidth, float64(v.colWidths[widx]+dx)))
			if newW != v.colWidths[widx] {
				v.colWidths[widx] = newW
				populateGrid(v, v.table.Visible())
			}
		})
		cellWrap := container.New(layout.NewGridWrapLayout(fyne.NewSize(v.colWidths[widx], singleLineHeight)), cell)
		headerRow.Add(container.NewHBox(cellWrap, res))
	}
	actionCell := container.NewStack(headerBg, widget.NewLabelWithStyle("Actions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	headerRow.Add(container.New(layout.NewGridWrapLayout(fyne.NewSize(actionsWidth, singleLineHeight)), actionCell))
	v.rows.Add(headerRow)

	if len(elements) == 0 {
		v.rows.Add(widget.NewLabel("No matching elements"))
	}

	for ri, el := range elements {
		// alternating row color
		var bg color.NRGBA
		if ri%2 == 0 {
			bg = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
		} else {
			bg = color.NRGBA{R: 245, G: 245, B: 255, A: 200}
		}

		id := el.ID
		editRow := func() {
			v.run("edit element", func(ctx context.Context) (bool, error) {
				return v.actions.EditElement(ctx, id)
			})
		}
		removeRow := func() {
			v.run("remove element", func(ctx context.Context) (bool, error) {
				return v.actions.RemoveElement(ctx, id)
			})
		}

		rowBox := container.NewHBox()
		for ci, col := range gridColumns {
			label := widget.NewLabelWithStyle(col.value(el), col.align, fyne.TextStyle{})
			label.Truncation = fyne.TextTruncateEllipsis
			cell := container.NewStack(canvas.NewRectangle(bg), label, newRowOverlay(editRow, removeRow))
			// the resizer beside each header cell takes space; keep cells aligned with it
			w := v.colWidths[ci] + theme.Padding() + 6
			rowBox.Add(container.New(layout.NewGridWrapLayout(fyne.NewSize(w, singleLineHeight)), cell))
		}

		editBtn := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), editRow)
		trash := widget.NewButtonWithIcon("", theme.DeleteIcon(), removeRow)
		actions := container.NewStack(canvas.NewRectangle(bg), container.NewHBox(editBtn, trash))
		rowBox.Add(container.New(layout.NewGridWrapLayout(fyne.NewSize(actionsWidth, singleLineHeight)), actions))

		v.rows.Add(rowBox)
	}

	v.rows.Refresh()
}

// storageFilterData returns a file dialog filter for the import formats.
func storageFilterData() storage.FileFilter {
	return storage.NewExtensionFileFilter([]string{".json", ".yaml", ".yml"})
}

// importFile replaces the table with a file's contents. The import is one
// undoable step.
func (v *tableView) importFile() {
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, v.win)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()
		elements, err := readImport(r, formatFor(r.URI().Name()), v.ids)
		if err != nil {
			dialog.ShowError(err, v.win)
			return
		}
		if err := v.table.Replace(elements); err != nil {
			dialog.ShowError(err, v.win)
			return
		}
		dialog.ShowInformation("Import", fmt.Sprintf("Imported %d elements", len(elements)), v.win)
	}, v.win)
	fd.SetFilter(storageFilterData())
	fd.Show()
}

// exportFile writes the visible rows to a .json or .yaml file.
func (v *tableView) exportFile() {
	fd := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, v.win)
			return
		}
		if w == nil {
			return
		}
		if err := writeExportTo(w, w.URI().Name(), v.table); err != nil {
			dialog.ShowError(err, v.win)
		}
	}, v.win)
	fd.SetFileName("elements.json")
	fd.Show()
}

func writeExportTo(w io.WriteCloser, name string, t *periodic.Table) error {
	if err := writeExport(w, formatFor(name), t.Visible(), t.Filter()); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
