package main

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/plusk0/periodic-table/src/periodic"
)

var (
	errPositionNumber = errors.New("position must be a whole number")
	errPositionRange  = errors.New("position must be greater than zero")
	errWeightNumber   = errors.New("weight must be a number")
	errWeightRange    = errors.New("weight must be greater than or equal to zero")
)

func parsePosition(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errPositionNumber
	}
	if p <= 0 {
		return 0, errPositionRange
	}
	return p, nil
}

func parseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errWeightNumber
	}
	if w < 0 {
		return 0, errWeightRange
	}
	return w, nil
}

type editResult struct {
	element periodic.Element
	ok      bool
}

// fyneEditDialog is the window's periodic.EditDialog. The form keeps its
// Save button disabled and shows the reason while a field is invalid.
type fyneEditDialog struct {
	win fyne.Window
}

func (d *fyneEditDialog) Edit(ctx context.Context, req periodic.EditRequest) (periodic.Element, bool, error) {
	result := make(chan editResult, 1)
	fyne.Do(func() { d.show(req, result) })
	select {
	case <-ctx.Done():
		return periodic.Element{}, false, ctx.Err()
	case r := <-result:
		return r.element, r.ok, nil
	}
}

func (d *fyneEditDialog) show(req periodic.EditRequest, result chan<- editResult) {
	position := widget.NewEntry()
	weight := widget.NewEntry()
	if !req.IsNew {
		position.SetText(strconv.Itoa(req.Element.Position))
		weight.SetText(periodic.FormatWeight(req.Element.Weight))
	}
	position.Validator = func(s string) error { _, err := parsePosition(s); return err }
	weight.Validator = func(s string) error { _, err := parseWeight(s); return err }

	name := widget.NewEntry()
	name.SetText(req.Element.Name)
	symbol := widget.NewEntry()
	symbol.SetText(req.Element.Symbol)

	items := []*widget.FormItem{
		{Text: "Position", Widget: position, HintText: "Greater than zero"},
		{Text: "Name", Widget: name},
		{Text: "Weight", Widget: weight, HintText: "Zero or more"},
		{Text: "Symbol", Widget: symbol},
	}

	title := "Edit element"
	if req.IsNew {
		title = "Add element"
	}
	dlg := dialog.NewForm(title, "Save", "Cancel", items, func(save bool) {
		if !save {
			result <- editResult{}
			return
		}
		e := req.Element
		var err error
		if e.Position, err = parsePosition(position.Text); err != nil {
			dialog.ShowError(err, d.win)
			result <- editResult{}
			return
		}
		if e.Weight, err = parseWeight(weight.Text); err != nil {
			dialog.ShowError(err, d.win)
			result <- editResult{}
			return
		}
		e.Name = strings.TrimSpace(name.Text)
		e.Symbol = strings.TrimSpace(symbol.Text)
		result <- editResult{element: e, ok: true}
	}, d.win)
	dlg.Resize(fyne.NewSize(req.Width, dlg.MinSize().Height))
	dlg.Show()
	d.win.Canvas().Focus(position)
}

// fyneConfirmDialog is the window's periodic.ConfirmDialog.
type fyneConfirmDialog struct {
	win fyne.Window
}

func (d *fyneConfirmDialog) Confirm(ctx context.Context, req periodic.ConfirmRequest) (bool, error) {
	result := make(chan bool, 1)
	fyne.Do(func() {
		msg := confirmMessages[req.Kind]
		dlg := dialog.NewConfirm(msg.title, msg.text, func(yes bool) { result <- yes }, d.win)
		dlg.Resize(fyne.NewSize(req.Width, dlg.MinSize().Height))
		dlg.Show()
	})
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case yes := <-result:
		return yes, nil
	}
}
