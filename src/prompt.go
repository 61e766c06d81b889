package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/plusk0/periodic-table/src/periodic"
)

var errNotInteractive = errors.New("confirmation required: rerun with --yes or from a terminal")

// confirmMessages are shared by the terminal prompt and the window dialog.
var confirmMessages = map[periodic.ConfirmKind]struct{ title, text string }{
	periodic.ConfirmRemove: {"Remove element", "Remove this element from the table?"},
	periodic.ConfirmReset:  {"Reset table", "This will erase all changes and restore the default elements. Continue?"},
}

// terminalConfirm asks on the terminal, or answers yes when assumeYes is
// set.
type terminalConfirm struct {
	in          io.Reader
	out         io.Writer
	assumeYes   bool
	interactive bool
}

func newTerminalConfirm(in io.Reader, out io.Writer, assumeYes bool) *terminalConfirm {
	c := &terminalConfirm{in: in, out: out, assumeYes: assumeYes}
	if f, ok := in.(*os.File); ok {
		c.interactive = term.IsTerminal(int(f.Fd()))
	}
	return c
}

func (c *terminalConfirm) Confirm(ctx context.Context, req periodic.ConfirmRequest) (bool, error) {
	if c.assumeYes {
		return true, nil
	}
	if !c.interactive {
		return false, errNotInteractive
	}
	msg := confirmMessages[req.Kind]
	fmt.Fprintf(c.out, "%s [y/N]: ", msg.text)

	answer := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(c.in).ReadString('\n')
		answer <- line
	}()
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

// flagEditor plays the edit dialog for the CLI: the record comes from
// command line flags. It cannot keep a dialog open, so invalid input is an
// error.
type flagEditor struct {
	apply func(*periodic.Element)
}

func (f flagEditor) Edit(_ context.Context, req periodic.EditRequest) (periodic.Element, bool, error) {
	e := req.Element
	f.apply(&e)
	if err := e.Validate(); err != nil {
		return periodic.Element{}, false, err
	}
	return e, true, nil
}
