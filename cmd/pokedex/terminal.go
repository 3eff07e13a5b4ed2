package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ajitpratap0/pokedex/internal/controller"
	"github.com/ajitpratap0/pokedex/internal/models"
)

// terminalView implements controller.View on a terminal. Records are kept
// until print is called; confirmations read a y/N answer from in.
type terminalView struct {
	out       io.Writer
	errOut    io.Writer
	in        *bufio.Reader
	assumeYes bool

	form     models.Form
	records  []models.Pokemon
	selected int
}

var _ controller.View = (*terminalView)(nil)

func newTerminalView(out, errOut io.Writer, in io.Reader) *terminalView {
	return &terminalView{
		out:      out,
		errOut:   errOut,
		in:       bufio.NewReader(in),
		selected: -1,
	}
}

func (v *terminalView) ShowRecords(records []models.Pokemon) { v.records = records }
func (v *terminalView) SetSelected(index int)                { v.selected = index }
func (v *terminalView) Form() models.Form                    { return v.form }
func (v *terminalView) SetForm(f models.Form)                { v.form = f }

func (v *terminalView) Notify(n controller.Notice) {
	w := v.out
	if n.Severity != controller.SeverityInfo {
		w = v.errOut
	}
	fmt.Fprintf(w, "%s: %s\n", n.Title, n.Message)
}

func (v *terminalView) Confirm(title, message string, onResult func(bool)) {
	if v.assumeYes {
		onResult(true)
		return
	}
	fmt.Fprintf(v.out, "%s: %s [y/N]: ", title, message)
	line, err := v.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(v.out)
		onResult(false)
		return
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		onResult(true)
	default:
		onResult(false)
	}
}

// print writes the displayed records as an aligned table.
func (v *terminalView) print() error {
	if len(v.records) == 0 {
		_, err := fmt.Fprintln(v.out, "No Pokémon found.")
		return err
	}

	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tHEIGHT\tWEIGHT\tABILITY")
	for _, p := range v.records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Type,
			strconv.FormatFloat(p.Height, 'f', -1, 64),
			strconv.FormatFloat(p.Weight, 'f', -1, 64),
			p.Ability)
	}
	return tw.Flush()
}

// printJSON writes the displayed records as a JSON array.
func (v *terminalView) printJSON() error {
	records := v.records
	if records == nil {
		records = []models.Pokemon{}
	}
	enc := json.NewEncoder(v.out)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
