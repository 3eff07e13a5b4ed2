// Package gui is the fyne desktop form over the catalog: entry fields, a
// table of active records and the Register/Modify/Release/Clear/Search actions.
package gui

import (
	"context"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ajitpratap0/pokedex/internal/controller"
	"github.com/ajitpratap0/pokedex/internal/models"
)

var columns = []string{"ID", "NAME", "TYPE"}

// View implements controller.View with fyne widgets.
type View struct {
	window     fyne.Window
	controller *controller.Controller
	ctx        context.Context

	id      *widget.Entry
	name    *widget.Entry
	kind    *widget.Entry
	height  *widget.Entry
	weight  *widget.Entry
	ability *widget.Entry
	search  *widget.Entry

	table  *widget.Table
	status *widget.Label

	registerBtn *widget.Button
	modifyBtn   *widget.Button
	releaseBtn  *widget.Button
	clearBtn    *widget.Button
	searchBtn   *widget.Button

	records     []models.Pokemon
	selectedRow int
	syncing     bool

	content fyne.CanvasObject
}

var _ controller.View = (*View)(nil)

// NewView builds the widgets. Actions are inert until SetController.
func NewView(window fyne.Window) *View {
	v := &View{window: window, selectedRow: -1, ctx: context.Background()}
	v.setupComponents()
	v.setupLayout()
	return v
}

// SetController wires the actions to c. Store calls run under ctx.
func (v *View) SetController(ctx context.Context, c *controller.Controller) {
	v.ctx = ctx
	v.controller = c
	v.setupEventHandlers()
}

// Content returns the root canvas object.
func (v *View) Content() fyne.CanvasObject {
	return v.content
}

func (v *View) setupComponents() {
	v.id = newEntry("Pokédex number")
	v.name = newEntry("Name")
	v.kind = newEntry("Type")
	v.height = newEntry("Height (m)")
	v.weight = newEntry("Weight (kg)")
	v.ability = newEntry("Ability")
	v.search = newEntry("Search by name or ID")

	v.table = widget.NewTable(
		func() (int, int) { return len(v.records), len(columns) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(v.cellText(id))
		},
	)
	v.table.ShowHeaderRow = true
	v.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	v.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		if id.Col >= 0 && id.Col < len(columns) {
			o.(*widget.Label).SetText(columns[id.Col])
		}
	}
	v.table.SetColumnWidth(0, 70)
	v.table.SetColumnWidth(1, 260)
	v.table.SetColumnWidth(2, 140)

	v.status = widget.NewLabel("Ready")

	v.registerBtn = widget.NewButtonWithIcon("Register", theme.ContentAddIcon(), nil)
	v.modifyBtn = widget.NewButtonWithIcon("Modify", theme.DocumentSaveIcon(), nil)
	v.releaseBtn = widget.NewButtonWithIcon("Release", theme.DeleteIcon(), nil)
	v.clearBtn = widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), nil)
	v.searchBtn = widget.NewButtonWithIcon("Search", theme.SearchIcon(), nil)
}

func newEntry(placeholder string) *widget.Entry {
	e := widget.NewEntry()
	e.SetPlaceHolder(placeholder)
	return e
}

func (v *View) cellText(id widget.TableCellID) string {
	if id.Row < 0 || id.Row >= len(v.records) {
		return ""
	}
	p := v.records[id.Row]
	switch id.Col {
	case 0:
		return strconv.Itoa(p.ID)
	case 1:
		return p.Name
	case 2:
		return p.Type
	default:
		return ""
	}
}

func (v *View) setupLayout() {
	form := widget.NewForm(
		widget.NewFormItem("ID", v.id),
		widget.NewFormItem("Name", v.name),
		widget.NewFormItem("Type", v.kind),
		widget.NewFormItem("Height", v.height),
		widget.NewFormItem("Weight", v.weight),
		widget.NewFormItem("Ability", v.ability),
	)

	actions := container.NewGridWithColumns(4, v.registerBtn, v.modifyBtn, v.releaseBtn, v.clearBtn)
	searchBar := container.NewBorder(nil, nil, nil, v.searchBtn, v.search)

	top := container.NewVBox(form, actions, widget.NewSeparator(), searchBar)
	v.content = container.NewBorder(top, v.status, nil, nil, v.table)
}

func (v *View) setupEventHandlers() {
	if v.controller == nil {
		return
	}
	c := v.controller

	v.registerBtn.OnTapped = func() { _ = c.Register(v.ctx) }
	v.modifyBtn.OnTapped = func() { _ = c.Modify(v.ctx) }
	v.releaseBtn.OnTapped = func() { c.Release(v.ctx, nil) }
	v.clearBtn.OnTapped = func() {
		v.search.SetText("")
		c.Clear()
	}
	runSearch := func() { _, _ = c.Search(v.ctx, v.search.Text) }
	v.searchBtn.OnTapped = runSearch
	v.search.OnSubmitted = func(string) { runSearch() }

	v.table.OnSelected = func(id widget.TableCellID) {
		v.selectedRow = id.Row
		if !v.syncing {
			c.Select(id.Row)
		}
	}
	v.table.OnUnselected = func(widget.TableCellID) {
		v.selectedRow = -1
	}
}

// ShowRecords implements controller.View.
func (v *View) ShowRecords(records []models.Pokemon) {
	v.records = records
	v.table.Refresh()
}

// SetSelected implements controller.View.
func (v *View) SetSelected(index int) {
	if index == v.selectedRow {
		return
	}
	v.syncing = true
	defer func() { v.syncing = false }()

	if index < 0 {
		v.table.UnselectAll()
		v.selectedRow = -1
		return
	}
	v.table.Select(widget.TableCellID{Row: index, Col: 0})
	v.selectedRow = index
}

// Form implements controller.View.
func (v *View) Form() models.Form {
	return models.Form{
		ID:      v.id.Text,
		Name:    v.name.Text,
		Type:    v.kind.Text,
		Height:  v.height.Text,
		Weight:  v.weight.Text,
		Ability: v.ability.Text,
	}
}

// SetForm implements controller.View.
func (v *View) SetForm(f models.Form) {
	v.id.SetText(f.ID)
	v.name.SetText(f.Name)
	v.kind.SetText(f.Type)
	v.height.SetText(f.Height)
	v.weight.SetText(f.Weight)
	v.ability.SetText(f.Ability)
}

// Notify implements controller.View.
func (v *View) Notify(n controller.Notice) {
	v.status.SetText(n.Title + ": " + n.Message)
	dialog.ShowInformation(n.Title, n.Message, v.window)
}

// Confirm implements controller.View. onResult runs when the dialog closes.
func (v *View) Confirm(title, message string, onResult func(bool)) {
	dialog.ShowConfirm(title, message, onResult, v.window)
}
