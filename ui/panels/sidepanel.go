// Package panels provides the side panel shown next to the timeline canvas.
package panels

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"ideatlas/internal/app"
	"ideatlas/internal/model"
)

// SidePanel hosts the thinker property sheet and the filter controls.
type SidePanel struct {
	state *app.State
	root  fyne.CanvasObject

	sheet   *PropertySheet
	filters *filterSection
	checks  map[model.ConnectionType]*widget.Check
}

// NewSidePanel creates the side panel over the application state.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{
		state:  state,
		checks: make(map[model.ConnectionType]*widget.Check),
	}

	sp.sheet = NewPropertySheet(state)
	sp.filters = newFilterSection(state)

	connBox := container.NewVBox()
	for _, ct := range model.ConnectionTypes() {
		ct := ct
		check := widget.NewCheck(string(ct), func(on bool) {
			visible := sp.state.Selection.ConnectionVisible(model.Connection{Type: ct})
			if on != visible {
				sp.state.ToggleConnectionType(ct)
			}
		})
		check.SetChecked(true)
		sp.checks[ct] = check
		connBox.Add(check)
	}

	sp.root = container.NewVScroll(container.NewVBox(
		widget.NewCard("Selected Thinker", "", sp.sheet.Widget()),
		widget.NewCard("Filters", "", sp.filters.widget()),
		widget.NewCard("Connections", "", connBox),
	))

	state.On(app.EventSelectionChanged, func(interface{}) { sp.refreshChecks() })

	return sp
}

// Container returns the panel widget for embedding.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.root
}

func (sp *SidePanel) refreshChecks() {
	for ct, check := range sp.checks {
		visible := sp.state.Selection.ConnectionVisible(model.Connection{Type: ct})
		if check.Checked != visible {
			check.SetChecked(visible)
		}
	}
}

// PropertySheet displays the selected thinker's fields.
type PropertySheet struct {
	state *app.State
	box   fyne.CanvasObject

	nameLabel  *widget.Label
	yearsLabel *widget.Label
	fieldLabel *widget.Label
	tagsLabel  *widget.Label
	bioLabel   *widget.Label
}

// NewPropertySheet creates the property sheet bound to the selection.
func NewPropertySheet(state *app.State) *PropertySheet {
	ps := &PropertySheet{
		state:      state,
		nameLabel:  widget.NewLabel(""),
		yearsLabel: widget.NewLabel(""),
		fieldLabel: widget.NewLabel(""),
		tagsLabel:  widget.NewLabel(""),
		bioLabel:   widget.NewLabel(""),
	}
	ps.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	ps.bioLabel.Wrapping = fyne.TextWrapWord

	ps.box = container.NewVBox(
		ps.nameLabel,
		ps.yearsLabel,
		ps.fieldLabel,
		ps.tagsLabel,
		ps.bioLabel,
	)

	ps.refresh()
	state.On(app.EventSelectionChanged, func(interface{}) { ps.refresh() })
	state.On(app.EventDataChanged, func(interface{}) { ps.refresh() })

	return ps
}

// Widget returns the sheet widget for embedding.
func (ps *PropertySheet) Widget() fyne.CanvasObject {
	return ps.box
}

func (ps *PropertySheet) refresh() {
	th := ps.selected()
	if th == nil {
		ps.nameLabel.SetText("(nothing selected)")
		ps.yearsLabel.SetText("")
		ps.fieldLabel.SetText("")
		ps.tagsLabel.SetText("")
		ps.bioLabel.SetText("")
		return
	}

	ps.nameLabel.SetText(th.Name)
	ps.yearsLabel.SetText(lifespan(*th))
	ps.fieldLabel.SetText(th.Field)
	ps.tagsLabel.SetText(strings.Join(th.Tags, ", "))
	ps.bioLabel.SetText(th.Biography)
}

func (ps *PropertySheet) selected() *model.Thinker {
	id := ps.state.Selection.SelectedID
	if id == "" {
		return nil
	}
	for i := range ps.state.Thinkers {
		if ps.state.Thinkers[i].ID == id {
			return &ps.state.Thinkers[i]
		}
	}
	return nil
}

// lifespan formats the thinker's dating for display.
func lifespan(t model.Thinker) string {
	switch {
	case t.BirthYear != nil && t.DeathYear != nil:
		return fmt.Sprintf("%s to %s", formatYear(*t.BirthYear), formatYear(*t.DeathYear))
	case t.BirthYear != nil:
		return "b. " + formatYear(*t.BirthYear)
	case t.DeathYear != nil:
		return "d. " + formatYear(*t.DeathYear)
	case t.AnchorYear != nil:
		return "fl. " + formatYear(*t.AnchorYear)
	}
	return "undated"
}

func formatYear(y int) string {
	if y < 0 {
		return fmt.Sprintf("%d BCE", -y)
	}
	return strconv.Itoa(y)
}

// filterSection edits the year-range, field, and alive-at predicates. The
// search box lives in the toolbar; the timeline scope in its selector.
type filterSection struct {
	state *app.State

	fieldEntry *widget.Entry
	fromEntry  *widget.Entry
	toEntry    *widget.Entry
	aliveEntry *widget.Entry
}

func newFilterSection(state *app.State) *filterSection {
	fs := &filterSection{
		state:      state,
		fieldEntry: widget.NewEntry(),
		fromEntry:  widget.NewEntry(),
		toEntry:    widget.NewEntry(),
		aliveEntry: widget.NewEntry(),
	}

	fs.fieldEntry.SetPlaceHolder("any field")
	fs.fromEntry.SetPlaceHolder("from year")
	fs.toEntry.SetPlaceHolder("to year")
	fs.aliveEntry.SetPlaceHolder("alive at year")

	apply := func(string) { fs.apply() }
	fs.fieldEntry.OnChanged = apply
	fs.fromEntry.OnChanged = apply
	fs.toEntry.OnChanged = apply
	fs.aliveEntry.OnChanged = apply

	return fs
}

func (fs *filterSection) widget() fyne.CanvasObject {
	return container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Field", fs.fieldEntry),
			widget.NewFormItem("From", fs.fromEntry),
			widget.NewFormItem("To", fs.toEntry),
			widget.NewFormItem("Alive at", fs.aliveEntry),
		),
		widget.NewButton("Clear", func() {
			fs.fieldEntry.SetText("")
			fs.fromEntry.SetText("")
			fs.toEntry.SetText("")
			fs.aliveEntry.SetText("")
		}),
	)
}

func (fs *filterSection) apply() {
	field := fs.fieldEntry.Text
	from := parseYear(fs.fromEntry.Text)
	to := parseYear(fs.toEntry.Text)
	alive := parseYear(fs.aliveEntry.Text)

	fs.state.UpdateFilter(func(f *model.Filter) {
		f.Field = field
		f.YearFrom = from
		f.YearTo = to
		f.AliveAt = alive
	})
}

// parseYear returns nil for empty or unparseable input, leaving the
// predicate inactive while the user is still typing.
func parseYear(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &y
}
