package ui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/backoffice/internal/api"
	"github.com/five82/backoffice/internal/resource"
	"github.com/five82/backoffice/internal/validate"
)

const formWidth = 64

type formInput struct {
	field  resource.Field
	input  textinput.Model
	option int // index into field.Options, -1 when unset
	err    string
}

func (f formInput) isEnum() bool { return len(f.field.Options) > 0 }

func (f formInput) value() string {
	if f.isEnum() {
		if f.option < 0 || f.option >= len(f.field.Options) {
			return ""
		}
		return f.field.Options[f.option]
	}
	return strings.TrimSpace(f.input.Value())
}

// formModal is the add/edit dialog.
type formModal struct {
	res      resource.Resource
	targetID string
	inputs   []formInput

	categories []api.Category
	checked    map[string]bool
	catCursor  int
	catErr     string
	catLoading bool

	file    textinput.Model
	hasFile bool

	focus      int
	submitting bool
	err        string
}

// submitFormMsg asks the model to send the form.
type submitFormMsg struct {
	payload  api.Payload
	filePath string
}

func newFormModal(res resource.Resource, target *api.Item, categories []api.Category) *formModal {
	f := &formModal{
		res:        res,
		checked:    map[string]bool{},
		categories: categories,
		catLoading: res.HasCategories && categories == nil,
	}
	if target != nil {
		f.targetID = target.ID
		for _, id := range target.CategoryIDs() {
			f.checked[id] = true
		}
	}

	for _, field := range res.Fields {
		in := formInput{field: field, option: -1}
		current := ""
		if target != nil {
			current = target.Field(field.Name)
		}
		if in.isEnum() {
			for i, opt := range field.Options {
				if opt == current {
					in.option = i
				}
			}
		} else {
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = field.Label
			ti.Width = formWidth - 8
			ti.CharLimit = 2000
			ti.SetValue(current)
			in.input = ti
		}
		f.inputs = append(f.inputs, in)
	}

	if res.FileField != "" {
		fi := textinput.New()
		fi.Prompt = ""
		fi.Placeholder = "path to image (optional)"
		fi.Width = formWidth - 8
		f.file = fi
		f.hasFile = true
	}
	f.setFocus(0)
	return f
}

func (f *formModal) isCreate() bool { return f.targetID == "" }

func (f *formModal) slots() int {
	n := len(f.inputs)
	if f.res.HasCategories {
		n++
	}
	if f.hasFile {
		n++
	}
	return n
}

func (f *formModal) categorySlot() int {
	if !f.res.HasCategories {
		return -1
	}
	return len(f.inputs)
}

func (f *formModal) fileSlot() int {
	if !f.hasFile {
		return -1
	}
	return f.slots() - 1
}

func (f *formModal) setFocus(slot int) {
	n := f.slots()
	if n == 0 {
		return
	}
	f.focus = (slot%n + n) % n
	for i := range f.inputs {
		if i == f.focus && !f.inputs[i].isEnum() {
			f.inputs[i].input.Focus()
		} else {
			f.inputs[i].input.Blur()
		}
	}
	if f.hasFile {
		if f.focus == f.fileSlot() {
			f.file.Focus()
		} else {
			f.file.Blur()
		}
	}
}

// setCategories installs the category options once they arrive.
func (f *formModal) setCategories(cats []api.Category, err error) {
	f.catLoading = false
	if err != nil {
		f.catErr = "Could not load categories: " + api.Message(err)
		return
	}
	f.categories = cats
	f.catErr = ""
}

// setOutcomes shows validation failures next to their fields.
func (f *formModal) setOutcomes(outcomes []validate.Outcome) {
	byField := validate.ByField(outcomes)
	for i := range f.inputs {
		f.inputs[i].err = byField[f.inputs[i].field.Name]
	}
	f.catErr = byField[validate.CategoriesField]
	for i, in := range f.inputs {
		if in.err != "" {
			f.setFocus(i)
			break
		}
	}
}

// finish records the result of a submission that left the form open.
func (f *formModal) finish(err error) {
	f.submitting = false
	f.err = ""
	var verr *validate.Error
	if errors.As(err, &verr) {
		f.setOutcomes(verr.Outcomes)
		return
	}
	if err != nil {
		f.err = api.Message(err)
	}
}

func (f *formModal) payload() submitFormMsg {
	p := api.Payload{Fields: make(map[string]string, len(f.inputs))}
	for _, in := range f.inputs {
		p.Fields[in.field.Name] = in.value()
	}
	if f.res.HasCategories {
		seen := map[string]bool{}
		for _, c := range f.categories {
			if f.checked[c.ID] {
				p.Categories = append(p.Categories, c.ID)
				seen[c.ID] = true
			}
		}
		var rest []string
		for id, on := range f.checked {
			if on && !seen[id] {
				rest = append(rest, id)
			}
		}
		sort.Strings(rest)
		p.Categories = append(p.Categories, rest...)
	}
	msg := submitFormMsg{payload: p}
	if f.hasFile {
		msg.filePath = strings.TrimSpace(f.file.Value())
	}
	return msg
}

func (f *formModal) submit() tea.Cmd {
	f.submitting = true
	f.err = ""
	msg := f.payload()
	return func() tea.Msg { return msg }
}

// Update implements Modal.
func (f *formModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil, false
	}
	if f.submitting {
		return f, nil, false
	}

	switch {
	case key.Matches(km, keys.Escape):
		return f, nil, true
	case key.Matches(km, keys.Submit):
		return f, f.submit(), false
	case key.Matches(km, keys.Confirm):
		if f.focus == f.slots()-1 {
			return f, f.submit(), false
		}
		f.setFocus(f.focus + 1)
		return f, nil, false
	case key.Matches(km, keys.NextItem):
		f.setFocus(f.focus + 1)
		return f, nil, false
	case key.Matches(km, keys.PrevItem):
		f.setFocus(f.focus - 1)
		return f, nil, false
	}

	switch {
	case f.focus < len(f.inputs) && f.inputs[f.focus].isEnum():
		in := &f.inputs[f.focus]
		n := len(in.field.Options)
		switch {
		case key.Matches(km, keys.Left):
			in.option = (max(in.option, 0) - 1 + n) % n
		case key.Matches(km, keys.Right), key.Matches(km, keys.Check):
			in.option = (in.option + 1) % n
		}
		in.err = ""
		return f, nil, false

	case f.focus < len(f.inputs):
		var cmd tea.Cmd
		f.inputs[f.focus].input, cmd = f.inputs[f.focus].input.Update(km)
		f.inputs[f.focus].err = ""
		return f, cmd, false

	case f.focus == f.categorySlot():
		n := len(f.categories)
		if n == 0 {
			return f, nil, false
		}
		switch {
		case key.Matches(km, keys.Left):
			f.catCursor = (f.catCursor - 1 + n) % n
		case key.Matches(km, keys.Right):
			f.catCursor = (f.catCursor + 1) % n
		case key.Matches(km, keys.Check):
			id := f.categories[f.catCursor].ID
			f.checked[id] = !f.checked[id]
			f.catErr = ""
		}
		return f, nil, false

	case f.focus == f.fileSlot():
		var cmd tea.Cmd
		f.file, cmd = f.file.Update(km)
		return f, cmd, false
	}
	return f, nil, false
}

// View implements Modal.
func (f *formModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder

	verb := "Edit"
	if f.isCreate() {
		verb = "Add"
	}
	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("%s %s", verb, f.res.Noun)))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", formWidth-6)))
	b.WriteString("\n\n")

	label := func(slot int, text string, required bool) string {
		if required {
			text += " *"
		}
		if f.focus == slot {
			return styles.AccentText.Render(text)
		}
		return styles.MutedText.Render(text)
	}
	fieldErr := func(msg string) {
		if msg != "" {
			b.WriteString(styles.DangerText.Render("  " + msg))
			b.WriteString("\n")
		}
	}

	for i, in := range f.inputs {
		b.WriteString(label(i, in.field.Label, in.field.Required))
		b.WriteString("\n")
		if in.isEnum() {
			b.WriteString(f.renderOptions(in, i == f.focus, styles))
		} else {
			b.WriteString(in.input.View())
		}
		b.WriteString("\n")
		fieldErr(in.err)
		b.WriteString("\n")
	}

	if slot := f.categorySlot(); slot >= 0 {
		b.WriteString(label(slot, "Categories", true))
		b.WriteString("\n")
		b.WriteString(f.renderCategories(slot == f.focus, styles))
		b.WriteString("\n")
		fieldErr(f.catErr)
		b.WriteString("\n")
	}

	if slot := f.fileSlot(); slot >= 0 {
		b.WriteString(label(slot, "Image file", false))
		b.WriteString("\n")
		b.WriteString(f.file.View())
		b.WriteString("\n\n")
	}

	switch {
	case f.submitting:
		b.WriteString(styles.WarningText.Render("Saving..."))
	case f.err != "":
		b.WriteString(styles.DangerText.Render(f.err))
	default:
		b.WriteString(styles.FaintText.Render("Ctrl+S: Save  •  Tab: Next  •  Esc: Cancel"))
	}

	return placeModal(theme, width, height, formWidth, b.String())
}

func (f *formModal) renderOptions(in formInput, focused bool, styles Styles) string {
	parts := make([]string, len(in.field.Options))
	for i, opt := range in.field.Options {
		switch {
		case i == in.option && focused:
			parts[i] = styles.Selected.Render(" " + opt + " ")
		case i == in.option:
			parts[i] = styles.AccentText.Render("[" + opt + "]")
		default:
			parts[i] = styles.MutedText.Render(" " + opt + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (f *formModal) renderCategories(focused bool, styles Styles) string {
	if f.catLoading {
		return styles.MutedText.Render("Loading categories...")
	}
	if len(f.categories) == 0 {
		return styles.MutedText.Render("No categories available")
	}
	parts := make([]string, len(f.categories))
	for i, c := range f.categories {
		box := "[ ]"
		if f.checked[c.ID] {
			box = "[x]"
		}
		text := box + " " + firstNonBlank(c.Title, c.ID)
		if focused && i == f.catCursor {
			parts[i] = styles.Selected.Render(text)
		} else {
			parts[i] = styles.Text.Render(text)
		}
	}
	return lipgloss.NewStyle().Width(formWidth - 6).Render(strings.Join(parts, "  "))
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// placeModal centers a bordered box over the screen.
func placeModal(theme Theme, width, height, boxWidth int, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(boxWidth).
		Render(content)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
