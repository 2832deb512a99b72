// Package tui is the interactive terminal front end of the listing wizard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/listwiz/internal/draft"
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/wizard"
)

// StatusMsg signals that the draft persistence status changed.
type StatusMsg draft.Status

type flushedMsg struct{}

type submittedMsg struct {
	err error
}

// Model is the BubbleTea model driving one wizard.
type Model struct {
	ctx       context.Context
	wiz       *wizard.Wizard
	submitter wizard.Submitter
	statusCh  <-chan draft.Status

	step         listing.Step
	controls     []control
	focus        int
	status       draft.Status
	message      string
	confirmClear bool
	submitting   bool
	submitted    bool
	width        int
	height       int
}

// New creates the model. statusCh may be nil; submitter may be nil, in
// which case submitting only reports that it is unavailable.
func New(ctx context.Context, wiz *wizard.Wizard, submitter wizard.Submitter, statusCh <-chan draft.Status) *Model {
	m := &Model{
		ctx:       ctx,
		wiz:       wiz,
		submitter: submitter,
		statusCh:  statusCh,
		width:     80,
		height:    24,
	}
	if wiz.Restored() {
		m.message = "Restored your saved draft"
	}
	m.reload()
	return m
}

// Run starts a program for wiz and reports whether the listing was
// submitted before the user left.
func Run(ctx context.Context, wiz *wizard.Wizard, submitter wizard.Submitter, statusCh <-chan draft.Status) (bool, error) {
	m := New(ctx, wiz, submitter, statusCh)

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return false, fmt.Errorf("listing wizard failed: %w", err)
	}
	fm, ok := finalModel.(*Model)
	if !ok {
		return false, fmt.Errorf("unexpected model type")
	}
	return fm.submitted, nil
}

// Submitted reports whether the listing went out.
func (m *Model) Submitted() bool {
	return m.submitted
}

// Init focuses the first field and starts listening for status updates.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.focusCurrent(), m.waitForStatus())
}

func (m *Model) waitForStatus() tea.Cmd {
	if m.statusCh == nil {
		return nil
	}
	ch := m.statusCh
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return StatusMsg(st)
	}
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.controls {
			m.controls[i].input.SetWidth(m.inputWidth())
		}
		return m, nil

	case StatusMsg:
		// The wizard is the source of truth; the message is only a nudge.
		m.status = m.wiz.Status()
		return m, m.waitForStatus()

	case flushedMsg:
		m.status = m.wiz.Status()
		if err := m.wiz.LastError(); err != nil {
			m.message = "Could not save draft: " + err.Error()
		} else {
			m.message = "Draft saved"
		}
		return m, nil

	case submittedMsg:
		return m.handleSubmitted(msg.err)

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, m.updateInput(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Edits made while a submission is out would be wiped by the clear
	// that follows it, so only quitting is allowed until it returns.
	if m.submitting {
		if key == "ctrl+c" || key == "esc" {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.confirmClear {
		m.confirmClear = false
		if key == "y" {
			m.wiz.ClearDraft(m.ctx)
			m.reload()
			m.message = "Draft discarded, starting over"
			return m, m.focusCurrent()
		}
		m.message = ""
		return m, nil
	}

	switch key {
	case "ctrl+c", "esc":
		m.leaveFocused()
		return m, tea.Quit
	case "tab", "down":
		return m, m.moveFocus(1)
	case "shift+tab", "up":
		return m, m.moveFocus(-1)
	case "pgdown", "ctrl+n":
		m.leaveFocused()
		if m.wiz.GoNext() {
			m.message = ""
		}
		m.reload()
		return m, m.focusCurrent()
	case "pgup", "ctrl+p":
		m.leaveFocused()
		m.wiz.GoBack()
		m.reload()
		return m, m.focusCurrent()
	case "f1", "f2", "f3", "f4":
		target := listing.Step(key[1] - '0')
		m.leaveFocused()
		if !m.wiz.GoToStep(target) && target != m.step {
			m.message = fmt.Sprintf("Step %d is not reachable yet", target)
		}
		m.reload()
		return m, m.focusCurrent()
	case "ctrl+s":
		return m, m.flush()
	case "ctrl+r":
		m.confirmClear = true
		m.message = "Discard the draft and start over? (y/n)"
		return m, nil
	case "ctrl+e":
		return m, m.submit()
	}

	c := m.focused()
	if c == nil {
		return m, nil
	}

	switch c.kind {
	case controlToggle:
		if key == "space" || key == " " || key == "enter" {
			m.toggle(c)
		}
		return m, nil
	case controlChoice:
		switch key {
		case "left":
			m.choose(c, -1)
		case "right", "space", " ", "enter":
			m.choose(c, 1)
		}
		return m, nil
	case controlPaths:
		if key == "enter" {
			m.attach(c)
			return m, nil
		}
	default:
		if key == "enter" {
			return m, m.moveFocus(1)
		}
	}

	return m, m.updateInput(msg)
}

// updateInput forwards msg to the focused text input and pushes the new
// text into the wizard when it changed.
func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	c := m.focused()
	if c == nil {
		return nil
	}
	switch c.kind {
	case controlText, controlList, controlPaths:
	default:
		return nil
	}

	if m.submitting {
		return nil
	}

	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	if after := c.input.Value(); after != before && c.kind != controlPaths {
		if err := m.wiz.SetFieldText(c.field, after); err != nil {
			m.message = err.Error()
		}
	}
	return cmd
}

func (m *Model) toggle(c *control) {
	v, err := listing.Get(m.wiz.Form(), c.field)
	if err != nil {
		return
	}
	cur, _ := v.(bool)
	if err := m.wiz.UpdateField(c.field, !cur); err != nil {
		m.message = err.Error()
	}
	m.wiz.MarkFieldTouched(c.field)
}

func (m *Model) choose(c *control, dir int) {
	cur := stringValue(m.wiz.Form(), c.field)
	if err := m.wiz.UpdateField(c.field, cycle(c.options, cur, dir)); err != nil {
		m.message = err.Error()
	}
	m.wiz.MarkFieldTouched(c.field)
}

func (m *Model) attach(c *control) {
	files, err := listing.OpenFiles(splitPaths(c.input.Value()))
	m.wiz.MarkFieldTouched(c.field)
	if err != nil {
		m.message = err.Error()
		return
	}
	if c.field == listing.FieldPreviewFiles {
		m.wiz.SetPreviewFiles(files)
	} else {
		m.wiz.SetAttachedFiles(files)
	}
	m.message = fmt.Sprintf("%d file(s) attached", len(files))
}

func (m *Model) flush() tea.Cmd {
	wiz, ctx := m.wiz, m.ctx
	m.message = "Saving…"
	return func() tea.Msg {
		wiz.Flush(ctx)
		return flushedMsg{}
	}
}

func (m *Model) submit() tea.Cmd {
	if m.submitter == nil {
		m.message = "Submitting is not available here"
		return nil
	}
	m.leaveFocused()
	wiz, ctx, s := m.wiz, m.ctx, m.submitter
	m.submitting = true
	m.message = "Submitting…"
	return func() tea.Msg {
		return submittedMsg{err: wiz.Submit(ctx, s)}
	}
}

func (m *Model) handleSubmitted(err error) (tea.Model, tea.Cmd) {
	m.submitting = false
	if err == nil {
		m.submitted = true
		m.message = "Listing submitted"
		return m, tea.Quit
	}

	var incomplete *wizard.IncompleteError
	if errors.As(err, &incomplete) {
		n := 0
		for _, errs := range incomplete.Errors {
			n += len(errs)
		}
		m.wiz.GoToStep(incomplete.Step)
		m.reload()
		m.message = fmt.Sprintf("Fix %d issue(s) before submitting, starting with step %d", n, incomplete.Step)
		return m, m.focusCurrent()
	}

	m.message = "Submit failed: " + err.Error()
	return m, nil
}

// reload rebuilds the rows for the wizard's current step.
func (m *Model) reload() {
	m.step = m.wiz.CurrentStep()
	m.controls = buildControls(m.step, m.wiz.Form(), m.wiz.AttachedFiles(), m.wiz.PreviewFiles(), m.inputWidth())
	m.focus = 0
	m.status = m.wiz.Status()
}

func (m *Model) focused() *control {
	if m.focus < 0 || m.focus >= len(m.controls) {
		return nil
	}
	return &m.controls[m.focus]
}

func (m *Model) focusCurrent() tea.Cmd {
	c := m.focused()
	if c == nil {
		return nil
	}
	switch c.kind {
	case controlText, controlList, controlPaths:
		return c.input.Focus()
	}
	return nil
}

// leaveFocused marks the focused field touched and blurs its input.
func (m *Model) leaveFocused() {
	c := m.focused()
	if c == nil {
		return
	}
	m.wiz.MarkFieldTouched(c.field)
	c.input.Blur()
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	if len(m.controls) == 0 {
		return nil
	}
	m.leaveFocused()
	m.focus = (m.focus + delta + len(m.controls)) % len(m.controls)
	return m.focusCurrent()
}

func (m *Model) inputWidth() int {
	w := m.width - 16
	if w < 30 {
		w = 30
	}
	if w > 70 {
		w = 70
	}
	return w
}

// View renders the wizard UI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.Content = lipgloss.NewLayer(m.render())
	return view
}

func (m *Model) render() string {
	var sections []string

	title := fmt.Sprintf("New listing · Step %d of %d: %s", m.step, listing.LastStep, m.step)
	sections = append(sections, styleTitle.Render(title))
	sections = append(sections, renderProgress(m.progress()))
	sections = append(sections, "")

	byField := map[listing.Field][]string{}
	for _, e := range m.wiz.VisibleErrors(m.step) {
		byField[e.Field] = append(byField[e.Field], e.Message)
	}
	form := m.wiz.Form()
	for i := range m.controls {
		sections = append(sections, m.renderControl(&m.controls[i], i == m.focus, form, byField[m.controls[i].field]))
	}

	sections = append(sections, "")
	modalWidth := m.modalWidth()
	sections = append(sections, renderButtons(navButtons(m.step, m.wiz.IsStepValid(m.step)), modalWidth-6))
	sections = append(sections, "")

	statusLine := draftIndicator(m.status)
	if m.message != "" {
		statusLine += "  " + styleMessage.Render(m.message)
	}
	sections = append(sections, statusLine)
	sections = append(sections, renderHintBar(
		"tab", "field",
		"pgdn/pgup", "step",
		"f1-f4", "jump",
		"ctrl+s", "save",
		"ctrl+e", "submit",
		"ctrl+r", "discard",
		"esc", "quit",
	))

	content := styleContainer.Width(modalWidth).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderControl(c *control, focused bool, form listing.FormData, errs []string) string {
	labelStyle := styleLabel
	marker := "  "
	if focused {
		labelStyle = styleLabelFocused
		marker = "› "
	}

	var value string
	switch c.kind {
	case controlToggle:
		v, _ := listing.Get(form, c.field)
		box := "[ ]"
		if b, _ := v.(bool); b {
			box = "[x]"
		}
		return marker + styleValue.Render(box) + " " + labelStyle.Render(c.label) + renderErrors(errs)
	case controlChoice:
		v := stringValue(form, c.field)
		if v == "" {
			v = "not set"
		}
		value = styleValue.Render("‹ " + v + " ›")
	case controlPaths:
		value = c.input.View()
		names := form.FileNames
		if c.field == listing.FieldPreviewFiles {
			names = form.PreviewFileNames
		}
		if len(names) > 0 {
			value += "\n    " + styleMuted.Render("attached: "+strings.Join(names, ", "))
		}
	default:
		value = c.input.View()
	}

	return marker + labelStyle.Render(c.label) + "\n    " + value + renderErrors(errs)
}

func renderErrors(errs []string) string {
	var b strings.Builder
	for _, e := range errs {
		b.WriteString("\n    ")
		b.WriteString(styleFieldError.Render("✗ " + e))
	}
	return b.String()
}

func (m *Model) progress() []stepMark {
	marks := make([]stepMark, 0, len(listing.Steps()))
	for _, s := range listing.Steps() {
		marks = append(marks, stepMark{
			Step:      s,
			Current:   s == m.step,
			Reachable: m.wiz.CanNavigateToStep(s),
			Complete:  m.wiz.IsStepComplete(s),
			Valid:     m.wiz.IsStepValid(s),
		})
	}
	return marks
}

func (m *Model) modalWidth() int {
	w := m.width - 10
	if w < 60 {
		w = 60
	}
	if w > 100 {
		w = 100 // Max width for readability
	}
	return w
}
