// Package tui is the terminal front end of the recipe finder, built on
// Bubble Tea.
//
// The [Model] owns a single [finder.Session] and is its only writer.
// Key presses become finder events; the session answers with effects.
// Calls to the matching service run as tea.Cmds, off the event loop,
// and come back as completion messages, so the loop never blocks on the
// network.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/mwhite7112/woodpantry-finder/internal/finder"
	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
)

type focusArea int

const (
	focusEntry focusArea = iota
	focusTags
	focusResults
	focusStars
	focusFeedback
)

// completedMsg carries a finished call back into the loop.
type completedMsg struct {
	event finder.Event
}

type Model struct {
	ctx     context.Context
	session *finder.Session
	runner  finder.Runner
	log     logrus.FieldLogger

	entry    textinput.Model
	feedback textinput.Model

	focus      focusArea
	tagCursor  int
	cardCursor int
	starCursor int

	alert *finder.Alert
	width int
}

// New builds the model. ctx bounds every call the model issues.
func New(ctx context.Context, session *finder.Session, runner finder.Runner, log logrus.FieldLogger) Model {
	m := Model{
		ctx:      ctx,
		session:  session,
		runner:   runner,
		log:      log,
		entry:    newInput("ingredient> ", "e.g. eggs, tomato, basil"),
		feedback: newInput("feedback> ", "Share your experience with this recipe..."),
		width:    80,
	}
	m.entry.Focus()
	return m
}

func newInput(prompt, placeholder string) textinput.Model {
	ti := textinput.New()
	// Plain-text prompt keeps the textinput width math right.
	ti.Prompt = prompt
	ti.PromptStyle = secondaryStyle
	ti.TextStyle = primaryStyle
	ti.Placeholder = placeholder
	ti.Cursor.Style = starOnStyle
	ti.Cursor.SetMode(cursor.CursorStatic)
	// Unlimited; /rate takes feedback of any length.
	ti.CharLimit = 0
	ti.Width = 60
	return ti
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Session exposes the underlying session, mostly for tests.
func (m Model) Session() *finder.Session { return m.session }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.entry.Width = max(20, msg.Width-20)
		m.feedback.Width = max(20, msg.Width-20)
		return m, nil

	case completedMsg:
		return m.dispatch(msg.event)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.session.Detail() != nil {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

// dispatch applies ev to the session and turns the effects into commands.
func (m Model) dispatch(ev finder.Event) (Model, tea.Cmd) {
	wasOpen := m.session.Detail() != nil
	effects := m.session.Apply(ev)

	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff := eff.(type) {
		case finder.Alert:
			a := eff
			m.alert = &a
		case finder.ClearEntry:
			m.entry.SetValue("")
		case finder.IssueSearch, finder.IssueReview:
			cmds = append(cmds, m.call(eff))
		}
	}

	if wasOpen && m.session.Detail() == nil {
		m = m.leaveDetail()
	}
	if n := len(m.session.Ingredients()); m.tagCursor >= n {
		m.tagCursor = max(0, n-1)
	}
	if n := len(m.session.Results()); m.cardCursor >= n {
		m.cardCursor = max(0, n-1)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) call(eff finder.Effect) tea.Cmd {
	ctx, runner, log := m.ctx, m.runner, m.log
	return func() tea.Msg {
		ev, ok := runner.Execute(ctx, eff)
		if !ok {
			log.WithField("effect", eff).Warn("effect needs no call")
			return nil
		}
		return completedMsg{event: ev}
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "ctrl+f":
		m.alert = nil
		return m.dispatch(finder.RunSearch{})
	case "tab":
		m = m.cycleFocus()
		return m, nil
	}

	switch m.focus {
	case focusTags:
		return m.updateTags(msg)
	case focusResults:
		return m.updateResults(msg)
	}

	if msg.String() == "enter" {
		m.alert = nil
		if m.entry.Value() == "" {
			return m.openCard()
		}
		return m.dispatch(finder.AddIngredient{Raw: m.entry.Value()})
	}

	var cmd tea.Cmd
	m.entry, cmd = m.entry.Update(msg)
	return m, cmd
}

func (m Model) updateTags(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tags := m.session.Ingredients()
	switch msg.String() {
	case "left":
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case "right":
		if m.tagCursor < len(tags)-1 {
			m.tagCursor++
		}
	case "delete", "backspace", "x":
		if m.tagCursor < len(tags) {
			return m.dispatch(finder.RemoveIngredient{Value: tags[m.tagCursor]})
		}
	}
	return m, nil
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cardCursor > 0 {
			m.cardCursor--
		}
	case "down", "j":
		if m.cardCursor < len(m.session.Results())-1 {
			m.cardCursor++
		}
	case "enter":
		return m.openCard()
	}
	return m, nil
}

func (m Model) openCard() (tea.Model, tea.Cmd) {
	results := m.session.Results()
	if m.cardCursor >= len(results) {
		return m, nil
	}
	m.alert = nil
	m, cmd := m.dispatch(finder.OpenRecipe{Recipe: results[m.cardCursor]})
	m.entry.Blur()
	m.focus = focusStars
	m.starCursor = 0
	m.feedback.SetValue("")
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.dispatch(finder.CloseRecipe{})
	case "ctrl+s":
		return m.dispatch(finder.SubmitReview{Feedback: m.feedback.Value()})
	case "tab", "shift+tab":
		return m.toggleDetailFocus()
	}

	if m.focus == focusStars {
		return m.updateStars(msg)
	}

	if msg.String() == "enter" {
		return m.dispatch(finder.SubmitReview{Feedback: m.feedback.Value()})
	}
	var cmd tea.Cmd
	m.feedback, cmd = m.feedback.Update(msg)
	return m, cmd
}

// updateStars treats the keyboard cursor on the star row as the pointer:
// moving it previews, enter/space commits.
func (m Model) updateStars(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "left", "h":
		m.starCursor = max(1, m.starCursor-1)
		return m.dispatch(finder.HoverStar{Star: m.starCursor})
	case "right", "l":
		if m.starCursor < recipe.MaxStars {
			m.starCursor++
		}
		return m.dispatch(finder.HoverStar{Star: m.starCursor})
	case "enter", " ":
		return m.dispatch(finder.ClickStar{Star: m.starCursor})
	case "1", "2", "3", "4", "5":
		n, _ := strconv.Atoi(key)
		m.starCursor = n
		return m.dispatch(finder.ClickStar{Star: n})
	}
	return m, nil
}

func (m Model) toggleDetailFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusStars {
		m.focus = focusFeedback
		m.feedback.Focus()
		return m.dispatch(finder.LeaveStars{})
	}
	m.focus = focusStars
	m.feedback.Blur()
	return m.dispatch(finder.HoverStar{Star: m.starCursor})
}

func (m Model) cycleFocus() Model {
	switch m.focus {
	case focusEntry:
		m.focus = focusTags
		m.entry.Blur()
	case focusTags:
		m.focus = focusResults
	default:
		m.focus = focusEntry
		m.entry.Focus()
	}
	return m
}

func (m Model) leaveDetail() Model {
	m.feedback.Blur()
	m.feedback.SetValue("")
	m.starCursor = 0
	m.focus = focusEntry
	m.entry.Focus()
	return m
}
