package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwhite7112/woodpantry-finder/internal/finder"
	"github.com/mwhite7112/woodpantry-finder/internal/view"
)

const banner = "woodpantry · recipe finder"

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(bannerStyle.Render(banner))
	b.WriteString("\n\n")

	if d := m.session.Detail(); d != nil {
		b.WriteString(m.renderDetail(d))
	} else {
		b.WriteString(m.renderSearch())
	}

	if m.alert != nil {
		b.WriteString("\n")
		b.WriteString(renderAlert(*m.alert))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(secondaryStyle.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderSearch() string {
	var b strings.Builder

	b.WriteString(m.entry.View())
	b.WriteString("  ")
	if m.session.Searching() {
		b.WriteString(buttonBusyStyle.Render("Searching..."))
	} else {
		b.WriteString(buttonStyle.Render("Find Recipes"))
	}
	b.WriteString("\n\n")

	if tags := m.renderTags(); tags != "" {
		b.WriteString(tags)
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderResults())
	return b.String()
}

// renderTags draws one removable tag per ingredient in the session.
func (m Model) renderTags() string {
	ingredients := m.session.Ingredients()
	if len(ingredients) == 0 {
		return ""
	}
	tags := make([]string, 0, len(ingredients))
	for i, ing := range ingredients {
		style := tagStyle
		if m.focus == focusTags && i == m.tagCursor {
			style = tagActiveStyle
		}
		tags = append(tags, style.Render(ing+" ×"))
	}
	return strings.Join(tags, " ")
}

func (m Model) renderResults() string {
	switch m.session.ResultsState() {
	case finder.ResultsFailed:
		return errorBoxStyle.Render(finder.MsgSearchFailed)
	case finder.ResultsEmpty:
		return secondaryStyle.Render("Add the ingredients you have, then press ctrl+f.")
	}

	results := view.BuildResults(m.session.Results())
	if results.Notice != "" {
		return noticeBoxStyle.Render(results.Notice)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(results.Header))
	b.WriteString("\n")
	for i, card := range results.Cards {
		b.WriteString(renderCard(card, m.focus == focusResults && i == m.cardCursor))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCard(c view.Card, active bool) string {
	badges := strings.Join([]string{
		badgeTimeStyle.Render("⏱ " + c.CookingTime),
		badgeLevelStyle.Render("▮ " + c.Difficulty),
		badgeMatchStyle.Render(c.Match),
	}, "  ")

	body := lipgloss.JoinVertical(lipgloss.Left,
		primaryStyle.Bold(true).Render(c.Name),
		badges,
		secondaryStyle.Render(c.MatchCaption),
		secondaryStyle.Render(c.Preview),
	)

	style := cardStyle
	if active {
		style = cardActiveStyle
		body = lipgloss.JoinVertical(lipgloss.Left, body, starOnStyle.Render("enter: View Recipe"))
	}
	return style.Render(body)
}

func (m Model) renderDetail(d *finder.Detail) string {
	dv := view.BuildDetail(d.Recipe)

	var b strings.Builder
	b.WriteString(headerStyle.Render(dv.Title))
	b.WriteString("\n")
	b.WriteString(badgeTimeStyle.Render("⏱ " + dv.CookingTime))
	b.WriteString("  ")
	b.WriteString(badgeLevelStyle.Render("▮ " + dv.Difficulty))
	b.WriteString("\n")

	if dv.Aggregate != nil {
		b.WriteString(renderStars(dv.Aggregate.Stars, 0))
		b.WriteString(" ")
		b.WriteString(secondaryStyle.Render(dv.Aggregate.Caption))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Ingredients:"))
	b.WriteString("\n")
	for _, ing := range dv.Ingredients {
		b.WriteString(primaryStyle.Render("  ✓ " + ing))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Instructions:"))
	b.WriteString("\n")
	for _, step := range dv.Steps {
		b.WriteString(primaryStyle.Render(fmt.Sprintf("  %d. %s", step.Number, step.Text)))
		b.WriteString("\n")
	}

	if len(dv.Reviews) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Reviews:"))
		b.WriteString("\n")
		for _, rv := range dv.Reviews {
			b.WriteString("  ")
			b.WriteString(renderStars(rv.Stars, 0))
			b.WriteString("\n  ")
			b.WriteString(primaryStyle.Render(rv.Feedback))
			b.WriteString("\n  ")
			b.WriteString(secondaryStyle.Render(rv.Date))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Rate this Recipe"))
	b.WriteString("\n")
	focus := 0
	if m.focus == focusStars {
		focus = m.starCursor
	}
	b.WriteString(renderStars(d.Rating.Stars(), focus))
	b.WriteString("\n")
	b.WriteString(m.feedback.View())
	b.WriteString("\n")
	if m.session.Submitting() {
		b.WriteString(buttonBusyStyle.Render("Submitting..."))
	} else {
		b.WriteString(buttonStyle.Render("Submit Review"))
	}
	b.WriteString("\n")
	return b.String()
}

func renderAlert(a finder.Alert) string {
	switch a.Level {
	case finder.AlertSuccess:
		return successStyle.Render("✓ " + a.Message)
	case finder.AlertWarning:
		return warnStyle.Render("! " + a.Message)
	case finder.AlertError:
		return errorStyle.Render("✗ " + a.Message)
	default:
		return infoStyle.Render(a.Message)
	}
}

func (m Model) help() string {
	if m.session.Detail() != nil {
		return "←/→ preview · enter/1-5 rate · tab feedback · ctrl+s submit · esc close"
	}
	return "enter add · ctrl+f find recipes · tab tags/results · x remove tag · esc quit"
}
