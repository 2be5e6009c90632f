package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ulipbi/internal/tui/components"
)

var hundred = decimal.NewFromInt(100)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress q to quit.", m.err))
	case m.illustration == nil:
		content = BorderStyle.Render("⠋ Calculating illustration...")
	default:
		content = lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderSummary(),
			m.renderTabs(),
			m.table.View(),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		StatusBarStyle.Render(m.help.View(m.keys)),
	)
}

// renderTitleBar renders the application title and the policy in view
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("ULIP Benefit Illustration")

	subtitle := m.inputPath
	if m.illustration != nil {
		p := &m.illustration.Parameters
		subtitle = fmt.Sprintf("%s • age %d • %s • %d/%d years • %s",
			m.inputPath, p.AgeAtEntry, p.Fund, p.PolicyTerm, p.PremiumPayingTerm, m.resolution)
		if m.loading {
			subtitle += " • recalculating"
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(subtitle))
}

// renderSummary shows premiums paid and each scenario's maturity value.
func (m Model) renderSummary() string {
	il := m.illustration
	paid := il.Summary.TotalPremiumsPaid

	cards := []*components.MetricCard{
		components.NewMetricCard("Premiums paid", FormatCurrency(paid)),
	}
	for _, sc := range il.Scenarios {
		card := components.NewMetricCard("Maturity @ "+sc.Scenario.Label(), FormatCurrency(sc.MaturityValue))
		if paid.IsPositive() {
			change := sc.MaturityValue.Sub(paid).Div(paid).Mul(hundred)
			sign := ""
			if !change.IsNegative() {
				sign = "+"
			}
			card.WithTrend(!change.IsNegative(), sign+change.StringFixed(1)+"%")
		}
		cards = append(cards, card)
	}

	columns := len(cards)
	if m.width > 0 && m.width < columns*28 {
		columns = max(1, m.width/28)
	}
	return components.MetricGrid(cards, columns)
}

// renderTabs lists the scenarios with the selected one highlighted.
func (m Model) renderTabs() string {
	current := m.currentScenario()
	tabs := make([]string, 0, len(m.illustration.Scenarios))
	for _, sc := range m.illustration.Scenarios {
		label := fmt.Sprintf("%s @ %s", sc.Scenario.Name, sc.Scenario.Label())
		if current != nil && sc.Scenario.Name == current.Scenario.Name {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}
