package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ulipbi/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Title, cards, tabs and help take roughly 12 lines.
		m.table.SetHeight(max(5, msg.Height-12))
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case RequestLoadedMsg:
		m.request = msg.Request
		return m, calculateCmd(m.engine, m.normalizer, m.request, "")

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.illustration = msg.Illustration
		m.resolution = msg.Resolution
		m.refreshTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Scenario):
		if m.illustration != nil && len(m.illustration.Scenarios) > 0 {
			m.scenarioIdx = (m.scenarioIdx + 1) % len(m.illustration.Scenarios)
			m.refreshTable()
		}
		return m, nil

	case key.Matches(msg, m.keys.Resolution):
		if m.request == nil || m.loading {
			return m, nil
		}
		next := domain.ResolutionMonthly
		if m.resolution == domain.ResolutionMonthly {
			next = domain.ResolutionAnnual
		}
		m.loading = true
		return m, calculateCmd(m.engine, m.normalizer, m.request, next)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// refreshTable loads the selected scenario's years into the table.
func (m *Model) refreshTable() {
	sc := m.currentScenario()
	if sc == nil {
		m.table.SetRows(nil)
		return
	}
	m.table.SetRows(yearRows(sc))
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
