package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/ulipbi/internal/domain"
)

const inputYAML = `
age: 30
gender: Female
annual_premium: 100000
sum_assured: 1000000
policy_term: 10
premium_paying_term: 10
fund: large_cap_equity
assumptions:
  resolution: annual
`

func loadedModel(t *testing.T) Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(inputYAML), 0644))

	m := NewModel(path, domain.DefaultProductRules())
	msg := m.Init()()
	require.IsType(t, RequestLoadedMsg{}, msg)

	updated, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	updated, _ = updated.Update(cmd())
	return updated.(Model)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_LoadsAndCalculates(t *testing.T) {
	m := loadedModel(t)

	require.NoError(t, m.err)
	require.NotNil(t, m.illustration)
	assert.False(t, m.loading)
	assert.Equal(t, domain.ResolutionAnnual, m.resolution)
	assert.Len(t, m.table.Rows(), 10)
	assert.Equal(t, "low", m.currentScenario().Scenario.Name)
	assert.Equal(t, "90,214.64", m.table.Rows()[0][7])
}

func TestModel_TabCyclesScenario(t *testing.T) {
	m := loadedModel(t)
	lowFirst := m.table.Rows()[0][7]

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, "high", m.currentScenario().Scenario.Name)
	assert.NotEqual(t, lowFirst, m.table.Rows()[0][7])

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, "low", m.currentScenario().Scenario.Name)
}

func TestModel_ToggleResolution(t *testing.T) {
	m := loadedModel(t)
	annualMaturity := m.illustration.Summary.MaturityValueLow

	updated, cmd := m.Update(keyRune('m'))
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	updated, _ = m.Update(cmd())
	m = updated.(Model)
	assert.Equal(t, domain.ResolutionMonthly, m.resolution)
	assert.Len(t, m.table.Rows(), 10, "rows stay per policy year")
	assert.False(t, m.illustration.Summary.MaturityValueLow.Equal(annualMaturity))
	assert.Equal(t, "annual", m.request.Assumptions.Resolution, "request is not mutated")
}

func TestModel_Quit(t *testing.T) {
	m := loadedModel(t)
	_, cmd := m.Update(keyRune('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_Errors(t *testing.T) {
	m := NewModel(filepath.Join(t.TempDir(), "missing.yaml"), domain.DefaultProductRules())
	msg := m.Init()()
	require.IsType(t, ErrorMsg{}, msg)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")

	updated, _ = m.Update(CalculationCompleteMsg{Err: errors.New("boom")})
	assert.Contains(t, updated.View(), "boom")
}

func TestModel_View(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	view := updated.View()

	assert.Contains(t, view, "ULIP Benefit Illustration")
	assert.Contains(t, view, "Premiums paid")
	assert.Contains(t, view, "1,000,000.00")
	assert.Contains(t, view, "Maturity @ 8%")
	assert.Contains(t, view, "low @ 4%")
	assert.Contains(t, view, "Fund Value")
	assert.Contains(t, view, "next scenario")
}

func TestYearRows(t *testing.T) {
	sc := &domain.ScenarioProjection{
		Years: []domain.YearRow{{
			PolicyYear:  1,
			Age:         30,
			PremiumPaid: decimal.NewFromInt(100000),
			FundValue:   decimal.NewFromFloat(1234.5),
		}},
	}
	rows := yearRows(sc)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "100,000.00", rows[0][2])
	assert.Equal(t, "1,234.50", rows[0][7])
}
