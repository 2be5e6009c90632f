package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ulipbi/internal/calculation"
	"github.com/rgehrsitz/ulipbi/internal/config"
	"github.com/rgehrsitz/ulipbi/internal/domain"
)

// Model represents the entire application state
type Model struct {
	// Terminal dimensions
	width  int
	height int

	// Input and product
	inputPath  string
	request    *domain.IllustrationRequest
	normalizer *config.Normalizer
	engine     *calculation.CalculationEngine

	// Current illustration and selections
	illustration *domain.Illustration
	resolution   domain.Resolution
	scenarioIdx  int

	table table.Model
	help  help.Model
	keys  keyMap

	err     error
	loading bool
}

// NewModel creates a viewer for the illustration input at inputPath.
func NewModel(inputPath string, rules domain.ProductRules) Model {
	t := table.New(
		table.WithColumns(yearColumns()),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return Model{
		width:      100,
		height:     30,
		inputPath:  inputPath,
		normalizer: config.NewNormalizer(rules),
		engine:     calculation.NewCalculationEngine(),
		table:      t,
		help:       help.New(),
		keys:       defaultKeyMap(),
		loading:    true,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadRequestCmd(m.inputPath)
}

// loadRequestCmd returns a command that parses the input file
func loadRequestCmd(path string) tea.Cmd {
	return func() tea.Msg {
		req, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return RequestLoadedMsg{Request: req}
	}
}

// calculateCmd returns a command that illustrates req at the given
// resolution; a blank resolution keeps the request's own setting.
func calculateCmd(
	engine *calculation.CalculationEngine,
	normalizer *config.Normalizer,
	req *domain.IllustrationRequest,
	resolution domain.Resolution,
) tea.Cmd {
	return func() tea.Msg {
		r := *req
		if resolution != "" {
			r.Assumptions.Resolution = string(resolution)
		}
		params, err := normalizer.Normalize(&r)
		if err != nil {
			return CalculationCompleteMsg{Err: err}
		}
		il, err := engine.RunIllustration(context.Background(), params)
		return CalculationCompleteMsg{
			Resolution:   params.Resolution,
			Illustration: il,
			Err:          err,
		}
	}
}

// currentScenario returns the projection being displayed, or nil.
func (m Model) currentScenario() *domain.ScenarioProjection {
	if m.illustration == nil || len(m.illustration.Scenarios) == 0 {
		return nil
	}
	return &m.illustration.Scenarios[m.scenarioIdx%len(m.illustration.Scenarios)]
}

func yearColumns() []table.Column {
	return []table.Column{
		{Title: "Year", Width: 4},
		{Title: "Age", Width: 4},
		{Title: "Premium", Width: 13},
		{Title: "Charges", Width: 12},
		{Title: "GST", Width: 11},
		{Title: "FMC", Width: 11},
		{Title: "Additions", Width: 11},
		{Title: "Fund Value", Width: 15},
		{Title: "Death Benefit", Width: 15},
	}
}

func yearRows(sc *domain.ScenarioProjection) []table.Row {
	rows := make([]table.Row, 0, len(sc.Years))
	for _, y := range sc.Years {
		rows = append(rows, table.Row{
			itoa(y.PolicyYear),
			itoa(y.Age),
			FormatCurrency(y.PremiumPaid.Add(y.TopUpPaid)),
			FormatCurrency(y.TotalCharges),
			FormatCurrency(y.Tax),
			FormatCurrency(y.FundManagementCharge),
			FormatCurrency(y.TotalAdditions()),
			FormatCurrency(y.FundValue),
			FormatCurrency(y.DeathBenefit),
		})
	}
	return rows
}
