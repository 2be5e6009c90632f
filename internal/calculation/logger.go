package calculation

import (
	"github.com/rgehrsitz/ulipbi/internal/domain"
)

// Logger receives progress and year-end trace lines from the projection.
// The engine defaults to NopLogger; the CLI installs a stderr logger under
// --debug.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// scenarioLogger tags every line with the return scenario it came from.
type scenarioLogger struct {
	next   Logger
	prefix string
}

func forScenario(l Logger, scenario string) Logger {
	if _, ok := l.(NopLogger); ok {
		return l
	}
	return scenarioLogger{next: l, prefix: "[" + scenario + "] "}
}

func (s scenarioLogger) Debugf(format string, args ...any) { s.next.Debugf(s.prefix+format, args...) }
func (s scenarioLogger) Infof(format string, args ...any)  { s.next.Infof(s.prefix+format, args...) }
func (s scenarioLogger) Warnf(format string, args ...any)  { s.next.Warnf(s.prefix+format, args...) }
func (s scenarioLogger) Errorf(format string, args ...any) { s.next.Errorf(s.prefix+format, args...) }

// logYearEnd writes the additions and closing balance of a policy year.
func logYearEnd(l Logger, rec domain.PeriodRecord) {
	l.Debugf("year %d: guaranteed=%s loyalty=%s booster=%s balance=%s",
		rec.PolicyYear, rec.GuaranteedAddition.StringFixed(2),
		rec.LoyaltyAddition.StringFixed(2), rec.BoosterAddition.StringFixed(2),
		rec.BalanceAfterPeriod.StringFixed(2))
}
