package matching

import (
	"github.com/sortetech/recarga-sorte-backend/internal/models"
)

// BuildReport folds a verdict list into batch statistics. Purely a fold; no
// decisions.
func BuildReport(verdicts []TicketVerdict) *models.ValidationReport {
	report := &models.ValidationReport{
		TotalEntries: len(verdicts),
		ReasonCounts: make(map[models.ReasonCode]int),
	}
	for _, v := range verdicts {
		switch v.Verdict {
		case models.VerdictValid:
			report.ValidCount++
		case models.VerdictInvalid:
			report.InvalidCount++
		case models.VerdictUnknown:
			report.UnknownCount++
		}
		if v.CutoffFlag {
			report.CutoffCount++
		}
		if v.ReasonCode != "" {
			report.ReasonCounts[v.ReasonCode]++
		}
	}
	return report
}
