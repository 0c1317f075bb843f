package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sortetech/recarga-sorte-backend/internal/drawcal"
	"github.com/sortetech/recarga-sorte-backend/internal/models"
)

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport(nil)

	assert.Equal(t, 0, report.TotalEntries)
	assert.Equal(t, 0, report.ValidCount)
	assert.Equal(t, 0, report.InvalidCount)
	assert.Equal(t, 0, report.UnknownCount)
	assert.Equal(t, 0, report.CutoffCount)
	assert.Empty(t, report.ReasonCounts)
}

func TestBuildReportCounts(t *testing.T) {
	verdicts := []TicketVerdict{
		{Verdict: models.VerdictValid},
		{Verdict: models.VerdictValid, CutoffFlag: true},
		{Verdict: models.VerdictInvalid, ReasonCode: models.ReasonTicketBeforeRecharge},
		{Verdict: models.VerdictInvalid, ReasonCode: models.ReasonNotFirstTicketAfterRecharge},
		{Verdict: models.VerdictInvalid, ReasonCode: models.ReasonNotFirstTicketAfterRecharge},
		{Verdict: models.VerdictUnknown, ReasonCode: models.ReasonNoRechargeData},
	}

	report := BuildReport(verdicts)

	assert.Equal(t, 6, report.TotalEntries)
	assert.Equal(t, 2, report.ValidCount)
	assert.Equal(t, 3, report.InvalidCount)
	assert.Equal(t, 1, report.UnknownCount)
	assert.Equal(t, 1, report.CutoffCount)
	assert.Equal(t, map[models.ReasonCode]int{
		models.ReasonTicketBeforeRecharge:        1,
		models.ReasonNotFirstTicketAfterRecharge: 2,
		models.ReasonNoRechargeData:              1,
	}, report.ReasonCounts)
}

func TestBuildReportCountsAddUp(t *testing.T) {
	engine := newTestEngine()

	gameID := "5511999990001"
	entries := []*models.Entry{
		testEntry(gameID, "T1", drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0)),
		testEntry(gameID, "T2", drawcal.FromLocalFields(2025, time.June, 3, 10, 0, 0)),
		testEntry(gameID, "T3", drawcal.FromLocalFields(2025, time.June, 2, 9, 0, 0)),
	}
	recharges := []*models.Recharge{
		testRecharge(gameID, "R1", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20),
	}

	verdicts, err := engine.Run(entries, recharges)
	require.NoError(t, err)

	report := BuildReport(verdicts)
	assert.Equal(t, len(verdicts), report.TotalEntries)
	assert.Equal(t, report.TotalEntries, report.ValidCount+report.InvalidCount+report.UnknownCount)

	reasons := 0
	for _, n := range report.ReasonCounts {
		reasons += n
	}
	assert.Equal(t, report.InvalidCount+report.UnknownCount, reasons)
}
