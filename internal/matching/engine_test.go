package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sortetech/recarga-sorte-backend/internal/drawcal"
	"github.com/sortetech/recarga-sorte-backend/internal/models"
)

func newTestEngine() *Engine {
	return NewEngine(drawcal.New(drawcal.DefaultConfig()))
}

func testEntry(gameID, ticketNumber string, ticketTime time.Time) *models.Entry {
	return &models.Entry{
		ID:           primitive.NewObjectID(),
		GameID:       gameID,
		TicketNumber: ticketNumber,
		TicketTime:   ticketTime,
	}
}

func testRecharge(gameID, rechargeID string, rechargeTime time.Time, amount float64) *models.Recharge {
	return &models.Recharge{
		ID:           primitive.NewObjectID(),
		GameID:       gameID,
		RechargeID:   rechargeID,
		RechargeTime: rechargeTime,
		Amount:       amount,
	}
}

func TestRunFirstTicketAfterRechargeIsValid(t *testing.T) {
	engine := newTestEngine()

	// Monday June 2 2025: recharge 19:30, ticket 19:45, draw same day
	recharge := testRecharge("5511999990001", "R1", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20)
	entry := testEntry("5511999990001", "T1", drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0))

	verdicts, err := engine.Run([]*models.Entry{entry}, []*models.Recharge{recharge})
	require.NoError(t, err)
	require.Len(t, verdicts, 1)

	v := verdicts[0]
	assert.Equal(t, models.VerdictValid, v.Verdict)
	assert.Empty(t, v.ReasonCode)
	assert.Equal(t, "R1", v.BoundRechargeID)
	require.NotNil(t, v.BoundRechargeTime)
	assert.True(t, v.BoundRechargeTime.Equal(recharge.RechargeTime))
	assert.Equal(t, 20.0, v.BoundRechargeAmount)
	assert.True(t, v.DrawDay.Equal(drawcal.FromLocalFields(2025, time.June, 2, 0, 0, 0)))
	assert.False(t, v.CutoffFlag)
}

func TestRunSecondDayTicketSetsCutoffFlag(t *testing.T) {
	engine := newTestEngine()

	// Ticket lands on the window's second draw day
	recharge := testRecharge("5511999990001", "R1", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20)
	entry := testEntry("5511999990001", "T1", drawcal.FromLocalFields(2025, time.June, 3, 10, 0, 0))

	verdicts, err := engine.Run([]*models.Entry{entry}, []*models.Recharge{recharge})
	require.NoError(t, err)
	require.Len(t, verdicts, 1)

	v := verdicts[0]
	assert.Equal(t, models.VerdictValid, v.Verdict)
	assert.Equal(t, "R1", v.BoundRechargeID)
	assert.True(t, v.DrawDay.Equal(drawcal.FromLocalFields(2025, time.June, 3, 0, 0, 0)))
	assert.True(t, v.CutoffFlag)
}

func TestRunSecondTicketOnSameRechargeIsInvalid(t *testing.T) {
	engine := newTestEngine()

	recharge := testRecharge("5511999990001", "R1", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20)
	first := testEntry("5511999990001", "T1", drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0))
	second := testEntry("5511999990001", "T2", drawcal.FromLocalFields(2025, time.June, 2, 19, 50, 0))

	verdicts, err := engine.Run([]*models.Entry{first, second}, []*models.Recharge{recharge})
	require.NoError(t, err)
	require.Len(t, verdicts, 2)

	assert.Equal(t, models.VerdictValid, verdicts[0].Verdict)
	assert.Equal(t, "T1", verdicts[0].TicketNumber)

	assert.Equal(t, models.VerdictInvalid, verdicts[1].Verdict)
	assert.Equal(t, models.ReasonNotFirstTicketAfterRecharge, verdicts[1].ReasonCode)
	assert.Empty(t, verdicts[1].BoundRechargeID)
}

func TestRunTicketBeforeRechargeIsInvalid(t *testing.T) {
	engine := newTestEngine()

	recharge := testRecharge("5511999990001", "R1", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20)
	entry := testEntry("5511999990001", "T1", drawcal.FromLocalFields(2025, time.June, 2, 19, 0, 0))

	verdicts, err := engine.Run([]*models.Entry{entry}, []*models.Recharge{recharge})
	require.NoError(t, err)
	require.Len(t, verdicts, 1)

	assert.Equal(t, models.VerdictInvalid, verdicts[0].Verdict)
	assert.Equal(t, models.ReasonTicketBeforeRecharge, verdicts[0].ReasonCode)
}

func TestRunTicketAtRechargeInstantIsInvalid(t *testing.T) {
	engine := newTestEngine()

	// Strictly-after rule: a ticket at the exact recharge instant does not count
	at := drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0)
	recharge := testRecharge("5511999990001", "R1", at, 20)
	entry := testEntry("5511999990001", "T1", at)

	verdicts, err := engine.Run([]*models.Entry{entry}, []*models.Recharge{recharge})
	require.NoError(t, err)
	require.Len(t, verdicts, 1)

	assert.Equal(t, models.VerdictInvalid, verdicts[0].Verdict)
	assert.Equal(t, models.ReasonTicketBeforeRecharge, verdicts[0].ReasonCode)
}

func TestRunExpiredWindowIsInvalid(t *testing.T) {
	engine := newTestEngine()

	// Window covers June 2 and 3; the ticket's draw day is June 4
	recharge := testRecharge("5511999990001", "R1", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20)
	entry := testEntry("5511999990001", "T1", drawcal.FromLocalFields(2025, time.June, 4, 10, 0, 0))

	verdicts, err := engine.Run([]*models.Entry{entry}, []*models.Recharge{recharge})
	require.NoError(t, err)
	require.Len(t, verdicts, 1)

	assert.Equal(t, models.VerdictInvalid, verdicts[0].Verdict)
	assert.Equal(t, models.ReasonRechargeWindowExpired, verdicts[0].ReasonCode)
}

func TestRunZeroTicketTimeIsInvalid(t *testing.T) {
	engine := newTestEngine()

	recharge := testRecharge("5511999990001", "R1", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20)
	entry := testEntry("5511999990001", "T1", time.Time{})

	verdicts, err := engine.Run([]*models.Entry{entry}, []*models.Recharge{recharge})
	require.NoError(t, err)
	require.Len(t, verdicts, 1)

	assert.Equal(t, models.VerdictInvalid, verdicts[0].Verdict)
	assert.Equal(t, models.ReasonInvalidTicketTime, verdicts[0].ReasonCode)
	assert.True(t, verdicts[0].DrawDay.IsZero())
}

func TestRunNoRechargeDataAtAll(t *testing.T) {
	engine := newTestEngine()

	entries := []*models.Entry{
		testEntry("5511999990001", "T1", drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0)),
		testEntry("5511999990002", "T2", drawcal.FromLocalFields(2025, time.June, 3, 10, 0, 0)),
	}

	verdicts, err := engine.Run(entries, nil)
	require.NoError(t, err)
	require.Len(t, verdicts, 2)

	for _, v := range verdicts {
		assert.Equal(t, models.VerdictUnknown, v.Verdict)
		assert.Equal(t, models.ReasonNoRechargeData, v.ReasonCode)
	}
}

func TestRunPlayerWithoutRechargesIsInvalid(t *testing.T) {
	engine := newTestEngine()

	// Recharge data exists, just not for this player
	recharge := testRecharge("5511999990002", "R1", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20)
	entry := testEntry("5511999990001", "T1", drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0))

	verdicts, err := engine.Run([]*models.Entry{entry}, []*models.Recharge{recharge})
	require.NoError(t, err)
	require.Len(t, verdicts, 1)

	assert.Equal(t, models.VerdictInvalid, verdicts[0].Verdict)
	assert.Equal(t, models.ReasonNoEligibleRecharge, verdicts[0].ReasonCode)
}

func TestRunConsumesRechargesInFIFOOrder(t *testing.T) {
	engine := newTestEngine()

	gameID := "5511999990001"
	recharges := []*models.Recharge{
		testRecharge(gameID, "R2", drawcal.FromLocalFields(2025, time.June, 2, 11, 0, 0), 30),
		testRecharge(gameID, "R1", drawcal.FromLocalFields(2025, time.June, 2, 10, 0, 0), 20),
	}
	entries := []*models.Entry{
		testEntry(gameID, "T1", drawcal.FromLocalFields(2025, time.June, 2, 12, 0, 0)),
		testEntry(gameID, "T2", drawcal.FromLocalFields(2025, time.June, 2, 13, 0, 0)),
	}

	verdicts, err := engine.Run(entries, recharges)
	require.NoError(t, err)
	require.Len(t, verdicts, 2)

	// Earliest ticket binds the earliest recharge
	assert.Equal(t, models.VerdictValid, verdicts[0].Verdict)
	assert.Equal(t, "R1", verdicts[0].BoundRechargeID)
	assert.Equal(t, models.VerdictValid, verdicts[1].Verdict)
	assert.Equal(t, "R2", verdicts[1].BoundRechargeID)
}

func TestRunEachRechargeBindsAtMostOnce(t *testing.T) {
	engine := newTestEngine()

	gameID := "5511999990001"
	recharges := []*models.Recharge{
		testRecharge(gameID, "R1", drawcal.FromLocalFields(2025, time.June, 2, 10, 0, 0), 20),
		testRecharge(gameID, "R2", drawcal.FromLocalFields(2025, time.June, 2, 11, 0, 0), 30),
	}
	entries := []*models.Entry{
		testEntry(gameID, "T1", drawcal.FromLocalFields(2025, time.June, 2, 12, 0, 0)),
		testEntry(gameID, "T2", drawcal.FromLocalFields(2025, time.June, 2, 13, 0, 0)),
		testEntry(gameID, "T3", drawcal.FromLocalFields(2025, time.June, 2, 14, 0, 0)),
	}

	verdicts, err := engine.Run(entries, recharges)
	require.NoError(t, err)
	require.Len(t, verdicts, 3)

	seen := make(map[string]struct{})
	valid := 0
	for _, v := range verdicts {
		if v.Verdict != models.VerdictValid {
			continue
		}
		valid++
		_, dup := seen[v.BoundRechargeID]
		assert.False(t, dup, "recharge %s bound twice", v.BoundRechargeID)
		seen[v.BoundRechargeID] = struct{}{}
	}
	assert.Equal(t, 2, valid)
	assert.Equal(t, models.VerdictInvalid, verdicts[2].Verdict)
	assert.Equal(t, models.ReasonNotFirstTicketAfterRecharge, verdicts[2].ReasonCode)
}

func TestRunCanonicalOrderAcrossGames(t *testing.T) {
	engine := newTestEngine()

	entries := []*models.Entry{
		testEntry("5511999990002", "T3", drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0)),
		testEntry("5511999990001", "T2", drawcal.FromLocalFields(2025, time.June, 2, 19, 50, 0)),
		testEntry("5511999990001", "T1", drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0)),
	}
	recharges := []*models.Recharge{
		testRecharge("5511999990001", "R1", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20),
		testRecharge("5511999990002", "R2", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20),
	}

	verdicts, err := engine.Run(entries, recharges)
	require.NoError(t, err)
	require.Len(t, verdicts, 3)

	assert.Equal(t, "5511999990001", verdicts[0].GameID)
	assert.Equal(t, "T1", verdicts[0].TicketNumber)
	assert.Equal(t, "5511999990001", verdicts[1].GameID)
	assert.Equal(t, "T2", verdicts[1].TicketNumber)
	assert.Equal(t, "5511999990002", verdicts[2].GameID)
	assert.Equal(t, "T3", verdicts[2].TicketNumber)
}

func TestRunShuffleInvariance(t *testing.T) {
	engine := newTestEngine()

	gameA, gameB := "5511999990001", "5511999990002"
	entries := []*models.Entry{
		testEntry(gameA, "T1", drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0)),
		testEntry(gameA, "T2", drawcal.FromLocalFields(2025, time.June, 2, 19, 50, 0)),
		testEntry(gameB, "T3", drawcal.FromLocalFields(2025, time.June, 3, 10, 0, 0)),
		testEntry(gameB, "T4", drawcal.FromLocalFields(2025, time.June, 4, 10, 0, 0)),
		testEntry(gameA, "T5", drawcal.FromLocalFields(2025, time.June, 1, 9, 0, 0)),
	}
	recharges := []*models.Recharge{
		testRecharge(gameA, "R1", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20),
		testRecharge(gameA, "R2", drawcal.FromLocalFields(2025, time.June, 2, 19, 40, 0), 15),
		testRecharge(gameB, "R3", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 10),
	}

	baseline, err := engine.Run(entries, recharges)
	require.NoError(t, err)

	reversedEntries := make([]*models.Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversedEntries = append(reversedEntries, entries[i])
	}
	reversedRecharges := make([]*models.Recharge, 0, len(recharges))
	for i := len(recharges) - 1; i >= 0; i-- {
		reversedRecharges = append(reversedRecharges, recharges[i])
	}

	shuffled, err := engine.Run(reversedEntries, reversedRecharges)
	require.NoError(t, err)
	assert.Equal(t, baseline, shuffled)
}

func TestRunIsIdempotent(t *testing.T) {
	engine := newTestEngine()

	gameID := "5511999990001"
	entries := []*models.Entry{
		testEntry(gameID, "T1", drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0)),
		testEntry(gameID, "T2", drawcal.FromLocalFields(2025, time.June, 3, 10, 0, 0)),
	}
	recharges := []*models.Recharge{
		testRecharge(gameID, "R1", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20),
	}

	first, err := engine.Run(entries, recharges)
	require.NoError(t, err)
	second, err := engine.Run(entries, recharges)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunAbortsOnCalendarProbeFailure(t *testing.T) {
	engine := NewEngine(drawcal.New(drawcal.Config{
		NoDrawWeekdays: []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
	}))

	recharge := testRecharge("5511999990001", "R1", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20)
	entry := testEntry("5511999990001", "T1", drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0))

	verdicts, err := engine.Run([]*models.Entry{entry}, []*models.Recharge{recharge})
	require.Error(t, err)
	assert.ErrorIs(t, err, drawcal.ErrProbeLimitExceeded)
	assert.Nil(t, verdicts)
}

func TestRunDoesNotMutateInputSlices(t *testing.T) {
	engine := newTestEngine()

	gameID := "5511999990001"
	late := testEntry(gameID, "T2", drawcal.FromLocalFields(2025, time.June, 2, 19, 50, 0))
	early := testEntry(gameID, "T1", drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0))
	entries := []*models.Entry{late, early}
	recharges := []*models.Recharge{
		testRecharge(gameID, "R1", drawcal.FromLocalFields(2025, time.June, 2, 19, 30, 0), 20),
	}

	_, err := engine.Run(entries, recharges)
	require.NoError(t, err)

	assert.Same(t, late, entries[0])
	assert.Same(t, early, entries[1])
}
