package matching

import (
	"fmt"
	"sort"
	"time"

	"github.com/sortetech/recarga-sorte-backend/internal/drawcal"
	"github.com/sortetech/recarga-sorte-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketVerdict is the engine's output for one entry. Downstream consumers
// (report, export, dashboard tables) read this shape and never re-derive it.
type TicketVerdict struct {
	EntryID             primitive.ObjectID `json:"entryId"`
	GameID              string             `json:"gameId"`
	TicketNumber        string             `json:"ticketNumber"`
	TicketTime          time.Time          `json:"ticketTime"`
	DrawDay             time.Time          `json:"drawDay,omitempty"`
	Verdict             models.Verdict     `json:"verdict"`
	ReasonCode          models.ReasonCode  `json:"reasonCode,omitempty"`
	BoundRechargeID     string             `json:"boundRechargeId,omitempty"`
	BoundRechargeTime   *time.Time         `json:"boundRechargeTime,omitempty"`
	BoundRechargeAmount float64            `json:"boundRechargeAmount,omitempty"`
	CutoffFlag          bool               `json:"cutoffFlag"`
}

// Engine performs the stateful, order-sensitive consumption match between
// recharges and tickets. It is a deterministic function of the two snapshots:
// no repository access, no state carried across runs.
type Engine struct {
	cal *drawcal.Calendar
}

// NewEngine creates an Engine over the given draw calendar
func NewEngine(cal *drawcal.Calendar) *Engine {
	return &Engine{cal: cal}
}

// Run produces exactly one verdict per entry. Verdicts come back in canonical
// order (gameId, ticketTime, ticketNumber) regardless of input slice order,
// so re-running over a shuffled snapshot yields an identical list. A calendar
// probe failure aborts the whole run: it means the no-draw-day table is wrong
// for the date range in play, and silently skipping would corrupt every
// verdict after that point.
func (e *Engine) Run(entries []*models.Entry, recharges []*models.Recharge) ([]TicketVerdict, error) {
	// No recharge dataset at all: absence of data is not proof of
	// ineligibility, so every ticket system-wide gets UNKNOWN.
	if len(recharges) == 0 {
		verdicts := make([]TicketVerdict, 0, len(entries))
		for _, entry := range sortedEntries(entries) {
			verdicts = append(verdicts, TicketVerdict{
				EntryID:      entry.ID,
				GameID:       entry.GameID,
				TicketNumber: entry.TicketNumber,
				TicketTime:   entry.TicketTime,
				Verdict:      models.VerdictUnknown,
				ReasonCode:   models.ReasonNoRechargeData,
			})
		}
		return verdicts, nil
	}

	entriesByGame := make(map[string][]*models.Entry)
	for _, entry := range entries {
		entriesByGame[entry.GameID] = append(entriesByGame[entry.GameID], entry)
	}
	rechargesByGame := make(map[string][]*models.Recharge)
	for _, recharge := range recharges {
		rechargesByGame[recharge.GameID] = append(rechargesByGame[recharge.GameID], recharge)
	}

	gameIDs := make([]string, 0, len(entriesByGame))
	for gameID := range entriesByGame {
		gameIDs = append(gameIDs, gameID)
	}
	sort.Strings(gameIDs)

	// Window cache owned by this run, keyed by recharge time value. Safe
	// because EligibilityWindow is pure.
	windows := make(map[time.Time]drawcal.Window)

	verdicts := make([]TicketVerdict, 0, len(entries))
	for _, gameID := range gameIDs {
		playerEntries := sortedEntries(entriesByGame[gameID])
		playerRecharges := sortedRecharges(rechargesByGame[gameID])

		playerVerdicts, err := e.matchPlayer(playerEntries, playerRecharges, windows)
		if err != nil {
			return nil, fmt.Errorf("matching game %s: %w", gameID, err)
		}
		verdicts = append(verdicts, playerVerdicts...)
	}
	return verdicts, nil
}

// matchPlayer walks one player's tickets in chronological order, binding each
// to the first unconsumed recharge whose window covers the ticket's draw day.
// Consumption is FIFO and irrevocable: recharges are a scarce, non-replenishing
// resource, and a later ticket must never steal a recharge an earlier ticket
// legitimately earned.
func (e *Engine) matchPlayer(entries []*models.Entry, recharges []*models.Recharge, windows map[time.Time]drawcal.Window) ([]TicketVerdict, error) {
	consumed := make(map[string]struct{})

	verdicts := make([]TicketVerdict, 0, len(entries))
	for _, entry := range entries {
		verdict := TicketVerdict{
			EntryID:      entry.ID,
			GameID:       entry.GameID,
			TicketNumber: entry.TicketNumber,
			TicketTime:   entry.TicketTime,
		}

		// Upstream parse failures arrive as zero ticket times
		if entry.TicketTime.IsZero() {
			verdict.Verdict = models.VerdictInvalid
			verdict.ReasonCode = models.ReasonInvalidTicketTime
			verdicts = append(verdicts, verdict)
			continue
		}

		drawDay, err := e.cal.ResolveDrawDay(entry.TicketTime)
		if err != nil {
			return nil, err
		}
		verdict.DrawDay = drawDay

		if len(recharges) == 0 {
			verdict.Verdict = models.VerdictInvalid
			verdict.ReasonCode = models.ReasonNoEligibleRecharge
			verdicts = append(verdicts, verdict)
			continue
		}

		var sawPrior, sawExpired, sawConsumed bool
		for _, recharge := range recharges {
			// Ticket must be strictly after the recharge
			if !entry.TicketTime.After(recharge.RechargeTime) {
				continue
			}
			sawPrior = true

			window, ok := windows[recharge.RechargeTime]
			if !ok {
				window, err = e.cal.EligibilityWindow(recharge.RechargeTime)
				if err != nil {
					return nil, err
				}
				windows[recharge.RechargeTime] = window
			}

			if !window.Covers(drawDay) {
				if window.After(drawDay) {
					sawExpired = true
				}
				continue
			}
			if _, ok := consumed[recharge.RechargeID]; ok {
				sawConsumed = true
				continue
			}

			consumed[recharge.RechargeID] = struct{}{}
			rechargeTime := recharge.RechargeTime
			verdict.Verdict = models.VerdictValid
			verdict.BoundRechargeID = recharge.RechargeID
			verdict.BoundRechargeTime = &rechargeTime
			verdict.BoundRechargeAmount = recharge.Amount
			verdict.CutoffFlag = drawDay.Equal(window.Day2)
			break
		}

		if verdict.Verdict == "" {
			verdict.Verdict = models.VerdictInvalid
			switch {
			case !sawPrior:
				verdict.ReasonCode = models.ReasonTicketBeforeRecharge
			case sawExpired:
				verdict.ReasonCode = models.ReasonRechargeWindowExpired
			case sawConsumed:
				verdict.ReasonCode = models.ReasonNotFirstTicketAfterRecharge
			default:
				verdict.ReasonCode = models.ReasonNoEligibleRecharge
			}
		}
		verdicts = append(verdicts, verdict)
	}
	return verdicts, nil
}

// sortedEntries returns a chronologically sorted copy, leaving the input
// slice untouched
func sortedEntries(entries []*models.Entry) []*models.Entry {
	out := make([]*models.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].GameID != out[j].GameID {
			return out[i].GameID < out[j].GameID
		}
		if !out[i].TicketTime.Equal(out[j].TicketTime) {
			return out[i].TicketTime.Before(out[j].TicketTime)
		}
		return out[i].TicketNumber < out[j].TicketNumber
	})
	return out
}

// sortedRecharges returns a chronologically sorted copy
func sortedRecharges(recharges []*models.Recharge) []*models.Recharge {
	out := make([]*models.Recharge, len(recharges))
	copy(out, recharges)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].RechargeTime.Equal(out[j].RechargeTime) {
			return out[i].RechargeTime.Before(out[j].RechargeTime)
		}
		return out[i].RechargeID < out[j].RechargeID
	})
	return out
}
