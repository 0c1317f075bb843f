package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Verdict represents the validation outcome for a ticket
type Verdict string

const (
	VerdictValid   Verdict = "VALID"
	VerdictInvalid Verdict = "INVALID"
	VerdictUnknown Verdict = "UNKNOWN"
)

// ReasonCode explains a non-VALID verdict. Reason codes are stable strings so
// they can be counted, filtered and exported.
type ReasonCode string

const (
	ReasonInvalidTicketTime           ReasonCode = "INVALID_TICKET_TIME"
	ReasonTicketBeforeRecharge        ReasonCode = "INVALID_TICKET_BEFORE_RECHARGE"
	ReasonRechargeWindowExpired       ReasonCode = "INVALID_RECHARGE_WINDOW_EXPIRED"
	ReasonNotFirstTicketAfterRecharge ReasonCode = "INVALID_NOT_FIRST_TICKET_AFTER_RECHARGE"
	ReasonNoEligibleRecharge          ReasonCode = "NO_ELIGIBLE_RECHARGE"
	ReasonNoRechargeData              ReasonCode = "NO_RECHARGE_DATA"
)

// ValidationRunStatus represents the status of a validation run
type ValidationRunStatus string

const (
	ValidationRunExecuting ValidationRunStatus = "EXECUTING"
	ValidationRunCompleted ValidationRunStatus = "COMPLETED"
	ValidationRunFailed    ValidationRunStatus = "FAILED"
)

// ValidationReport aggregates the per-ticket verdicts of one run
type ValidationReport struct {
	TotalEntries int                `bson:"totalEntries" json:"totalEntries"`
	ValidCount   int                `bson:"validCount" json:"validCount"`
	InvalidCount int                `bson:"invalidCount" json:"invalidCount"`
	UnknownCount int                `bson:"unknownCount" json:"unknownCount"`
	CutoffCount  int                `bson:"cutoffCount" json:"cutoffCount"`
	ReasonCounts map[ReasonCode]int `bson:"reasonCounts" json:"reasonCounts"`
}

// ValidationRun records one execution of the matching engine over one
// entries/recharges snapshot
type ValidationRun struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Status        ValidationRunStatus `bson:"status" json:"status"`
	EntryCount    int                 `bson:"entryCount" json:"entryCount"`
	RechargeCount int                 `bson:"rechargeCount" json:"rechargeCount"`
	Report        *ValidationReport   `bson:"report,omitempty" json:"report,omitempty"`
	ErrorMessage  string              `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	StartedAt     time.Time           `bson:"startedAt" json:"startedAt"`
	FinishedAt    time.Time           `bson:"finishedAt,omitempty" json:"finishedAt,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}
