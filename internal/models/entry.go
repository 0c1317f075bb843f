package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entry represents one lottery ticket submission
type Entry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GameID        string             `bson:"gameId" json:"gameId"`
	TicketTime    time.Time          `bson:"ticketTime" json:"ticketTime"`
	ChosenNumbers []int              `bson:"chosenNumbers" json:"chosenNumbers"`
	Contest       string             `bson:"contest" json:"contest"`
	DrawDateLabel string             `bson:"drawDateLabel" json:"drawDateLabel"`
	TicketNumber  string             `bson:"ticketNumber" json:"ticketNumber"`

	// Derived fields, written only by the matching engine
	Verdict            Verdict    `bson:"verdict,omitempty" json:"verdict,omitempty"`
	ReasonCode         ReasonCode `bson:"reasonCode,omitempty" json:"reasonCode,omitempty"`
	BoundRechargeID    string     `bson:"boundRechargeId,omitempty" json:"boundRechargeId,omitempty"`
	BoundRechargeTime  *time.Time `bson:"boundRechargeTime,omitempty" json:"boundRechargeTime,omitempty"`
	BoundRechargeValue float64    `bson:"boundRechargeAmount,omitempty" json:"boundRechargeAmount,omitempty"`
	CutoffFlag         bool       `bson:"cutoffFlag" json:"cutoffFlag"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
