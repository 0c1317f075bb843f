package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recharge represents one paid top-up event. RechargeID is the consumption
// key: the matching engine binds each one to at most one ticket per run.
// The record itself is immutable once parsed; the "consumed" fact lives only
// in run-scoped engine state.
type Recharge struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GameID       string             `bson:"gameId" json:"gameId"`
	RechargeID   string             `bson:"rechargeId" json:"rechargeId"`
	RechargeTime time.Time          `bson:"rechargeTime" json:"rechargeTime"`
	Amount       float64            `bson:"amount" json:"amount"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
