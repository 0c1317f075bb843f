package services

import (
	"context"
	"time"

	"github.com/sortetech/recarga-sorte-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidationService defines the interface for ticket validation operations
type ValidationService interface {
	// RunValidation executes one validation pass over the current
	// entries/recharges snapshots and persists verdicts and the run report
	RunValidation(ctx context.Context) (*models.ValidationRun, error)

	// GetRunByID retrieves a validation run by its ID
	GetRunByID(ctx context.Context, runID primitive.ObjectID) (*models.ValidationRun, error)

	// GetRuns retrieves validation runs, newest first
	GetRuns(ctx context.Context, page, limit int) ([]*models.ValidationRun, error)

	// GetLatestReport retrieves the report of the most recent completed run
	GetLatestReport(ctx context.Context) (*models.ValidationReport, error)
}

// EntryService defines the interface for ticket entry operations
type EntryService interface {
	CreateEntry(ctx context.Context, entry *models.Entry) error
	GetEntryByID(ctx context.Context, id primitive.ObjectID) (*models.Entry, error)
	GetEntriesByGameID(ctx context.Context, gameID string, page, limit int) ([]*models.Entry, error)
	GetEntriesByVerdict(ctx context.Context, verdict models.Verdict, page, limit int) ([]*models.Entry, error)
	GetEntriesByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.Entry, error)
	GetEntryCount(ctx context.Context) (int64, error)
}

// RechargeService defines the interface for recharge operations
type RechargeService interface {
	CreateRecharge(ctx context.Context, recharge *models.Recharge) error
	GetRechargeByID(ctx context.Context, id primitive.ObjectID) (*models.Recharge, error)
	GetRechargesByGameID(ctx context.Context, gameID string, page, limit int) ([]*models.Recharge, error)
	GetRechargeCount(ctx context.Context) (int64, error)
}

// AuthService defines the interface for admin authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}
