package repositories

import (
	"context"
	"time"

	"github.com/sortetech/recarga-sorte-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntryRepository defines the interface for ticket entry data operations
type EntryRepository interface {
	Create(ctx context.Context, entry *models.Entry) error
	CreateMany(ctx context.Context, entries []*models.Entry) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Entry, error)
	FindByGameID(ctx context.Context, gameID string, page, limit int) ([]*models.Entry, error)
	FindByVerdict(ctx context.Context, verdict models.Verdict, page, limit int) ([]*models.Entry, error)
	FindByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.Entry, error)
	FindAll(ctx context.Context) ([]*models.Entry, error)
	UpdateVerdict(ctx context.Context, id primitive.ObjectID, verdict models.Verdict, reason models.ReasonCode, boundRechargeID string, boundRechargeTime *time.Time, boundRechargeAmount float64, cutoffFlag bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// RechargeRepository defines the interface for recharge data operations
type RechargeRepository interface {
	Create(ctx context.Context, recharge *models.Recharge) error
	CreateMany(ctx context.Context, recharges []*models.Recharge) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recharge, error)
	FindByRechargeID(ctx context.Context, rechargeID string) (*models.Recharge, error)
	FindByGameID(ctx context.Context, gameID string, page, limit int) ([]*models.Recharge, error)
	FindAll(ctx context.Context) ([]*models.Recharge, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// ValidationRunRepository defines the interface for validation run records
type ValidationRunRepository interface {
	Create(ctx context.Context, run *models.ValidationRun) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ValidationRun, error)
	FindLatestCompleted(ctx context.Context) (*models.ValidationRun, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.ValidationRun, error)
	Update(ctx context.Context, run *models.ValidationRun) error
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	Update(ctx context.Context, adminUser *models.AdminUser) error
}
