package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sortetech/recarga-sorte-backend/internal/models"
	"github.com/sortetech/recarga-sorte-backend/internal/repositories"
	"github.com/sortetech/recarga-sorte-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure RechargeServiceImpl implements RechargeService
var _ RechargeService = (*RechargeServiceImpl)(nil)

// RechargeServiceImpl handles recharge business logic
type RechargeServiceImpl struct {
	rechargeRepo repositories.RechargeRepository
}

// NewRechargeService creates a new RechargeServiceImpl
func NewRechargeService(rechargeRepo repositories.RechargeRepository) *RechargeServiceImpl {
	return &RechargeServiceImpl{rechargeRepo: rechargeRepo}
}

// CreateRecharge stores a new recharge. The recharge ID is the consumption
// key, so duplicates are rejected here rather than corrupting later runs.
func (s *RechargeServiceImpl) CreateRecharge(ctx context.Context, recharge *models.Recharge) error {
	if recharge.RechargeID == "" {
		return errors.New("recharge ID is required")
	}

	existing, err := s.rechargeRepo.FindByRechargeID(ctx, recharge.RechargeID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("Failed to check for existing recharge", "error", err, "rechargeId", recharge.RechargeID)
		return fmt.Errorf("failed to check for existing recharge: %w", err)
	}
	if existing != nil {
		slog.Warn("Duplicate recharge rejected", "rechargeId", recharge.RechargeID, "gameId", utils.MaskGameID(recharge.GameID))
		return fmt.Errorf("recharge %s already exists", recharge.RechargeID)
	}

	if err := s.rechargeRepo.Create(ctx, recharge); err != nil {
		slog.Error("Failed to create recharge", "error", err, "rechargeId", recharge.RechargeID)
		return fmt.Errorf("failed to create recharge: %w", err)
	}
	return nil
}

// GetRechargeByID retrieves a recharge by ID
func (s *RechargeServiceImpl) GetRechargeByID(ctx context.Context, id primitive.ObjectID) (*models.Recharge, error) {
	recharge, err := s.rechargeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve recharge: %w", err)
	}
	return recharge, nil
}

// GetRechargesByGameID retrieves a player's recharges with pagination
func (s *RechargeServiceImpl) GetRechargesByGameID(ctx context.Context, gameID string, page, limit int) ([]*models.Recharge, error) {
	recharges, err := s.rechargeRepo.FindByGameID(ctx, gameID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve recharges: %w", err)
	}
	return recharges, nil
}

// GetRechargeCount counts all recharges
func (s *RechargeServiceImpl) GetRechargeCount(ctx context.Context) (int64, error) {
	return s.rechargeRepo.Count(ctx)
}
