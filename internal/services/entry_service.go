package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sortetech/recarga-sorte-backend/internal/models"
	"github.com/sortetech/recarga-sorte-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure EntryServiceImpl implements EntryService
var _ EntryService = (*EntryServiceImpl)(nil)

// EntryServiceImpl handles ticket entry business logic
type EntryServiceImpl struct {
	entryRepo repositories.EntryRepository
}

// NewEntryService creates a new EntryServiceImpl
func NewEntryService(entryRepo repositories.EntryRepository) *EntryServiceImpl {
	return &EntryServiceImpl{entryRepo: entryRepo}
}

// CreateEntry stores a new ticket entry. Derived verdict fields are reserved
// for the matching engine and are stripped here.
func (s *EntryServiceImpl) CreateEntry(ctx context.Context, entry *models.Entry) error {
	entry.Verdict = ""
	entry.ReasonCode = ""
	entry.BoundRechargeID = ""
	entry.BoundRechargeTime = nil
	entry.BoundRechargeValue = 0
	entry.CutoffFlag = false

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		slog.Error("Failed to create entry", "error", err, "gameId", entry.GameID)
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// GetEntryByID retrieves an entry by ID
func (s *EntryServiceImpl) GetEntryByID(ctx context.Context, id primitive.ObjectID) (*models.Entry, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entry: %w", err)
	}
	return entry, nil
}

// GetEntriesByGameID retrieves a player's entries with pagination
func (s *EntryServiceImpl) GetEntriesByGameID(ctx context.Context, gameID string, page, limit int) ([]*models.Entry, error) {
	entries, err := s.entryRepo.FindByGameID(ctx, gameID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}
	return entries, nil
}

// GetEntriesByVerdict retrieves entries filtered by verdict with pagination
func (s *EntryServiceImpl) GetEntriesByVerdict(ctx context.Context, verdict models.Verdict, page, limit int) ([]*models.Entry, error) {
	entries, err := s.entryRepo.FindByVerdict(ctx, verdict, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}
	return entries, nil
}

// GetEntriesByDateRange retrieves entries in a ticket-time range with pagination
func (s *EntryServiceImpl) GetEntriesByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.Entry, error) {
	entries, err := s.entryRepo.FindByDateRange(ctx, start, end, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}
	return entries, nil
}

// GetEntryCount counts all entries
func (s *EntryServiceImpl) GetEntryCount(ctx context.Context) (int64, error) {
	return s.entryRepo.Count(ctx)
}
