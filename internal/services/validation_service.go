package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sortetech/recarga-sorte-backend/internal/matching"
	"github.com/sortetech/recarga-sorte-backend/internal/models"
	"github.com/sortetech/recarga-sorte-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ValidationServiceImpl implements ValidationService
var _ ValidationService = (*ValidationServiceImpl)(nil)

// defaultPersistBatchSize bounds how many verdicts are written between
// context checks. Batch boundaries are invisible to the matching algorithm,
// which always sees the full snapshots.
const defaultPersistBatchSize = 500

// ValidationServiceImpl owns the validation run lifecycle: snapshot loading,
// the pure engine pass, and verdict/report persistence
type ValidationServiceImpl struct {
	engine           *matching.Engine
	entryRepo        repositories.EntryRepository
	rechargeRepo     repositories.RechargeRepository
	runRepo          repositories.ValidationRunRepository
	persistBatchSize int
}

// NewValidationService creates a new ValidationServiceImpl
func NewValidationService(
	engine *matching.Engine,
	entryRepo repositories.EntryRepository,
	rechargeRepo repositories.RechargeRepository,
	runRepo repositories.ValidationRunRepository,
) *ValidationServiceImpl {
	return &ValidationServiceImpl{
		engine:           engine,
		entryRepo:        entryRepo,
		rechargeRepo:     rechargeRepo,
		runRepo:          runRepo,
		persistBatchSize: defaultPersistBatchSize,
	}
}

// RunValidation executes one validation pass over the current snapshots.
// The engine itself is a deterministic function of the two snapshots;
// re-running over unchanged data reproduces identical verdicts.
func (s *ValidationServiceImpl) RunValidation(ctx context.Context) (*models.ValidationRun, error) {
	run := &models.ValidationRun{
		Status:    models.ValidationRunExecuting,
		StartedAt: time.Now(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		slog.Error("Failed to create validation run record", "error", err)
		return nil, fmt.Errorf("failed to create validation run: %w", err)
	}

	report, err := s.execute(ctx, run)
	run.FinishedAt = time.Now()
	if err != nil {
		run.Status = models.ValidationRunFailed
		run.ErrorMessage = err.Error()
		if updateErr := s.runRepo.Update(ctx, run); updateErr != nil {
			slog.Error("Failed to record validation run failure", "error", updateErr, "runId", run.ID)
		}
		slog.Error("Validation run failed", "error", err, "runId", run.ID)
		return run, err
	}

	run.Status = models.ValidationRunCompleted
	run.Report = report
	if err := s.runRepo.Update(ctx, run); err != nil {
		slog.Error("Failed to record validation run completion", "error", err, "runId", run.ID)
		return run, fmt.Errorf("failed to finalize validation run: %w", err)
	}

	slog.Info("Validation run completed",
		"runId", run.ID,
		"entries", run.EntryCount,
		"recharges", run.RechargeCount,
		"valid", report.ValidCount,
		"invalid", report.InvalidCount,
		"unknown", report.UnknownCount,
		"cutoff", report.CutoffCount,
	)
	return run, nil
}

// execute loads the snapshots, runs the engine and persists the verdicts
func (s *ValidationServiceImpl) execute(ctx context.Context, run *models.ValidationRun) (*models.ValidationReport, error) {
	entries, err := s.entryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries snapshot: %w", err)
	}
	recharges, err := s.rechargeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recharges snapshot: %w", err)
	}
	run.EntryCount = len(entries)
	run.RechargeCount = len(recharges)

	verdicts, err := s.engine.Run(entries, recharges)
	if err != nil {
		// Probe-bound overflows land here: the draw calendar is wrong for
		// the date range in play and every later verdict would be corrupt.
		return nil, fmt.Errorf("matching engine aborted: %w", err)
	}

	if err := s.persistVerdicts(ctx, verdicts); err != nil {
		return nil, err
	}
	return matching.BuildReport(verdicts), nil
}

// persistVerdicts writes verdicts in fixed-size batches, checking the context
// between batches so a caller can abandon a large run without blocking
func (s *ValidationServiceImpl) persistVerdicts(ctx context.Context, verdicts []matching.TicketVerdict) error {
	for start := 0; start < len(verdicts); start += s.persistBatchSize {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("validation run cancelled: %w", err)
		}
		end := start + s.persistBatchSize
		if end > len(verdicts) {
			end = len(verdicts)
		}
		for _, v := range verdicts[start:end] {
			err := s.entryRepo.UpdateVerdict(ctx, v.EntryID, v.Verdict, v.ReasonCode, v.BoundRechargeID, v.BoundRechargeTime, v.BoundRechargeAmount, v.CutoffFlag)
			if err != nil {
				return fmt.Errorf("failed to persist verdict for entry %s: %w", v.EntryID.Hex(), err)
			}
		}
	}
	return nil
}

// GetRunByID retrieves a validation run by its ID
func (s *ValidationServiceImpl) GetRunByID(ctx context.Context, runID primitive.ObjectID) (*models.ValidationRun, error) {
	run, err := s.runRepo.FindByID(ctx, runID)
	if err != nil {
		slog.Error("Failed to get validation run", "error", err, "runId", runID)
		return nil, fmt.Errorf("failed to retrieve validation run: %w", err)
	}
	return run, nil
}

// GetRuns retrieves validation runs, newest first
func (s *ValidationServiceImpl) GetRuns(ctx context.Context, page, limit int) ([]*models.ValidationRun, error) {
	runs, err := s.runRepo.FindAll(ctx, page, limit)
	if err != nil {
		slog.Error("Failed to list validation runs", "error", err)
		return nil, fmt.Errorf("failed to retrieve validation runs: %w", err)
	}
	return runs, nil
}

// GetLatestReport retrieves the report of the most recent completed run
func (s *ValidationServiceImpl) GetLatestReport(ctx context.Context) (*models.ValidationReport, error) {
	run, err := s.runRepo.FindLatestCompleted(ctx)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no completed validation run found")
		}
		slog.Error("Failed to get latest completed run", "error", err)
		return nil, fmt.Errorf("failed to retrieve latest report: %w", err)
	}
	if run.Report == nil {
		return nil, fmt.Errorf("latest run %s has no report", run.ID.Hex())
	}
	return run.Report, nil
}
