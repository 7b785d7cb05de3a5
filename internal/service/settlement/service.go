package settlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/remittance"
	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/worklog"
	"github.com/cmlabs-hris/settlements-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/settlements-backend-go/internal/pkg/events"
	"github.com/cmlabs-hris/settlements-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type SettlementService interface {
	GenerateRemittancesForAllUsers(ctx context.Context) (int, error)
	ListWorkLogs(ctx context.Context, req worklog.ListWorkLogsRequest) (worklog.ListWorkLogsResponse, error)
}

// TxRunner runs fn inside one atomic unit of work; everything staged through
// the context it passes to fn commits together or not at all.
type TxRunner func(ctx context.Context, fn func(txCtx context.Context) error) error

type SettlementServiceImpl struct {
	userRepo       user.UserRepository
	worklogRepo    worklog.WorkLogRepository
	remittanceRepo remittance.RemittanceRepository
	calculator     *Calculator
	runInTx        TxRunner
	publisher      events.Publisher
	logger         *slog.Logger

	// now is swappable for tests; remittance periods depend on it.
	now func() time.Time
}

func NewSettlementService(
	db *database.DB,
	userRepo user.UserRepository,
	worklogRepo worklog.WorkLogRepository,
	remittanceRepo remittance.RemittanceRepository,
	publisher events.Publisher,
	logger *slog.Logger,
) *SettlementServiceImpl {
	runInTx := func(ctx context.Context, fn func(txCtx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)
			return fn(txCtx)
		})
	}

	return &SettlementServiceImpl{
		userRepo:       userRepo,
		worklogRepo:    worklogRepo,
		remittanceRepo: remittanceRepo,
		calculator:     NewCalculator(worklogRepo, remittanceRepo),
		runInTx:        runInTx,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
	}
}

type candidateItem struct {
	worklogID string
	amount    decimal.Decimal
}

// GenerateRemittancesForAllUsers walks every user and every one of their
// worklogs, nets already-remitted amounts out of earned amounts, and persists
// one SUCCESS remittance per user with a positive payable total. Each user's
// header and items commit as one unit; a failed user is logged and skipped,
// never left half-written.
func (s *SettlementServiceImpl) GenerateRemittancesForAllUsers(ctx context.Context) (int, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to enumerate users: %w", err)
	}

	generated := 0

	for _, u := range users {
		worklogs, err := s.worklogRepo.GetByUserID(ctx, u.ID)
		if err != nil {
			s.logGenerationFailure(u.ID, err)
			continue
		}

		var items []candidateItem
		totalPayable := decimal.Zero

		for _, w := range worklogs {
			amount, err := s.calculator.PayableAmount(ctx, w.ID)
			if err != nil {
				return generated, err
			}
			if amount.IsPositive() {
				items = append(items, candidateItem{worklogID: w.ID, amount: amount})
				totalPayable = totalPayable.Add(amount)
			}
		}

		// Nothing to pay, skip the user entirely.
		if !totalPayable.IsPositive() {
			continue
		}

		today := s.now()
		header := remittance.Remittance{
			UserID:      u.ID,
			PeriodStart: firstOfMonth(today),
			PeriodEnd:   dateOnly(today),
			Status:      remittance.StatusSuccess,
		}

		var created remittance.Remittance
		err = s.runInTx(ctx, func(txCtx context.Context) error {
			var txErr error
			created, txErr = s.remittanceRepo.Create(txCtx, header)
			if txErr != nil {
				return txErr
			}

			for _, item := range items {
				if _, txErr := s.remittanceRepo.CreateItem(txCtx, remittance.RemittanceItem{
					RemittanceID: created.ID,
					WorkLogID:    item.worklogID,
					Amount:       item.amount,
				}); txErr != nil {
					return txErr
				}
			}

			return nil
		})
		if err != nil {
			s.logGenerationFailure(u.ID, err)
			continue
		}

		generated++
		s.publishCreated(ctx, created, totalPayable, len(items))
	}

	return generated, nil
}

// ListWorkLogs annotates every worklog with its payable balance and derived
// remittance status. The filter is validated before any query runs.
func (s *SettlementServiceImpl) ListWorkLogs(ctx context.Context, req worklog.ListWorkLogsRequest) (worklog.ListWorkLogsResponse, error) {
	if err := req.Validate(); err != nil {
		return worklog.ListWorkLogsResponse{}, err
	}

	worklogs, err := s.worklogRepo.GetAll(ctx)
	if err != nil {
		return worklog.ListWorkLogsResponse{}, err
	}

	data := make([]worklog.WorkLogPublic, 0, len(worklogs))
	for _, w := range worklogs {
		amount, err := s.calculator.PayableAmount(ctx, w.ID)
		if err != nil {
			return worklog.ListWorkLogsResponse{}, err
		}

		status := worklog.StatusUnremitted
		if !amount.IsPositive() {
			status = worklog.StatusRemitted
		}

		if req.RemittanceStatus != nil && *req.RemittanceStatus != status {
			continue
		}

		data = append(data, worklog.WorkLogPublic{
			WorkLogID:        w.ID,
			UserID:           w.UserID,
			Amount:           amount.StringFixed(2),
			RemittanceStatus: status,
		})
	}

	return worklog.ListWorkLogsResponse{Data: data, Count: len(data)}, nil
}

func (s *SettlementServiceImpl) logGenerationFailure(userID string, err error) {
	if s.logger != nil {
		s.logger.Error("remittance generation failed for user",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
}

func (s *SettlementServiceImpl) publishCreated(ctx context.Context, created remittance.Remittance, total decimal.Decimal, itemCount int) {
	if s.publisher == nil {
		return
	}

	event := remittance.CreatedEvent{
		EventID:      uuid.NewString(),
		RemittanceID: created.ID,
		UserID:       created.UserID,
		Total:        total,
		ItemCount:    itemCount,
		PeriodStart:  created.PeriodStart.Format("2006-01-02"),
		PeriodEnd:    created.PeriodEnd.Format("2006-01-02"),
		OccurredAt:   s.now(),
	}

	if err := s.publisher.Publish(ctx, event); err != nil && s.logger != nil {
		// Publishing is best-effort; the remittance is already committed.
		s.logger.Warn("failed to publish remittance event",
			slog.String("remittance_id", created.ID),
			slog.Any("error", err),
		)
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

var _ SettlementService = (*SettlementServiceImpl)(nil)
