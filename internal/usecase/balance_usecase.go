package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/infrastructure/metrics"
)

// BalanceUseCase manages balances outside the entry pipeline: provisioning,
// top-ups, the unlimited flag and the conservation check.
type BalanceUseCase struct {
	txManager   TransactionManager
	balanceRepo BalanceRepository
	entryRepo   EntryRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(
	txManager TransactionManager,
	balanceRepo BalanceRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *BalanceUseCase {
	return &BalanceUseCase{
		txManager:   txManager,
		balanceRepo: balanceRepo,
		entryRepo:   entryRepo,
		outboxRepo:  outboxRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
		metrics:     m,
		logger:      logger,
	}
}

// Get returns the user's balance.
func (uc *BalanceUseCase) Get(ctx context.Context, userID string) (*domain.Balance, error) {
	return uc.balanceRepo.GetByUserID(ctx, userID)
}

// List returns a page of balances, for the admin overview.
func (uc *BalanceUseCase) List(ctx context.Context, limit, offset int) ([]*domain.Balance, error) {
	return uc.balanceRepo.List(ctx, limit, offset)
}

// Create provisions a balance with an opening amount. Unlimited balances
// skip the sufficiency check on every later deduction.
func (uc *BalanceUseCase) Create(ctx context.Context, userID string, opening decimal.Decimal, unlimited bool) (*domain.Balance, error) {
	if opening.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	balance := &domain.Balance{
		UserID:     userID,
		Amount:     opening,
		TotalSpent: decimal.Zero,
		Unlimited:  unlimited,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.balanceRepo.Create(ctx, balance); err != nil {
		return nil, err
	}

	return balance, nil
}

// Topup credits the balance without touching the spent counter: a top-up is
// new money, not a reversal of spending.
func (uc *BalanceUseCase) Topup(ctx context.Context, ownerID, actorID string, amount decimal.Decimal) (*domain.Balance, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	balance, err := uc.mutate(ctx, ownerID, func(b *domain.Balance) error {
		return b.Add(amount, false)
	})
	if err != nil {
		uc.auditTopup(ctx, actorID, ownerID, err)
		return nil, err
	}

	uc.auditTopup(ctx, actorID, ownerID, nil)

	if uc.metrics != nil {
		uc.metrics.BalanceTopups.Inc()
		uc.metrics.BalanceAmount.WithLabelValues(ownerID).Set(balance.Amount.InexactFloat64())
	}

	return balance, nil
}

// SetUnlimited toggles the privileged flag on a balance.
func (uc *BalanceUseCase) SetUnlimited(ctx context.Context, ownerID string, unlimited bool) (*domain.Balance, error) {
	return uc.mutate(ctx, ownerID, func(b *domain.Balance) error {
		b.Unlimited = unlimited
		return nil
	})
}

// ConsistencyReport is the outcome of the conservation check for one user.
type ConsistencyReport struct {
	UserID     string
	TotalSpent decimal.Decimal
	EntrySum   decimal.Decimal
	Drift      decimal.Decimal
	Consistent bool
}

// CheckConsistency verifies the ledger's conservation invariant: the spent
// counter must equal the summed net stake of the user's live entries.
func (uc *BalanceUseCase) CheckConsistency(ctx context.Context, userID string) (*ConsistencyReport, error) {
	balance, err := uc.balanceRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sum := decimal.Zero
	const pageSize = 500
	for offset := 0; ; offset += pageSize {
		entries, err := uc.entryRepo.ListByUser(ctx, userID, pageSize, offset)
		if err != nil {
			return nil, err
		}

		for _, e := range entries {
			sum = sum.Add(e.NetStake())
		}

		if len(entries) < pageSize {
			break
		}
	}

	report := &ConsistencyReport{
		UserID:     userID,
		TotalSpent: balance.TotalSpent,
		EntrySum:   sum,
		Drift:      balance.TotalSpent.Sub(sum),
		Consistent: balance.TotalSpent.Equal(sum),
	}

	if !report.Consistent {
		uc.logger.Error().
			Str("user_id", userID).
			Str("total_spent", report.TotalSpent.String()).
			Str("entry_sum", report.EntrySum.String()).
			Msg("ledger conservation check failed")

		return report, domain.ErrInconsistentLedger
	}

	return report, nil
}

// mutate applies fn to the row-locked balance and emits a balance.changed
// event in the same transaction.
func (uc *BalanceUseCase) mutate(ctx context.Context, ownerID string, fn func(*domain.Balance) error) (*domain.Balance, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	balance, err := uc.balanceRepo.GetByUserIDForUpdate(ctx, tx, ownerID)
	if err != nil {
		return nil, err
	}

	previous := balance.Amount

	if err := fn(balance); err != nil {
		return nil, err
	}

	balance.Version++
	balance.UpdatedAt = time.Now().UTC()

	if err := uc.balanceRepo.Update(ctx, tx, balance); err != nil {
		return nil, err
	}

	if !balance.Amount.Equal(previous) {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   ownerID,
			AggregateType: domain.AggregateTypeBalance,
			EventType:     domain.EventTypeBalanceChanged,
			Payload: map[string]any{
				"user_id":  ownerID,
				"previous": previous.String(),
				"current":  balance.Amount.String(),
			},
			CreatedAt: time.Now().UTC(),
		}

		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return balance, nil
}

func (uc *BalanceUseCase) auditTopup(ctx context.Context, actorID, ownerID string, actionErr error) {
	if uc.auditRepo == nil {
		return
	}

	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		ActorID:      actorID,
		OwnerID:      ownerID,
		Action:       string(domain.AuditActionTopup),
		ResourceType: domain.AggregateTypeBalance,
		ResourceID:   ownerID,
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}

	if actionErr != nil {
		log.Status = string(domain.AuditStatusFailure)
		log.ErrorMessage = actionErr.Error()
	}

	if err := uc.auditRepo.Create(ctx, log); err != nil {
		uc.logger.Warn().Err(err).Msg("audit log write failed")
	}
}
