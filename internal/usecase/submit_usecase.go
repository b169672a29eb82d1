package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/infrastructure/metrics"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/parser"
)

// SubmitUseCase is the transactional boundary for every ledger mutation.
// Each batch is debited (or credited) against the owner's balance exactly
// once before entry persistence fans out; a batch whose writes all fail gets
// the balance charge compensated back. Edits and deletes reconcile by delta.
type SubmitUseCase struct {
	txManager   TransactionManager
	entryRepo   EntryRepository
	balanceRepo BalanceRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	retrier     Retrier
	cache       Cache
	limits      domain.LimitConfig
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// SubmitConfig holds the dependencies of SubmitUseCase.
type SubmitConfig struct {
	TxManager   TransactionManager
	EntryRepo   EntryRepository
	BalanceRepo BalanceRepository
	OutboxRepo  OutboxRepository
	AuditRepo   AuditRepository
	IDGen       IDGenerator
	Retrier     Retrier
	Cache       Cache
	Limits      domain.LimitConfig
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
}

// NewSubmitUseCase creates a new SubmitUseCase.
func NewSubmitUseCase(cfg SubmitConfig) *SubmitUseCase {
	return &SubmitUseCase{
		txManager:   cfg.TxManager,
		entryRepo:   cfg.EntryRepo,
		balanceRepo: cfg.BalanceRepo,
		outboxRepo:  cfg.OutboxRepo,
		auditRepo:   cfg.AuditRepo,
		idGen:       cfg.IDGen,
		retrier:     cfg.Retrier,
		cache:       cfg.Cache,
		limits:      cfg.Limits,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
	}
}

// SubmitTextInput represents a free-text batch submission. ActorID differs
// from OwnerID when an admin acts on another user's balance.
type SubmitTextInput struct {
	OwnerID         string
	ActorID         string
	Text            string
	DefaultCategory domain.Category
	Notes           string
}

// BatchResult reports the outcome of a committed batch.
type BatchResult struct {
	Entries     []*domain.Entry
	ParseErrors []parser.ParseError
	Requested   int
	Succeeded   int
	TotalCost   decimal.Decimal
	Action      *domain.HistoryAction
}

// SubmitText parses a block of user text and commits the resulting entries
// as one batch. Parse errors for individual tokens are returned alongside
// the committed subset; the batch aborts only when nothing valid remains or
// no stake amount was given.
func (uc *SubmitUseCase) SubmitText(ctx context.Context, input SubmitTextInput) (*BatchResult, error) {
	parsed := parser.Parse(input.Text, input.DefaultCategory)

	if uc.metrics != nil && len(parsed.Errors) > 0 {
		uc.metrics.ParseErrors.Add(float64(len(parsed.Errors)))
	}

	if len(parsed.Entries) == 0 {
		return &BatchResult{ParseErrors: parsed.Errors}, domain.ErrNoValidEntries
	}

	now := time.Now().UTC()

	entries := make([]*domain.Entry, 0, len(parsed.Entries))
	for _, pe := range parsed.Entries {
		entries = append(entries, &domain.Entry{
			ID:        uc.idGen.Generate(),
			UserID:    input.OwnerID,
			Number:    pe.Number,
			Category:  pe.Category,
			First:     pe.First,
			Second:    pe.Second,
			Notes:     input.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	total := batchTotal(entries)
	if !total.IsPositive() {
		return &BatchResult{ParseErrors: parsed.Errors}, domain.ErrNoAmount
	}

	actionType := domain.ActionBatch
	if len(entries) == 1 {
		actionType = domain.ActionAdd
	}

	result, err := uc.commitBatch(ctx, input.OwnerID, input.ActorID, entries, actionType, domain.AuditActionBatchSubmit)
	if result != nil {
		result.ParseErrors = parsed.Errors
	}

	return result, err
}

// SubmitEntries commits pre-built entries (structured API input, deduction
// batches, redo replays) as one batch.
func (uc *SubmitUseCase) SubmitEntries(ctx context.Context, ownerID, actorID string, entries []*domain.Entry, actionType domain.ActionType) (*BatchResult, error) {
	if len(entries) == 0 {
		return nil, domain.ErrNoValidEntries
	}

	now := time.Now().UTC()
	for _, e := range entries {
		if e.ID == "" {
			e.ID = uc.idGen.Generate()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		e.UserID = ownerID
		e.UpdatedAt = now

		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	auditAction := domain.AuditActionBatchSubmit
	if actionType == domain.ActionFilter {
		auditAction = domain.AuditActionFilterApply
	}

	return uc.commitBatch(ctx, ownerID, actorID, entries, actionType, auditAction)
}

// commitBatch runs the Validating → BalanceChecking → Debiting → Persisting
// pipeline for a prepared set of entries.
func (uc *SubmitUseCase) commitBatch(
	ctx context.Context,
	ownerID, actorID string,
	entries []*domain.Entry,
	actionType domain.ActionType,
	auditAction domain.AuditAction,
) (*BatchResult, error) {
	// Limit check runs before any balance change so a violation aborts the
	// whole batch with nothing to unwind.
	if err := uc.checkLimits(ctx, ownerID, entries); err != nil {
		if uc.metrics != nil {
			uc.metrics.BatchesRejected.WithLabelValues("limit").Inc()
		}
		return nil, err
	}

	total := batchTotal(entries)
	batchID := uc.idGen.Generate()

	// Debiting: exactly one balance mutation for the whole batch.
	if err := uc.reconcileBalance(ctx, ownerID, total, uc.committedEvent(batchID, ownerID, entries, total)); err != nil {
		if uc.metrics != nil {
			var insufficient *domain.InsufficientBalanceError
			if errors.As(err, &insufficient) {
				uc.metrics.BalanceRefused.Inc()
				uc.metrics.BatchesRejected.WithLabelValues("balance").Inc()
			} else {
				uc.metrics.BatchesRejected.WithLabelValues("store").Inc()
			}
		}
		uc.audit(ctx, actorID, ownerID, auditAction, domain.AggregateTypeBatch, batchID, domain.AuditStatusFailure, err)
		return nil, err
	}

	// Persisting: independent, unordered writes.
	persistErrs := uc.fanOut(ctx, entries, func(ctx context.Context, e *domain.Entry) error {
		return uc.entryRepo.Create(ctx, e)
	})

	result := &BatchResult{
		Requested: len(entries),
		TotalCost: total,
	}

	var firstErr error
	for i, err := range persistErrs {
		if err == nil {
			result.Succeeded++
			result.Entries = append(result.Entries, entries[i])
			continue
		}

		if firstErr == nil {
			firstErr = err
		}

		uc.logger.Error().Err(err).
			Str("entry_id", entries[i].ID).
			Str("user_id", ownerID).
			Msg("entry persistence failed")
	}

	if result.Succeeded == 0 {
		// Compensate the debit: the balance must never reflect a charge no
		// entry backs.
		if err := uc.reconcileBalance(ctx, ownerID, total.Neg(), nil); err != nil {
			uc.logger.Error().Err(err).
				Str("user_id", ownerID).
				Str("amount", total.String()).
				Msg("balance compensation failed after batch persistence failure")
		}

		perr := &domain.PersistenceError{Requested: len(entries), AllFailed: true, Err: firstErr}
		uc.audit(ctx, actorID, ownerID, auditAction, domain.AggregateTypeBatch, batchID, domain.AuditStatusError, perr)

		return result, perr
	}

	result.Action = domain.NewBatchAction(actionType, result.Entries)

	if uc.metrics != nil {
		uc.metrics.BatchesCommitted.Inc()
		uc.metrics.BatchSize.Observe(float64(result.Succeeded))
		uc.metrics.BatchCost.Observe(total.InexactFloat64())
		for _, e := range result.Entries {
			uc.metrics.EntriesCreated.WithLabelValues(string(e.Category)).Inc()
		}
	}

	uc.invalidateSummaries(ctx, ownerID, entries)
	uc.audit(ctx, actorID, ownerID, auditAction, domain.AggregateTypeBatch, batchID, domain.AuditStatusSuccess, nil)

	if result.Succeeded < result.Requested {
		// The batch committed with the full debit; the count gap travels as
		// a non-fatal PersistenceError, same as partial deletes.
		return result, &domain.PersistenceError{
			Requested: result.Requested,
			Succeeded: result.Succeeded,
			Err:       firstErr,
		}
	}

	return result, nil
}

// EditEntryInput updates the stake amounts of one entry.
type EditEntryInput struct {
	OwnerID string
	ActorID string
	EntryID string
	First   decimal.Decimal
	Second  decimal.Decimal
	Notes   string
}

// EditEntry changes an entry's amounts and reconciles the balance by the
// difference between the updated and original stake totals.
func (uc *SubmitUseCase) EditEntry(ctx context.Context, input EditEntryInput) (*domain.HistoryAction, error) {
	original, err := uc.entryRepo.GetByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if original.UserID != input.OwnerID {
		return nil, domain.ErrEntryNotFound
	}

	updated := original.Clone()
	updated.First = input.First
	updated.Second = input.Second
	updated.Notes = input.Notes
	updated.UpdatedAt = time.Now().UTC()

	if err := uc.applyEdit(ctx, input.OwnerID, original, updated); err != nil {
		uc.audit(ctx, input.ActorID, input.OwnerID, domain.AuditActionEntryEdit, domain.AggregateTypeEntry, input.EntryID, domain.AuditStatusFailure, err)
		return nil, err
	}

	uc.audit(ctx, input.ActorID, input.OwnerID, domain.AuditActionEntryEdit, domain.AggregateTypeEntry, input.EntryID, domain.AuditStatusSuccess, nil)

	if uc.metrics != nil {
		uc.metrics.EntriesEdited.Inc()
	}

	return domain.NewEditAction(original, updated), nil
}

// applyEdit persists updated in place of original, charging only the stake
// delta. Shared with history replay, which swaps the two directions.
func (uc *SubmitUseCase) applyEdit(ctx context.Context, ownerID string, original, updated *domain.Entry) error {
	delta := updated.NetStake().Sub(original.NetStake())

	if delta.IsPositive() {
		if err := uc.checkEditLimits(ctx, ownerID, original, updated); err != nil {
			return err
		}
	}

	event := uc.entryEvent(domain.EventTypeEntryUpdated, updated.ID, map[string]any{
		"entry_id":      updated.ID,
		"user_id":       ownerID,
		"balance_delta": delta.String(),
	})

	if err := uc.reconcileBalance(ctx, ownerID, delta, event); err != nil {
		return err
	}

	if err := uc.entryRepo.Update(ctx, updated); err != nil {
		// Undo the delta charge; the stored entry still has its old amounts.
		if cerr := uc.reconcileBalance(ctx, ownerID, delta.Neg(), nil); cerr != nil {
			uc.logger.Error().Err(cerr).Str("entry_id", updated.ID).Msg("balance compensation failed after edit failure")
		}

		return err
	}

	uc.invalidateSummaries(ctx, ownerID, []*domain.Entry{updated})

	return nil
}

// DeleteEntry removes an entry and refunds its full stake.
func (uc *SubmitUseCase) DeleteEntry(ctx context.Context, ownerID, actorID, entryID string) (*domain.HistoryAction, error) {
	entry, err := uc.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.UserID != ownerID {
		return nil, domain.ErrEntryNotFound
	}

	if err := uc.removeEntries(ctx, ownerID, []*domain.Entry{entry}); err != nil {
		uc.audit(ctx, actorID, ownerID, domain.AuditActionEntryDelete, domain.AggregateTypeEntry, entryID, domain.AuditStatusFailure, err)
		return nil, err
	}

	uc.audit(ctx, actorID, ownerID, domain.AuditActionEntryDelete, domain.AggregateTypeEntry, entryID, domain.AuditStatusSuccess, nil)

	if uc.metrics != nil {
		uc.metrics.EntriesDeleted.Inc()
	}

	return domain.NewDeleteAction(entry), nil
}

// removeEntries deletes a set of entries and credits the refund once for
// whatever was actually removed. Deletion runs first so the credit can never
// exceed what the entry set backs.
func (uc *SubmitUseCase) removeEntries(ctx context.Context, ownerID string, entries []*domain.Entry) error {
	deleteErrs := uc.fanOut(ctx, entries, func(ctx context.Context, e *domain.Entry) error {
		return uc.entryRepo.Delete(ctx, e.ID)
	})

	refund := decimal.Zero
	deleted := 0

	var firstErr error
	for i, err := range deleteErrs {
		if err == nil {
			refund = refund.Add(entries[i].NetStake())
			deleted++
			continue
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	if deleted > 0 && !refund.IsZero() {
		event := uc.entryEvent(domain.EventTypeEntryDeleted, entries[0].ID, map[string]any{
			"user_id":  ownerID,
			"refunded": refund.String(),
		})

		if err := uc.reconcileBalance(ctx, ownerID, refund.Neg(), event); err != nil {
			return err
		}
	}

	uc.invalidateSummaries(ctx, ownerID, entries)

	if deleted < len(entries) {
		return &domain.PersistenceError{
			Requested: len(entries),
			Succeeded: deleted,
			AllFailed: deleted == 0,
			Err:       firstErr,
		}
	}

	return nil
}

// restoreEntries re-creates previously removed entries and re-charges their
// stake once for the set. Used by history replay.
func (uc *SubmitUseCase) restoreEntries(ctx context.Context, ownerID string, entries []*domain.Entry) error {
	total := batchTotal(entries)

	batchID := uc.idGen.Generate()
	if err := uc.reconcileBalance(ctx, ownerID, total, uc.committedEvent(batchID, ownerID, entries, total)); err != nil {
		return err
	}

	createErrs := uc.fanOut(ctx, entries, func(ctx context.Context, e *domain.Entry) error {
		return uc.entryRepo.Create(ctx, e)
	})

	restored := 0
	var firstErr error
	for _, err := range createErrs {
		if err == nil {
			restored++
		} else if firstErr == nil {
			firstErr = err
		}
	}

	if restored == 0 {
		if err := uc.reconcileBalance(ctx, ownerID, total.Neg(), nil); err != nil {
			uc.logger.Error().Err(err).Str("user_id", ownerID).Msg("balance compensation failed after restore failure")
		}

		return &domain.PersistenceError{Requested: len(entries), AllFailed: true, Err: firstErr}
	}

	uc.invalidateSummaries(ctx, ownerID, entries)

	if restored < len(entries) {
		return &domain.PersistenceError{Requested: len(entries), Succeeded: restored, Err: firstErr}
	}

	return nil
}

// reconcileBalance applies one signed balance delta inside a row-locked
// transaction, writing the outbox events alongside. Positive deducts,
// negative credits.
func (uc *SubmitUseCase) reconcileBalance(ctx context.Context, ownerID string, delta decimal.Decimal, event *domain.OutboxEvent) error {
	if delta.IsZero() && event == nil {
		return nil
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	balance, err := uc.balanceRepo.GetByUserIDForUpdate(ctx, tx, ownerID)
	if err != nil {
		return err
	}

	previous := balance.Amount

	if err := balance.Reconcile(delta, true); err != nil {
		return err
	}

	balance.Version++
	balance.UpdatedAt = time.Now().UTC()

	if err := uc.balanceRepo.Update(ctx, tx, balance); err != nil {
		return err
	}

	if event != nil {
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}
	}

	if !delta.IsZero() {
		changed := uc.entryEvent(domain.EventTypeBalanceChanged, ownerID, map[string]any{
			"user_id":  ownerID,
			"previous": previous.String(),
			"current":  balance.Amount.String(),
		})
		changed.AggregateType = domain.AggregateTypeBalance

		if err := uc.outboxRepo.Create(ctx, tx, changed); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// checkLimits validates the batch against the configured per-number ceilings
// using current aggregates plus the amounts pending earlier in the batch.
func (uc *SubmitUseCase) checkLimits(ctx context.Context, ownerID string, entries []*domain.Entry) error {
	if len(uc.limits) == 0 {
		return nil
	}

	type sideTotals struct{ first, second decimal.Decimal }

	summaries := make(map[domain.Category]map[string]*domain.NumberSummary)
	pending := make(map[domain.Category]map[string]*sideTotals)

	for _, e := range entries {
		if _, ok := summaries[e.Category]; !ok {
			existing, err := uc.entryRepo.ListByUserAndCategory(ctx, ownerID, e.Category)
			if err != nil {
				return err
			}

			summaries[e.Category] = domain.Aggregate(existing, e.Category)
			pending[e.Category] = make(map[string]*sideTotals)
		}

		for _, number := range e.AllNumbers() {
			p, ok := pending[e.Category][number]
			if !ok {
				p = &sideTotals{first: decimal.Zero, second: decimal.Zero}
				pending[e.Category][number] = p
			}

			currentFirst := p.first
			currentSecond := p.second
			if s, ok := summaries[e.Category][number]; ok {
				currentFirst = currentFirst.Add(s.FirstTotal)
				currentSecond = currentSecond.Add(s.SecondTotal)
			}

			if err := uc.limits.Check(e.Category, number, domain.SideFirst, currentFirst, e.First); err != nil {
				return err
			}

			if err := uc.limits.Check(e.Category, number, domain.SideSecond, currentSecond, e.Second); err != nil {
				return err
			}

			p.first = p.first.Add(e.First)
			p.second = p.second.Add(e.Second)
		}
	}

	return nil
}

// checkEditLimits validates an amount increase against the ceilings,
// counting the current totals without the original entry's contribution.
func (uc *SubmitUseCase) checkEditLimits(ctx context.Context, ownerID string, original, updated *domain.Entry) error {
	if len(uc.limits) == 0 {
		return nil
	}

	existing, err := uc.entryRepo.ListByUserAndCategory(ctx, ownerID, updated.Category)
	if err != nil {
		return err
	}

	summaries := domain.Aggregate(existing, updated.Category)

	for _, number := range updated.AllNumbers() {
		currentFirst := decimal.Zero
		currentSecond := decimal.Zero
		if s, ok := summaries[number]; ok {
			currentFirst = s.FirstTotal.Sub(original.First)
			currentSecond = s.SecondTotal.Sub(original.Second)
		}

		if err := uc.limits.Check(updated.Category, number, domain.SideFirst, currentFirst, updated.First); err != nil {
			return err
		}

		if err := uc.limits.Check(updated.Category, number, domain.SideSecond, currentSecond, updated.Second); err != nil {
			return err
		}
	}

	return nil
}

// fanOut runs op over every entry as independent, unordered writes and
// returns the per-entry outcomes in input order.
func (uc *SubmitUseCase) fanOut(ctx context.Context, entries []*domain.Entry, op func(context.Context, *domain.Entry) error) []error {
	errs := make([]error, len(entries))

	var wg sync.WaitGroup
	for i, e := range entries {
		wg.Add(1)

		go func(i int, e *domain.Entry) {
			defer wg.Done()

			if uc.retrier != nil {
				errs[i] = uc.retrier.Retry(ctx, func() error { return op(ctx, e) })
			} else {
				errs[i] = op(ctx, e)
			}
		}(i, e)
	}
	wg.Wait()

	return errs
}

func (uc *SubmitUseCase) committedEvent(batchID, ownerID string, entries []*domain.Entry, total decimal.Decimal) *domain.OutboxEvent {
	ids := make([]string, 0, len(entries))
	deduction := false
	for _, e := range entries {
		ids = append(ids, e.ID)
		deduction = deduction || e.IsDeduction
	}

	return &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   batchID,
		AggregateType: domain.AggregateTypeBatch,
		EventType:     domain.EventTypeEntriesCommitted,
		Payload: map[string]any{
			"batch_id":   batchID,
			"user_id":    ownerID,
			"entry_ids":  ids,
			"total_cost": total.String(),
			"deduction":  deduction,
		},
		CreatedAt: time.Now().UTC(),
	}
}

func (uc *SubmitUseCase) entryEvent(eventType, aggregateID string, payload map[string]any) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   aggregateID,
		AggregateType: domain.AggregateTypeEntry,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     time.Now().UTC(),
	}
}

func (uc *SubmitUseCase) invalidateSummaries(ctx context.Context, ownerID string, entries []*domain.Entry) {
	if uc.cache == nil {
		return
	}

	seen := make(map[domain.Category]bool)
	for _, e := range entries {
		if seen[e.Category] {
			continue
		}
		seen[e.Category] = true

		if err := uc.cache.Delete(ctx, summaryCacheKey(ownerID, e.Category)); err != nil {
			uc.logger.Debug().Err(err).Str("user_id", ownerID).Msg("summary cache invalidation failed")
		}
	}
}

func (uc *SubmitUseCase) audit(ctx context.Context, actorID, ownerID string, action domain.AuditAction, resourceType, resourceID string, status domain.AuditStatus, actionErr error) {
	if uc.auditRepo == nil {
		return
	}

	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		ActorID:      actorID,
		OwnerID:      ownerID,
		Action:       string(action),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}

	if actionErr != nil {
		log.Status = string(status)
		log.ErrorMessage = actionErr.Error()
	}

	if err := uc.auditRepo.Create(ctx, log); err != nil {
		uc.logger.Warn().Err(err).Str("action", string(action)).Msg("audit log write failed")
	}
}

func batchTotal(entries []*domain.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.NetStake())
	}

	return total
}

// IsNotFound reports whether err is the missing-entry error, which history
// replay treats as an abandoned action.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrEntryNotFound)
}
