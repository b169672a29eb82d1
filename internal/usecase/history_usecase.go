package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
)

// defaultHistoryDepth caps how many actions a user's stack retains.
const defaultHistoryDepth = 100

// HistoryUseCase keeps a per-user linear undo/redo stack of committed
// mutations and replays them through the submit pipeline, so every reversal
// carries the same balance restitution as the action it reverses.
//
// The stack is process-local: history does not survive a restart, matching
// the session-scoped nature of undo.
type HistoryUseCase struct {
	submit *SubmitUseCase
	logger zerolog.Logger

	mu     sync.Mutex
	stacks map[string]*historyStack
	depth  int
}

type historyStack struct {
	actions []*domain.HistoryAction
	// cursor counts applied actions; entries beyond it are the redo tail.
	cursor int
}

// NewHistoryUseCase creates a new HistoryUseCase.
func NewHistoryUseCase(submit *SubmitUseCase, depth int, logger zerolog.Logger) *HistoryUseCase {
	if depth <= 0 {
		depth = defaultHistoryDepth
	}

	return &HistoryUseCase{
		submit: submit,
		logger: logger,
		stacks: make(map[string]*historyStack),
		depth:  depth,
	}
}

// Record pushes a committed action onto the user's stack. Any redo tail is
// discarded: history is linear, a new action after undo forks away the
// undone branch.
func (uc *HistoryUseCase) Record(userID string, action *domain.HistoryAction) {
	if action == nil {
		return
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.stacks[userID]
	if !ok {
		s = &historyStack{}
		uc.stacks[userID] = s
	}

	s.actions = append(s.actions[:s.cursor], action)
	if len(s.actions) > uc.depth {
		s.actions = s.actions[len(s.actions)-uc.depth:]
	}
	s.cursor = len(s.actions)
}

// Undo reverses the most recent applied action for the owner and returns it.
func (uc *HistoryUseCase) Undo(ctx context.Context, ownerID, actorID string) (*domain.HistoryAction, error) {
	uc.mu.Lock()
	s, ok := uc.stacks[ownerID]
	if !ok || s.cursor == 0 {
		uc.mu.Unlock()
		return nil, domain.ErrNothingToUndo
	}

	action := s.actions[s.cursor-1]
	uc.mu.Unlock()

	if err := uc.replay(ctx, ownerID, action, true); err != nil {
		if IsNotFound(err) {
			// The recorded entries were changed out from under the stack;
			// the action can never replay again, so drop it.
			uc.discard(ownerID, action)
		}

		uc.submit.audit(ctx, actorID, ownerID, domain.AuditActionUndo, domain.AggregateTypeBatch, "", domain.AuditStatusFailure, err)

		return nil, fmt.Errorf("undo %s: %w", action.Type, err)
	}

	uc.mu.Lock()
	if s.cursor > 0 {
		s.cursor--
	}
	uc.mu.Unlock()

	uc.submit.audit(ctx, actorID, ownerID, domain.AuditActionUndo, domain.AggregateTypeBatch, "", domain.AuditStatusSuccess, nil)

	if uc.submit.metrics != nil {
		uc.submit.metrics.UndoOperations.Inc()
	}

	return action, nil
}

// Redo re-applies the most recently undone action for the owner.
func (uc *HistoryUseCase) Redo(ctx context.Context, ownerID, actorID string) (*domain.HistoryAction, error) {
	uc.mu.Lock()
	s, ok := uc.stacks[ownerID]
	if !ok || s.cursor >= len(s.actions) {
		uc.mu.Unlock()
		return nil, domain.ErrNothingToRedo
	}

	action := s.actions[s.cursor]
	uc.mu.Unlock()

	if err := uc.replay(ctx, ownerID, action, false); err != nil {
		if IsNotFound(err) {
			uc.discard(ownerID, action)
		}

		uc.submit.audit(ctx, actorID, ownerID, domain.AuditActionRedo, domain.AggregateTypeBatch, "", domain.AuditStatusFailure, err)

		return nil, fmt.Errorf("redo %s: %w", action.Type, err)
	}

	uc.mu.Lock()
	if s.cursor < len(s.actions) {
		s.cursor++
	}
	uc.mu.Unlock()

	uc.submit.audit(ctx, actorID, ownerID, domain.AuditActionRedo, domain.AggregateTypeBatch, "", domain.AuditStatusSuccess, nil)

	if uc.submit.metrics != nil {
		uc.submit.metrics.RedoOperations.Inc()
	}

	return action, nil
}

// replay applies the inverse (undo) or forward (redo) effect of an action.
func (uc *HistoryUseCase) replay(ctx context.Context, ownerID string, action *domain.HistoryAction, inverse bool) error {
	switch action.Type {
	case domain.ActionAdd, domain.ActionBatch, domain.ActionFilter:
		if inverse {
			if err := uc.verifyExist(ctx, action.Created); err != nil {
				return err
			}
			return uc.submit.removeEntries(ctx, ownerID, action.Created)
		}
		return uc.submit.restoreEntries(ctx, ownerID, action.Created)

	case domain.ActionEdit:
		if err := uc.verifyExist(ctx, []*domain.Entry{action.Original}); err != nil {
			return err
		}
		if inverse {
			return uc.submit.applyEdit(ctx, ownerID, action.Updated, action.Original)
		}
		return uc.submit.applyEdit(ctx, ownerID, action.Original, action.Updated)

	case domain.ActionDelete:
		if inverse {
			return uc.submit.restoreEntries(ctx, ownerID, []*domain.Entry{action.Deleted})
		}
		if err := uc.verifyExist(ctx, []*domain.Entry{action.Deleted}); err != nil {
			return err
		}
		return uc.submit.removeEntries(ctx, ownerID, []*domain.Entry{action.Deleted})

	default:
		return fmt.Errorf("unknown action type %q", action.Type)
	}
}

// verifyExist checks all recorded entries are still present before a
// replay mutates anything, so a stale action aborts cleanly.
func (uc *HistoryUseCase) verifyExist(ctx context.Context, entries []*domain.Entry) error {
	for _, e := range entries {
		if _, err := uc.submit.entryRepo.GetByID(ctx, e.ID); err != nil {
			return err
		}
	}

	return nil
}

// discard removes a no-longer-replayable action from the owner's stack.
func (uc *HistoryUseCase) discard(ownerID string, action *domain.HistoryAction) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.stacks[ownerID]
	if !ok {
		return
	}

	for i, a := range s.actions {
		if a != action {
			continue
		}

		s.actions = append(s.actions[:i], s.actions[i+1:]...)
		if s.cursor > i {
			s.cursor--
		}

		uc.logger.Warn().Str("user_id", ownerID).Str("action", string(action.Type)).Msg("discarded stale history action")

		return
	}
}

// Status reports how many actions are available to undo and redo.
func (uc *HistoryUseCase) Status(userID string) (undo, redo int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.stacks[userID]
	if !ok {
		return 0, 0
	}

	return s.cursor, len(s.actions) - s.cursor
}

// Clear drops the user's stack entirely.
func (uc *HistoryUseCase) Clear(userID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	delete(uc.stacks, userID)
}
