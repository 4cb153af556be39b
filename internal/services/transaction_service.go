package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/amqp"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/storage"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionService owns the single writer path for the transaction
// collection: validate, write the snapshot through to the store, then
// publish a change event. Event publishing is best-effort and never fails
// the mutation.
type TransactionService struct {
	store      storage.Store
	amqpClient *amqp.Client
}

func NewTransactionService(store storage.Store, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// List returns the full transaction collection.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.store.LoadTransactions(ctx)
}

// Create validates and persists a new transaction, assigning an id when the
// caller did not provide one.
func (s *TransactionService) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	currency, err := core.NormalizeCurrency(tx.Currency)
	if err != nil {
		return core.Transaction{}, err
	}
	tx.Currency = currency
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	existing, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load transactions: %w", err)
	}
	for _, e := range existing {
		if e.ID == tx.ID {
			return core.Transaction{}, fmt.Errorf("duplicate transaction id %s", tx.ID)
		}
	}

	if err := s.store.SaveTransactions(ctx, append(existing, tx)); err != nil {
		return core.Transaction{}, fmt.Errorf("save transactions: %w", err)
	}

	s.publishEvent(ctx, tx.ID, amqp.ActionCreated)

	slog.InfoContext(ctx, "Transaction created",
		"id", tx.ID,
		"type", string(tx.Type),
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category)

	return tx, nil
}

// Update replaces a transaction wholesale by id.
func (s *TransactionService) Update(ctx context.Context, tx core.Transaction) error {
	currency, err := core.NormalizeCurrency(tx.Currency)
	if err != nil {
		return err
	}
	tx.Currency = currency
	if err := tx.Validate(); err != nil {
		return err
	}

	existing, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	found := false
	for i, e := range existing {
		if e.ID == tx.ID {
			existing[i] = tx
			found = true
			break
		}
	}
	if !found {
		return ErrTransactionNotFound
	}

	if err := s.store.SaveTransactions(ctx, existing); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}

	s.publishEvent(ctx, tx.ID, amqp.ActionUpdated)
	return nil
}

// Delete removes a single transaction by id.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	return s.BulkDelete(ctx, []string{id})
}

// BulkDelete removes every transaction whose id is in ids. Unknown ids are
// reported as ErrTransactionNotFound only when nothing was removed.
func (s *TransactionService) BulkDelete(ctx context.Context, ids []string) error {
	existing, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := existing[:0:0]
	for _, e := range existing {
		if _, ok := drop[e.ID]; !ok {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(existing) {
		return ErrTransactionNotFound
	}

	if err := s.store.SaveTransactions(ctx, kept); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}

	for _, id := range ids {
		s.publishEvent(ctx, id, amqp.ActionDeleted)
	}
	return nil
}

func (s *TransactionService) publishEvent(ctx context.Context, id, action string) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishTransactionEvent(ctx, id, action); err != nil {
		// Local state is the source of truth; a lost event only delays the
		// alert worker until the next one.
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"id", id,
			"action", action,
			"error", err)
	}
}
