// Package service implements the telecom (SIM) and bank route groups on top
// of the fraud engine. Every new linkage goes through Engine.Admit; status
// changes and deletions are audited in the same unit of work.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ninhub/internal/fraud"
	"ninhub/internal/linkage/models"
	regmodels "ninhub/internal/registry/models"
	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
	"ninhub/pkg/platform/audit"
	"ninhub/pkg/platform/sentinel"
	txcontext "ninhub/pkg/platform/tx"
	"ninhub/pkg/requestcontext"
)

// maxAccountNumberAttempts bounds regeneration when a generated account
// number collides with an existing one.
const maxAccountNumberAttempts = 5

type Store interface {
	FindByKey(ctx context.Context, d models.Domain, key string) (*models.Record, error)
	UpdateStatus(ctx context.Context, d models.Domain, key string, status models.Status, now time.Time) error
	Delete(ctx context.Context, d models.Domain, key string) error
	List(ctx context.Context, d models.Domain) ([]*models.Record, error)
	Search(ctx context.Context, d models.Domain, query string) ([]*models.Record, error)
	Stats(ctx context.Context, d models.Domain, now time.Time) (*models.Stats, error)
}

// Engine is the admission path for new linkages.
type Engine interface {
	Admit(ctx context.Context, actor domain.Actor, candidate models.Record) (fraud.Decision, error)
	InvalidateSignal(ctx context.Context, d models.Domain, nin domain.NIN)
}

// CitizenDirectory resolves holder names for listings.
type CitizenDirectory interface {
	FindByNIN(ctx context.Context, nin domain.NIN) (*regmodels.Citizen, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, entry audit.Entry) error
}

// Service serves both linkage domains over one store.
type Service struct {
	store   Store
	engine  Engine
	tx      txcontext.Runner
	auditor  AuditPublisher
	citizens CitizenDirectory
	logger   *slog.Logger

	generateAccountNumber func() (string, error)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCitizens joins holder names into List results.
func WithCitizens(citizens CitizenDirectory) Option {
	return func(s *Service) {
		s.citizens = citizens
	}
}

// WithAccountNumberGenerator replaces the crypto/rand account number source.
func WithAccountNumberGenerator(gen func() (string, error)) Option {
	return func(s *Service) {
		s.generateAccountNumber = gen
	}
}

func New(store Store, engine Engine, runner txcontext.Runner, auditor AuditPublisher, opts ...Option) *Service {
	s := &Service{
		store:                 store,
		engine:                engine,
		tx:                    runner,
		auditor:               auditor,
		generateAccountNumber: models.GenerateAccountNumber,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterSIM validates the phone number format and admits the SIM linkage.
// Rejections come back as coded errors carrying the decision reason.
func (s *Service) RegisterSIM(ctx context.Context, actor domain.Actor, nin, phone string) (*models.Record, error) {
	key, err := models.ParsePhoneNumber(phone)
	if err != nil {
		return nil, err
	}
	candidate := models.Record{
		Domain: models.DomainSIM,
		Key:    key,
		NIN:    domain.NIN(nin),
		Status: models.StatusActive,
	}
	return s.admit(ctx, actor, candidate)
}

// OpenAccount generates an account number and admits the bank linkage,
// regenerating on DUPLICATE_KEY up to maxAccountNumberAttempts times.
func (s *Service) OpenAccount(ctx context.Context, actor domain.Actor, nin, accountType string, initialBalance int64) (*models.Record, error) {
	kind, err := models.ParseAccountType(accountType)
	if err != nil {
		return nil, err
	}
	if initialBalance < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "initial_balance must not be negative")
	}

	for attempt := 1; ; attempt++ {
		number, err := s.generateAccountNumber()
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate account number")
		}
		record, err := s.admit(ctx, actor, models.Record{
			Domain:      models.DomainBank,
			Key:         number,
			NIN:         domain.NIN(nin),
			Status:      models.StatusActive,
			AccountType: kind,
			Balance:     initialBalance,
		})
		if dErrors.HasCode(err, dErrors.CodeDuplicateKey) && attempt < maxAccountNumberAttempts {
			s.logWarn(ctx, "generated account number collided", "attempt", attempt)
			continue
		}
		return record, err
	}
}

func (s *Service) admit(ctx context.Context, actor domain.Actor, candidate models.Record) (*models.Record, error) {
	decision, err := s.engine.Admit(ctx, actor, candidate)
	if err != nil {
		return nil, err
	}
	if !decision.Admitted() {
		return nil, decision.Err()
	}
	record := candidate
	record.NIN = decision.NIN
	record.Key = decision.Key
	record.CreatedAt = decision.EvaluatedAt
	record.UpdatedAt = decision.EvaluatedAt
	return &record, nil
}

// UpdateStatus changes the status of an existing linkage. The new status must
// belong to the domain's status set.
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, d models.Domain, key, rawStatus string) (*models.Record, error) {
	if !d.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "domain must be SIM or BANK")
	}
	status, err := d.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	key = normalizeKey(d, key)
	now := requestcontext.Now(ctx)

	var record *models.Record
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.find(ctx, d, key)
		if err != nil {
			return err
		}
		if err := s.store.UpdateStatus(ctx, d, key, status, now); err != nil {
			return translate(err, "failed to update linkage status")
		}
		if err := s.auditor.Emit(ctx, audit.Entry{
			ActorID: actor.ID,
			Action:  statusAction(d),
			Detail:  fmt.Sprintf("%s %s status changed from %s to %s", d, key, current.Status, status),
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeStorageFailure, "audit append failed")
		}
		current.Status = status
		current.UpdatedAt = now
		record = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a linkage and frees its slot under the NIN's cap.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, d models.Domain, key string) error {
	if !d.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "domain must be SIM or BANK")
	}
	key = normalizeKey(d, key)

	var deleted *models.Record
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.find(ctx, d, key)
		if err != nil {
			return err
		}
		if err := s.store.Delete(ctx, d, key); err != nil {
			return translate(err, "failed to delete linkage")
		}
		if err := s.auditor.Emit(ctx, audit.Entry{
			ActorID: actor.ID,
			Action:  deleteAction(d),
			Detail:  fmt.Sprintf("Deleted %s %s of NIN %s", d, key, current.NIN),
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeStorageFailure, "audit append failed")
		}
		deleted = current
		return nil
	})
	if err != nil {
		return err
	}

	s.engine.InvalidateSignal(ctx, d, deleted.NIN)
	if s.logger != nil {
		s.logger.InfoContext(ctx, "linkage deleted",
			"request_id", requestcontext.RequestID(ctx),
			"actor_id", actor.ID,
			"domain", d,
			"key", key,
		)
	}
	return nil
}

// Get returns one linkage by key.
func (s *Service) Get(ctx context.Context, d models.Domain, key string) (*models.Record, error) {
	return s.find(ctx, d, normalizeKey(d, key))
}

// List returns every linkage of the domain, newest first. A non-empty query
// narrows the result to keys or NINs containing it. Holder names are joined
// in when a citizen directory is configured.
func (s *Service) List(ctx context.Context, d models.Domain, query string) ([]*models.Listing, error) {
	var (
		records []*models.Record
		err     error
	)
	if strings.TrimSpace(query) == "" {
		records, err = s.store.List(ctx, d)
	} else {
		records, err = s.store.Search(ctx, d, query)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "failed to list linkages")
	}
	return s.withHolderNames(ctx, records)
}

func (s *Service) withHolderNames(ctx context.Context, records []*models.Record) ([]*models.Listing, error) {
	listings := make([]*models.Listing, 0, len(records))
	holders := make(map[domain.NIN]*regmodels.Citizen)
	for _, record := range records {
		listing := &models.Listing{Record: record}
		listings = append(listings, listing)
		if s.citizens == nil {
			continue
		}

		citizen, seen := holders[record.NIN]
		if !seen {
			found, err := s.citizens.FindByNIN(ctx, record.NIN)
			switch {
			case errors.Is(err, sentinel.ErrNotFound):
			case err != nil:
				return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "failed to resolve linkage holder")
			default:
				citizen = found
			}
			holders[record.NIN] = citizen
		}
		if citizen != nil {
			listing.FirstName = citizen.FirstName
			listing.LastName = citizen.LastName
		}
	}
	return listings, nil
}

// Analytics summarises the domain for the dashboard.
func (s *Service) Analytics(ctx context.Context, d models.Domain) (*models.Stats, error) {
	stats, err := s.store.Stats(ctx, d, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "failed to compute linkage analytics")
	}
	return stats, nil
}

func (s *Service) find(ctx context.Context, d models.Domain, key string) (*models.Record, error) {
	record, err := s.store.FindByKey(ctx, d, key)
	if err != nil {
		return nil, translate(err, "failed to find linkage")
	}
	return record, nil
}

func translate(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "linkage not found")
	}
	return dErrors.Wrap(err, dErrors.CodeStorageFailure, msg)
}

func normalizeKey(d models.Domain, key string) string {
	key = strings.TrimSpace(key)
	if d == models.DomainBank {
		return strings.ToUpper(key)
	}
	return key
}

func statusAction(d models.Domain) audit.Action {
	if d == models.DomainBank {
		return audit.ActionUpdateAccountStatus
	}
	return audit.ActionUpdateSIMStatus
}

func deleteAction(d models.Domain) audit.Action {
	if d == models.DomainBank {
		return audit.ActionDeleteAccount
	}
	return audit.ActionDeleteSIM
}

func (s *Service) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	args = append([]any{"request_id", requestcontext.RequestID(ctx)}, args...)
	s.logger.WarnContext(ctx, msg, args...)
}
