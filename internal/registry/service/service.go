// Package service implements the registry authority's operations on citizen
// records. Every mutation and every verification lookup is audited in the
// same unit of work as the store call.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	linkmodels "ninhub/internal/linkage/models"
	"ninhub/internal/registry/models"
	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
	"ninhub/pkg/platform/audit"
	"ninhub/pkg/platform/sentinel"
	txcontext "ninhub/pkg/platform/tx"
	"ninhub/pkg/requestcontext"
)

// maxNINAttempts bounds regeneration when an issued NIN collides.
const maxNINAttempts = 5

type Store interface {
	Create(ctx context.Context, c *models.Citizen) error
	FindByNIN(ctx context.Context, nin domain.NIN) (*models.Citizen, error)
	Update(ctx context.Context, c *models.Citizen) error
	Delete(ctx context.Context, nin domain.NIN) error
	List(ctx context.Context) ([]*models.Citizen, error)
	Count(ctx context.Context) (int, error)
}

// LinkageCounter reports how many linkages reference a NIN in a domain.
type LinkageCounter interface {
	CountByNIN(ctx context.Context, d linkmodels.Domain, nin domain.NIN) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, entry audit.Entry) error
}

// Service orchestrates citizen registration and maintenance.
type Service struct {
	citizens Store
	linkages LinkageCounter
	tx       txcontext.Runner
	auditor  AuditPublisher
	logger   *slog.Logger

	generateNIN func(time.Time) (domain.NIN, error)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithNINGenerator replaces the random NIN source.
func WithNINGenerator(gen func(time.Time) (domain.NIN, error)) Option {
	return func(s *Service) {
		s.generateNIN = gen
	}
}

func New(citizens Store, linkages LinkageCounter, runner txcontext.Runner, auditor AuditPublisher, opts ...Option) *Service {
	s := &Service{
		citizens:    citizens,
		linkages:    linkages,
		tx:          runner,
		auditor:     auditor,
		generateNIN: domain.GenerateNIN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register issues a new NIN for the citizen and stores the record.
func (s *Service) Register(ctx context.Context, actor domain.Actor, details models.Details) (*models.Citizen, error) {
	now := requestcontext.Now(ctx)

	for attempt := 1; attempt <= maxNINAttempts; attempt++ {
		nin, err := s.generateNIN(now)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate nin")
		}
		citizen, err := models.NewCitizen(nin, details, now)
		if err != nil {
			return nil, err
		}

		err = s.tx.RunInTx(txcontext.WithLockKey(ctx, nin.String()), func(ctx context.Context) error {
			if err := s.citizens.Create(ctx, citizen); err != nil {
				return err
			}
			return s.emit(ctx, actor, audit.ActionRegisterCitizen, "Registered citizen "+citizen.FullName()+" with NIN "+nin.String())
		})
		switch {
		case err == nil:
			s.logInfo(ctx, "citizen registered", "actor_id", actor.ID, "nin", nin)
			return citizen, nil
		case errors.Is(err, sentinel.ErrConflict):
			s.logWarn(ctx, "issued nin collided", "attempt", attempt)
			continue
		default:
			return nil, storageFailure(err, "failed to register citizen")
		}
	}
	return nil, dErrors.New(dErrors.CodeConflict, "could not issue a unique nin")
}

// Update replaces the mutable attributes of an existing record.
func (s *Service) Update(ctx context.Context, actor domain.Actor, rawNIN string, details models.Details) (*models.Citizen, error) {
	nin, err := domain.ParseNIN(rawNIN)
	if err != nil {
		return nil, err
	}

	var citizen *models.Citizen
	err = s.tx.RunInTx(txcontext.WithLockKey(ctx, nin.String()), func(ctx context.Context) error {
		current, err := s.find(ctx, nin)
		if err != nil {
			return err
		}
		if err := current.Update(details, requestcontext.Now(ctx)); err != nil {
			return err
		}
		if err := s.citizens.Update(ctx, current); err != nil {
			return translate(err, "failed to update citizen")
		}
		citizen = current
		return s.emit(ctx, actor, audit.ActionUpdateCitizen, "Updated citizen "+nin.String())
	})
	if err != nil {
		return nil, storageFailure(err, "failed to update citizen")
	}
	return citizen, nil
}

// Delete removes a citizen record. Records still referenced by a SIM or bank
// linkage are kept and CodeConflict is returned; blacklist history is never
// touched.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, rawNIN string) error {
	nin, err := domain.ParseNIN(rawNIN)
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(txcontext.WithLockKey(ctx, nin.String()), func(ctx context.Context) error {
		citizen, err := s.find(ctx, nin)
		if err != nil {
			return err
		}
		for _, d := range linkmodels.Domains {
			n, err := s.linkages.CountByNIN(ctx, d, nin)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeStorageFailure, "failed to count linkages")
			}
			if n > 0 {
				return dErrors.New(dErrors.CodeConflict, "NIN still has "+d.String()+" linkages")
			}
		}
		if err := s.citizens.Delete(ctx, nin); err != nil {
			return translate(err, "failed to delete citizen")
		}
		return s.emit(ctx, actor, audit.ActionDeleteCitizen, "Deleted citizen "+citizen.FullName()+" ("+nin.String()+")")
	})
	if err != nil {
		return storageFailure(err, "failed to delete citizen")
	}
	s.logInfo(ctx, "citizen deleted", "actor_id", actor.ID, "nin", nin)
	return nil
}

// Verify looks up a NIN on behalf of an actor. The lookup itself is audited.
func (s *Service) Verify(ctx context.Context, actor domain.Actor, rawNIN string) (*models.Citizen, error) {
	nin, err := domain.ParseNIN(rawNIN)
	if err != nil {
		return nil, err
	}

	var citizen *models.Citizen
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		citizen, err = s.find(ctx, nin)
		if err != nil {
			return err
		}
		return s.emit(ctx, actor, audit.ActionVerifyNIN, "Verified NIN "+nin.String())
	})
	if err != nil {
		return nil, storageFailure(err, "failed to verify nin")
	}
	return citizen, nil
}

// List returns every record, newest first.
func (s *Service) List(ctx context.Context) ([]*models.Citizen, error) {
	citizens, err := s.citizens.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "failed to list citizens")
	}
	return citizens, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.citizens.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeStorageFailure, "failed to count citizens")
	}
	return n, nil
}

func (s *Service) find(ctx context.Context, nin domain.NIN) (*models.Citizen, error) {
	c, err := s.citizens.FindByNIN(ctx, nin)
	if err != nil {
		return nil, translate(err, "failed to find citizen")
	}
	return c, nil
}

func (s *Service) emit(ctx context.Context, actor domain.Actor, action audit.Action, detail string) error {
	if err := s.auditor.Emit(ctx, audit.Entry{ActorID: actor.ID, Action: action, Detail: detail}); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "audit append failed")
	}
	return nil
}

func translate(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "citizen not found")
	}
	return dErrors.Wrap(err, dErrors.CodeStorageFailure, msg)
}

// storageFailure keeps coded errors and wraps anything else.
func storageFailure(err error, msg string) error {
	var coded *dErrors.Error
	if errors.As(err, &coded) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeStorageFailure, msg)
}

func (s *Service) logInfo(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	args = append([]any{"request_id", requestcontext.RequestID(ctx)}, args...)
	s.logger.InfoContext(ctx, msg, args...)
}

func (s *Service) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	args = append([]any{"request_id", requestcontext.RequestID(ctx)}, args...)
	s.logger.WarnContext(ctx, msg, args...)
}
