package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/model"
	"github.com/HostingCuenca/vet-system/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CashRegisterService interface {
	List(ctx context.Context) ([]model.CashRegister, error)
	Create(ctx context.Context, req dto.CreateCashRegisterRequest) (*model.CashRegister, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type cashRegisterService struct {
	repo     repository.CashRegisterRepository
	sessions repository.CashSessionRepository
}

func NewCashRegisterService(repo repository.CashRegisterRepository, sessions repository.CashSessionRepository) CashRegisterService {
	return &cashRegisterService{repo: repo, sessions: sessions}
}

func (s *cashRegisterService) List(ctx context.Context) ([]model.CashRegister, error) {
	return s.repo.ListActive(ctx)
}

func (s *cashRegisterService) Create(ctx context.Context, req dto.CreateCashRegisterRequest) (*model.CashRegister, error) {
	name := strings.TrimSpace(req.Name)
	location := strings.TrimSpace(req.Location)
	if name == "" || location == "" {
		return nil, invalidInput("nombre y ubicación son obligatorios")
	}
	reg := &model.CashRegister{Name: name, Location: location, Active: true}
	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Deactivate hides a register from the list. Registers with an OPEN session
// must be closed first. The register row stays locked until the flag is
// written, so a concurrent Open waits and then sees the register inactive.
func (s *cashRegisterService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.sessions.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.LockByIDTx(tx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrRegisterNotFound
			}
			return err
		}
		open, err := s.sessions.FindOpenByRegisterTx(tx, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("check open session: %w", err)
		}
		if open != nil {
			return ErrRegisterHasOpenSession
		}
		if err := s.repo.DeactivateTx(tx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrRegisterNotFound
			}
			return err
		}
		return nil
	})
}
