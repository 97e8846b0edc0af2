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

// CashMovementService records manual deposits, withdrawals and write-offs.
// Movements are immutable: there is no Update or Delete.
type CashMovementService interface {
	Create(ctx context.Context, req dto.CreateCashMovementRequest) (*model.CashMovement, error)
	List(ctx context.Context, sessionID *uuid.UUID) ([]model.CashMovement, error)
}

type cashMovementService struct {
	sessions repository.CashSessionRepository
	users    repository.UserRepository
	numbers  *Numbering
}

func NewCashMovementService(sessions repository.CashSessionRepository, users repository.UserRepository, numbers *Numbering) CashMovementService {
	return &cashMovementService{sessions: sessions, users: users, numbers: numbers}
}

func (s *cashMovementService) Create(ctx context.Context, req dto.CreateCashMovementRequest) (*model.CashMovement, error) {
	sessionID, err := parseID(req.SessionID, "sessionId")
	if err != nil {
		return nil, err
	}
	performerID, err := parseID(req.PerformedBy, "performedBy")
	if err != nil {
		return nil, err
	}
	if !model.IsValidMovementType(req.MovementType) {
		return nil, invalidInput("tipo de movimiento inválido: " + req.MovementType)
	}
	if !req.Amount.IsPositive() {
		return nil, invalidInput("el monto debe ser mayor a cero")
	}
	if err := checkMoney(req.Amount, "el monto"); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, invalidInput("el motivo es obligatorio")
	}
	if _, err := s.users.FindByID(ctx, performerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}

	mov := &model.CashMovement{
		CashSessionID: sessionID,
		MovementType:  req.MovementType,
		Amount:        req.Amount,
		Reason:        reason,
		PerformedBy:   performerID,
	}
	txErr := runTx(ctx, s.sessions.DB(), func(tx *gorm.DB) error {
		// Lock so a concurrent close cannot seal the session under us.
		session, err := s.sessions.LockByIDTx(tx, sessionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if !session.IsOpen() {
			return ErrSessionNotOpen
		}
		mov.CreatedAt = s.numbers.Now()
		return s.sessions.CreateMovementTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	full, err := s.sessions.FindMovementByID(ctx, mov.ID)
	if err != nil {
		return nil, fmt.Errorf("reload movement: %w", err)
	}
	return full, nil
}

func (s *cashMovementService) List(ctx context.Context, sessionID *uuid.UUID) ([]model.CashMovement, error) {
	return s.sessions.ListMovements(ctx, sessionID)
}
