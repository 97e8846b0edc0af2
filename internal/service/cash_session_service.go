package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/infra"
	"github.com/HostingCuenca/vet-system/internal/model"
	"github.com/HostingCuenca/vet-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// openingMovementReason labels the IN movement recorded with the opening float.
const openingMovementReason = "Apertura de caja"

type CashSessionService interface {
	Open(ctx context.Context, req dto.OpenCashSessionRequest) (*model.CashSession, error)
	Close(ctx context.Context, req dto.CloseCashSessionRequest) (*dto.CloseCashSessionResponse, error)
	List(ctx context.Context) ([]model.CashSession, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CashSessionDetail, error)
	// ExportReport renders the settlement workbook and returns it with a file name.
	ExportReport(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}

type cashSessionService struct {
	repo      repository.CashSessionRepository
	registers repository.CashRegisterRepository
	users     repository.UserRepository
	numbers   *Numbering
}

func NewCashSessionService(
	repo repository.CashSessionRepository,
	registers repository.CashRegisterRepository,
	users repository.UserRepository,
	numbers *Numbering,
) CashSessionService {
	return &cashSessionService{repo: repo, registers: registers, users: users, numbers: numbers}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalidInput(field + " no es un identificador válido")
	}
	return id, nil
}

func (s *cashSessionService) findOperator(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}
	return u, nil
}

// ── Open ──────────────────────────────────────────────────────────────────────
// The partial unique index on (cash_register_id) WHERE status='OPEN' is the
// real guard; the lookup inside the tx only produces a friendlier error for
// the common, non-concurrent case.

func (s *cashSessionService) Open(ctx context.Context, req dto.OpenCashSessionRequest) (*model.CashSession, error) {
	registerID, err := parseID(req.CashRegisterID, "cashRegisterId")
	if err != nil {
		return nil, err
	}
	openerID, err := parseID(req.OpenedBy, "openedBy")
	if err != nil {
		return nil, err
	}
	if req.OpeningBalance.IsNegative() {
		return nil, invalidInput("el saldo inicial no puede ser negativo")
	}
	if err := checkMoney(req.OpeningBalance, "el saldo inicial"); err != nil {
		return nil, err
	}

	opener, err := s.findOperator(ctx, openerID)
	if err != nil {
		return nil, err
	}

	var (
		session *model.CashSession
		reg     *model.CashRegister
	)
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Held until commit so Deactivate cannot run between this check and the insert.
		locked, err := s.registers.LockByIDTx(tx, registerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrRegisterNotFound
			}
			return err
		}
		reg = locked
		if !reg.Active {
			return ErrRegisterInactive
		}

		existing, err := s.repo.FindOpenByRegisterTx(tx, registerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if existing != nil {
			return ErrSessionAlreadyOpen
		}

		number, err := s.numbers.Next(tx, KindSession)
		if err != nil {
			return err
		}
		now := s.numbers.Now()
		session = &model.CashSession{
			SessionNumber:  number,
			CashRegisterID: registerID,
			InitialCash:    req.OpeningBalance,
			Status:         model.SessionOpen,
			OpenedBy:       openerID,
			OpenedAt:       now,
		}
		if err := s.repo.CreateSessionTx(tx, session); err != nil {
			if errors.Is(err, repository.ErrOpenSessionExists) {
				return ErrSessionAlreadyOpen
			}
			return err
		}

		if req.OpeningBalance.IsPositive() {
			opening := &model.CashMovement{
				CashSessionID: session.ID,
				MovementType:  model.MovementIn,
				Amount:        req.OpeningBalance,
				Reason:        openingMovementReason,
				PerformedBy:   openerID,
				CreatedAt:     now,
			}
			if err := s.repo.CreateMovementTx(tx, opening); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	session.CashRegister = reg
	session.OpenedByUser = opener
	log.Info().
		Str("session", session.SessionNumber).
		Str("register", reg.Name).
		Str("initial_cash", session.InitialCash.StringFixed(2)).
		Msg("cash session opened")
	return session, nil
}

// ── Close ─────────────────────────────────────────────────────────────────────
// The session row is locked for the whole settlement so no sale or movement
// can slip in between reading the totals and sealing the session.

func (s *cashSessionService) Close(ctx context.Context, req dto.CloseCashSessionRequest) (*dto.CloseCashSessionResponse, error) {
	sessionID, err := parseID(req.SessionID, "sessionId")
	if err != nil {
		return nil, err
	}
	closerID, err := parseID(req.ClosedBy, "closedBy")
	if err != nil {
		return nil, err
	}
	if req.FinalBalance.IsNegative() {
		return nil, invalidInput("el saldo final no puede ser negativo")
	}
	if err := checkMoney(req.FinalBalance, "el saldo final"); err != nil {
		return nil, err
	}
	if _, err := s.findOperator(ctx, closerID); err != nil {
		return nil, err
	}

	var settlement dto.Settlement
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		session, err := s.repo.LockByIDTx(tx, sessionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if !session.IsOpen() {
			return ErrSessionNotOpen
		}

		sales, err := s.repo.SalesForSettlementTx(tx, sessionID)
		if err != nil {
			return err
		}
		movements, err := s.repo.MovementsForSettlementTx(tx, sessionID)
		if err != nil {
			return err
		}

		expected := ExpectedBalance(session.InitialCash, sales, movements)
		actual := req.FinalBalance
		diff := actual.Sub(expected)
		now := s.numbers.Now()

		session.Status = model.SessionClosed
		session.ClosedAt = &now
		session.ClosedBy = &closerID
		session.ActualCash = &actual
		session.ExpectedCash = &expected
		session.Difference = &diff
		if err := s.repo.CloseTx(tx, session); err != nil {
			if errors.Is(err, repository.ErrConditionFailed) {
				return ErrSessionNotOpen
			}
			return err
		}

		settlement = dto.Settlement{
			ExpectedBalance: expected,
			ActualBalance:   actual,
			Difference:      diff,
			Status:          ClassifyDifference(diff),
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	closed, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("reload closed session: %w", err)
	}
	log.Info().
		Str("session", closed.SessionNumber).
		Str("expected", settlement.ExpectedBalance.StringFixed(2)).
		Str("actual", settlement.ActualBalance.StringFixed(2)).
		Str("difference", settlement.Difference.StringFixed(2)).
		Str("status", settlement.Status).
		Msg("cash session closed")
	return &dto.CloseCashSessionResponse{CashSession: closed, Settlement: settlement}, nil
}

func (s *cashSessionService) List(ctx context.Context) ([]model.CashSession, error) {
	return s.repo.List(ctx)
}

func (s *cashSessionService) Get(ctx context.Context, id uuid.UUID) (*dto.CashSessionDetail, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	detail := &dto.CashSessionDetail{CashSession: session}
	if session.IsOpen() {
		live := ExpectedBalance(session.InitialCash, session.Sales, session.Movements)
		detail.CurrentExpectedBalance = &live
	}
	return detail, nil
}

func (s *cashSessionService) ExportReport(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	session := detail.CashSession

	summary := dto.Settlement{Status: "open"}
	if detail.CurrentExpectedBalance != nil {
		summary.ExpectedBalance = *detail.CurrentExpectedBalance
	}
	if session.ExpectedCash != nil && session.ActualCash != nil && session.Difference != nil {
		summary = dto.Settlement{
			ExpectedBalance: *session.ExpectedCash,
			ActualBalance:   *session.ActualCash,
			Difference:      *session.Difference,
			Status:          ClassifyDifference(*session.Difference),
		}
	}

	data, err := infra.BuildSessionReport(session, summary)
	if err != nil {
		return nil, "", fmt.Errorf("session report: %w", err)
	}
	return data, session.SessionNumber + ".xlsx", nil
}
