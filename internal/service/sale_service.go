package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/model"
	"github.com/HostingCuenca/vet-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReceiptNotifier queues delivery of a receipt (PDF + email) to its owner.
type ReceiptNotifier interface {
	EnqueueReceipt(ctx context.Context, receiptID uuid.UUID) error
}

type SaleService interface {
	Create(ctx context.Context, req dto.CreateSaleRequest) (*model.Sale, error)
	List(ctx context.Context) ([]model.Sale, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Sale, error)
}

type saleService struct {
	repo     repository.SaleRepository
	sessions repository.CashSessionRepository
	products repository.ProductRepository
	services repository.ServiceRepository
	users    repository.UserRepository
	owners   repository.OwnerRepository
	receipts ReceiptService
	numbers  *Numbering
	notifier ReceiptNotifier
}

func NewSaleService(
	repo repository.SaleRepository,
	sessions repository.CashSessionRepository,
	products repository.ProductRepository,
	services repository.ServiceRepository,
	users repository.UserRepository,
	owners repository.OwnerRepository,
	receipts ReceiptService,
	numbers *Numbering,
	notifier ReceiptNotifier,
) SaleService {
	return &saleService{
		repo:     repo,
		sessions: sessions,
		products: products,
		services: services,
		users:    users,
		owners:   owners,
		receipts: receipts,
		numbers:  numbers,
		notifier: notifier,
	}
}

// resolvedLine is one request item after catalog lookup and pricing.
type resolvedLine struct {
	item      model.SaleItem
	productID *uuid.UUID
	name      string
}

// ── Create ────────────────────────────────────────────────────────────────────
//   1. Pre-flight (outside TX): session OPEN, seller/owner exist, every line
//      resolves against the catalog and has stock on hand.
//   2. TX: lock session, next VTA number, conditional stock decrement per
//      product line, insert sale+items, bump session totals (guarded by OPEN).
//   3. After commit: receipt, then async delivery when the owner has an email.
// Any failure in 1 or 2 leaves no sale, no items and no stock change behind.

func (s *saleService) Create(ctx context.Context, req dto.CreateSaleRequest) (*model.Sale, error) {
	sessionID, err := parseID(req.CashSessionID, "cashSessionId")
	if err != nil {
		return nil, err
	}
	sellerID, err := parseID(req.SoldBy, "soldBy")
	if err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, invalidInput("la venta debe tener al menos un ítem")
	}

	session, err := s.sessions.FindHeader(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if !session.IsOpen() {
		return nil, ErrSessionNotOpen
	}

	if _, err := s.users.FindByID(ctx, sellerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}

	var owner *model.Owner
	var ownerID *uuid.UUID
	if req.OwnerID != nil && *req.OwnerID != "" {
		id, err := parseID(*req.OwnerID, "ownerId")
		if err != nil {
			return nil, err
		}
		owner, err = s.owners.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrOwnerNotFound
			}
			return nil, err
		}
		ownerID = &id
	}

	lines := make([]resolvedLine, 0, len(req.Items))
	subtotal := decimal.Zero
	for i, it := range req.Items {
		line, err := s.resolveLine(ctx, i+1, it)
		if err != nil {
			return nil, err
		}
		if err := checkMoney(line.item.Total, fmt.Sprintf("ítem %d: el total", i+1)); err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(line.item.Total)
		lines = append(lines, line)
	}
	if err := checkMoney(subtotal, "el total de la venta"); err != nil {
		return nil, err
	}

	method := req.PaymentMethod
	if method == "" {
		method = model.PaymentCash
	}

	sale := &model.Sale{
		CashSessionID: sessionID,
		OwnerID:       ownerID,
		SoldBy:        sellerID,
		PaymentMethod: method,
		Subtotal:      subtotal,
		Discount:      decimal.Zero,
		Tax:           decimal.Zero,
		Total:         subtotal,
		Notes:         req.Notes,
	}
	for _, l := range lines {
		sale.Items = append(sale.Items, l.item)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		locked, err := s.sessions.LockByIDTx(tx, sessionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if !locked.IsOpen() {
			return ErrSessionNotOpen
		}

		number, err := s.numbers.Next(tx, KindSale)
		if err != nil {
			return err
		}
		sale.SaleNumber = number
		sale.CreatedAt = s.numbers.Now()

		for _, l := range lines {
			if l.productID == nil {
				continue
			}
			if err := s.products.DecrementStockTx(tx, *l.productID, l.item.Quantity); err != nil {
				if errors.Is(err, repository.ErrConditionFailed) {
					return s.stockError(tx, *l.productID, l.name)
				}
				return fmt.Errorf("decrement stock of %s: %w", l.name, err)
			}
		}

		if err := s.repo.CreateTx(tx, sale); err != nil {
			return err
		}

		if err := s.sessions.AddSaleTotalsTx(tx, sessionID, sale.Total, sale.PaymentMethod); err != nil {
			if errors.Is(err, repository.ErrConditionFailed) {
				return ErrSessionNotOpen
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("sale", sale.SaleNumber).
		Str("total", sale.Total.StringFixed(2)).
		Str("payment_method", sale.PaymentMethod).
		Int("items", len(sale.Items)).
		Msg("sale registered")

	// The sale is committed at this point; a receipt failure is logged and the
	// receipt can still be issued later through POST /receipts.
	receipt, err := s.receipts.IssueForSale(ctx, sale)
	if err != nil {
		log.Warn().Err(err).Str("sale", sale.SaleNumber).Msg("receipt not issued after sale")
	} else if owner != nil && owner.Email != nil && *owner.Email != "" && s.notifier != nil {
		if err := s.notifier.EnqueueReceipt(ctx, receipt.ID); err != nil {
			log.Warn().Err(err).Str("receipt", receipt.ReceiptNumber).Msg("could not enqueue receipt delivery")
		}
	}

	full, err := s.repo.FindByID(ctx, sale.ID)
	if err != nil {
		log.Warn().Err(err).Str("sale", sale.SaleNumber).Msg("reload sale failed, returning unhydrated sale")
		sale.Receipt = receipt
		return sale, nil
	}
	return full, nil
}

// resolveLine prices one request item against the catalog. pos is 1-based and
// only used for messages.
func (s *saleService) resolveLine(ctx context.Context, pos int, it dto.SaleItemRequest) (resolvedLine, error) {
	if it.Quantity <= 0 {
		return resolvedLine{}, invalidInput(fmt.Sprintf("ítem %d: la cantidad debe ser mayor a cero", pos))
	}
	if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
		return resolvedLine{}, invalidInput(fmt.Sprintf("ítem %d: el precio unitario no puede ser negativo", pos))
	}
	if it.UnitPrice != nil {
		if err := checkMoney(*it.UnitPrice, fmt.Sprintf("ítem %d: el precio unitario", pos)); err != nil {
			return resolvedLine{}, err
		}
	}
	qty := decimal.NewFromInt(int64(it.Quantity))

	switch it.Type {
	case model.ItemProduct:
		if it.ProductID == "" || it.ServiceID != "" {
			return resolvedLine{}, invalidInput(fmt.Sprintf("ítem %d: un producto requiere productId y no serviceId", pos))
		}
		id, err := parseID(it.ProductID, "productId")
		if err != nil {
			return resolvedLine{}, err
		}
		p, err := s.products.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return resolvedLine{}, fmt.Errorf("%w: %s", ErrProductNotFound, it.ProductID)
			}
			return resolvedLine{}, err
		}
		if p.CurrentStock < it.Quantity {
			return resolvedLine{}, &StockError{Product: p.Name, Available: p.CurrentStock}
		}
		price := priceOrOverride(p.UnitPrice, it.UnitPrice)
		return resolvedLine{
			productID: &id,
			name:      p.Name,
			item: model.SaleItem{
				ItemType:    model.ItemProduct,
				ProductID:   &id,
				Description: p.Name,
				Quantity:    it.Quantity,
				UnitPrice:   price,
				Total:       price.Mul(qty),
			},
		}, nil

	case model.ItemService:
		if it.ServiceID == "" || it.ProductID != "" {
			return resolvedLine{}, invalidInput(fmt.Sprintf("ítem %d: un servicio requiere serviceId y no productId", pos))
		}
		id, err := parseID(it.ServiceID, "serviceId")
		if err != nil {
			return resolvedLine{}, err
		}
		svc, err := s.services.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return resolvedLine{}, fmt.Errorf("%w: %s", ErrServiceNotFound, it.ServiceID)
			}
			return resolvedLine{}, err
		}
		if !svc.Active {
			return resolvedLine{}, fmt.Errorf("%w: %s", ErrServiceNotFound, svc.Name)
		}
		price := priceOrOverride(svc.Price, it.UnitPrice)
		return resolvedLine{
			name: svc.Name,
			item: model.SaleItem{
				ItemType:    model.ItemService,
				ServiceID:   &id,
				Description: svc.Name,
				Quantity:    it.Quantity,
				UnitPrice:   price,
				Total:       price.Mul(qty),
			},
		}, nil
	}
	return resolvedLine{}, invalidInput(fmt.Sprintf("ítem %d: tipo inválido %q", pos, it.Type))
}

// priceOrOverride uses the request price when one was sent and is not zero.
func priceOrOverride(catalog decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil && !override.IsZero() {
		return *override
	}
	return catalog
}

// stockError reports what is actually left after a conditional decrement was refused.
func (s *saleService) stockError(tx *gorm.DB, productID uuid.UUID, name string) error {
	available := 0
	if p, err := s.products.FindByIDTx(tx, productID); err == nil {
		available = p.CurrentStock
	}
	return &StockError{Product: name, Available: available}
}

func (s *saleService) List(ctx context.Context) ([]model.Sale, error) {
	return s.repo.List(ctx)
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}
