package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/model"
	"github.com/HostingCuenca/vet-system/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceiptRenderer turns a fully loaded receipt into a PDF document.
type ReceiptRenderer interface {
	Render(rec *model.Receipt) ([]byte, error)
}

type ReceiptService interface {
	Create(ctx context.Context, req dto.CreateReceiptRequest) (*model.Receipt, error)
	// IssueForSale writes the receipt that accompanies a freshly committed sale.
	IssueForSale(ctx context.Context, sale *model.Sale) (*model.Receipt, error)
	List(ctx context.Context) ([]model.Receipt, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, *model.Receipt, error)
}

type receiptService struct {
	repo     repository.ReceiptRepository
	sales    repository.SaleRepository
	users    repository.UserRepository
	owners   repository.OwnerRepository
	numbers  *Numbering
	renderer ReceiptRenderer
}

func NewReceiptService(
	repo repository.ReceiptRepository,
	sales repository.SaleRepository,
	users repository.UserRepository,
	owners repository.OwnerRepository,
	numbers *Numbering,
	renderer ReceiptRenderer,
) ReceiptService {
	return &receiptService{
		repo:     repo,
		sales:    sales,
		users:    users,
		owners:   owners,
		numbers:  numbers,
		renderer: renderer,
	}
}

// paymentStatusFor returns PENDING for sales on credit; everything else is settled at the till.
func paymentStatusFor(method string) string {
	if method == model.PaymentCredit {
		return model.PaymentStatusPending
	}
	return model.PaymentStatusPaid
}

func (s *receiptService) Create(ctx context.Context, req dto.CreateReceiptRequest) (*model.Receipt, error) {
	saleID, err := parseID(req.SaleID, "saleId")
	if err != nil {
		return nil, err
	}
	creatorID, err := parseID(req.CreatedBy, "createdBy")
	if err != nil {
		return nil, err
	}

	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	if _, err := s.repo.FindBySaleID(ctx, saleID); err == nil {
		return nil, ErrReceiptExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.requireUser(ctx, creatorID); err != nil {
		return nil, err
	}

	rec := &model.Receipt{
		SaleID:        sale.ID,
		OwnerID:       sale.OwnerID,
		TotalAmount:   sale.Total,
		PaymentMethod: sale.PaymentMethod,
		PaymentStatus: paymentStatusFor(sale.PaymentMethod),
		Notes:         sale.Notes,
		CreatedBy:     creatorID,
	}
	if req.PetID != nil {
		petID, err := parseID(*req.PetID, "petId")
		if err != nil {
			return nil, err
		}
		rec.PetID = &petID
	}
	if req.OwnerID != nil {
		ownerID, err := parseID(*req.OwnerID, "ownerId")
		if err != nil {
			return nil, err
		}
		if _, err := s.owners.FindByID(ctx, ownerID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrOwnerNotFound
			}
			return nil, err
		}
		rec.OwnerID = &ownerID
	}
	if req.VeterinarianID != nil {
		vetID, err := parseID(*req.VeterinarianID, "veterinarianId")
		if err != nil {
			return nil, err
		}
		if err := s.requireUser(ctx, vetID); err != nil {
			return nil, err
		}
		rec.VeterinarianID = &vetID
	}

	if err := s.insert(ctx, rec); err != nil {
		return nil, err
	}
	return s.Get(ctx, rec.ID)
}

func (s *receiptService) IssueForSale(ctx context.Context, sale *model.Sale) (*model.Receipt, error) {
	rec := &model.Receipt{
		SaleID:        sale.ID,
		OwnerID:       sale.OwnerID,
		TotalAmount:   sale.Total,
		PaymentMethod: sale.PaymentMethod,
		PaymentStatus: model.PaymentStatusPaid,
		Notes:         sale.Notes,
		CreatedBy:     sale.SoldBy,
	}
	if err := s.insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// insert numbers and stores rec in one transaction so a failed insert does
// not burn a receipt number.
func (s *receiptService) insert(ctx context.Context, rec *model.Receipt) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		number, err := s.numbers.Next(tx, KindReceipt)
		if err != nil {
			return err
		}
		rec.ReceiptNumber = number
		rec.IssueDate = s.numbers.Now()
		if err := s.repo.CreateTx(tx, rec); err != nil {
			if errors.Is(err, repository.ErrReceiptExists) {
				return ErrReceiptExists
			}
			return err
		}
		return nil
	})
}

func (s *receiptService) requireUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOperatorNotFound
		}
		return err
	}
	return nil
}

func (s *receiptService) List(ctx context.Context) ([]model.Receipt, error) {
	return s.repo.List(ctx)
}

func (s *receiptService) Get(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *receiptService) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, *model.Receipt, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.renderer.Render(rec)
	if err != nil {
		return nil, nil, fmt.Errorf("render receipt %s: %w", rec.ReceiptNumber, err)
	}
	return data, rec, nil
}
