package dto

type CreateReceiptRequest struct {
	SaleID         string  `json:"saleId"         validate:"required,uuid"`
	PetID          *string `json:"petId"          validate:"omitempty,uuid"`
	OwnerID        *string `json:"ownerId"        validate:"omitempty,uuid"`
	VeterinarianID *string `json:"veterinarianId" validate:"omitempty,uuid"`
	CreatedBy      string  `json:"createdBy"      validate:"required,uuid"`
}
