package service

import (
	"errors"
	"fmt"
)

// Domain errors. Messages are shown to API clients as-is, so they are written
// for the front desk, not for developers.
var (
	ErrSessionNotFound        = errors.New("Sesión de caja no encontrada")
	ErrSessionNotOpen         = errors.New("La sesión de caja no está abierta")
	ErrSessionAlreadyOpen     = errors.New("Ya existe una sesión abierta para esta caja")
	ErrRegisterNotFound       = errors.New("Caja registradora no encontrada")
	ErrRegisterInactive       = errors.New("La caja registradora está inactiva")
	ErrRegisterHasOpenSession = errors.New("No se puede desactivar una caja con una sesión abierta")
	ErrOperatorNotFound       = errors.New("Usuario no encontrado")
	ErrOwnerNotFound          = errors.New("Propietario no encontrado")
	ErrProductNotFound        = errors.New("Producto no encontrado")
	ErrServiceNotFound        = errors.New("Servicio no encontrado o inactivo")
	ErrInsufficientStock      = errors.New("Stock insuficiente")
	ErrSaleNotFound           = errors.New("Venta no encontrada")
	ErrReceiptExists          = errors.New("Ya existe un recibo para esta venta")
	ErrReceiptNotFound        = errors.New("Recibo no encontrado")
	ErrInvalidAction          = errors.New("Acción inválida")
	ErrInvalidInput           = errors.New("Datos inválidos")
)

// StockError names the product and what is left on hand.
type StockError struct {
	Product   string
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("Stock insuficiente para %s: disponible %d", e.Product, e.Available)
}

func (e *StockError) Is(target error) bool { return target == ErrInsufficientStock }

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// IsNotFound reports whether err is one of the "does not exist" errors.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrSessionNotFound, ErrRegisterNotFound, ErrOperatorNotFound, ErrOwnerNotFound,
		ErrProductNotFound, ErrServiceNotFound, ErrSaleNotFound, ErrReceiptNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsClientError reports whether err was caused by the request rather than by
// the server. Anything else is a 500.
func IsClientError(err error) bool {
	if IsNotFound(err) {
		return true
	}
	for _, target := range []error{
		ErrSessionNotOpen, ErrSessionAlreadyOpen, ErrRegisterInactive, ErrRegisterHasOpenSession,
		ErrInsufficientStock, ErrReceiptExists, ErrInvalidAction, ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
