package infra

import (
	"fmt"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary   = "Resumen"
	sheetSales     = "Ventas"
	sheetMovements = "Movimientos"
)

// BuildSessionReport renders a cash session settlement workbook with three
// sheets: summary, sales and movements. The session must have CashRegister,
// OpenedByUser, Sales and Movements loaded.
func BuildSessionReport(session *model.CashSession, settlement dto.Settlement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	for _, name := range []string{sheetSales, sheetMovements} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	// ── Summary ──────────────────────────────────────────────────────────────
	register, opener, closer, closedAt := "", "", "", ""
	if session.CashRegister != nil {
		register = session.CashRegister.Name
	}
	if session.OpenedByUser != nil {
		opener = session.OpenedByUser.Name
	}
	if session.ClosedByUser != nil {
		closer = session.ClosedByUser.Name
	}
	if session.ClosedAt != nil {
		closedAt = session.ClosedAt.Format("2006-01-02 15:04")
	}
	summary := [][]interface{}{
		{"Sesión", session.SessionNumber},
		{"Caja", register},
		{"Estado", session.Status},
		{"Abierta por", opener},
		{"Apertura", session.OpenedAt.Format("2006-01-02 15:04")},
		{"Cerrada por", closer},
		{"Cierre", closedAt},
		{},
		{"Saldo inicial", session.InitialCash.InexactFloat64()},
		{"Total ventas", session.TotalSales.InexactFloat64()},
		{"Efectivo", session.TotalCash.InexactFloat64()},
		{"Tarjeta", session.TotalCard.InexactFloat64()},
		{"Transferencia", session.TotalTransfer.InexactFloat64()},
		{},
		{"Saldo esperado", settlement.ExpectedBalance.InexactFloat64()},
		{"Saldo contado", settlement.ActualBalance.InexactFloat64()},
		{"Diferencia", settlement.Difference.InexactFloat64()},
		{"Resultado", settlement.Status},
	}
	for i, row := range summary {
		if err := setRow(f, sheetSummary, i+1, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheetSummary, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetSummary, "A", "B", 22); err != nil {
		return nil, err
	}

	// ── Sales ────────────────────────────────────────────────────────────────
	if err := setRow(f, sheetSales, 1, []interface{}{"Venta", "Fecha", "Forma de pago", "Total"}); err != nil {
		return nil, err
	}
	for i, s := range session.Sales {
		row := []interface{}{s.SaleNumber, s.CreatedAt.Format("2006-01-02 15:04"), s.PaymentMethod, s.Total.InexactFloat64()}
		if err := setRow(f, sheetSales, i+2, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheetSales, "A1", "D1", bold); err != nil {
		return nil, err
	}

	// ── Movements ────────────────────────────────────────────────────────────
	if err := setRow(f, sheetMovements, 1, []interface{}{"Fecha", "Tipo", "Monto", "Efecto", "Motivo"}); err != nil {
		return nil, err
	}
	for i, m := range session.Movements {
		row := []interface{}{
			m.CreatedAt.Format("2006-01-02 15:04"),
			m.MovementType,
			m.Amount.InexactFloat64(),
			m.SignedAmount().InexactFloat64(),
			m.Reason,
		}
		if err := setRow(f, sheetMovements, i+2, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheetMovements, "A1", "E1", bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
