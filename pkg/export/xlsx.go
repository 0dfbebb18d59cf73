package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

func init() { Register("4", XLSX{}) }

const (
	movementsSheet = "Movimientos"
	holderSheet    = "Titular"
)

// XLSX renders a workbook with a movements sheet and an owner sheet.
type XLSX struct{}

func (XLSX) Name() string      { return "XLSX" }
func (XLSX) Extension() string { return ".xlsx" }

func (XLSX) Render(w io.Writer, s Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), movementsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(movementsSheet, "A1", &[]any{"Tipo", "Cantidad", "FechaHora"}); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}
	for i, r := range s.Rows {
		amount, err := strconv.ParseFloat(r.Amount, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", r.Amount, err)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(movementsSheet, cell, &[]any{r.Label, amount, r.Timestamp}); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if len(s.Rows) > 0 {
		last := fmt.Sprintf("B%d", len(s.Rows)+1)
		if err := f.SetCellStyle(movementsSheet, "B2", last, amountStyle); err != nil {
			return fmt.Errorf("failed to style amounts: %w", err)
		}
	}

	if _, err := f.NewSheet(holderSheet); err != nil {
		return fmt.Errorf("failed to create owner sheet: %w", err)
	}
	rows := [][]any{
		{"Nombre", s.Holder.Name},
		{"DNI", s.Holder.NationalID},
		{"Edad", s.Holder.Age},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(holderSheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("failed to write owner row: %w", err)
		}
	}

	return f.Write(w)
}
