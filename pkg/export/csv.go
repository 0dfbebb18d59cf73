package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

func init() { Register("1", CSV{}) }

// CSV renders movements as semicolon-separated rows. The owner is not included.
type CSV struct{}

func (CSV) Name() string      { return "CSV" }
func (CSV) Extension() string { return ".csv" }

func (CSV) Render(w io.Writer, s Statement) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write([]string{"Tipo", "Cantidad", "FechaHora"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range s.Rows {
		if err := cw.Write([]string{r.Label, r.Amount, r.Timestamp}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
