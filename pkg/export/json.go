package export

import (
	"encoding/json"
	"io"
)

func init() { Register("3", JSON{}) }

// JSON renders the statement as one object with "titular" and "movimientos".
type JSON struct{}

func (JSON) Name() string      { return "JSON" }
func (JSON) Extension() string { return ".json" }

type jsonDocument struct {
	Titular     jsonHolder     `json:"titular"`
	Movimientos []jsonMovement `json:"movimientos"`
}

type jsonHolder struct {
	Nombre string `json:"nombre"`
	DNI    string `json:"dni"`
	Edad   int    `json:"edad"`
}

type jsonMovement struct {
	Tipo      string          `json:"tipo"`
	Cantidad  json.RawMessage `json:"cantidad"`
	FechaHora string          `json:"fechaHora"`
}

func (JSON) Render(w io.Writer, s Statement) error {
	doc := jsonDocument{
		Titular: jsonHolder{
			Nombre: s.Holder.Name,
			DNI:    s.Holder.NationalID,
			Edad:   s.Holder.Age,
		},
		Movimientos: make([]jsonMovement, 0, len(s.Rows)),
	}
	for _, r := range s.Rows {
		doc.Movimientos = append(doc.Movimientos, jsonMovement{
			Tipo:      r.Label,
			Cantidad:  json.RawMessage(r.Amount),
			FechaHora: r.Timestamp,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
