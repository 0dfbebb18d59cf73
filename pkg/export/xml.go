package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

func init() { Register("2", XML{}) }

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML escapes the five XML special characters with their named entities.
func EscapeXML(s string) string { return xmlEscaper.Replace(s) }

// XML renders the statement as a <cuenta> document.
type XML struct{}

func (XML) Name() string      { return "XML" }
func (XML) Extension() string { return ".xml" }

func (XML) Render(w io.Writer, s Statement) error {
	const ind = "  "
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, `<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintln(bw, "<cuenta>")
	fmt.Fprintln(bw, ind+"<titular>")
	fmt.Fprintf(bw, "%s<nombre>%s</nombre>\n", ind+ind, EscapeXML(s.Holder.Name))
	fmt.Fprintf(bw, "%s<dni>%s</dni>\n", ind+ind, EscapeXML(s.Holder.NationalID))
	fmt.Fprintf(bw, "%s<edad>%d</edad>\n", ind+ind, s.Holder.Age)
	fmt.Fprintln(bw, ind+"</titular>")
	fmt.Fprintln(bw, ind+"<movimientos>")
	for _, r := range s.Rows {
		fmt.Fprintf(bw, "%s<movimiento tipo=\"%s\">\n", ind+ind, EscapeXML(r.Label))
		fmt.Fprintf(bw, "%s<cantidad>%s</cantidad>\n", ind+ind+ind, EscapeXML(r.Amount))
		fmt.Fprintf(bw, "%s<fechaHora>%s</fechaHora>\n", ind+ind+ind, EscapeXML(r.Timestamp))
		fmt.Fprintln(bw, ind+ind+"</movimiento>")
	}
	fmt.Fprintln(bw, ind+"</movimientos>")
	fmt.Fprintln(bw, "</cuenta>")

	// bufio.Writer keeps the first write error and returns it here.
	return bw.Flush()
}
