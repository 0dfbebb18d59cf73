package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// readLine prints prompt and returns the next input line. ok is false once input is exhausted.
func (s *Session) readLine(prompt string) (line string, ok bool) {
	if prompt != "" {
		fmt.Fprint(s.out, prompt)
	}
	if !s.in.Scan() {
		s.closed = true
		fmt.Fprintln(s.out)
		return "", false
	}
	return s.in.Text(), true
}

// readPositiveDecimal re-prompts until a strictly positive amount is entered.
// A comma is accepted as the decimal separator.
func (s *Session) readPositiveDecimal(prompt string) (decimal.Decimal, bool) {
	for {
		line, ok := s.readLine(prompt)
		if !ok {
			return decimal.Zero, false
		}
		v, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(line), ",", "."))
		if err != nil {
			fmt.Fprintln(s.out, "Formato no válido. Ejemplo: 1234.56")
			continue
		}
		if !v.IsPositive() {
			fmt.Fprintln(s.out, "Introduce una cantidad positiva.")
			continue
		}
		return v, true
	}
}

// readNonNegativeInt re-prompts until a whole number >= 0 is entered.
func (s *Session) readNonNegativeInt(prompt string) (int, bool) {
	for {
		line, ok := s.readLine(prompt)
		if !ok {
			return 0, false
		}
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(s.out, "Formato no válido. Ejemplo: 30")
			continue
		}
		if v < 0 {
			fmt.Fprintln(s.out, "Introduce un número entero no negativo.")
			continue
		}
		return v, true
	}
}
