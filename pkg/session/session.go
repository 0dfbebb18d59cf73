// Package session drives the interactive console menu over one account.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chris/account-ledger/pkg/export"
	"github.com/chris/account-ledger/pkg/ledger"
	"github.com/chris/account-ledger/pkg/logger"
	"github.com/chris/account-ledger/pkg/mapping"
	"github.com/chris/account-ledger/pkg/models"
	"github.com/chris/account-ledger/pkg/notify"
	"github.com/chris/account-ledger/pkg/storage"
)

// Deps holds the collaborators of a Session.
type Deps struct {
	Store    storage.Store
	Exporter *export.Exporter
	Notifier notify.Notifier
	// Location names the persisted state in user messages, e.g. the state file path.
	Location string
	// LedgerOptions are applied to every account the session opens.
	LedgerOptions []ledger.Option
}

// Session is one run of the console menu. It owns the account it works on.
type Session struct {
	in      *bufio.Scanner
	out     io.Writer
	deps    Deps
	account *ledger.Account
	closed  bool
}

// New creates a Session reading commands from in and writing prompts to out.
func New(in io.Reader, out io.Writer, deps Deps) *Session {
	if deps.Notifier == nil {
		deps.Notifier = notify.NoOp{}
	}
	if deps.Exporter == nil {
		deps.Exporter = export.NewExporter(export.DefaultDir)
	}
	return &Session{in: bufio.NewScanner(in), out: out, deps: deps}
}

// Account returns the account the session is working on, or nil before Run.
func (s *Session) Account() *ledger.Account { return s.account }

// Run loads or creates the account, serves the menu until the user exits or
// input ends, and saves the account on the way out. It returns the save error, if any.
func (s *Session) Run(ctx context.Context) error {
	if err := s.bootstrap(ctx); err != nil {
		return err
	}

	for !s.closed {
		s.printMenu()
		option, ok := s.readLine("Elige opción: ")
		if !ok {
			break
		}
		switch strings.TrimSpace(option) {
		case "1":
			s.deposit(ctx)
		case "2":
			s.withdraw(ctx)
		case "3":
			s.inquiry()
		case "4":
			s.export(ctx)
		case "0":
			return s.save(ctx)
		default:
			fmt.Fprintln(s.out, "Opción no válida.")
		}
	}

	err := s.save(ctx)
	if scanErr := s.in.Err(); scanErr != nil {
		return errors.Join(fmt.Errorf("failed to read input: %w", scanErr), err)
	}
	return err
}

func (s *Session) bootstrap(ctx context.Context) error {
	log := logger.FromContext(ctx)

	snap, err := s.deps.Store.Load(ctx)
	if err == nil {
		s.account, err = mapping.FromSnapshot(snap, s.deps.LedgerOptions...)
	}
	switch {
	case err == nil:
		log.Info().Str("account_id", s.account.ID().String()).Int("movements", s.account.Len()).Msg("account loaded")
		fmt.Fprintf(s.out, "Cuenta cargada desde '%s'.\n", s.deps.Location)
		return nil
	case errors.Is(err, storage.ErrNotFound):
		log.Info().Str("location", s.deps.Location).Msg("no stored account, creating a new one")
		fmt.Fprintln(s.out, "No se encontró cuenta. Creando nueva...")
	case errors.Is(err, storage.ErrCorrupt):
		log.Warn().Err(err).Str("location", s.deps.Location).Msg("stored account is corrupt, creating a new one")
		fmt.Fprintf(s.out, "Aviso: la cuenta guardada en '%s' está dañada y no se puede cargar. Creando nueva...\n", s.deps.Location)
	default:
		log.Error().Err(err).Msg("failed to load account")
		fmt.Fprintf(s.out, "Error al cargar la cuenta: %v\n", err)
		return fmt.Errorf("failed to load account: %w", err)
	}

	s.account = ledger.New(s.promptOwner(), s.deps.LedgerOptions...)
	log.Info().Str("account_id", s.account.ID().String()).Msg("account created")
	fmt.Fprintf(s.out, "Cuenta creada para: %s\n", s.account.Owner())
	return nil
}

// promptOwner asks for the owner fields. Blank answers fall back to the owner defaults.
func (s *Session) promptOwner() models.Owner {
	name, _ := s.readLine("Nombre del cliente: ")
	id := ""
	if !s.closed {
		id, _ = s.readLine("DNI/NIF del cliente: ")
	}
	age := 0
	if !s.closed {
		age, _ = s.readNonNegativeInt("Edad del cliente: ")
	}
	return models.NewOwner(name, id, age)
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "--- Menú ---")
	fmt.Fprintln(s.out, "1) Ingresar dinero")
	fmt.Fprintln(s.out, "2) Retirar dinero")
	fmt.Fprintln(s.out, "3) Consultar saldo y movimientos")
	fmt.Fprintln(s.out, "4) Exportar cuenta")
	fmt.Fprintln(s.out, "0) Salir y guardar")
}

func (s *Session) deposit(ctx context.Context) {
	amount, ok := s.readPositiveDecimal("Cantidad a ingresar: ")
	if !ok {
		return
	}
	s.account.Deposit(amount)
	fmt.Fprintf(s.out, "Ingreso realizado. Saldo: %s €\n", s.account.Balance().StringFixed(2))
	s.notifyLast(ctx)
}

func (s *Session) withdraw(ctx context.Context) {
	amount, ok := s.readPositiveDecimal("Cantidad a retirar: ")
	if !ok {
		return
	}
	if !s.account.Withdraw(amount) {
		log := logger.FromContext(ctx)
		log.Debug().Str("amount", amount.String()).Msg("withdrawal rejected")
		fmt.Fprintln(s.out, "Operación no realizada: saldo insuficiente o cantidad inválida.")
		return
	}
	fmt.Fprintf(s.out, "Retirada realizada. Saldo: %s €\n", s.account.Balance().StringFixed(2))
	s.notifyLast(ctx)
}

// notifyLast publishes the most recent movement. Failures never undo the movement.
func (s *Session) notifyLast(ctx context.Context) {
	movements := s.account.Movements()
	if len(movements) == 0 {
		return
	}
	event := mapping.ToEvent(s.account, movements[len(movements)-1])
	if err := s.deps.Notifier.Notify(ctx, event); err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Str("movement_id", event.MovementID).Msg("failed to publish movement event")
	}
}

func (s *Session) inquiry() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, s.account)
	movements := s.account.Movements()
	if len(movements) == 0 {
		fmt.Fprintln(s.out, "No hay movimientos.")
		return
	}
	fmt.Fprintln(s.out, "Movimientos:")
	for _, m := range movements {
		fmt.Fprintf(s.out, " - %s\n", m)
	}
}

func (s *Session) export(ctx context.Context) {
	base, ok := s.readLine("Nombre base para los archivos de exportación: ")
	if !ok {
		return
	}
	if strings.TrimSpace(base) == "" {
		fmt.Fprintln(s.out, "❌ Nombre inválido, operación cancelada.")
		return
	}

	fmt.Fprintln(s.out, "Elige los formatos de exportación (puedes combinar, separados por coma):")
	for _, sel := range export.Selectors() {
		r, _ := export.Lookup(sel)
		fmt.Fprintf(s.out, "%s) %s\n", sel, r.Name())
	}
	input, ok := s.readLine("Opciones (ejemplo: 1,3): ")
	if !ok {
		return
	}
	selectors := export.ParseSelectors(input)
	if len(selectors) == 0 {
		fmt.Fprintln(s.out, "❌ No se seleccionó ningún formato. Operación cancelada.")
		return
	}

	log := logger.FromContext(ctx)
	exported := 0
	for _, res := range s.deps.Exporter.ExportAll(mapping.ToStatement(s.account), base, selectors) {
		switch {
		case res.Err == nil:
			exported++
			log.Info().Str("format", res.Format).Str("path", res.Path).Msg("account exported")
			fmt.Fprintf(s.out, "✅ %s exportado correctamente en '%s'.\n", res.Format, res.Path)
		case errors.Is(res.Err, export.ErrUnknownFormat):
			fmt.Fprintf(s.out, "❌ Opción desconocida: %s\n", res.Selector)
		default:
			log.Error().Err(res.Err).Str("format", res.Format).Msg("failed to export account")
			fmt.Fprintf(s.out, "❌ Error al exportar %s: %v\n", res.Format, res.Err)
		}
	}

	if exported > 0 {
		fmt.Fprintln(s.out, "Exportación completada.")
	} else {
		fmt.Fprintln(s.out, "❌ No se exportó ningún archivo.")
	}
}

func (s *Session) save(ctx context.Context) error {
	log := logger.FromContext(ctx)
	err := s.deps.Store.Save(ctx, mapping.ToSnapshot(s.account))
	switch {
	case err == nil:
		log.Info().Str("location", s.deps.Location).Int("movements", s.account.Len()).Msg("account saved")
		fmt.Fprintf(s.out, "Cuenta guardada en '%s'.\n", s.deps.Location)
	case errors.Is(err, storage.ErrReplica):
		log.Warn().Err(err).Msg("account saved locally but not mirrored")
		fmt.Fprintf(s.out, "Cuenta guardada en '%s'. Aviso: no se pudo copiar al almacenamiento remoto.\n", s.deps.Location)
	default:
		log.Error().Err(err).Msg("failed to save account")
		fmt.Fprintf(s.out, "Aviso: no se pudo guardar la cuenta: %v\n", err)
	}
	return err
}
