package session_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chris/account-ledger/pkg/export"
	"github.com/chris/account-ledger/pkg/ledger"
	"github.com/chris/account-ledger/pkg/mapping"
	"github.com/chris/account-ledger/pkg/notify"
	notifymocks "github.com/chris/account-ledger/pkg/notify/mocks"
	"github.com/chris/account-ledger/pkg/session"
	"github.com/chris/account-ledger/pkg/storage"
	"github.com/chris/account-ledger/pkg/storage/file"
	"github.com/chris/account-ledger/pkg/storage/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

type fixture struct {
	path      string
	exportDir string
	store     *file.Store
}

func newFixture(t *testing.T) fixture {
	dir := t.TempDir()
	path := filepath.Join(dir, "cuenta.dat")
	return fixture{path: path, exportDir: filepath.Join(dir, "exports"), store: file.New(path)}
}

func (f fixture) deps(n notify.Notifier) session.Deps {
	return session.Deps{
		Store:         f.store,
		Exporter:      export.NewExporter(f.exportDir),
		Notifier:      n,
		Location:      f.path,
		LedgerOptions: []ledger.Option{ledger.WithClock(fixedClock)},
	}
}

func run(t *testing.T, input string, deps session.Deps) (*session.Session, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	s := session.New(strings.NewReader(input), out, deps)
	err := s.Run(context.Background())
	return s, out.String(), err
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRunNewAccount(t *testing.T) {
	f := newFixture(t)
	n := notifymocks.NewNotifier(t)
	n.On("Notify", mock.Anything, mock.MatchedBy(func(e notify.Event) bool {
		return e.Kind == "INGRESO" && e.Amount == "100.50" && e.Balance == "100.50"
	})).Return(nil).Once()
	n.On("Notify", mock.Anything, mock.MatchedBy(func(e notify.Event) bool {
		return e.Kind == "RETIRADA" && e.Amount == "40.00" && e.Balance == "60.50"
	})).Return(nil).Once()

	s, out, err := run(t, "Ana\n12345678A\n30\n1\n100,50\n2\n40\n3\n0\n", f.deps(n))

	require.NoError(t, err)
	assert.Contains(t, out, "No se encontró cuenta. Creando nueva...")
	assert.Contains(t, out, "Cuenta creada para: Cliente{nombre='Ana', dni='12345678A', edad=30}")
	assert.Contains(t, out, "Ingreso realizado. Saldo: 100.50 €")
	assert.Contains(t, out, "Retirada realizada. Saldo: 60.50 €")
	assert.Contains(t, out, "Cuenta{titular=Cliente{nombre='Ana', dni='12345678A', edad=30}, saldo=60.50€}")
	assert.Contains(t, out, " - [2025-01-02 03:04:05] Ingreso -> 100.50 €")
	assert.Contains(t, out, " - [2025-01-02 03:04:05] Retirada -> 40.00 €")
	assert.Contains(t, out, fmt.Sprintf("Cuenta guardada en '%s'.", f.path))

	snap, err := f.store.Load(context.Background())
	require.NoError(t, err)
	saved, err := mapping.FromSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, s.Account().ID(), saved.ID())
	assert.True(t, saved.Balance().Equal(dec("60.50")))
	assert.Equal(t, 2, saved.Len())
}

func TestRunLoadsExistingAccount(t *testing.T) {
	f := newFixture(t)
	first, _, err := run(t, "Ana\n1A\n20\n1\n25\n0\n", f.deps(nil))
	require.NoError(t, err)

	second, out, err := run(t, "1\n5\n0\n", f.deps(nil))

	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("Cuenta cargada desde '%s'.", f.path))
	assert.NotContains(t, out, "Nombre del cliente")
	assert.Equal(t, first.Account().ID(), second.Account().ID())
	assert.True(t, second.Account().Balance().Equal(dec("30")))
	assert.Equal(t, "Ana", second.Account().Owner().Name())
}

func TestRunCorruptStateFile(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.path, []byte("not an account"), 0o644))

	_, out, err := run(t, "Luis\n2B\n40\n0\n", f.deps(nil))

	require.NoError(t, err)
	assert.Contains(t, out, "está dañada")
	assert.NotContains(t, out, "No se encontró cuenta")
	assert.Contains(t, out, "Cuenta creada para: Cliente{nombre='Luis', dni='2B', edad=40}")

	snap, err := f.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Luis", snap.Owner.Name)
}

func TestRunLoadError(t *testing.T) {
	store := mocks.NewStore(t)
	store.On("Load", mock.Anything).Return(storage.Snapshot{}, assert.AnError)

	_, out, err := run(t, "0\n", session.Deps{Store: store, Location: "remote"})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, out, "Error al cargar la cuenta")
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRunInputValidation(t *testing.T) {
	f := newFixture(t)

	s, out, err := run(t, "Ana\nX\ntreinta\n-3\n7\n1\nabc\n0\n-5\n5\n9\n0\n", f.deps(nil))

	require.NoError(t, err)
	assert.Contains(t, out, "Formato no válido. Ejemplo: 30")
	assert.Contains(t, out, "Introduce un número entero no negativo.")
	assert.Contains(t, out, "Formato no válido. Ejemplo: 1234.56")
	assert.Contains(t, out, "Introduce una cantidad positiva.")
	assert.Contains(t, out, "Opción no válida.")
	assert.Equal(t, 7, s.Account().Owner().Age())
	assert.Equal(t, 1, s.Account().Len())
	assert.True(t, s.Account().Balance().Equal(dec("5")))
}

func TestRunWithdrawRejected(t *testing.T) {
	f := newFixture(t)
	n := notifymocks.NewNotifier(t)
	n.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

	s, out, err := run(t, "Ana\n1A\n20\n1\n10\n2\n20\n0\n", f.deps(n))

	require.NoError(t, err)
	assert.Contains(t, out, "Operación no realizada: saldo insuficiente o cantidad inválida.")
	assert.Equal(t, 1, s.Account().Len())
	assert.True(t, s.Account().Balance().Equal(dec("10")))
}

func TestRunNotifierFailureKeepsMovement(t *testing.T) {
	f := newFixture(t)
	n := notifymocks.NewNotifier(t)
	n.On("Notify", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	s, out, err := run(t, "Ana\n1A\n20\n1\n10\n0\n", f.deps(n))

	require.NoError(t, err)
	assert.Contains(t, out, "Ingreso realizado. Saldo: 10.00 €")
	assert.Equal(t, 1, s.Account().Len())
}

func TestRunEndOfInput(t *testing.T) {
	t.Run("Saves After Menu", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := run(t, "Ana\n1A\n2\n1\n5\n", f.deps(nil))

		require.NoError(t, err)
		snap, err := f.store.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, snap.Movements, 1)
	})

	t.Run("Mid Amount Prompt", func(t *testing.T) {
		f := newFixture(t)

		s, _, err := run(t, "Ana\n1A\n2\n1\nabc\n", f.deps(nil))

		require.NoError(t, err)
		assert.Equal(t, 0, s.Account().Len())
		_, err = f.store.Load(context.Background())
		assert.NoError(t, err)
	})

	t.Run("Before Owner", func(t *testing.T) {
		f := newFixture(t)

		s, _, err := run(t, "", f.deps(nil))

		require.NoError(t, err)
		assert.Equal(t, "Sin nombre", s.Account().Owner().Name())
		assert.Equal(t, "00000000X", s.Account().Owner().NationalID())
		assert.Equal(t, 0, s.Account().Owner().Age())
	})
}

func TestRunExport(t *testing.T) {
	t.Run("Selected Formats", func(t *testing.T) {
		f := newFixture(t)

		_, out, err := run(t, "Ana\n1A\n20\n1\n12,5\n4\nextracto\n1, 3,9\n0\n", f.deps(nil))

		require.NoError(t, err)
		assert.Contains(t, out, "✅ CSV exportado correctamente")
		assert.Contains(t, out, "✅ JSON exportado correctamente")
		assert.Contains(t, out, "❌ Opción desconocida: 9")
		assert.Contains(t, out, "Exportación completada.")

		csv, err := os.ReadFile(filepath.Join(f.exportDir, "extracto.csv"))
		require.NoError(t, err)
		assert.Equal(t, "Tipo;Cantidad;FechaHora\nINGRESO;12.50;2025-01-02 03:04:05\n", string(csv))
		assert.FileExists(t, filepath.Join(f.exportDir, "extracto.json"))
		assert.NoFileExists(t, filepath.Join(f.exportDir, "extracto.xml"))
	})

	t.Run("Blank Name Cancels", func(t *testing.T) {
		f := newFixture(t)

		_, out, err := run(t, "Ana\n1A\n20\n4\n   \n0\n", f.deps(nil))

		require.NoError(t, err)
		assert.Contains(t, out, "❌ Nombre inválido, operación cancelada.")
		assert.NoDirExists(t, f.exportDir)
	})

	t.Run("Empty Selection Cancels", func(t *testing.T) {
		f := newFixture(t)

		_, out, err := run(t, "Ana\n1A\n20\n4\nextracto\n , \n0\n", f.deps(nil))

		require.NoError(t, err)
		assert.Contains(t, out, "❌ No se seleccionó ningún formato. Operación cancelada.")
		assert.NoDirExists(t, f.exportDir)
	})

	t.Run("Nothing Exported", func(t *testing.T) {
		f := newFixture(t)

		_, out, err := run(t, "Ana\n1A\n20\n4\nextracto\n7\n0\n", f.deps(nil))

		require.NoError(t, err)
		assert.Contains(t, out, "❌ Opción desconocida: 7")
		assert.Contains(t, out, "❌ No se exportó ningún archivo.")
	})
}

func TestRunSaveFailure(t *testing.T) {
	t.Run("Primary", func(t *testing.T) {
		store := mocks.NewStore(t)
		store.On("Load", mock.Anything).Return(storage.Snapshot{}, storage.ErrNotFound)
		store.On("Save", mock.Anything, mock.Anything).Return(assert.AnError)

		_, out, err := run(t, "Ana\n1A\n20\n0\n", session.Deps{Store: store})

		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, out, "Aviso: no se pudo guardar la cuenta")
	})

	t.Run("Replica", func(t *testing.T) {
		store := mocks.NewStore(t)
		store.On("Load", mock.Anything).Return(storage.Snapshot{}, storage.ErrNotFound)
		store.On("Save", mock.Anything, mock.Anything).Return(fmt.Errorf("%w 0: %w", storage.ErrReplica, assert.AnError))

		_, out, err := run(t, "Ana\n1A\n20\n0\n", session.Deps{Store: store, Location: "cuenta.dat"})

		assert.ErrorIs(t, err, storage.ErrReplica)
		assert.Contains(t, out, "Cuenta guardada en 'cuenta.dat'. Aviso: no se pudo copiar al almacenamiento remoto.")
	})
}
