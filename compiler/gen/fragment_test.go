package gen

import (
	"bytes"
	"database/sql"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/stormgen/dialect"
	"github.com/syssam/stormgen/dialect/sqlschema"
	"github.com/syssam/stormgen/schema/field"
)

func newBuilder(attrs ...*Attribute) *fragmentBuilder {
	return &fragmentBuilder{entity: "Cliente", attrs: attrs, logger: slog.New(slog.DiscardHandler)}
}

func TestFragments_Imports(t *testing.T) {
	b := newBuilder(
		&Attribute{Name: "dni", Type: field.TypeText},
		&Attribute{Name: "cuenta", Reference: "cuenta"},
		&Attribute{Name: "amigo", Reference: "Cliente", CrossReference: true},
		&Attribute{Name: "otra", Reference: "Cuenta"},
	)
	assert.Equal(t, []string{
		"from cuenta import Cuenta",
		"from cuenta import Cuenta",
	}, b.imports())
	assert.Empty(t, newBuilder(&Attribute{Name: "dni", Type: field.TypeText}).imports())
}

func TestFragments_References(t *testing.T) {
	t.Run("Direct and deferred targets", func(t *testing.T) {
		lines, ok := newBuilder(
			&Attribute{Name: "Cuenta", Reference: "cuenta"},
			&Attribute{Name: "dni", Type: field.TypeText},
			&Attribute{Name: "amigo", Reference: "cliente", CrossReference: true},
		).references()
		require.True(t, ok)
		assert.Equal(t, []string{
			"    cuenta_id = Int()",
			"    cuenta = Reference(cuenta_id, Cuenta.ide)",
			"    amigo_id = Int()",
			`    amigo = Reference(amigo_id, "Cliente.ide")`,
		}, lines)
	})

	t.Run("Primary backing column", func(t *testing.T) {
		lines, _ := newBuilder(&Attribute{Name: "cuenta", Reference: "Cuenta", Primary: true}).references()
		assert.Equal(t, "    cuenta_id = Int(primary = True)", lines[0])
		assert.Equal(t, "    cuenta = Reference(cuenta_id, Cuenta.ide)", lines[1])
	})

	t.Run("No references", func(t *testing.T) {
		lines, ok := newBuilder(&Attribute{Name: "dni", Type: field.TypeText}).references()
		assert.False(t, ok)
		assert.Empty(t, lines)
	})
}

func TestFragments_SimpleAttributes(t *testing.T) {
	t.Run("Surrogate key only", func(t *testing.T) {
		lines, err := newBuilder().simpleAttributes()
		require.NoError(t, err)
		assert.Equal(t, []string{"    ide = Int(primary = True)"}, lines)
	})

	t.Run("Default policies", func(t *testing.T) {
		lines, err := newBuilder(
			&Attribute{Name: "DNI", Type: field.TypeText, Primary: true, NotNull: true, Default: "x"},
			&Attribute{Name: "edad", Type: field.TypeInteger, NotNull: true, Default: "5"},
			&Attribute{Name: "codigo", Type: field.TypeText, NotNull: true, Default: "12"},
			&Attribute{Name: "nombre", Type: field.TypeText, NotNull: true},
			&Attribute{Name: "hijos", Type: field.TypeInteger, Default: "0"},
			&Attribute{Name: "nota", Type: field.TypeText},
			&Attribute{Name: "cuenta", Reference: "Cuenta"},
		).simpleAttributes()
		require.NoError(t, err)
		assert.Equal(t, []string{
			"    ide = Int(primary = True)",
			"    dni = Unicode(primary = True)",
			"    edad = Int(allow_none = False, value_factory = 5)",
			"    codigo = Unicode(allow_none = False, value_factory = 12)",
			"    nombre = Unicode(allow_none = False)",
			"    hijos = Int(value_factory = 0)",
			"    nota = Unicode()",
		}, lines)
	})

	t.Run("Default on other types is ignored", func(t *testing.T) {
		var buf bytes.Buffer
		b := newBuilder(&Attribute{Name: "alta", Type: field.TypeDateTime, NotNull: true, Default: "now"})
		b.logger = slog.New(slog.NewTextHandler(&buf, nil))
		lines, err := b.simpleAttributes()
		require.NoError(t, err)
		assert.Equal(t, "    alta = DateTime()", lines[1])
		assert.Contains(t, buf.String(), "default ignored")
	})

	t.Run("Conversion failure", func(t *testing.T) {
		_, err := newBuilder(&Attribute{Name: "edad", Type: field.TypeInteger, NotNull: true, Default: "abc"}).simpleAttributes()
		require.Error(t, err)
		var conv *ConversionError
		require.ErrorAs(t, err, &conv)
		assert.Equal(t, "Cliente", conv.Entity)
		assert.Equal(t, "edad", conv.Attribute)
		assert.Equal(t, "abc", conv.Value)
	})
}

func TestFragments_Init(t *testing.T) {
	b := newBuilder(
		&Attribute{Name: "a", Type: field.TypeText},
		&Attribute{Name: "B", Type: field.TypeText},
		&Attribute{Name: "c", Reference: "Cuenta"},
	)
	assert.Equal(t, ", a, b, c", b.parameters())
	assert.Equal(t, "        self.a = a\n        self.b = b\n        self.c = c", b.initBody())

	empty := newBuilder()
	assert.Empty(t, empty.parameters())
	assert.Empty(t, empty.initBody())
}

func TestFragments_Build(t *testing.T) {
	f, err := newBuilder(
		&Attribute{Name: "nombre", Type: field.TypeText},
		&Attribute{Name: "cuenta", Reference: "Cuenta"},
	).build()
	require.NoError(t, err)
	assert.True(t, f.HasReference)
	assert.Equal(t, "Storm", f.Base())
	assert.Equal(t, "from cuenta import Cuenta", f.Imports)
	assert.Equal(t, strings.Join([]string{
		"    ide = Int(primary = True)",
		"    nombre = Unicode()",
		"    cuenta_id = Int()",
		"    cuenta = Reference(cuenta_id, Cuenta.ide)",
	}, "\n"), f.Attributes)
	assert.Empty(t, f.SQLTable)

	f, err = newBuilder().build()
	require.NoError(t, err)
	assert.False(t, f.HasReference)
	assert.Equal(t, "object", f.Base())
}

func TestSQLTable(t *testing.T) {
	tm := sqlschema.NewTypeMap()
	attrs := []*Attribute{
		{Name: "DNI", Type: field.TypeText, Primary: true},
		{Name: "edad", Type: field.TypeInteger, NotNull: true},
		{Name: "activo", Type: field.TypeBoolean},
		{Name: "cuenta", Reference: "Cuenta", NotNull: true},
	}

	t.Run("SQLite", func(t *testing.T) {
		got, err := SQLTable(tm, dialect.SQLite, attrs)
		require.NoError(t, err)
		assert.Equal(t, "'''\n"+
			"        (\n"+
			"        dni VARCHAR PRIMARY KEY,\n"+
			"        edad INTEGER NOT NULL,\n"+
			"        activo INT,\n"+
			"        cuenta_id INTEGER NOT NULL\n"+
			"        )'''", got)
	})

	t.Run("Postgres", func(t *testing.T) {
		got, err := SQLTable(tm, dialect.Postgres, attrs)
		require.NoError(t, err)
		assert.Contains(t, got, "activo BOOL,")
		assert.Contains(t, got, "edad INT NOT NULL,")
	})

	t.Run("Lookup miss", func(t *testing.T) {
		_, err := SQLTable(tm, dialect.MySQL, []*Attribute{{Name: "tags", Type: field.TypeList}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLookup)
	})

	t.Run("SQLite accepts the column list", func(t *testing.T) {
		got, err := SQLTable(tm, dialect.SQLite, attrs)
		require.NoError(t, err)
		columns := strings.TrimSuffix(strings.TrimPrefix(got, "'''"), "'''")

		db, err := sql.Open("sqlite", ":memory:")
		require.NoError(t, err)
		defer db.Close()

		_, err = db.Exec("CREATE TABLE cliente " + columns)
		require.NoError(t, err)
		_, err = db.Exec("INSERT INTO cliente (dni, edad, activo, cuenta_id) VALUES ('1', 30, 1, 2)")
		require.NoError(t, err)
		_, err = db.Exec("INSERT INTO cliente (dni, edad, activo, cuenta_id) VALUES ('2', NULL, 1, 2)")
		assert.Error(t, err, "NOT NULL must be enforced")
	})
}

func TestCreateTable(t *testing.T) {
	tm := sqlschema.NewTypeMap()

	t.Run("Surrogate key is the primary key", func(t *testing.T) {
		got, err := CreateTable(tm, dialect.SQLite, "Cuenta", []*Attribute{
			{Name: "numero", Type: field.TypeInteger, NotNull: true},
			{Name: "titular", Reference: "Cliente", CrossReference: true},
		})
		require.NoError(t, err)
		assert.Equal(t, "CREATE TABLE Cuenta (\n"+
			"    ide INTEGER PRIMARY KEY,\n"+
			"    numero INTEGER NOT NULL,\n"+
			"    titular_id INTEGER\n"+
			");", got)
	})

	t.Run("Primary attribute keeps the key", func(t *testing.T) {
		got, err := CreateTable(tm, dialect.Postgres, "Cliente", []*Attribute{
			{Name: "dni", Type: field.TypeText, Primary: true},
		})
		require.NoError(t, err)
		assert.Contains(t, got, "    ide INT NOT NULL,\n")
		assert.Contains(t, got, "    dni VARCHAR PRIMARY KEY\n")
	})

	t.Run("No attributes", func(t *testing.T) {
		got, err := CreateTable(tm, dialect.MySQL, "Vacia", nil)
		require.NoError(t, err)
		assert.Equal(t, "CREATE TABLE Vacia (\n    ide INT PRIMARY KEY\n);", got)
	})

	t.Run("Lookup miss", func(t *testing.T) {
		_, err := CreateTable(tm, dialect.MySQL, "X", []*Attribute{{Name: "tags", Type: field.TypeList}})
		assert.ErrorIs(t, err, ErrLookup)
	})

	t.Run("SQLite accepts the statement", func(t *testing.T) {
		stmt, err := CreateTable(tm, dialect.SQLite, "Cuenta", []*Attribute{
			{Name: "numero", Type: field.TypeInteger, NotNull: true},
		})
		require.NoError(t, err)

		db, err := sql.Open("sqlite", ":memory:")
		require.NoError(t, err)
		defer db.Close()

		_, err = db.Exec(stmt)
		require.NoError(t, err)
		_, err = db.Exec("INSERT INTO Cuenta (numero) VALUES (7)")
		require.NoError(t, err)
		var ide int
		require.NoError(t, db.QueryRow("SELECT ide FROM Cuenta WHERE numero = 7").Scan(&ide))
		assert.Equal(t, 1, ide)
	})
}
