package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplate(t *testing.T) {
	text := DefaultTemplate().Text()
	for _, p := range []string{
		PlaceholderClassName,
		PlaceholderObjectName,
		PlaceholderImports,
		PlaceholderAttributes,
		PlaceholderParameters,
		PlaceholderInitBody,
		PlaceholderSQLTable,
		PlaceholderBase,
	} {
		assert.Contains(t, text, p)
	}
}

func TestTemplate_Render(t *testing.T) {
	t.Run("Replaces every occurrence", func(t *testing.T) {
		tmpl, err := ParseTemplate("t", []byte("$class_name$|$object_name$|$class_name$|$base$"))
		require.NoError(t, err)
		assert.Equal(t, "Cliente|Cliente|Cliente|object", tmpl.Render("Cliente", &Fragments{}))
	})

	t.Run("Empty fragments fall back", func(t *testing.T) {
		tmpl, err := ParseTemplate("t", []byte("[$imports$][$class_attributes$][$parameters$][$init_attributes$][$sql_table$]"))
		require.NoError(t, err)
		assert.Equal(t, "[][][][]['''''']", tmpl.Render("X", &Fragments{}))
	})

	t.Run("Fragment text is not rescanned", func(t *testing.T) {
		tmpl, err := ParseTemplate("t", []byte("$imports$ $base$"))
		require.NoError(t, err)
		got := tmpl.Render("X", &Fragments{Imports: "$class_name$", HasReference: true})
		assert.Equal(t, "$class_name$ Storm", got)
	})

	t.Run("Spanish placeholder spellings", func(t *testing.T) {
		tmpl, err := ParseTemplate("t", []byte(
			"class $nombre_clase$($herencia$): $nombre_objeto$\n$atributos_clase$\ndef __init__(self$parametros$):\n$atributos_init$",
		))
		require.NoError(t, err)
		got := tmpl.Render("Cuenta", &Fragments{
			Attributes: "    ide = Int(primary = True)",
			Parameters: ", numero",
			InitBody:   "        self.numero = numero",
		})
		assert.Equal(t, "class Cuenta(object): Cuenta\n    ide = Int(primary = True)\ndef __init__(self, numero):\n        self.numero = numero", got)
	})

	t.Run("Other text passes through", func(t *testing.T) {
		tmpl, err := ParseTemplate("t", []byte("$unknown$ $ 100$"))
		require.NoError(t, err)
		assert.Equal(t, "$unknown$ $ 100$", tmpl.Render("X", &Fragments{}))
	})
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()

	t.Run("Reads file", func(t *testing.T) {
		path := filepath.Join(dir, "class.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("class $class_name$: ñ"), 0o644))
		tmpl, err := LoadTemplate(path)
		require.NoError(t, err)
		assert.Equal(t, path, tmpl.Name)
		assert.True(t, strings.HasSuffix(tmpl.Render("Año", &Fragments{}), "Año: ñ"))
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadTemplate(filepath.Join(dir, "missing.tmpl"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfig)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Invalid encoding", func(t *testing.T) {
		path := filepath.Join(dir, "latin1.tmpl")
		require.NoError(t, os.WriteFile(path, []byte{'c', 0xf1, 0xff}, 0o644))
		_, err := LoadTemplate(path)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}
