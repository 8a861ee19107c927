package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/stormgen/compiler/load"
	"github.com/syssam/stormgen/schema/field"
)

func TestNewAttribute(t *testing.T) {
	t.Run("Decodes string flags", func(t *testing.T) {
		a, err := NewAttribute(&load.Descriptor{
			Name:        "dni",
			LogicalType: "Text",
			IsPrimary:   "True",
			IsNotNull:   "false",
		})
		require.NoError(t, err)
		assert.Equal(t, "dni", a.Name)
		assert.Equal(t, field.TypeText, a.Type)
		assert.True(t, a.Primary)
		assert.False(t, a.NotNull)
		assert.False(t, a.CrossReference)
	})

	t.Run("Accepts mapping class names", func(t *testing.T) {
		a, err := NewAttribute(&load.Descriptor{Name: "alta", LogicalType: "DateTime"})
		require.NoError(t, err)
		assert.Equal(t, field.TypeDateTime, a.Type)
	})

	t.Run("References are integer backed", func(t *testing.T) {
		a, err := NewAttribute(&load.Descriptor{Name: "cuenta", Reference: "Cuenta", IsCrossReference: "True"})
		require.NoError(t, err)
		assert.Equal(t, field.TypeInteger, a.Type)
		assert.True(t, a.HasReference())
		assert.True(t, a.CrossReference)
		assert.Equal(t, []string{"cuenta_id", "cuenta"}, a.Columns())
	})

	t.Run("Errors", func(t *testing.T) {
		tests := []struct {
			name string
			d    *load.Descriptor
		}{
			{"nil", nil},
			{"empty name", &load.Descriptor{Name: "  ", LogicalType: "Integer"}},
			{"missing type", &load.Descriptor{Name: "edad"}},
			{"unknown type", &load.Descriptor{Name: "edad", LogicalType: "Money"}},
			{"bad flag", &load.Descriptor{Name: "edad", LogicalType: "Integer", IsNotNull: "yes"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewAttribute(tt.d)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})
}

func TestAttributePolicy(t *testing.T) {
	tests := []struct {
		name string
		attr Attribute
		want DefaultPolicy
	}{
		{"primary wins over everything", Attribute{Primary: true, NotNull: true, Default: "1"}, PolicyPrimary},
		{"not null with default", Attribute{NotNull: true, Default: "1"}, PolicyNotNullWithDefault},
		{"not null", Attribute{NotNull: true}, PolicyNotNullNoDefault},
		{"nullable with default", Attribute{Default: "1"}, PolicyNullableWithDefault},
		{"nullable", Attribute{}, PolicyNullableNoDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.attr.Policy())
		})
	}
	assert.Equal(t, "not-null-with-default", PolicyNotNullWithDefault.String())
	assert.Equal(t, "invalid", DefaultPolicy(0).String())
}

func TestDefaultLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5", "5"},
		{" 42 ", "42"},
		{"-3", "-3"},
		{"+7", "7"},
		{"007", "7"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
	}
	for _, tt := range tests {
		a := &Attribute{Name: "n", Default: tt.in}
		got, err := a.DefaultLiteral()
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"abc", "1.5", "1_000", "0x10"} {
		_, err := (&Attribute{Name: "n", Default: bad}).DefaultLiteral()
		assert.ErrorIs(t, err, ErrConversion, bad)
	}
}

func TestTarget(t *testing.T) {
	direct := (&Attribute{Reference: "cuenta"}).Target()
	assert.Equal(t, "Cuenta", direct.Class)
	assert.Equal(t, "cuenta", direct.Module())
	assert.Equal(t, "Cuenta.ide", direct.Expr())

	deferred := (&Attribute{Reference: "CUENTA", CrossReference: true}).Target()
	assert.Equal(t, `"Cuenta.ide"`, deferred.Expr())
}

func TestValidateAttributes(t *testing.T) {
	text := func(name string) *Attribute { return &Attribute{Name: name, Type: field.TypeText} }

	t.Run("Valid", func(t *testing.T) {
		require.NoError(t, validateAttributes("Cliente", nil))
		require.NoError(t, validateAttributes("Cliente", []*Attribute{
			text("dni"), text("nombre"), {Name: "cuenta", Reference: "Cuenta", Type: field.TypeInteger},
		}))
	})

	tests := []struct {
		name  string
		attrs []*Attribute
	}{
		{"surrogate key", []*Attribute{text("IDE")}},
		{"duplicate", []*Attribute{text("dni"), text("DNI")}},
		{"backing column collision", []*Attribute{text("cuenta_id"), {Name: "cuenta", Reference: "Cuenta"}}},
		{"two primaries", []*Attribute{{Name: "a", Type: field.TypeText, Primary: true}, {Name: "b", Type: field.TypeText, Primary: true}}},
		{"invalid type", []*Attribute{{Name: "a"}}},
		{"nil attribute", []*Attribute{nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAttributes("Cliente", tt.attrs)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestClassName(t *testing.T) {
	tests := map[string]string{
		"cliente":          "Cliente",
		"CLIENTE":          "Cliente",
		"my   class":       "My_class",
		"cuenta Corriente": "Cuenta_corriente",
		"élan":             "Élan",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ClassName(in), in)
	}
}
