package sqltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for _, cat := range All() {
		parsed, err := Parse(cat.String())
		require.NoError(t, err)
		assert.Equal(t, cat, parsed)
	}
}

func TestParseIsCaseInsensitive(t *testing.T) {
	cat, err := Parse("  NVarChar ")
	require.NoError(t, err)
	assert.Equal(t, NVarChar, cat)
}

func TestParseUnknown(t *testing.T) {
	cat, err := Parse("geography")
	assert.Error(t, err)
	assert.Equal(t, Unknown, cat)
}

func TestKindGrouping(t *testing.T) {
	cases := map[Category]Kind{
		BigInt:                KindInteger,
		Int:                   KindInteger,
		SmallInt:              KindInteger,
		TinyInt:               KindInteger,
		Bit:                   KindBoolean,
		Decimal:               KindDecimal,
		Numeric:               KindDecimal,
		Float:                 KindFloat,
		Real:                  KindFloat,
		Date:                  KindTemporal,
		Time:                  KindTemporal,
		DateTime2:             KindTemporal,
		DateTimeOffset:        KindTemporal,
		TimeWithTimeZone:      KindTemporal,
		TimestampWithTimeZone: KindTemporal,
		Binary:                KindBinary,
		VarBinary:             KindBinary,
		Char:                  KindCharacter,
		VarChar:               KindCharacter,
		NChar:                 KindCharacter,
		NVarChar:              KindCharacter,
		Unknown:               KindUnknown,
	}
	for cat, kind := range cases {
		assert.Equal(t, kind, cat.Kind(), "category %s", cat)
	}
}

func TestZoned(t *testing.T) {
	assert.True(t, TimeWithTimeZone.Zoned())
	assert.True(t, TimestampWithTimeZone.Zoned())
	assert.False(t, DateTimeOffset.Zoned())
	assert.False(t, DateTime2.Zoned())
}

func TestTextMarshalling(t *testing.T) {
	text, err := VarBinary.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "varbinary", string(text))

	var cat Category
	require.NoError(t, cat.UnmarshalText([]byte("decimal")))
	assert.Equal(t, Decimal, cat)

	_, err = Unknown.MarshalText()
	assert.Error(t, err)
}
