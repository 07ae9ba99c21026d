// Package sqltype defines the SQL Server type categories the staging layer
// understands. The categories are a fixed vocabulary: the coercion engine
// dispatches on them but never extends them, and anything outside the set is
// rejected as unsupported.
package sqltype

import (
	"fmt"
	"strings"
)

// Category identifies the semantic SQL type of a staged column.
type Category int

const (
	Unknown Category = iota
	BigInt
	Int
	SmallInt
	TinyInt
	Bit
	Decimal
	Numeric
	Float
	Real
	Date
	Time
	DateTime2
	DateTimeOffset
	TimeWithTimeZone
	TimestampWithTimeZone
	Binary
	VarBinary
	Char
	VarChar
	NChar
	NVarChar
)

// Kind groups categories by their storage and coercion behavior.
type Kind int

const (
	KindUnknown Kind = iota
	KindInteger
	KindBoolean
	KindDecimal
	KindFloat
	KindTemporal
	KindBinary
	KindCharacter
)

var names = map[Category]string{
	BigInt:                "bigint",
	Int:                   "int",
	SmallInt:              "smallint",
	TinyInt:               "tinyint",
	Bit:                   "bit",
	Decimal:               "decimal",
	Numeric:               "numeric",
	Float:                 "float",
	Real:                  "real",
	Date:                  "date",
	Time:                  "time",
	DateTime2:             "datetime2",
	DateTimeOffset:        "datetimeoffset",
	TimeWithTimeZone:      "time with time zone",
	TimestampWithTimeZone: "timestamp with time zone",
	Binary:                "binary",
	VarBinary:             "varbinary",
	Char:                  "char",
	VarChar:               "varchar",
	NChar:                 "nchar",
	NVarChar:              "nvarchar",
}

var byName map[string]Category

func init() {
	byName = make(map[string]Category, len(names))
	for c, n := range names {
		byName[n] = c
	}
}

// String returns the lowercase SQL name of the category.
func (c Category) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("unknown(%d)", int(c))
}

// Kind returns the storage kind governing how values of this category are
// coerced.
func (c Category) Kind() Kind {
	switch c {
	case BigInt, Int, SmallInt, TinyInt:
		return KindInteger
	case Bit:
		return KindBoolean
	case Decimal, Numeric:
		return KindDecimal
	case Float, Real:
		return KindFloat
	case Date, Time, DateTime2, DateTimeOffset, TimeWithTimeZone, TimestampWithTimeZone:
		return KindTemporal
	case Binary, VarBinary:
		return KindBinary
	case Char, VarChar, NChar, NVarChar:
		return KindCharacter
	default:
		return KindUnknown
	}
}

// Zoned reports whether the category is a timezone-qualified temporal type.
// These require the extended-temporal capability to be enabled on the table.
func (c Category) Zoned() bool {
	return c == TimeWithTimeZone || c == TimestampWithTimeZone
}

// Parse resolves a SQL type name (case-insensitive) to its category.
func Parse(s string) (Category, error) {
	if c, ok := byName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return Unknown, fmt.Errorf("unrecognized sql type %q", s)
}

// All returns every known category in declaration order, for listings.
func All() []Category {
	out := make([]Category, 0, len(names))
	for c := BigInt; c <= NVarChar; c++ {
		out = append(out, c)
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if _, ok := names[c]; !ok {
		return nil, fmt.Errorf("cannot marshal unknown sql type %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
