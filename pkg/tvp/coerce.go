package tvp

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NxtCent1/tvpstage/pkg/errors"
	"github.com/NxtCent1/tvpstage/pkg/sqltype"
)

// Widening carries the width a single coerced value needs from its column.
// The registry applies it as a componentwise max, so a value narrower than
// the column's current metadata leaves the column untouched.
type Widening struct {
	Precision int
	Scale     int
}

// Coercer converts raw input values into the canonical in-memory
// representation for a column's type category. It is stateless apart from
// capability flags and safe to share across goroutines.
type Coercer struct {
	// ExtendedTemporal enables the timezone-qualified temporal categories
	// (time with time zone, timestamp with time zone). Without it, values
	// for those columns are rejected with a capability error.
	ExtendedTemporal bool
}

// Temporal canonical string layouts. The server parses these; no semantic
// validation happens client-side.
const (
	layoutDate       = "2006-01-02"
	layoutTime       = "15:04:05.9999999"
	layoutDateTime   = "2006-01-02 15:04:05.9999999"
	layoutTimeTZ     = "15:04:05.9999999 -07:00"
	layoutDateTimeTZ = "2006-01-02 15:04:05.9999999 -07:00"
)

// Coerce validates raw against the column's type category and returns the
// canonical value plus the width it requires. A nil raw passes through as a
// NULL cell for every supported category and never widens metadata.
func (c Coercer) Coerce(desc ColumnDescriptor, raw interface{}) (interface{}, Widening, error) {
	switch desc.Type.Kind() {
	case sqltype.KindInteger:
		return c.coerceInteger(desc, raw)
	case sqltype.KindBoolean:
		return c.coerceBool(desc, raw)
	case sqltype.KindDecimal:
		return c.coerceDecimal(desc, raw)
	case sqltype.KindFloat:
		return c.coerceFloat(desc, raw)
	case sqltype.KindTemporal:
		return c.coerceTemporal(desc, raw)
	case sqltype.KindBinary:
		return c.coerceBinary(desc, raw)
	case sqltype.KindCharacter:
		return c.coerceCharacter(desc, raw)
	default:
		return nil, Widening{}, errors.Newf(errors.ErrorTypeUnsupportedType,
			"no coercion rule for sql type %s", desc.Type).
			WithDetail("type", desc.Type.String())
	}
}

func (c Coercer) coerceInteger(desc ColumnDescriptor, raw interface{}) (interface{}, Widening, error) {
	if raw == nil {
		return nil, Widening{}, nil
	}
	text, ok := textOf(raw)
	if !ok {
		return nil, Widening{}, invalidValue(desc, raw, nil)
	}

	var bits int
	switch desc.Type {
	case sqltype.BigInt:
		bits = 64
	case sqltype.Int:
		bits = 32
	default: // SmallInt, TinyInt are both staged as 16-bit
		bits = 16
	}

	n, err := strconv.ParseInt(text, 10, bits)
	if err != nil {
		return nil, Widening{}, invalidValue(desc, raw, err)
	}
	switch bits {
	case 64:
		return n, Widening{}, nil
	case 32:
		return int32(n), Widening{}, nil
	default:
		return int16(n), Widening{}, nil
	}
}

func (c Coercer) coerceBool(desc ColumnDescriptor, raw interface{}) (interface{}, Widening, error) {
	if raw == nil {
		return nil, Widening{}, nil
	}
	text, ok := textOf(raw)
	if !ok {
		return nil, Widening{}, invalidValue(desc, raw, nil)
	}
	b, err := strconv.ParseBool(text)
	if err != nil {
		return nil, Widening{}, invalidValue(desc, raw, err)
	}
	return b, Widening{}, nil
}

func (c Coercer) coerceDecimal(desc ColumnDescriptor, raw interface{}) (interface{}, Widening, error) {
	if raw == nil {
		return nil, Widening{}, nil
	}
	text, ok := textOf(raw)
	if !ok {
		return nil, Widening{}, invalidValue(desc, raw, nil)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, Widening{}, invalidValue(desc, raw, err)
	}
	precision, scale := decimalWidth(d)
	return d, Widening{Precision: precision, Scale: scale}, nil
}

// decimalWidth measures a decimal the way column metadata counts it:
// precision is the number of digits in the coefficient, scale the number of
// fractional digits. "12.345" is (5, 3); "0.05" is (1, 2).
func decimalWidth(d decimal.Decimal) (precision, scale int) {
	if d.Exponent() < 0 {
		scale = int(-d.Exponent())
	}
	coeff := strings.TrimPrefix(d.Coefficient().String(), "-")
	precision = len(coeff)
	return precision, scale
}

func (c Coercer) coerceFloat(desc ColumnDescriptor, raw interface{}) (interface{}, Widening, error) {
	if raw == nil {
		return nil, Widening{}, nil
	}
	text, ok := textOf(raw)
	if !ok {
		return nil, Widening{}, invalidValue(desc, raw, nil)
	}
	if desc.Type == sqltype.Real {
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, Widening{}, invalidValue(desc, raw, err)
		}
		return float32(f), Widening{}, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, Widening{}, invalidValue(desc, raw, err)
	}
	return f, Widening{}, nil
}

func (c Coercer) coerceTemporal(desc ColumnDescriptor, raw interface{}) (interface{}, Widening, error) {
	// The capability gate fires before the null check, so even a NULL cell
	// in a zoned column requires the feature.
	if desc.Type.Zoned() && !c.ExtendedTemporal {
		return nil, Widening{}, errors.Newf(errors.ErrorTypeCapability,
			"sql type %s requires extended temporal types to be enabled", desc.Type).
			WithDetail("type", desc.Type.String())
	}
	if raw == nil {
		return nil, Widening{}, nil
	}

	// Temporal cells travel as strings; the server reports any parse error.
	switch v := raw.(type) {
	case string:
		return v, Widening{}, nil
	case time.Time:
		return v.Format(temporalLayout(desc.Type)), Widening{}, nil
	default:
		return nil, Widening{}, invalidValue(desc, raw, nil)
	}
}

func temporalLayout(cat sqltype.Category) string {
	switch cat {
	case sqltype.Date:
		return layoutDate
	case sqltype.Time:
		return layoutTime
	case sqltype.TimeWithTimeZone:
		return layoutTimeTZ
	case sqltype.DateTimeOffset, sqltype.TimestampWithTimeZone:
		return layoutDateTimeTZ
	default:
		return layoutDateTime
	}
}

func (c Coercer) coerceBinary(desc ColumnDescriptor, raw interface{}) (interface{}, Widening, error) {
	if raw == nil {
		return nil, Widening{}, nil
	}
	b, ok := raw.([]byte)
	if !ok {
		return nil, Widening{}, invalidValue(desc, raw, nil)
	}
	return b, Widening{Precision: len(b)}, nil
}

func (c Coercer) coerceCharacter(desc ColumnDescriptor, raw interface{}) (interface{}, Widening, error) {
	if raw == nil {
		return nil, Widening{}, nil
	}
	// CHAR accepts UUIDs in their canonical textual form.
	if id, ok := raw.(uuid.UUID); ok && desc.Type == sqltype.Char {
		raw = id.String()
	}
	s, ok := raw.(string)
	if !ok {
		return nil, Widening{}, invalidValue(desc, raw, nil)
	}
	// Byte-cost model: 2 bytes per character on the wire.
	return s, Widening{Precision: 2 * utf8.RuneCountInString(s)}, nil
}

// textOf resolves the closed set of accepted input kinds to the value's
// textual form, which the numeric and boolean coercions then parse. Byte
// slices are deliberately excluded: binary data has no textual form here.
func textOf(v interface{}) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.FormatInt(int64(x), 10), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return "", false
	}
}

func invalidValue(desc ColumnDescriptor, raw interface{}, cause error) *errors.Error {
	e := errors.Newf(errors.ErrorTypeInvalidValue,
		"cannot stage %T as sql type %s", raw, desc.Type).
		WithDetail("type", desc.Type.String())
	if cause != nil {
		e.Cause = cause
	}
	return e
}
