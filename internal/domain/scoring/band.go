package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidBand = errors.New("invalid band")

// Band is a numeric range in PostgreSQL numrange text form, e.g. "[120,140)"
// or "[140,)". A missing bound is unbounded on that side.
type Band struct {
	Lower          decimal.NullDecimal
	Upper          decimal.NullDecimal
	LowerInclusive bool
	UpperInclusive bool
}

func ParseBand(raw string) (Band, error) {
	s := strings.TrimSpace(raw)
	if len(s) < 3 {
		return Band{}, fmt.Errorf("%w: %q", ErrInvalidBand, raw)
	}

	var out Band
	switch s[0] {
	case '[':
		out.LowerInclusive = true
	case '(':
	default:
		return Band{}, fmt.Errorf("%w: %q", ErrInvalidBand, raw)
	}
	switch s[len(s)-1] {
	case ']':
		out.UpperInclusive = true
	case ')':
	default:
		return Band{}, fmt.Errorf("%w: %q", ErrInvalidBand, raw)
	}

	lowerRaw, upperRaw, ok := strings.Cut(s[1:len(s)-1], ",")
	if !ok {
		return Band{}, fmt.Errorf("%w: %q", ErrInvalidBand, raw)
	}

	var err error
	if out.Lower, err = parseBound(lowerRaw); err != nil {
		return Band{}, fmt.Errorf("%w: lower bound of %q: %v", ErrInvalidBand, raw, err)
	}
	if out.Upper, err = parseBound(upperRaw); err != nil {
		return Band{}, fmt.Errorf("%w: upper bound of %q: %v", ErrInvalidBand, raw, err)
	}

	// Unbounded sides are always exclusive, as PostgreSQL normalises them.
	if !out.Lower.Valid {
		out.LowerInclusive = false
	}
	if !out.Upper.Valid {
		out.UpperInclusive = false
	}

	if out.Lower.Valid && out.Upper.Valid {
		cmp := out.Lower.Decimal.Cmp(out.Upper.Decimal)
		if cmp > 0 || (cmp == 0 && !(out.LowerInclusive && out.UpperInclusive)) {
			return Band{}, fmt.Errorf("%w: %q is empty", ErrInvalidBand, raw)
		}
	}

	return out, nil
}

func MustParseBand(raw string) Band {
	b, err := ParseBand(raw)
	if err != nil {
		panic(err)
	}
	return b
}

func parseBound(raw string) (decimal.NullDecimal, error) {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(v), nil
}

func (b Band) Contains(v decimal.Decimal) bool {
	if b.Lower.Valid {
		cmp := v.Cmp(b.Lower.Decimal)
		if cmp < 0 || (cmp == 0 && !b.LowerInclusive) {
			return false
		}
	}
	if b.Upper.Valid {
		cmp := v.Cmp(b.Upper.Decimal)
		if cmp > 0 || (cmp == 0 && !b.UpperInclusive) {
			return false
		}
	}
	return true
}

func (b Band) String() string {
	var sb strings.Builder
	if b.LowerInclusive {
		sb.WriteByte('[')
	} else {
		sb.WriteByte('(')
	}
	if b.Lower.Valid {
		sb.WriteString(b.Lower.Decimal.String())
	}
	sb.WriteByte(',')
	if b.Upper.Valid {
		sb.WriteString(b.Upper.Decimal.String())
	}
	if b.UpperInclusive {
		sb.WriteByte(']')
	} else {
		sb.WriteByte(')')
	}
	return sb.String()
}
