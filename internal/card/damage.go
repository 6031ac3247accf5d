package card

import (
	"fmt"
	"strconv"
	"strings"
)

// DamageKind distinguishes the damage expression forms that appear in
// source data.
type DamageKind int

const (
	DamageNone     DamageKind = iota
	DamageFixed               // "30"
	DamageBonus               // "30+": base plus a conditional bonus
	DamageMultiply            // "20×": base per coin-flip heads
	DamageSum                 // "30+20": printed base plus printed bonus, summed
)

// DamageExpr is the parsed form of an attack's damage string.
type DamageExpr struct {
	Kind  DamageKind
	Base  int
	Bonus int // second operand of the "N+M" form
}

// ParseDamageExpr parses a damage string. Precedence when both "+" and "×"
// appear: a trailing "×" wins, then a trailing "+", then "N+M"; anything
// else falls back to the leading integer.
func ParseDamageExpr(s string) (DamageExpr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DamageExpr{Kind: DamageNone}, nil
	}

	if strings.HasSuffix(s, "×") || strings.HasSuffix(s, "x") {
		base, err := strconv.Atoi(strings.TrimRight(s, "×x"))
		if err != nil || base < 0 {
			return DamageExpr{}, fmt.Errorf("invalid multiplicative damage %q", s)
		}
		return DamageExpr{Kind: DamageMultiply, Base: base}, nil
	}

	if strings.HasSuffix(s, "+") {
		base, err := strconv.Atoi(strings.TrimSuffix(s, "+"))
		if err != nil || base < 0 {
			return DamageExpr{}, fmt.Errorf("invalid bonus damage %q", s)
		}
		return DamageExpr{Kind: DamageBonus, Base: base}, nil
	}

	if i := strings.Index(s, "+"); i > 0 {
		base, err1 := strconv.Atoi(s[:i])
		bonus, err2 := strconv.Atoi(s[i+1:])
		if err1 != nil || err2 != nil || base < 0 || bonus < 0 {
			return DamageExpr{}, fmt.Errorf("invalid summed damage %q", s)
		}
		return DamageExpr{Kind: DamageSum, Base: base, Bonus: bonus}, nil
	}

	base, err := strconv.Atoi(s)
	if err != nil || base < 0 {
		return DamageExpr{}, fmt.Errorf("invalid damage %q", s)
	}
	return DamageExpr{Kind: DamageFixed, Base: base}, nil
}

// ValidateDamageExpr reports whether s is a legal damage string.
func ValidateDamageExpr(s string) error {
	_, err := ParseDamageExpr(s)
	return err
}

// BaseDamage returns the printed base damage before any modifiers. For the
// "N+M" form both operands are printed, so they sum.
func (e DamageExpr) BaseDamage() int {
	if e.Kind == DamageSum {
		return e.Base + e.Bonus
	}
	return e.Base
}

// ExpectedDamage returns the scoring expectation of a damage string:
// multiplicative forms pay out half their base (a fair coin), bonus forms
// average the base against the capped energy bonus, summed forms add, and
// fixed forms are themselves.
func ExpectedDamage(s string, energyBonusCap int) float64 {
	e, err := ParseDamageExpr(s)
	if err != nil {
		return 0
	}
	switch e.Kind {
	case DamageMultiply:
		return float64(e.Base) * 0.5
	case DamageBonus:
		max := e.Base + 10*energyBonusCap
		return (float64(e.Base) + float64(max)) / 2
	case DamageSum:
		return float64(e.Base + e.Bonus)
	case DamageFixed:
		return float64(e.Base)
	default:
		return 0
	}
}
