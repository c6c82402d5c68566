// Package effects parses the effect strings attached to items and abilities.
//
// An effect string is a list of tokens separated by ';'. Each token is one of
//
//	<stat>+N / <stat>-N   passive stat modifier (skill, luck, stamina, defense)
//	damage+N              weapon base damage
//	heal+N                restores health
//	damage_multiplier:F   scales ability damage
//	stamina_cost:N        stamina spent to use an ability
//
// Parsing never fails. Tokens that cannot be understood are dropped and
// reported through a WarnFunc.
package effects

import (
	"regexp"
	"strconv"
	"strings"
)

// Stat names a modifiable actor stat
type Stat string

// Stats that passive modifiers may target
const (
	StatSkill   Stat = "skill"
	StatLuck    Stat = "luck"
	StatStamina Stat = "stamina"
	StatDefense Stat = "defense"
)

const (
	keyDamage           = "damage"
	keyHeal             = "heal"
	keyDamageMultiplier = "damage_multiplier"
	keyStaminaCost      = "stamina_cost"
)

var signedToken = regexp.MustCompile(`^([a-z_]+)([+-])(\d+)$`)

// Effect is one parsed token. The concrete type is one of StatModifier,
// Damage, Heal, DamageMultiplier or StaminaCost.
type Effect interface {
	isEffect()
}

// StatModifier adjusts a stat while the item is equipped
type StatModifier struct {
	Stat  Stat
	Delta int
}

// Damage sets a weapon's base damage
type Damage struct {
	Amount int
}

// Heal restores health when the item is used
type Heal struct {
	Amount int
}

// DamageMultiplier scales the damage of an ability attack
type DamageMultiplier struct {
	Factor float64
}

// StaminaCost is paid when an ability is used
type StaminaCost struct {
	Amount int
}

func (StatModifier) isEffect()     {}
func (Damage) isEffect()           {}
func (Heal) isEffect()             {}
func (DamageMultiplier) isEffect() {}
func (StaminaCost) isEffect()      {}

// WarnFunc receives tokens the parser dropped and why
type WarnFunc func(token, reason string)

// Parse splits s into effects. A nil warn discards warnings.
func Parse(s string, warn WarnFunc) []Effect {
	if warn == nil {
		warn = func(string, string) {}
	}

	var out []Effect
	for _, raw := range strings.Split(s, ";") {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" {
			continue
		}

		if key, value, ok := strings.Cut(token, ":"); ok {
			if eff, reason := parseKeyed(strings.TrimSpace(key), strings.TrimSpace(value)); reason != "" {
				warn(raw, reason)
			} else {
				out = append(out, eff)
			}
			continue
		}

		if eff, reason := parseSigned(token); reason != "" {
			warn(raw, reason)
		} else {
			out = append(out, eff)
		}
	}

	return out
}

func parseKeyed(key, value string) (Effect, string) {
	switch key {
	case keyDamageMultiplier:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return nil, "damage_multiplier must be a non-negative number"
		}
		return DamageMultiplier{Factor: f}, ""
	case keyStaminaCost:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, "stamina_cost must be a non-negative integer"
		}
		return StaminaCost{Amount: n}, ""
	default:
		return nil, "unknown effect key " + strconv.Quote(key)
	}
}

func parseSigned(token string) (Effect, string) {
	m := signedToken.FindStringSubmatch(token)
	if m == nil {
		return nil, "malformed effect token"
	}

	name, sign := m[1], m[2]
	n, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, "effect amount out of range"
	}

	switch name {
	case keyDamage:
		if sign == "-" {
			return nil, "damage bonus cannot be negative"
		}
		return Damage{Amount: n}, ""
	case keyHeal:
		if sign == "-" {
			return nil, "heal amount cannot be negative"
		}
		return Heal{Amount: n}, ""
	}

	stat := Stat(name)
	switch stat {
	case StatSkill, StatLuck, StatStamina, StatDefense:
		if sign == "-" {
			n = -n
		}
		return StatModifier{Stat: stat, Delta: n}, ""
	default:
		return nil, "unknown stat " + strconv.Quote(name)
	}
}

// First returns the first effect of type T
func First[T Effect](effs []Effect) (T, bool) {
	for _, e := range effs {
		if v, ok := e.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// StatModifiers returns every stat modifier in order
func StatModifiers(effs []Effect) []StatModifier {
	var out []StatModifier
	for _, e := range effs {
		if m, ok := e.(StatModifier); ok {
			out = append(out, m)
		}
	}
	return out
}
