package bcdice

import (
	"encoding/json"
	"math"
	"regexp"
)

// keySet is the exact set of fields a response object must carry.
type keySet map[string]struct{}

func newKeySet(keys ...string) keySet {
	s := make(keySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// matches reports whether obj has exactly the keys of s, no more and no fewer.
func (s keySet) matches(obj map[string]any) bool {
	if len(obj) != len(s) {
		return false
	}
	for k := range obj {
		if _, ok := s[k]; !ok {
			return false
		}
	}
	return true
}

var (
	apiVersionKeys           = newKeySet("api", "bcdice")
	apiAdminKeys             = newKeySet("name", "url", "email")
	availableGameSystemKeys  = newKeySet("id", "name", "sortKey")
	gameSystemKeys           = newKeySet("id", "name", "sortKey", "commandPattern", "helpMessage")
	diceRollKeys             = newKeySet("kind", "sides", "value")
	diceRollResultsKeys      = newKeySet("text", "secret", "success", "failure", "critical", "fumble", "rands")
	originalTableResultsKeys = newKeySet("text", "rands")
)

// asObject returns v as a JSON object. A nil map is not an object.
func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok || obj == nil {
		return nil, false
	}
	return obj, true
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

// asInt converts an integral JSON number to int. Numbers outside the int
// range are rejected.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, false
			}
			return asInt(f)
		}
		return asInt(i)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		// the upper bound 2^63 (2^31 on 32-bit) is itself out of range
		if n < float64(math.MinInt) || n >= -float64(math.MinInt) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func isInt(v any) bool {
	_, ok := asInt(v)
	return ok
}

// IsAPIVersion checks if v has the shape of an APIVersion
func IsAPIVersion(v any) bool {
	obj, ok := asObject(v)
	if !ok || !apiVersionKeys.matches(obj) {
		return false
	}
	return isString(obj["api"]) && isString(obj["bcdice"])
}

// IsAPIAdmin checks if v has the shape of an APIAdmin
func IsAPIAdmin(v any) bool {
	obj, ok := asObject(v)
	if !ok || !apiAdminKeys.matches(obj) {
		return false
	}
	return isString(obj["name"]) && isString(obj["url"]) && isString(obj["email"])
}

// IsAvailableGameSystem checks if v has the shape of an AvailableGameSystem.
// Only the reshaped key sortKey is recognized.
func IsAvailableGameSystem(v any) bool {
	obj, ok := asObject(v)
	if !ok || !availableGameSystemKeys.matches(obj) {
		return false
	}
	return isString(obj["id"]) && isString(obj["name"]) && isString(obj["sortKey"])
}

// IsGameSystem checks if v has the shape of a reshaped GameSystem, with
// commandPattern already compiled.
func IsGameSystem(v any) bool {
	obj, ok := asObject(v)
	if !ok || !gameSystemKeys.matches(obj) {
		return false
	}
	re, isRegexp := obj["commandPattern"].(*regexp.Regexp)
	return isString(obj["id"]) && isString(obj["name"]) && isString(obj["sortKey"]) &&
		isRegexp && re != nil && isString(obj["helpMessage"])
}

// IsDiceRoll checks if v has the shape of a DiceRoll
func IsDiceRoll(v any) bool {
	obj, ok := asObject(v)
	if !ok || !diceRollKeys.matches(obj) {
		return false
	}
	kind, ok := obj["kind"].(string)
	if !ok || !DiceKind(kind).Valid() {
		return false
	}
	return isInt(obj["sides"]) && isInt(obj["value"])
}

// isDiceRolls checks that v is an array whose elements are all dice rolls.
func isDiceRolls(v any) bool {
	rands, ok := v.([]any)
	if !ok {
		return false
	}
	for _, rand := range rands {
		if !IsDiceRoll(rand) {
			return false
		}
	}
	return true
}

// IsDiceRollResults checks if v has the shape of DiceRollResults
func IsDiceRollResults(v any) bool {
	obj, ok := asObject(v)
	if !ok || !isDiceRolls(obj["rands"]) {
		return false
	}
	return diceRollResultsKeys.matches(obj) &&
		isString(obj["text"]) &&
		isBool(obj["secret"]) && isBool(obj["success"]) && isBool(obj["failure"]) &&
		isBool(obj["critical"]) && isBool(obj["fumble"])
}

// IsOriginalTableResults checks if v has the shape of OriginalTableResults
func IsOriginalTableResults(v any) bool {
	obj, ok := asObject(v)
	if !ok || !isDiceRolls(obj["rands"]) {
		return false
	}
	return originalTableResultsKeys.matches(obj) && isString(obj["text"])
}
