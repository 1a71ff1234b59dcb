package bcdice

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAPIVersion(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{"valid", map[string]any{"api": "2.1.0", "bcdice": "3.4.0"}, true},
		{"missing bcdice", map[string]any{"api": "2.1.0"}, false},
		{"extra field", map[string]any{"api": "2.1.0", "bcdice": "3.4.0", "ok": true}, false},
		{"wrong type", map[string]any{"api": 2, "bcdice": "3.4.0"}, false},
		{"not an object", []any{"2.1.0", "3.4.0"}, false},
		{"nil", nil, false},
		{"nil map", map[string]any(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAPIVersion(tt.input))
		})
	}
}

func TestIsAPIAdmin(t *testing.T) {
	valid := map[string]any{"name": "admin", "url": "https://example.com", "email": "admin@example.com"}
	assert.True(t, IsAPIAdmin(valid))

	assert.False(t, IsAPIAdmin(map[string]any{"name": "admin", "url": "https://example.com"}))
	assert.False(t, IsAPIAdmin(map[string]any{"name": "admin", "url": "https://example.com", "email": nil}))
	assert.False(t, IsAPIAdmin("admin"))
}

func TestIsAvailableGameSystem(t *testing.T) {
	assert.True(t, IsAvailableGameSystem(map[string]any{"id": "DiceBot", "name": "DiceBot", "sortKey": "*たいすほつと"}))

	// only the renamed key is recognized
	assert.False(t, IsAvailableGameSystem(map[string]any{"id": "DiceBot", "name": "DiceBot", "sort_key": "*たいすほつと"}))
	assert.False(t, IsAvailableGameSystem(map[string]any{"id": "DiceBot", "name": "DiceBot"}))
}

func TestIsGameSystem(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"id":             "Cthulhu",
			"name":           "Call of Cthulhu",
			"sortKey":        "くとうるふしんわ",
			"commandPattern": regexp.MustCompile(`^S?CC`),
			"helpMessage":    "CC<=50",
		}
	}

	assert.True(t, IsGameSystem(base()))

	uncompiled := base()
	uncompiled["commandPattern"] = "^S?CC"
	assert.False(t, IsGameSystem(uncompiled))

	nilPattern := base()
	nilPattern["commandPattern"] = (*regexp.Regexp)(nil)
	assert.False(t, IsGameSystem(nilPattern))

	numericHelp := base()
	numericHelp["helpMessage"] = 1
	assert.False(t, IsGameSystem(numericHelp))

	extra := base()
	extra["ok"] = true
	assert.False(t, IsGameSystem(extra))
}

func TestIsDiceRoll(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{"normal", map[string]any{"kind": "normal", "sides": 6, "value": 3}, true},
		{"tens_d10", map[string]any{"kind": "tens_d10", "sides": 10, "value": 20}, true},
		{"d9", map[string]any{"kind": "d9", "sides": 10, "value": 0}, true},
		{"json numbers", map[string]any{"kind": "normal", "sides": json.Number("6"), "value": json.Number("3")}, true},
		{"float64 numbers", map[string]any{"kind": "normal", "sides": float64(6), "value": float64(3)}, true},
		{"unknown kind", map[string]any{"kind": "Normal", "sides": 6, "value": 3}, false},
		{"similar kind", map[string]any{"kind": "d10", "sides": 10, "value": 3}, false},
		{"fractional value", map[string]any{"kind": "normal", "sides": 6, "value": json.Number("2.5")}, false},
		{"sides beyond int range", map[string]any{"kind": "normal", "sides": json.Number("1e20"), "value": 3}, false},
		{"value just past int64", map[string]any{"kind": "normal", "sides": 6, "value": json.Number("9223372036854775808")}, false},
		{"float64 beyond int range", map[string]any{"kind": "normal", "sides": float64(1e20), "value": 3}, false},
		{"string sides", map[string]any{"kind": "normal", "sides": "6", "value": 3}, false},
		{"missing value", map[string]any{"kind": "normal", "sides": 6}, false},
		{"extra field", map[string]any{"kind": "normal", "sides": 6, "value": 3, "extra": 1}, false},
		{"not an object", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDiceRoll(tt.input))
		})
	}
}

func diceRollResultsFixture() map[string]any {
	return map[string]any{
		"text":     "hoge",
		"secret":   false,
		"success":  false,
		"failure":  false,
		"critical": true,
		"fumble":   false,
		"rands": []any{
			map[string]any{"kind": "normal", "sides": 10, "value": 7},
		},
	}
}

func TestIsDiceRollResults(t *testing.T) {
	assert.True(t, IsDiceRollResults(diceRollResultsFixture()))

	empty := diceRollResultsFixture()
	empty["rands"] = []any{}
	assert.True(t, IsDiceRollResults(empty))

	notArray := diceRollResultsFixture()
	notArray["rands"] = map[string]any{"kind": "normal", "sides": 10, "value": 7}
	assert.False(t, IsDiceRollResults(notArray))

	badElement := diceRollResultsFixture()
	badElement["rands"] = []any{
		map[string]any{"kind": "normal", "sides": 10, "value": 7},
		map[string]any{"kind": "d100", "sides": 100, "value": 7},
	}
	assert.False(t, IsDiceRollResults(badElement))

	withOK := diceRollResultsFixture()
	withOK["ok"] = true
	assert.False(t, IsDiceRollResults(withOK))

	stringFlag := diceRollResultsFixture()
	stringFlag["secret"] = "false"
	assert.False(t, IsDiceRollResults(stringFlag))
}

func TestIsOriginalTableResults(t *testing.T) {
	valid := map[string]any{
		"text":  "TestTable(3) ＞ b",
		"rands": []any{map[string]any{"kind": "normal", "sides": 6, "value": 3}},
	}
	assert.True(t, IsOriginalTableResults(valid))

	assert.False(t, IsOriginalTableResults(map[string]any{"text": "TestTable(3) ＞ b"}))
	assert.False(t, IsOriginalTableResults(map[string]any{"text": 1, "rands": []any{}}))
	assert.False(t, IsOriginalTableResults(map[string]any{"text": "x", "rands": []any{}, "secret": false}))
}

func TestReshape(t *testing.T) {
	raw := map[string]any{
		"ok":              true,
		"id":              "DiceBot",
		"sort_key":        "*たいすほつと",
		"command_pattern": "^D",
		"help_message":    "help",
	}

	got := reshape(raw)

	assert.Equal(t, map[string]any{
		"id":             "DiceBot",
		"sortKey":        "*たいすほつと",
		"commandPattern": "^D",
		"helpMessage":    "help",
	}, got)
	// input is not modified
	assert.Contains(t, raw, "ok")
	assert.Contains(t, raw, "sort_key")
}

func TestReshapePrefersSnakeCase(t *testing.T) {
	raw := map[string]any{
		"sort_key":        "A",
		"sortKey":         "B",
		"command_pattern": "^A",
		"commandPattern":  "^B",
	}

	for range 50 {
		got := reshape(raw)
		assert.Equal(t, map[string]any{"sortKey": "A", "commandPattern": "^A"}, got)
	}
}

func TestAsIntRange(t *testing.T) {
	_, ok := asInt(json.Number("9223372036854775808"))
	assert.False(t, ok)
	_, ok = asInt(json.Number("-1e19"))
	assert.False(t, ok)

	n, ok := asInt(json.Number("1e3"))
	assert.True(t, ok)
	assert.Equal(t, 1000, n)
}

func TestCompileCommandPattern(t *testing.T) {
	got, err := compileCommandPattern(map[string]any{"commandPattern": `^(\d+D\d+)`})
	if assert.NoError(t, err) {
		re, ok := got["commandPattern"].(*regexp.Regexp)
		assert.True(t, ok)
		assert.True(t, re.MatchString("2D6"))
	}

	_, err = compileCommandPattern(map[string]any{})
	assert.Error(t, err)

	_, err = compileCommandPattern(map[string]any{"commandPattern": 1})
	assert.Error(t, err)

	_, err = compileCommandPattern(map[string]any{"commandPattern": "(["})
	assert.Error(t, err)
}
