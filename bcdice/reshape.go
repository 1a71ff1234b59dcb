package bcdice

import (
	"fmt"
	"regexp"
)

// renamedFields maps the server's snake_case fields to the names the
// validators recognize.
var renamedFields = map[string]string{
	"sort_key":        "sortKey",
	"command_pattern": "commandPattern",
	"help_message":    "helpMessage",
}

// reshape returns a copy of obj without the ok acknowledgement and with
// snake_case fields renamed. When both spellings are present the snake_case
// value wins. obj is left untouched.
func reshape(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		if _, ok := renamedFields[k]; ok || k == "ok" {
			continue
		}
		out[k] = v
	}
	for snake, camel := range renamedFields {
		if v, ok := obj[snake]; ok {
			out[camel] = v
		}
	}
	return out
}

// reshapeValue applies reshape when v is an object and returns other values as is.
func reshapeValue(v any) any {
	obj, ok := asObject(v)
	if !ok {
		return v
	}
	return reshape(obj)
}

// compileCommandPattern replaces the commandPattern string of a reshaped game
// system with its compiled form.
func compileCommandPattern(obj map[string]any) (map[string]any, error) {
	raw, ok := obj["commandPattern"]
	if !ok {
		return nil, fmt.Errorf("property command_pattern is undefined")
	}
	pattern, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("property command_pattern is %T, not a string", raw)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile command_pattern: %w", err)
	}

	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	out["commandPattern"] = re
	return out, nil
}

// The to* helpers assume the object already passed its validator.

func toAPIVersion(obj map[string]any) *APIVersion {
	return &APIVersion{
		API:    obj["api"].(string),
		BCDice: obj["bcdice"].(string),
	}
}

func toAPIAdmin(obj map[string]any) *APIAdmin {
	return &APIAdmin{
		Name:  obj["name"].(string),
		URL:   obj["url"].(string),
		Email: obj["email"].(string),
	}
}

func toAvailableGameSystem(obj map[string]any) AvailableGameSystem {
	return AvailableGameSystem{
		ID:      obj["id"].(string),
		Name:    obj["name"].(string),
		SortKey: obj["sortKey"].(string),
	}
}

func toGameSystem(obj map[string]any) *GameSystem {
	return &GameSystem{
		ID:             obj["id"].(string),
		Name:           obj["name"].(string),
		SortKey:        obj["sortKey"].(string),
		CommandPattern: obj["commandPattern"].(*regexp.Regexp),
		HelpMessage:    obj["helpMessage"].(string),
	}
}

func toDiceRolls(v any) []DiceRoll {
	raw := v.([]any)
	rolls := make([]DiceRoll, 0, len(raw))
	for _, r := range raw {
		obj := r.(map[string]any)
		sides, _ := asInt(obj["sides"])
		value, _ := asInt(obj["value"])
		rolls = append(rolls, DiceRoll{
			Kind:  DiceKind(obj["kind"].(string)),
			Sides: sides,
			Value: value,
		})
	}
	return rolls
}

func toDiceRollResults(obj map[string]any) *DiceRollResults {
	return &DiceRollResults{
		Text:     obj["text"].(string),
		Secret:   obj["secret"].(bool),
		Success:  obj["success"].(bool),
		Failure:  obj["failure"].(bool),
		Critical: obj["critical"].(bool),
		Fumble:   obj["fumble"].(bool),
		Rands:    toDiceRolls(obj["rands"]),
	}
}

func toOriginalTableResults(obj map[string]any) *OriginalTableResults {
	return &OriginalTableResults{
		Text:  obj["text"].(string),
		Rands: toDiceRolls(obj["rands"]),
	}
}
