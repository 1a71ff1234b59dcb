package bcdice

import "regexp"

// APIVersion represents the versions reported by v2/version
type APIVersion struct {
	// API is the BCDice-API version
	API string `json:"api"`
	// BCDice is the version of the BCDice library behind the API
	BCDice string `json:"bcdice"`
}

// APIAdmin represents the server administrator reported by v2/admin
type APIAdmin struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Email string `json:"email"`
}

// AvailableGameSystem is one entry of the v2/game_system list
type AvailableGameSystem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	SortKey string `json:"sortKey"`
}

// GameSystem represents a single game system with its command pattern
type GameSystem struct {
	ID      string
	Name    string
	SortKey string
	// CommandPattern matches the commands the game system can execute
	CommandPattern *regexp.Regexp
	HelpMessage    string
}

// DiceKind represents the kind of a single die
type DiceKind string

const (
	// DiceKindNormal is an ordinary die
	DiceKindNormal DiceKind = "normal"
	// DiceKindTensD10 is a d10 read as the tens digit
	DiceKindTensD10 DiceKind = "tens_d10"
	// DiceKindD9 is a d10 numbered 0 to 9
	DiceKindD9 DiceKind = "d9"
)

// Valid checks if the kind is one of the kinds the API reports
func (k DiceKind) Valid() bool {
	switch k {
	case DiceKindNormal, DiceKindTensD10, DiceKindD9:
		return true
	default:
		return false
	}
}

// DiceRoll is one die rolled by the server
type DiceRoll struct {
	Kind  DiceKind `json:"kind"`
	Sides int      `json:"sides"`
	Value int      `json:"value"`
}

// DiceRollResults represents the result of a roll command
type DiceRollResults struct {
	// Text is the output of the command
	Text     string     `json:"text"`
	Secret   bool       `json:"secret"`
	Success  bool       `json:"success"`
	Failure  bool       `json:"failure"`
	Critical bool       `json:"critical"`
	Fumble   bool       `json:"fumble"`
	Rands    []DiceRoll `json:"rands"`
}

// OriginalTableResults represents the result of running an original table
type OriginalTableResults struct {
	Text  string     `json:"text"`
	Rands []DiceRoll `json:"rands"`
}
