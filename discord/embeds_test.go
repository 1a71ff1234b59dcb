package discord

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodocord/bodocord/bcdice"
	"github.com/bodocord/bodocord/filter"
)

var systemsFixture = []bcdice.AvailableGameSystem{
	{ID: "Cthulhu", Name: "クトゥルフ神話TRPG", SortKey: "くとうるふしんわTRPG"},
	{ID: "Cthulhu7th", Name: "新クトゥルフ神話TRPG", SortKey: "くとうるふしんわTRPG:7"},
	{ID: "DoubleCross", Name: "ダブルクロス2nd,3rd", SortKey: "たふるくろす"},
	{ID: "SwordWorld2.5", Name: "ソード・ワールド2.5", SortKey: "そおとわあると2.5"},
}

func TestErrorEmbeds(t *testing.T) {
	embed := ErrorEmbed("bad input", "abc")
	assert.Equal(t, "Error", embed.Title)
	assert.Equal(t, "bad input", embed.Description)
	assert.Equal(t, colorCrimson, embed.Color)

	internal := InternalErrorEmbed("abc")
	assert.Equal(t, "Internal Error", internal.Title)
	assert.Equal(t, "Error Hash: abc", internal.Footer.Text)
	assert.Len(t, strings.Split(internal.Description, "\n"), 3)
}

func TestSystemListEmbed(t *testing.T) {
	embed := SystemListEmbed(`id:"Cthulhu"`, systemsFixture[:2])
	assert.Equal(t, "Game Systems (2)", embed.Title)
	assert.Equal(t, "`Cthulhu` クトゥルフ神話TRPG\n`Cthulhu7th` 新クトゥルフ神話TRPG", embed.Description)
	assert.Equal(t, `Filter: id:"Cthulhu"`, embed.Footer.Text)

	empty := SystemListEmbed("false", nil)
	assert.Equal(t, "No Game Systems", empty.Title)
}

func TestEmptyFieldsUseDash(t *testing.T) {
	embed := InfoEmbed(&bcdice.APIVersion{API: "2.1.0", BCDice: "3.4.0"}, &bcdice.APIAdmin{}, "https://bcdice.test")
	for _, f := range embed.Fields[3:] {
		assert.Equal(t, "-", f.Value, f.Name)
		assert.True(t, f.Inline)
	}
}

func TestBCDiceSystemsWithFilter(t *testing.T) {
	manager := filter.NewManager()
	require.NoError(t, manager.RegisterPresets(map[string]string{"cthulhu": `sort:"くとうるふ"`}))

	tests := []struct {
		name      string
		filter    string
		wantTitle string
	}{
		{name: "expression", filter: `startsWithText(ID, "Sword")`, wantTitle: "Game Systems (1)"},
		{name: "shorthand", filter: `name:"クロス"`, wantTitle: "Game Systems (1)"},
		{name: "preset", filter: "cthulhu", wantTitle: "Game Systems (2)"},
		{name: "no match", filter: `ID == "None"`, wantTitle: "No Game Systems"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeResponder{}
			cmd := NewBCDiceCommand(&fakeAPI{systems: systemsFixture}, WithFilters(manager))

			err := cmd.Run(context.Background(), r, newInteraction("bcdice",
				subcommand("systems", stringOpt("filter", tt.filter))))
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, r.last(t).Embeds[0].Title)
		})
	}
}

func TestBCDiceSystemsInvalidFilter(t *testing.T) {
	r := &fakeResponder{}
	cmd := NewBCDiceCommand(&fakeAPI{systems: systemsFixture}, WithFilters(filter.NewManager()))

	err := cmd.Run(context.Background(), r, newInteraction("bcdice",
		subcommand("systems", stringOpt("filter", "ID =="))))

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, msgInvalidFilter, r.last(t).Embeds[0].Description)
}

func TestBCDiceDefinition(t *testing.T) {
	plain := NewBCDiceCommand(&fakeAPI{}).Definition()
	require.Len(t, plain.Options, 4)
	assert.Len(t, plain.Options[1].Options, 1)

	filtered := NewBCDiceCommand(&fakeAPI{}, WithFilters(filter.NewManager())).Definition()
	assert.Len(t, filtered.Options[1].Options, 2)
}
