package bcdice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOriginalTableEncode(t *testing.T) {
	tests := []struct {
		name  string
		table OriginalTable
		text  string
		want  string
	}{
		{
			name:  "non-ASCII items",
			table: NewOriginalTable("TestTable", "1D6", []string{"A", "あ", "b", "び", "★", "＊"}),
			text:  "TestTable\n1D6\n1:A\n2:あ\n3:b\n4:び\n5:★\n6:＊",
			want:  "TestTable%0A1D6%0A1:A%0A2:%E3%81%82%0A3:b%0A4:%E3%81%B3%0A5:%E2%98%85%0A6:%EF%BC%8A",
		},
		{
			name:  "duplicate items are numbered by position",
			table: NewOriginalTable("Dup", "1D2", []string{"X", "X"}),
			text:  "Dup\n1D2\n1:X\n2:X",
			want:  "Dup%0A1D2%0A1:X%0A2:X",
		},
		{
			name:  "no items",
			table: NewOriginalTable("Empty", "1D1", nil),
			text:  "Empty\n1D1\n",
			want:  "Empty%0A1D1%0A",
		},
		{
			name:  "reserved characters are kept",
			table: NewOriginalTable("A&B", "1D2", []string{"x+y", "50% off"}),
			text:  "A&B\n1D2\n1:x+y\n2:50% off",
			want:  "A&B%0A1D2%0A1:x+y%0A2:50%25%20off",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.text, tt.table.Text())
			assert.Equal(t, tt.want, tt.table.Encode())
		})
	}
}

func TestNewOriginalTableCopiesItems(t *testing.T) {
	items := []string{"A", "B"}
	table := NewOriginalTable("T", "1D2", items)
	items[0] = "Z"

	assert.Equal(t, []string{"A", "B"}, table.Items)
}

func TestParseOriginalTable(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OriginalTable
		wantErr error
	}{
		{
			name:  "plain items",
			input: "Weather\n1D3\nSunny\nCloudy\nRain\n",
			want:  OriginalTable{Title: "Weather", Command: "1D3", Items: []string{"Sunny", "Cloudy", "Rain"}},
		},
		{
			name:  "numbered items",
			input: "Weather\r\n1D2\r\n1:Sunny\r\n2:Rain\r\n",
			want:  OriginalTable{Title: "Weather", Command: "1D2", Items: []string{"Sunny", "Rain"}},
		},
		{
			name:  "blank lines are skipped",
			input: "Weather\n1D2\n\nSunny\n\nRain",
			want:  OriginalTable{Title: "Weather", Command: "1D2", Items: []string{"Sunny", "Rain"}},
		},
		{
			name:  "partially numbered items are kept",
			input: "Odd\n1D2\n1:one\ntwo",
			want:  OriginalTable{Title: "Odd", Command: "1D2", Items: []string{"1:one", "two"}},
		},
		{
			name:    "missing command",
			input:   "Weather\n",
			wantErr: ErrEmptyTable,
		},
		{
			name:    "blank title",
			input:   "  \n1D6\nA",
			wantErr: ErrEmptyTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOriginalTable(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsedTableRoundTrip(t *testing.T) {
	table := NewOriginalTable("TestTable", "1D6", []string{"A", "あ", "b", "び", "★", "＊"})

	parsed, err := ParseOriginalTable(strings.NewReader(table.Text()))
	require.NoError(t, err)
	assert.Equal(t, table, parsed)
}
