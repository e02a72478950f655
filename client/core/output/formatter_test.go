package output

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" PRETTY ", FormatPretty, false},
		{"table", FormatTable, false},
		{"", FormatTable, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestPrint_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON, &buf)

	require.NoError(t, f.Print(map[string]interface{}{"id": 1}))
	assert.Equal(t, "{\"id\":1}\n", buf.String())
}

func TestPrint_Pretty(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatPretty, &buf)

	require.NoError(t, f.Print(map[string]string{"a": "b"}))
	assert.Equal(t, "{\n  \"a\": \"b\"\n}\n", buf.String())
}

func TestPrint_Table(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTable, &buf)

	require.NoError(t, f.Print(Table{
		Columns: []string{"ID", "PRICE"},
		Data:    [][]string{{"1", "1.5"}, {"22", "0.25"}},
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID  PRICE", lines[0])
	assert.Equal(t, "--  -----", lines[1])
	assert.Equal(t, "1   1.5", lines[2])
	assert.Equal(t, "22  0.25", lines[3])
}

func TestPrint_TableMapSorted(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTable, &buf)

	require.NoError(t, f.Print(map[string]interface{}{"b": big.NewInt(5), "a": nil}))
	out := buf.String()
	assert.Less(t, strings.Index(out, "a "), strings.Index(out, "b "))
	assert.Contains(t, out, "5")
	assert.Contains(t, out, "-")
}

func TestPrint_TableFallback(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTable, &buf)

	require.NoError(t, f.Print([]int{1, 2}))
	assert.Equal(t, "[\n  1,\n  2\n]\n", buf.String())
}

func TestSilentAndMessages(t *testing.T) {
	var out, log bytes.Buffer
	f := NewFormatter(FormatJSON, &out)
	f.SetLogWriter(&log)

	f.PrintSuccess("done")
	f.PrintInfo("info")
	assert.Contains(t, log.String(), "done")
	assert.Contains(t, log.String(), "info")
	assert.Empty(t, out.String())

	log.Reset()
	f.SetSilent(true)
	f.PrintWarning("hidden")
	require.NoError(t, f.Print("x"))
	f.PrintError(errors.New("boom"))
	assert.Equal(t, "❌ Error: boom\n", log.String())
	assert.Empty(t, out.String())
}

func TestNewErrorOutput(t *testing.T) {
	e := NewErrorOutput("QUERY_FAILED", "query failed", nil)
	assert.Equal(t, "QUERY_FAILED", e.Error.Code)
	assert.Equal(t, "query failed", e.Error.Message)
}
