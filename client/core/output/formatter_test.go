package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	pterm.DisableStyling()
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatText, "text": FormatText, "json": FormatJSON, "pretty": FormatPretty}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("yaml")
	require.Error(t, err)
}

func TestFormatter_PrintJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON, &buf)

	require.NoError(t, f.Print(map[string]string{"b": "2", "a": "1"}))
	assert.Equal(t, "{\"a\":\"1\",\"b\":\"2\"}\n", buf.String())
	assert.True(t, f.IsStructured())
}

func TestFormatter_PrintTextMap(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatText, &buf)

	require.NoError(t, f.Print(map[string]string{"to": "0xabc", "from": "0xdef"}))
	out := buf.String()
	assert.Less(t, strings.Index(out, "from"), strings.Index(out, "to"))
	assert.Contains(t, out, "0xabc")
}

func TestFormatter_Tables(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatText, &buf)

	require.NoError(t, f.PrintKeyValues("Signature information", []KeyValue{{Key: "v", Value: "37"}}))
	require.NoError(t, f.PrintTable([]string{"Unit", "Wei"}, [][]string{{"gwei", "1000000000"}}))

	out := buf.String()
	assert.Contains(t, out, "Signature information")
	assert.Contains(t, out, "37")
	assert.Contains(t, out, "Unit")
	assert.Contains(t, out, "1000000000")
}

func TestFormatter_Messages(t *testing.T) {
	var out, log bytes.Buffer
	f := NewFormatter(FormatText, &out)
	f.SetLogWriter(&log)

	f.PrintInfo("hello")
	f.SetSilent(true)
	f.PrintWarning("hidden")
	f.PrintError(errors.New("boom"))

	assert.Empty(t, out.String())
	assert.Contains(t, log.String(), "hello")
	assert.NotContains(t, log.String(), "hidden")
	assert.Contains(t, log.String(), "boom")
}
