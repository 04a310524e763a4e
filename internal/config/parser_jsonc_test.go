package config

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeJSONC(t *testing.T) {
	input := `
{
  // digits
  "labels": [
    "7", /* seven */
    "8",
  ],
  "url": "http://example.test/*not-a-comment*/",
  "tail": {"x,]": true,},
}
`
	normalized, err := normalizeJSONC(input)
	require.NoError(t, err)
	require.Len(t, normalized, len(input))
	require.Equal(t, strings.Count(input, "\n"), strings.Count(normalized, "\n"))

	var decoded struct {
		Labels []string        `json:"labels"`
		URL    string          `json:"url"`
		Tail   map[string]bool `json:"tail"`
	}
	require.NoError(t, json.Unmarshal([]byte(normalized), &decoded))
	require.Equal(t, []string{"7", "8"}, decoded.Labels)
	require.Equal(t, "http://example.test/*not-a-comment*/", decoded.URL)
	require.Equal(t, map[string]bool{"x,]": true}, decoded.Tail)

	_, err = normalizeJSONC(`{"a": 1} /* open`)
	require.ErrorContains(t, err, "unterminated block comment")
}

func TestRejectTrailingData(t *testing.T) {
	for input, wantErr := range map[string]bool{
		`{"a":1}`:       false,
		"{\"a\":1}\n\t ": false,
		`{"a":1}{"b":2}`: true,
		`{"a":1} 7`:      true,
	} {
		dec := json.NewDecoder(strings.NewReader(input))
		var v map[string]any
		require.NoError(t, dec.Decode(&v), input)

		err := rejectTrailingData(dec)
		if wantErr {
			require.ErrorContains(t, err, "multiple JSON values", input)
		} else {
			require.NoError(t, err, input)
		}
	}
}

func TestOffsetToLineCol(t *testing.T) {
	content := "ab\ncde\nf"
	for _, tc := range []struct {
		offset    int64
		line, col int
	}{
		{offset: 1, line: 1, col: 1},
		{offset: 5, line: 2, col: 2},
		{offset: 8, line: 3, col: 1},
		{offset: 500, line: 3, col: 1},
	} {
		line, col := offsetToLineCol(content, tc.offset)
		require.Equal(t, [2]int{tc.line, tc.col}, [2]int{line, col}, tc.offset)
	}
}

func TestParseJSONCAppliesSections(t *testing.T) {
	cfg, warnings, err := parseJSONC(`{
  // cues
  "sound": {"enable": true, "key_clicks": true, "result_file": "  ~/ding.wav  "},
  "grpc": {"enable": true, "listen": " 127.0.0.1:6000 "},
  "clipboard_cmd": "xclip -selection clipboard",
  "log": {"level": " DEBUG "},
}`, Default())
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, Config{
		Sound:     SoundConfig{Enable: true, KeyClicks: true, ResultFile: "~/ding.wav"},
		GRPC:      GRPCConfig{Enable: true, Listen: "127.0.0.1:6000"},
		Clipboard: CommandConfig{Raw: "xclip -selection clipboard", Argv: []string{"xclip", "-selection", "clipboard"}},
		Log:       LogConfig{Level: "debug"},
	}, cfg)
}

func TestParseJSONCKeepsAbsentFields(t *testing.T) {
	cfg, _, err := parseJSONC(`{"grpc": {"enable": true}}`, Default())
	require.NoError(t, err)

	want := Default()
	want.GRPC.Enable = true
	require.Equal(t, want, cfg)
}

func TestParseJSONCWarnsOnKeyClicksWithoutSound(t *testing.T) {
	cfg, warnings, err := parseJSONC(`{"sound": {"enable": false, "key_clicks": true}}`, Default())
	require.NoError(t, err)
	require.False(t, cfg.Sound.Enable)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, "key_clicks")
}

func TestParseJSONCErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "unknown field", content: `{"display": {"digits": 12}}`, want: []string{"unknown field"}},
		{name: "bad clipboard quoting", content: `{"clipboard_cmd": "wl-copy 'open"}`, want: []string{"invalid clipboard_cmd"}},
		{name: "two objects", content: `{"sound":{}}{"grpc":{}}`, want: []string{"multiple JSON values"}},
		{name: "wrong type", content: "{\n  \"grpc\": {\"listen\": 123}\n}", want: []string{"line 2 ", "column"}},
		{name: "located after comment", content: "{\n  /* a block\n     over lines */\n  \"sound\": {\"enable\": \"yes\"},\n}", want: []string{"line 4 "}},
		{name: "invalid level", content: `{"log": {"level": "chatty"}}`, want: []string{"log.level"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := parseJSONC(tc.content, Default())
			require.Error(t, err)
			for _, want := range tc.want {
				require.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestParseRequiresObject(t *testing.T) {
	_, _, err := Parse("sound.enable = false", Default())
	require.ErrorContains(t, err, "JSONC object")

	cfg, warnings, err := Parse("   \n", Default())
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, Default(), cfg)
}
