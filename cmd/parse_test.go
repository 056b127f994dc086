package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCmd(t *testing.T) {
	tbl := []struct {
		text []string
		exp  string
	}{
		{
			text: []string{"nov", "10", "-", "nov", "22"},
			exp: "start:   2025-11-10\n" +
				"end:     2025-11-22\n" +
				"range:   true\n" +
				"display: Nov 10 - Nov 22\n",
		},
		{
			text: []string{"3", "jan"},
			exp: "start:   2026-01-03\n" +
				"end:     2026-01-03\n" +
				"range:   false\n" +
				"display: Jan 3\n",
		},
		{
			text: []string{"2024-02-29"},
			exp: "start:   2024-02-29\n" +
				"end:     2024-02-29\n" +
				"range:   false\n" +
				"display: Feb 29\n",
		},
	}

	for _, tt := range tbl {
		out := &bytes.Buffer{}
		cmd := &Parse{Today: "2025-06-15", NoColor: true, out: out}
		cmd.Args.Text = tt.text

		err := cmd.Execute([]string{})
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.exp, out.String(), tt.text)
	}
}

func TestParseCmd_fail(t *testing.T) {
	cmd := &Parse{Today: "2025-06-15", NoColor: true, out: &bytes.Buffer{}}
	cmd.Args.Text = []string{"someday"}
	assert.ErrorContains(t, cmd.Execute([]string{}), `cannot parse "someday"`)

	cmd = &Parse{Today: "15.06.2025", out: &bytes.Buffer{}}
	cmd.Args.Text = []string{"3", "jan"}
	assert.ErrorContains(t, cmd.Execute([]string{}), "invalid --today")
}
