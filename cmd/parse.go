package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/kario-app/taskfilter/dateparse"
)

// Parse resolves a date or a date range offline, the way the server does.
type Parse struct {
	Today   string `long:"today" value-name:"yyyy-mm-dd" description:"Resolve as if today were this date (midnight, local time)."`
	NoColor bool   `long:"no-color" env:"NO_COLOR" description:"Plain output."`

	Args struct {
		Text []string `positional-arg-name:"text" required:"1"`
	} `positional-args:"yes" required:"yes"`

	out io.Writer
}

func (p *Parse) Execute(args []string) error {
	parser := dateparse.Parser{}
	if p.Today != "" {
		today, err := dateparse.ParseISO(p.Today, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --today: %w", err)
		}
		parser.Now = func() time.Time { return today }
	}

	text := strings.Join(p.Args.Text, " ")
	res := parser.Parse(text)
	if res.Empty() {
		return fmt.Errorf("cannot parse %q as a date", text)
	}

	label := color.New(color.Faint)
	value := color.New(color.FgCyan, color.Bold)
	if p.NoColor {
		label.DisableColor()
		value.DisableColor()
	}

	out := p.out
	if out == nil {
		out = os.Stdout
	}

	rows := [][2]string{
		{"start", dateparse.FormatISO(res.Start)},
		{"end", dateparse.FormatISO(res.End)},
		{"range", fmt.Sprintf("%t", res.IsRange)},
		{"display", res.String()},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(out, "%s %s\n", label.Sprintf("%-8s", row[0]+":"), value.Sprint(row[1])); err != nil {
			return fmt.Errorf("cannot write output: %w", err)
		}
	}
	return nil
}
