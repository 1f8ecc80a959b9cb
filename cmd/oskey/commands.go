package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/dshills/oskey/internal/config"
	"github.com/dshills/oskey/internal/hid"
	"github.com/dshills/oskey/internal/replay"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Bold(true).Foreground(lipgloss.Color("12"))
			}
			return base
		})
}

func runReplay(ctx context.Context, scriptPath string, stopOnError, showMetrics bool) error {
	f, err := config.Load(configPath)
	if err != nil {
		return err
	}
	script, err := replay.ParseFile(scriptPath)
	if err != nil {
		return err
	}

	var opts []replay.Option
	if stopOnError {
		opts = append(opts, replay.WithStopOnError())
	}
	session, err := replay.NewSession(f, opts...)
	if err != nil {
		return err
	}

	trace, runErr := session.Run(ctx, script)
	if trace == nil {
		return runErr
	}

	rows := make([][]string, 0, len(trace.Entries))
	for _, e := range trace.Entries {
		event := "release"
		if e.Pressed {
			event = "press"
		}

		reports := make([]string, len(e.Reports))
		for i, r := range e.Reports {
			reports[i] = r.String()
		}
		outcome := e.Result.String()
		if e.Err != nil {
			outcome = errStyle.Render(e.Err.Error())
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Step.Line),
			fmt.Sprintf("%s %d", event, e.Step.Position),
			e.OS.String(),
			strings.Join(reports, ", "),
			outcome,
		})
	}

	fmt.Println(titleStyle.Render("Replay " + trace.Script))
	fmt.Println(noteStyle.Render("session " + trace.SessionID))
	fmt.Println(newTable("LINE", "EVENT", "OS", "REPORTS", "RESULT").Rows(rows...).Render())
	fmt.Printf("final os: %s\n", trace.FinalOS)

	if n := trace.Failures(); n > 0 {
		fmt.Println(errStyle.Render(fmt.Sprintf("%d event(s) failed", n)))
	}
	if trace.Drops > 0 {
		fmt.Println(noteStyle.Render(fmt.Sprintf("%d event(s) dropped", trace.Drops)))
	}

	if showMetrics && len(trace.Metrics) > 0 {
		mrows := make([][]string, 0, len(trace.Metrics))
		for _, m := range trace.Metrics {
			mrows = append(mrows, []string{
				m.Name,
				fmt.Sprintf("%d", m.Presses),
				fmt.Sprintf("%d", m.Releases),
				fmt.Sprintf("%d", m.Failures),
				fmt.Sprintf("%d", m.Exhausted),
				fmt.Sprintf("%d", m.Unmatched),
			})
		}
		fmt.Println()
		fmt.Println(newTable("BEHAVIOR", "PRESSES", "RELEASES", "FAILURES", "EXHAUSTED", "UNMATCHED").Rows(mrows...).Render())
	}

	return runErr
}

func runCheck(ctx context.Context, watch bool) error {
	err := checkOnce(configPath)
	if !watch {
		return err
	}

	w, werr := config.NewWatcher(configPath)
	if werr != nil {
		return werr
	}
	defer w.Close()

	fmt.Println(noteStyle.Render("watching " + w.Path() + " (ctrl+c to stop)"))
	err = w.Run(ctx, func(path string) {
		_ = checkOnce(path)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// checkOnce validates path and prints the outcome.
func checkOnce(path string) error {
	f, err := config.Load(path)
	if err == nil {
		err = config.Validate(f)
	}
	if err != nil {
		fmt.Println(errStyle.Render("✗ " + path))
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Println("  " + line)
		}
		return err
	}

	fmt.Println(okStyle.Render(fmt.Sprintf("✓ %s: %d behaviors, %d positions", path, len(f.Behaviors), len(f.Keymap.Bindings))))
	return nil
}

func listKeycodes() error {
	keys := hid.Keys()
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		page := "keyboard"
		if k.Page == hid.PageConsumer {
			page = "consumer"
		}
		rows = append(rows, []string{
			k.Name,
			page,
			fmt.Sprintf("0x%02X", k.Page),
			fmt.Sprintf("0x%04X", k.Usage),
		})
	}

	fmt.Println(newTable("NAME", "PAGE", "PAGE ID", "USAGE").Rows(rows...).Render())
	fmt.Println(noteStyle.Render("Wrap keys in LC() LS() LA() LG() RC() RS() RA() RG() to add modifiers, e.g. &kp LC(LEFT)."))
	return nil
}
