package checkerspresenter

import (
	"strings"
	"time"

	"github.com/park285/Cheese-checkers-bot/internal/checkers"
	"github.com/park285/Cheese-checkers-bot/internal/msgcat"
	"github.com/park285/Cheese-checkers-bot/internal/pvpcheckers"
	"github.com/park285/Cheese-checkers-bot/internal/util"
	"github.com/park285/Cheese-checkers-bot/pkg/checkersdto"
)

// PrefixProvider exposes the command prefix shown in help texts.
type PrefixProvider interface {
	Prefix() string
}

// Formatter turns checkers DTOs into chat text using the message catalog.
type Formatter struct {
	cat    *msgcat.Catalog
	prefix PrefixProvider
}

func NewFormatter(cat *msgcat.Catalog, provider PrefixProvider) *Formatter {
	if cat == nil {
		cat = msgcat.MustDefault()
	}
	return &Formatter{cat: cat, prefix: provider}
}

func (f *Formatter) Prefix() string {
	if f.prefix == nil {
		return ""
	}
	return strings.TrimSpace(f.prefix.Prefix())
}

func (f *Formatter) text(key string, data map[string]any) string {
	return f.cat.Text("checkers."+key, data, key)
}

func (f *Formatter) side(c string) string {
	return f.text("side."+c, nil)
}

func (f *Formatter) Help() string {
	header := f.text("header", nil)
	return util.SeeMore(header, f.text("help", map[string]any{"Prefix": f.Prefix()}))
}

func (f *Formatter) Challenge(challenger, target string, ttl time.Duration) string {
	minutes := int(ttl.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return f.text("challenge.created", map[string]any{
		"Challenger": challenger,
		"Target":     target,
		"Prefix":     f.Prefix(),
		"Minutes":    minutes,
	})
}

func (f *Formatter) Declined(challenger, target string) string {
	return f.text("challenge.declined", map[string]any{"Challenger": challenger, "Target": target})
}

func (f *Formatter) Start(state *checkersdto.SessionState) string {
	return f.text("start", map[string]any{
		"Light":     state.LightName,
		"Dark":      state.DarkName,
		"LightSide": f.side(string(checkers.Light)),
		"DarkSide":  f.side(string(checkers.Dark)),
	})
}

func (f *Formatter) Status(state *checkersdto.SessionState) string {
	if state.State == string(checkers.GameOver) {
		return f.victory(state)
	}
	var sb strings.Builder
	sb.WriteString(f.text("status", map[string]any{
		"Side":       f.side(state.Turn),
		"Name":       nameFor(state, state.Turn),
		"LightCount": state.LightCount,
		"DarkCount":  state.DarkCount,
	}))
	switch {
	case state.State == string(checkers.ChainCaptureInProgress):
		sb.WriteByte('\n')
		sb.WriteString(f.chain(state))
	case state.Selected != "":
		sb.WriteByte('\n')
		sb.WriteString(f.Selected(state))
	case state.MustCapture:
		sb.WriteByte('\n')
		sb.WriteString(f.text("must_capture", nil))
	}
	return sb.String()
}

func (f *Formatter) Selected(state *checkersdto.SessionState) string {
	if len(state.Destinations) == 0 {
		return f.text("selected_blocked", map[string]any{"Square": state.Selected})
	}
	return f.text("selected", map[string]any{
		"Square":       state.Selected,
		"Destinations": strings.Join(state.Destinations, ", "),
	})
}

func (f *Formatter) Cleared() string { return f.text("cleared", nil) }

func (f *Formatter) Move(summary *checkersdto.MoveSummary) string {
	data := map[string]any{"Name": summary.MoverName, "Move": summary.Notation}
	key := "move"
	if summary.Captured {
		key = "captured"
	}
	lines := []string{f.text(key, data)}
	state := summary.State
	switch {
	case summary.Finished && state != nil:
		lines = append(lines, f.victory(state))
	case summary.ChainContinues && state != nil:
		lines = append(lines, f.chain(state))
	case state != nil && state.MustCapture:
		lines = append(lines, f.text("must_capture", nil))
	}
	return strings.Join(lines, "\n")
}

func (f *Formatter) Resign(loser, winner string) string {
	return f.text("resign", map[string]any{"Loser": loser, "Winner": winner})
}

func (f *Formatter) chain(state *checkersdto.SessionState) string {
	return f.text("chain", map[string]any{
		"Name":         nameFor(state, state.Turn),
		"Destinations": strings.Join(state.Destinations, ", "),
	})
}

func (f *Formatter) victory(state *checkersdto.SessionState) string {
	if state.Outcome == "" {
		return f.text("error.game_over", nil)
	}
	return f.text("victory."+state.Outcome, map[string]any{"Name": state.Winner})
}

// Error maps a command failure to a user-facing sentence.
func (f *Formatter) Error(err error) string {
	de := pvpcheckers.ToDomainError(err)
	if !f.cat.Has("checkers." + de.Code) {
		return f.text("error.internal", nil)
	}
	return f.text(de.Code, nil)
}

func (f *Formatter) History(games []*checkersdto.CheckersGame) string {
	header := f.text("history.header", nil)
	if len(games) == 0 {
		return header + "\n" + f.text("history.empty", nil)
	}
	lines := make([]string, 0, len(games)+1)
	for i, g := range games {
		result := g.Result
		if result == "" {
			result = "none"
		}
		lines = append(lines, f.text("history.line", map[string]any{
			"Index":  i + 1,
			"Light":  g.LightName,
			"Dark":   g.DarkName,
			"Result": f.text("history.result."+result, nil),
			"Moves":  len(g.Moves),
			"When":   formatShortTime(g.EndedAt),
		}))
	}
	lines = append(lines, "", f.text("history.see_more", nil))
	return util.SeeMore(header, strings.Join(lines, "\n"))
}

func nameFor(state *checkersdto.SessionState, color string) string {
	if color == string(checkers.Dark) {
		return state.DarkName
	}
	return state.LightName
}

var kst = time.FixedZone("KST", 9*60*60)

func formatShortTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(kst).Format("01/02 15:04")
}
