package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/colloc/internal/analysis"
	"github.com/san-kum/colloc/internal/collocation"
)

const (
	MinExplorerSize = 1
	MaxExplorerSize = 64
)

// Explorer is a Bubble Tea model that rebuilds the matrix on every change
// and shows the derivative error of the selected test function.
type Explorer struct {
	size          int
	dists         []string
	distIdx       int
	funcs         []string
	funcIdx       int
	single        bool
	theme         int
	report        *analysis.Report
	err           error
	width, height int
}

// NewExplorer starts at the given size, distribution, function and theme;
// unknown names fall back to the first registered entry.
func NewExplorer(size int, dist, fn, theme string) Explorer {
	e := Explorer{
		size:   clampSize(size),
		dists:  collocation.Distributions(),
		funcs:  analysis.Functions(),
		width:  80,
		height: 24,
	}
	e.distIdx = indexOf(e.dists, dist)
	e.funcIdx = indexOf(e.funcs, fn)
	e.theme = indexOf(ThemeNames(), theme)
	e.recompute()
	return e
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}

func clampSize(n int) int {
	if n < MinExplorerSize {
		return MinExplorerSize
	}
	if n > MaxExplorerSize {
		return MaxExplorerSize
	}
	return n
}

func (e *Explorer) recompute() {
	dist, err := collocation.LookupDistribution(e.dists[e.distIdx])
	if err != nil {
		e.report, e.err = nil, err
		return
	}
	fn, err := analysis.LookupFunction(e.funcs[e.funcIdx])
	if err != nil {
		e.report, e.err = nil, err
		return
	}
	if e.single {
		e.report, e.err = analysis.Evaluate[float32](e.size, dist, fn)
	} else {
		e.report, e.err = analysis.Evaluate[float64](e.size, dist, fn)
	}
}

func (e Explorer) Size() int                { return e.size }
func (e Explorer) Distribution() string     { return e.dists[e.distIdx] }
func (e Explorer) Function() string         { return e.funcs[e.funcIdx] }
func (e Explorer) Report() *analysis.Report { return e.report }
func (e Explorer) Err() error               { return e.err }
func (e Explorer) Theme() string            { return Themes[e.theme].Name }

func (e Explorer) Precision() string {
	if e.single {
		return "float32"
	}
	return "float64"
}

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return e.handleKey(msg)
	case tea.WindowSizeMsg:
		e.width, e.height = msg.Width, msg.Height
	}
	return e, nil
}

func (e Explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return e, tea.Quit
	case "up", "k", "+":
		e.size = clampSize(e.size + 1)
	case "down", "j", "-":
		e.size = clampSize(e.size - 1)
	case "tab", "d":
		e.distIdx = (e.distIdx + 1) % len(e.dists)
	case "f":
		e.funcIdx = (e.funcIdx + 1) % len(e.funcs)
	case "p":
		e.single = !e.single
	case "t":
		e.theme = (e.theme + 1) % len(Themes)
		return e, nil
	default:
		return e, nil
	}
	e.recompute()
	return e, nil
}

func (e Explorer) View() string {
	th := Themes[e.theme]
	title := Title.Foreground(th.Primary).Render("colloc explorer")
	label := Subtle.Foreground(th.Muted)
	value := lipgloss.NewStyle().Bold(true).Foreground(th.Secondary)
	panel := Panel.BorderForeground(th.Accent)

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString(panel.Render(fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		label.Render("n"), value.Render(fmt.Sprint(e.size)),
		label.Render("points"), value.Render(e.Distribution()),
		label.Render("f"), value.Render(e.Function()),
		label.Render("precision"), value.Render(e.Precision()))) + "\n")

	plotWidth := e.width - 12
	if plotWidth < 20 {
		plotWidth = 20
	}

	if e.err != nil {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Error).Render("error: "+e.err.Error()) + "\n")
	} else if e.report != nil {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Text).Render(NodeStrip(e.report.Points, plotWidth)) + "\n\n")
		errStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Warning)
		if e.report.ExpectExact {
			errStyle = errStyle.Foreground(th.Success)
		}
		b.WriteString(fmt.Sprintf("%s %s   %s %s\n\n",
			label.Render("max error"), errStyle.Render(formatError(e.report.MaxError)),
			label.Render("rms"), value.Render(formatError(e.report.RMSError))))

		plotHeight := e.height - 14
		if plotHeight < 5 {
			plotHeight = 5
		}
		if plot := PlotDerivative(e.report, plotWidth, plotHeight); plot != "" {
			b.WriteString(plot + "\n")
		}
	}

	b.WriteString("\n" + KeyHint.Foreground(th.Muted).Render("↑/↓ size  tab points  f function  p precision  t theme  q quit"))
	return b.String()
}

// RunExplorer runs the explorer full screen until the user quits.
func RunExplorer(size int, dist, fn, theme string) error {
	p := tea.NewProgram(NewExplorer(size, dist, fn, theme), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
