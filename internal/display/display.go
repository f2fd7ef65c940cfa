// Package display renders an analysis result to the terminal as a sequence
// of styled panels, one per dashboard section.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nvats/StockLens/internal/analysis"
	"github.com/nvats/StockLens/internal/scan"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Background(lipgloss.Color("#1F2937")).
			Padding(0, 1).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(1, 2).
			Width(80)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	positiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	negativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	neutralStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

const notAvailable = "N/A"

// Renderer writes analysis panels to out.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer. A nil out defaults to stdout.
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out}
}

// Render prints the full dashboard for one analysis.
func (r *Renderer) Render(a *analysis.Analysis) {
	fmt.Fprintln(r.out, titleStyle.Render(fmt.Sprintf("📊 %s | %s", a.Symbol, a.GeneratedAt.Format("2006-01-02 15:04"))))
	fmt.Fprintln(r.out, sectionStyle.Render(renderOverview(a)))
	fmt.Fprintln(r.out, sectionStyle.Render(renderTechnicals(a)))
	fmt.Fprintln(r.out, sectionStyle.Render(renderScans(a)))
	fmt.Fprintln(r.out, sectionStyle.Render(renderNews(a)))
	fmt.Fprintln(r.out, sectionStyle.Render(renderReport(a)))
	fmt.Fprintln(r.out, sectionStyle.Render(renderCompetitors(a)))
	if a.Broker != nil {
		fmt.Fprintln(r.out, mutedStyle.Render(fmt.Sprintf("Exchange: %s | Currency: %s | Lot size: %d",
			a.Broker.Exchange, a.Broker.Currency, a.Broker.LotSize)))
	}
}

// DisplayError prints a fatal error message.
func DisplayError(err error) {
	fmt.Println(errorStyle.Render(fmt.Sprintf("❌ Error: %v", err)))
}

// DisplayInfo prints an informational message.
func DisplayInfo(message string) {
	fmt.Println(labelStyle.Render(fmt.Sprintf("ℹ️  %s", message)))
}

func renderOverview(a *analysis.Analysis) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("🏢 Company Overview"))
	b.WriteString("\n\n")

	if a.Overview.LastPrice != nil {
		fmt.Fprintf(&b, "Last Price: %.2f\n", *a.Overview.LastPrice)
	}

	if note := sectionNote(a.Overview.Status); note != "" {
		b.WriteString(note)
		return b.String()
	}

	f := a.Overview.Fundamentals
	if f == nil {
		b.WriteString(mutedStyle.Render("(no data available)"))
		return b.String()
	}
	if f.Sector != "" {
		fmt.Fprintf(&b, "Sector: %s | Industry: %s\n", f.Sector, f.Industry)
	}
	fmt.Fprintf(&b, "Market Cap: %s\n", formatMarketCap(f.MarketCap))
	fmt.Fprintf(&b, "P/E: %s | P/B: %s | Dividend Yield: %s\n",
		formatRatio(f.PERatio), formatRatio(f.PBRatio), formatRatio(f.DividendYield))
	fmt.Fprintf(&b, "52W High: %s | 52W Low: %s\n",
		formatRatio(f.Week52High), formatRatio(f.Week52Low))
	if f.LongSummary != "" {
		b.WriteString("\n")
		b.WriteString(wrapText(f.LongSummary, 74))
	}
	return b.String()
}

func renderTechnicals(a *analysis.Analysis) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("📈 Technical Indicators"))
	b.WriteString("\n\n")

	if note := sectionNote(a.Technicals.Status); note != "" {
		b.WriteString(note)
		return b.String()
	}

	t := a.Technicals.Technicals
	fmt.Fprintf(&b, "RSI (14): %s\n", formatRatio(t.RSI14))
	fmt.Fprintf(&b, "EMA (50): %s\n", formatRatio(lastValue(t.EMA50)))
	fmt.Fprintf(&b, "EMA (200): %s\n", formatRatio(lastValue(t.EMA200)))
	return b.String()
}

func renderScans(a *analysis.Analysis) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("🔍 Screening & Scans"))
	b.WriteString("\n\n")

	b.WriteString("Floor Trader Pivots:\n")
	if a.Scans.PivotStatus.Status == analysis.StatusOK {
		for _, level := range scan.PivotLevelOrder {
			fmt.Fprintf(&b, "  %-20s %10.2f\n", level, a.Scans.Pivots[level])
		}
	} else {
		b.WriteString("  " + mutedStyle.Render("(not enough price history)") + "\n")
	}

	b.WriteString("\nGraham Screen:\n")
	verdict := a.Scans.Graham.Verdict
	var styled string
	switch verdict {
	case scan.VerdictUndervalued:
		styled = positiveStyle.Render(verdict)
	case scan.VerdictNotMeeting:
		styled = negativeStyle.Render(verdict)
	default:
		styled = mutedStyle.Render(verdict)
	}
	fmt.Fprintf(&b, "  %s", styled)
	if a.Scans.Graham.PERatio != "" {
		fmt.Fprintf(&b, " (P/E %s, P/B %s)", a.Scans.Graham.PERatio, a.Scans.Graham.PBRatio)
	}
	return b.String()
}

func renderNews(a *analysis.Analysis) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("📰 News & Sentiment"))
	b.WriteString("\n\n")

	if note := sectionNote(a.News.Status); note != "" {
		b.WriteString(note)
		return b.String()
	}

	for _, item := range a.News.Items {
		fmt.Fprintf(&b, "%s %s\n", sentimentBadge(item.Sentiment.Label), truncate(item.Article.Title, 68))
	}
	if a.News.AverageCompound != nil {
		fmt.Fprintf(&b, "\nOverall sentiment: %s (%.3f)",
			sentimentBadge(scan.Classify(*a.News.AverageCompound)), *a.News.AverageCompound)
	}
	return b.String()
}

func renderReport(a *analysis.Analysis) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("🤖 AI Company Report"))
	b.WriteString("\n\n")
	b.WriteString(wrapText(a.Report.Text, 74))
	return b.String()
}

func renderCompetitors(a *analysis.Analysis) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("🏁 Competitors"))
	b.WriteString("\n\n")

	if note := sectionNote(a.Competitors.Status); note != "" {
		b.WriteString(note)
		return b.String()
	}

	fmt.Fprintf(&b, "%-14s %-18s %-10s\n", "Ticker", "Market Cap", "P/E")
	for _, row := range a.Competitors.Rows {
		fmt.Fprintf(&b, "%-14s %-18s %-10s\n", row.Ticker, formatMarketCap(row.MarketCap), formatRatio(row.PERatio))
	}
	return strings.TrimRight(b.String(), "\n")
}

// sectionNote renders the placeholder for a section that has no data. It
// returns "" when the section is ok.
func sectionNote(status analysis.SectionStatus) string {
	switch status.Status {
	case analysis.StatusEmpty:
		return mutedStyle.Render("(no data available)")
	case analysis.StatusProviderError:
		return errorStyle.Render(fmt.Sprintf("(data unavailable: %s)", status.Reason))
	default:
		return ""
	}
}

func sentimentBadge(label scan.SentimentLabel) string {
	switch label {
	case scan.SentimentPositive:
		return positiveStyle.Render("🟢 " + string(label))
	case scan.SentimentNegative:
		return negativeStyle.Render("🔴 " + string(label))
	default:
		return neutralStyle.Render("🟡 " + string(label))
	}
}

// formatRatio renders a sparse figure with two decimals, or N/A.
func formatRatio(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.2f", *v)
}

// formatMarketCap renders a market cap in crores of rupees.
func formatMarketCap(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("₹%.2f Cr", *v/1e7)
}

func lastValue(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	return &values[len(values)-1]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			b.WriteString(line + "\n")
			line = word
		} else {
			line += " " + word
		}
	}
	b.WriteString(line)
	return b.String()
}
