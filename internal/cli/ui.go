package cli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/repolens/repolens/pkg/scout"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// unknownField is rendered for derived fields whose enrichment lookup failed.
const unknownField = "—"

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Profile Rendering
// =============================================================================

// renderProfileTable renders search results as a bordered table. Unknown
// derived fields show as "—" rather than dropping the row.
func renderProfileTable(profiles []scout.Profile) string {
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{
			truncate(p.FullName, 40),
			strconv.Itoa(p.Stars),
			strconv.Itoa(p.Forks),
			orDash(p.Language),
			fmt.Sprintf("%.1f", p.AgeYears),
			formatCount(p.Contributors),
			formatCount(p.Commits),
			strconv.Itoa(p.OpenIssues),
			truncate(formatLicense(p.License), 15),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Repository", "Stars", "Forks", "Language", "Age(y)", "Contribs", "Commits", "Issues", "License").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		})

	return t.Render()
}

// printProfileDetail prints the full profile of a single repository.
func printProfileDetail(p scout.Profile) {
	fmt.Println(StyleTitle.Render(p.FullName))
	printKeyValue("URL", p.URL)
	if p.Description != "" {
		printKeyValue("Description", truncate(p.Description, 100))
	}
	printKeyValue("Language", orDash(p.Language))
	printKeyValue("Stars", strconv.Itoa(p.Stars))
	printKeyValue("Forks", strconv.Itoa(p.Forks))
	printKeyValue("Open issues", strconv.Itoa(p.OpenIssues))
	printKeyValue("Size", fmt.Sprintf("%d KB", p.SizeKB))
	printKeyValue("Created", p.CreatedAt.Format("2006-01-02"))
	printKeyValue("Updated", p.UpdatedAt.Format("2006-01-02"))
	printKeyValue("Age", fmt.Sprintf("%.1f years", p.AgeYears))
	printKeyValue("Contributors", formatCount(p.Contributors))
	printKeyValue("Commits", formatCount(p.Commits))
	printKeyValue("License", formatLicense(p.License))
	printKeyValue("Branch", orDash(p.DefaultBranch))
	if p.LastCommit != nil {
		printKeyValue("Last commit", fmt.Sprintf("%s by %s",
			p.LastCommit.Date.Format("2006-01-02 15:04"), orDash(p.LastCommit.Author)))
		if p.LastCommit.Message != "" {
			printKeyValue("", StyleDim.Render(truncate(p.LastCommit.Message, 100)))
		}
	}
	if len(p.Topics) > 0 {
		printKeyValue("Topics", strings.Join(p.Topics, ", "))
	}
	printKeyValue("Build tools", orDash(strings.Join(p.BuildTools, ", ")))
	printKeyValue("Frameworks", orDash(strings.Join(p.Frameworks, ", ")))
}

// formatCount renders an optional count, "—" when unknown.
func formatCount(n *int) string {
	if n == nil {
		return unknownField
	}
	return strconv.Itoa(*n)
}

// formatLicense renders an optional license identifier.
func formatLicense(l *string) string {
	if l == nil || *l == "" {
		return unknownField
	}
	return *l
}

func orDash(s string) string {
	if s == "" {
		return unknownField
	}
	return s
}

// truncate shortens s to at most n runes. Slicing by rune keeps multi-byte
// names and descriptions valid UTF-8.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
