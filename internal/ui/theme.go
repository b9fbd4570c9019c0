package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Hawkins theme (CLI + TUI).

const (
	IconPortal  = "🌀"
	IconSparkle = "✨"
	IconTrophy  = "🏆"
	IconLock    = "🔒"
	IconRun     = "🏃"
	IconCards   = "🃏"
	IconGem     = "💎"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconScroll  = "📜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("160") // upside-down red
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
	Overlay     = lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(cGold).Padding(1, 4).Align(lipgloss.Center)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

var printer = message.NewPrinter(language.English)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Number formats n with thousands separators.
func Number(n int) string { return printer.Sprintf("%d", n) }

func XP(n int) string { return Number(n) + " XP" }

// ProgressBar renders ratio (clamped to [0,1]) as width cells.
func ProgressBar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	ratio = max(0, min(ratio, 1))
	filled := int(ratio * float64(width))
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

func Unlocked(ok bool) string {
	if ok {
		return Good.Render("unlocked")
	}
	return Muted.Render("locked")
}

// RarityText colors a rarity name the way the gallery shows it.
func RarityText(rarity string) string {
	var c lipgloss.Color
	switch rarity {
	case "Uncommon":
		c = "#00FF00"
	case "Rare":
		c = "#0080FF"
	case "Epic":
		c = "#9D00FF"
	case "Legendary":
		c = "#FFD700"
	case "Mythic":
		c = "#FF0080"
	default:
		c = "#8B8B8B"
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(rarity)
}
