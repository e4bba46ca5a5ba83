package tui

import "github.com/charmbracelet/lipgloss"

// Color constants. Chart colors live with the chart configs in package view.
var (
	colorGreen  = lipgloss.Color("#10b981")
	colorYellow = lipgloss.Color("#f59e0b")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorPurple = lipgloss.Color("#8b5cf6")
	colorIndigo = lipgloss.Color("#6366f1")
	colorOrange = lipgloss.Color("#f97316")
	colorWhite  = lipgloss.Color("#f8fafc")
	colorDark   = lipgloss.Color("#1e293b")
	colorAlt    = lipgloss.Color("#0f172a")
)

// StyleHeader is the full-width dark header bar.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// StyleKPICard is one card in the KPI row.
var StyleKPICard = lipgloss.NewStyle().
	Background(colorAlt).
	Foreground(colorWhite).
	Padding(0, 1).
	Margin(0).
	Align(lipgloss.Center)

// StylePanel is the rounded panel around each chart.
var StylePanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorGray).
	Padding(0, 1)

// Utility styles.
var (
	StyleLive  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	StyleTitle = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	StyleDim   = lipgloss.NewStyle().Foreground(colorGray)
)

// Anomaly table cell styles.
var (
	StyleCell        = lipgloss.NewStyle().Foreground(colorWhite)
	StyleAlert       = lipgloss.NewStyle().Foreground(colorOrange)
	StyleAlertStrong = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)
