package main

import "github.com/charmbracelet/lipgloss"

type model struct {
	width             int
	height            int
	documents         []*Document
	currentDocIndex   int
	mode              Mode
	help              bool
	helpScroll        int
	filename          string
	fileList          []string
	selectedFileIndex int
	showAllFiles      bool
	fileOp            FileOperation
	openInNewDocument bool
	confirmAction     ConfirmAction
	pendingText       string
	errorMessage      string
	successMessage    string
	config            *Config
	runner            *Runner
	layout            Layout
	readClipboard     func() (string, error)
	writeClipboard    func(string) error
}

var (
	barStyle    = lipgloss.NewStyle().Reverse(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Bold(true)
)
