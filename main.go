package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tliron/commonlog"
)

// Version is set at build time with -ldflags.
var Version = "(dev) v0.0.0"

var appLog = commonlog.GetLogger("identic")

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to the TOML config file")
	logPath := flag.String("log", "", "log file (overrides the config)")
	verbosity := flag.Int("v", -1, "log verbosity (overrides the config)")
	versionFlag := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s %s\n", appName, Version)
		return
	}

	config, configErr := loadConfig(*configPath)
	if *logPath != "" {
		config.LogFile = *logPath
	}
	if *verbosity >= 0 {
		config.Verbosity = *verbosity
	}
	if err := setupLogging(config.LogFile, config.Verbosity); err != nil {
		log.Fatal(err)
	}
	if configErr != nil {
		configLog.Errorf("%s, using defaults", configErr)
	}

	m := newModel(config)
	if flag.NArg() > 0 {
		m.openFile(flag.Arg(0), false)
	}

	appLog.Info("starting")
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func newModel(config *Config) model {
	return model{
		documents:         []*Document{NewDocument()},
		currentDocIndex:   0,
		mode:              ModeEdit,
		selectedFileIndex: -1,
		showAllFiles:      config.ShowAllFiles,
		config:            config,
		runner:            NewRunner(config.Run),
		layout:            terminalLayout,
		readClipboard:     readClipboardText,
		writeClipboard:    writeClipboardText,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// canvasTop is the first screen row of the canvas.
func (m *model) canvasTop() int {
	if len(m.documents) > 1 {
		return 1
	}
	return 0
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) setError(format string, args ...any) {
	m.errorMessage = fmt.Sprintf(format, args...)
	m.successMessage = ""
	appLog.Warning(m.errorMessage)
}

func (m *model) setSuccess(format string, args ...any) {
	m.successMessage = fmt.Sprintf(format, args...)
	m.errorMessage = ""
}

func (m *model) anyDirty() bool {
	for _, doc := range m.documents {
		if doc.dirty {
			return true
		}
	}
	return false
}

// keyRune maps a key event to the character it types, or NoCharacter.
func keyRune(msg tea.KeyMsg) rune {
	if msg.Alt {
		return NoCharacter
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return msg.Runes[0]
		}
	case tea.KeySpace:
		return ' '
	case tea.KeyTab:
		return '\t'
	}
	return NoCharacter
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeFileInput:
			return m.handleFileInputKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleEditKey(msg)
		}
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeEdit || m.help {
		return m, nil
	}
	doc := m.getCurrentDocument()
	if doc == nil {
		return m, nil
	}

	sx, sy := msg.X, msg.Y-m.canvasTop()
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		doc.panY -= scrollStep
		m.ensurePanInBounds()
	case msg.Button == tea.MouseButtonWheelDown:
		doc.panY += scrollStep
		m.ensurePanInBounds()
	case msg.Button == tea.MouseButtonWheelLeft:
		doc.panX -= scrollStep
		m.ensurePanInBounds()
	case msg.Button == tea.MouseButtonWheelRight:
		doc.panX += scrollStep
		m.ensurePanInBounds()
	case msg.Action == tea.MouseActionMotion:
		doc.PointerMove(m.layout, sx, sy)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		doc.PointerMove(m.layout, sx, sy)
		held, _ := doc.interaction.Held()
		if doc.PointerClick() {
			cell := doc.interaction.Highlighted()
			m.setSuccess("Placed %q at (%d,%d)", held, cell.X, cell.Y)
		}
	}
	return m, nil
}

func (m model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	doc := m.getCurrentDocument()

	switch key := msg.String(); key {
	case "ctrl+c", "ctrl+q":
		if m.config.Confirmations && m.anyDirty() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "f1":
		m.help = true
		m.helpScroll = 0
		return m, nil
	case "ctrl+o", "ctrl+t":
		m.mode = ModeFileInput
		m.fileOp = FileOpOpen
		m.openInNewDocument = key == "ctrl+t"
		m.filename = ""
		m.clearMessages()
		m.scanSourceFiles()
		return m, nil
	case "ctrl+n":
		m.addNewDocument(NewDocument())
		m.clearMessages()
		return m, nil
	case "ctrl+s":
		if doc.filename != "" {
			m.saveDocument(doc.filename)
			return m, nil
		}
		m.startFileInput(FileOpSave, "")
		return m, nil
	case "ctrl+a":
		m.startFileInput(FileOpSave, doc.filename)
		return m, nil
	case "ctrl+e":
		name := ""
		if doc.filename != "" {
			name = strings.TrimSuffix(filepath.Base(doc.filename), filepath.Ext(doc.filename)) + pngSuffix
		}
		m.startFileInput(FileOpSavePNG, name)
		return m, nil
	case "ctrl+r":
		if err := m.runner.Run(doc.grid.Serialize()); err != nil {
			m.setError("Run failed: %s", err)
		} else {
			m.setSuccess("Running %s", m.config.Run.SourcePath)
		}
		return m, nil
	case "ctrl+v":
		text, err := m.readClipboard()
		if err != nil {
			m.setError("Clipboard: %s", err)
			return m, nil
		}
		text = cleanClipboardText(text)
		if m.config.Confirmations && doc.dirty {
			m.pendingText = text
			m.mode = ModeConfirm
			m.confirmAction = ConfirmReplaceFromClipboard
			return m, nil
		}
		m.loadFromClipboard(text)
		return m, nil
	case "ctrl+y":
		if err := m.writeClipboard(doc.grid.Serialize()); err != nil {
			m.setError("%s", err)
		} else {
			m.setSuccess("Copied %d rows", strings.Count(doc.grid.Serialize(), "\n"))
		}
		return m, nil
	case "ctrl+w":
		if m.config.Confirmations && doc.dirty {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmCloseDocument
			return m, nil
		}
		m.closeCurrentDocument()
		m.clearMessages()
		return m, nil
	case "alt+[":
		if len(m.documents) > 1 {
			m.currentDocIndex = (m.currentDocIndex - 1 + len(m.documents)) % len(m.documents)
		}
		return m, nil
	case "alt+]":
		if len(m.documents) > 1 {
			m.currentDocIndex = (m.currentDocIndex + 1) % len(m.documents)
		}
		return m, nil
	case "left", "right", "up", "down", "shift+left", "shift+right", "shift+up", "shift+down":
		m.handlePan(key, m.getMoveSpeed(key))
		return m, nil
	}

	if doc.KeyPress(keyRune(msg)) {
		m.clearMessages()
	}
	return m, nil
}

func (m *model) startFileInput(op FileOperation, name string) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = name
	m.fileList = nil
	m.selectedFileIndex = -1
	m.clearMessages()
}

func (m *model) loadFromClipboard(text string) {
	doc := m.getCurrentDocument()
	doc.LoadText(text)
	doc.dirty = true
	maxX, maxY := doc.grid.Bounds()
	m.setSuccess("Loaded clipboard (%dx%d)", maxX, maxY+1)
}

// openFile loads filename into the current or a new document. On failure
// the current document is left untouched.
func (m *model) openFile(filename string, inNewDocument bool) bool {
	if _, err := os.Stat(filename); err != nil && filepath.Ext(filename) == "" {
		filename = withSourceExtension(filename)
	}

	target := m.getCurrentDocument()
	if inNewDocument {
		target = NewDocument()
	}
	if err := target.LoadFile(filename); err != nil {
		m.setError("Error opening file: %s", err)
		return false
	}
	if inNewDocument {
		m.addNewDocument(target)
	}
	m.ensurePanInBounds()
	m.setSuccess("Opened %s", filename)
	return true
}

func (m *model) saveDocument(filename string) bool {
	doc := m.getCurrentDocument()
	if err := doc.SaveFile(filename); err != nil {
		m.setError("Error saving file: %s", err)
		return false
	}
	absPath, _ := filepath.Abs(filename)
	m.setSuccess("Saved to %s", absPath)
	return true
}

func (m *model) exportDocument(filename string) bool {
	doc := m.getCurrentDocument()
	if err := ExportPNG(filename, doc.grid.Snapshot(), pixelLayout); err != nil {
		m.setError("Error exporting PNG: %s", err)
		return false
	}
	absPath, _ := filepath.Abs(filename)
	m.setSuccess("Exported to %s", absPath)
	return true
}

func (m model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeEdit
		m.filename = ""
		m.errorMessage = ""
		return m, nil

	case tea.KeyUp, tea.KeyDown:
		if m.fileOp != FileOpOpen || len(m.fileList) == 0 {
			return m, nil
		}
		if msg.Type == tea.KeyUp && m.selectedFileIndex > 0 {
			m.selectedFileIndex--
		} else if msg.Type == tea.KeyDown && m.selectedFileIndex < len(m.fileList)-1 {
			m.selectedFileIndex++
		}
		if m.selectedFileIndex < 0 {
			m.selectedFileIndex = 0
		}
		m.filename = m.fileList[m.selectedFileIndex]
		return m, nil

	case tea.KeyTab:
		if m.fileOp == FileOpOpen {
			m.showAllFiles = !m.showAllFiles
			m.scanSourceFiles()
		}
		return m, nil

	case tea.KeyBackspace:
		if len(m.filename) > 0 {
			runes := []rune(m.filename)
			m.filename = string(runes[:len(runes)-1])
			m.selectedFileIndex = -1
		}
		return m, nil

	case tea.KeyEnter:
		return m.submitFileInput()

	case tea.KeyRunes, tea.KeySpace:
		if msg.Alt {
			return m, nil
		}
		if msg.Type == tea.KeySpace {
			m.filename += " "
		} else {
			m.filename += string(msg.Runes)
		}
		m.selectedFileIndex = -1
		return m, nil
	}
	return m, nil
}

func (m model) submitFileInput() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.filename)
	if name == "" && m.fileOp == FileOpOpen && m.selectedFileIndex >= 0 && m.selectedFileIndex < len(m.fileList) {
		name = m.fileList[m.selectedFileIndex]
	}
	if name == "" {
		m.errorMessage = "Please enter a filename"
		return m, nil
	}

	switch m.fileOp {
	case FileOpOpen:
		if !m.openFile(name, m.openInNewDocument) {
			return m, nil
		}
		m.openInNewDocument = false

	case FileOpSave:
		filename := m.config.GetSavePath(withSourceExtension(name))
		if _, err := os.Stat(filename); err == nil && filename != m.getCurrentDocument().filename {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			m.filename = filename
			return m, nil
		}
		if !m.saveDocument(filename) {
			return m, nil
		}

	case FileOpSavePNG:
		if !strings.EqualFold(filepath.Ext(name), pngSuffix) {
			name += pngSuffix
		}
		if !m.exportDocument(m.config.GetSavePath(name)) {
			return m, nil
		}
	}

	m.mode = ModeEdit
	m.filename = ""
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmCloseDocument:
			m.closeCurrentDocument()
			m.clearMessages()
		case ConfirmOverwriteFile:
			if !m.saveDocument(m.filename) {
				m.mode = ModeFileInput
				return m, nil
			}
		case ConfirmReplaceFromClipboard:
			m.loadFromClipboard(m.pendingText)
			m.pendingText = ""
		}
		m.mode = ModeEdit
		m.filename = ""
		return m, nil
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
			m.fileOp = FileOpSave
		} else {
			m.mode = ModeEdit
		}
		m.pendingText = ""
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	width := m.width
	if width < 1 {
		width = 80
	}
	height := m.height
	if height < 2 {
		height = 24
	}

	var result strings.Builder
	renderHeight := height - 1 - m.canvasTop()
	if m.canvasTop() > 0 {
		result.WriteString(m.renderDocumentBar(width))
		result.WriteString("\n")
	}
	if renderHeight < 1 {
		renderHeight = 1
	}

	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		result.WriteString(m.fileListView(width, renderHeight))
	} else {
		doc := m.getCurrentDocument()
		lines := RenderTerminal(doc.Snapshot(), m.layout, width, renderHeight, doc.panX, doc.panY)
		result.WriteString(strings.Join(lines, "\n"))
	}

	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) fileListView(width, height int) string {
	filter := "Identi-C source code files (*" + sourceExtension + ")"
	if m.showAllFiles {
		filter = "All files (*)"
	}

	lines := []string{
		fmt.Sprintf("Open file: %s | Tab to switch filter", filter),
		strings.Repeat("─", width),
	}
	maxFiles := height - 4
	if maxFiles < 1 {
		maxFiles = 1
	}

	if len(m.fileList) == 0 {
		lines = append(lines, "(No matching files in current directory)")
	} else {
		startIdx := 0
		if m.selectedFileIndex >= maxFiles {
			startIdx = m.selectedFileIndex - maxFiles + 1
		}
		endIdx := min(startIdx+maxFiles, len(m.fileList))
		for i := startIdx; i < endIdx; i++ {
			if i == m.selectedFileIndex {
				lines = append(lines, "> "+m.fileList[i]+" <")
			} else {
				lines = append(lines, "  "+m.fileList[i])
			}
		}
	}

	lines = append(lines, strings.Repeat("─", width), "Filename: "+m.filename+"█")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}

func (m model) statusLine() string {
	doc := m.getCurrentDocument()

	var status string
	switch m.mode {
	case ModeFileInput:
		var op string
		switch m.fileOp {
		case FileOpSave:
			op = "Save"
		case FileOpOpen:
			op = "Open"
		case FileOpSavePNG:
			op = "Export PNG"
		}
		status = fmt.Sprintf("Mode: FILE | %s filename: %s | Enter=confirm, Esc=cancel", op, m.filename)
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit with unsaved changes? (y/n)"
		case ConfirmCloseDocument:
			message = "Close document? Unsaved changes will be lost. (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
		case ConfirmReplaceFromClipboard:
			message = "Replace document with clipboard text? (y/n)"
		}
		status = "Mode: CONFIRM | " + message
	default:
		state := doc.interaction.State()
		status = "Mode: " + state.String()
		if held, ok := doc.interaction.Held(); ok {
			status += fmt.Sprintf(" %q", held)
		}
		cell := doc.interaction.Highlighted()
		maxX, maxY := doc.grid.Bounds()
		status += fmt.Sprintf(" | Cell (%d,%d) | Size %dx%d", cell.X, cell.Y, maxX, maxY+1)
		if m.successMessage != "" {
			status += " | " + m.successMessage
		} else if m.errorMessage == "" {
			status += " | F1 for help"
		}
	}

	if m.errorMessage != "" {
		return statusStyle.Render(status) + " " + errorStyle.Render("ERROR: "+m.errorMessage)
	}
	return statusStyle.Render(status)
}

var helpLines = []string{
	"Identi-C Help",
	"=============",
	"",
	"Editing:",
	"--------",
	"  any character    Pick up the character",
	"  mouse            Point at the target cell",
	"  click            Drop the held character on the highlighted cell",
	"",
	"Navigation:",
	"-----------",
	"  ←/↓/↑/→          Scroll the grid",
	"  Shift+arrows     Scroll 2x faster",
	"  mouse wheel      Scroll the grid",
	"",
	"File Operations:",
	"----------------",
	"  Ctrl+O           Open a file in the current document",
	"  Ctrl+T           Open a file in a new document",
	"  Ctrl+S           Save (asks for a name the first time)",
	"  Ctrl+A           Save as",
	"  Ctrl+E           Export as PNG image",
	"  Ctrl+R           Compile and run in a terminal",
	"",
	"Clipboard:",
	"----------",
	"  Ctrl+V           Replace the document with the clipboard text",
	"  Ctrl+Y           Copy the document text",
	"",
	"Documents:",
	"----------",
	"  Ctrl+N           New document",
	"  Alt+[ / Alt+]    Previous / next document",
	"  Ctrl+W           Close document",
	"",
	"General:",
	"  F1               Toggle this help screen",
	"  Ctrl+C/Ctrl+Q    Quit",
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down":
		visibleHeight := max(m.height-1, 1)
		maxScroll := max(len(helpLines)-visibleHeight, 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)
	startLine := min(m.helpScroll, max(len(helpLines)-visibleHeight, 0))
	endLine := min(startLine+visibleHeight, len(helpLines))

	lines := make([]string, 0, endLine-startLine+1)
	for i, line := range helpLines[startLine:endLine] {
		if startLine+i == 0 {
			line = helpStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, statusStyle.Render(fmt.Sprintf("Help (%d-%d of %d lines) | ↑/↓ to scroll, any other key to close",
		startLine+1, endLine, len(helpLines))))
	return strings.Join(lines, "\n")
}
