package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

const sourceExtension = ".ic"

func (m *model) getCurrentDocument() *Document {
	if len(m.documents) == 0 {
		return nil
	}
	return m.documents[m.currentDocIndex]
}

func (m *model) addNewDocument(doc *Document) {
	m.documents = append(m.documents, doc)
	m.currentDocIndex = len(m.documents) - 1
}

func (m *model) closeCurrentDocument() {
	if len(m.documents) <= 1 {
		m.documents = []*Document{NewDocument()}
		m.currentDocIndex = 0
		return
	}
	m.documents = append(m.documents[:m.currentDocIndex], m.documents[m.currentDocIndex+1:]...)
	if m.currentDocIndex > 0 {
		m.currentDocIndex--
	}
}

func (m *model) renderDocumentBar(width int) string {
	var bar strings.Builder
	bar.WriteString("Open: ")
	for i, doc := range m.documents {
		if i > 0 {
			bar.WriteString(" | ")
		}
		name := doc.DisplayName(i)
		if doc.dirty {
			name += "*"
		}
		if i == m.currentDocIndex {
			bar.WriteString("[" + name + "]")
		} else {
			bar.WriteString(name)
		}
	}

	text := []rune(bar.String())
	if len(text) > width {
		text = text[:width]
	}
	return barStyle.Width(width).Render(string(text))
}

// scanSourceFiles lists the files the open dialog offers, sorted by name.
// Unless all files are requested only .ic sources are listed.
func (m *model) scanSourceFiles() {
	m.fileList = []string{}
	m.selectedFileIndex = -1

	dir, err := os.Getwd()
	if err != nil {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if m.showAllFiles || strings.EqualFold(filepath.Ext(entry.Name()), sourceExtension) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
	}
}

// withSourceExtension appends .ic to names that carry no extension.
func withSourceExtension(filename string) string {
	if filepath.Ext(filename) == "" {
		return filename + sourceExtension
	}
	return filename
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// cleanClipboardText drops control characters and normalizes line endings
// so pasted text loads as one grid row per line.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	text = stripRTF(text)
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := result.String()
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return normalized
}

func stripRTF(text string) string {
	if !strings.HasPrefix(text, "{\\rtf") {
		return text
	}
	var result strings.Builder
	result.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '{' || r == '}' {
			continue
		}
		if r == '\\' {
			if i+1 < len(runes) {
				next := runes[i+1]
				if (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z') {
					i++
					for i < len(runes) {
						if runes[i] == ' ' || runes[i] == '\\' || runes[i] == '{' || runes[i] == '}' {
							if runes[i] == ' ' {
								i++
							}
							break
						}
						i++
					}
					i--
					continue
				} else if next == '\\' || next == '{' || next == '}' || next == '\n' || next == '\r' || next == '\t' {
					result.WriteRune(next)
					i++
					continue
				}
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
