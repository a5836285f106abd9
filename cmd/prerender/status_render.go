package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 12
	statusIndent     = "  "
)

type assetState string

const (
	assetStatePresent assetState = "present"
	assetStateMissing assetState = "missing"
	assetStateCorrupt assetState = "corrupt metadata"
)

var titleCaser = cases.Title(language.English)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	status := "[" + statusKindLabel(kind) + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	if color := statusKindColor(kind); colorize && color != "" {
		return color + line + ansiReset
	}
	return line
}

// renderAssetState formats the Local column of the assets table.
func renderAssetState(state assetState, colorize bool) string {
	label := titleCaser.String(string(state))
	if !colorize {
		return label
	}
	var kind statusKind
	switch state {
	case assetStatePresent:
		kind = statusOK
	case assetStateCorrupt:
		kind = statusWarn
	default:
		kind = statusError
	}
	return statusKindColor(kind) + label + ansiReset
}

var statusKindStyles = map[statusKind]struct {
	label string
	color string
}{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

func statusKindLabel(kind statusKind) string {
	if style, ok := statusKindStyles[kind]; ok {
		return style.label
	}
	return "INFO"
}

func statusKindColor(kind statusKind) string {
	return statusKindStyles[kind].color
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
