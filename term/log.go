package term

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	warnColor    = color.New(color.FgYellow)
	errColor     = color.New(color.FgRed)
	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	debugColor   = color.New(color.FgMagenta)
)

func tag(c *color.Color, label, format string, args ...any) string {
	return c.Sprint(label) + " " + fmt.Sprintf(format, args...)
}

// addBorder wraps s in a box titled title, sized to the longest line.
func addBorder(s, title string) string {
	lines := strings.Split(s, "\n")
	longest := 4
	for idx := range lines {
		if len(lines[idx]) > longest {
			longest = len(lines[idx])
		}
	}

	w := longest + 6
	titleW := len(title)
	if w < titleW {
		w = titleW
	}
	result := "╔═ " + title + " " + strings.Repeat("═", w-titleW-3) + "╗\n"
	for idx := range lines {
		blankWidth := w - len(lines[idx])
		blank := strings.Repeat(" ", blankWidth/2)
		moreBlank := strings.Repeat(" ", blankWidth%2)
		result += "║" + blank + lines[idx] + blank + moreBlank + "║"
		if idx != len(lines)-1 {
			result += "\n"
		}
	}
	result += "\n╚" + strings.Repeat("═", w) + "╝"
	return result
}

func Warn(format string, args ...any) {
	fmt.Println(tag(warnColor, "[WAR]", format, args...))
}

func Yellow(format string, args ...any) {
	fmt.Println(warnColor.Sprintf(format, args...))
}

func Info(format string, args ...any) {
	fmt.Println(tag(infoColor, "[INF]", format, args...))
}

func Cyan(format string, args ...any) {
	fmt.Println(infoColor.Sprintf(format, args...))
}

func Err(format string, args ...any) {
	fmt.Println(tag(errColor, "[ERR]", format, args...))
}

func Red(format string, args ...any) {
	fmt.Println(errColor.Sprintf(format, args...))
}

func Suc(format string, args ...any) {
	fmt.Println(tag(successColor, "[SUC]", format, args...))
}

func Green(format string, args ...any) {
	fmt.Println(successColor.Sprintf(format, args...))
}

func Debug(format string, args ...any) {
	fmt.Println(tag(debugColor, "[DEBUG]", format, args...))
}

// Banner prints a bordered banner in the given color, used by the CLI for
// multi-line diagnostics (compile failures, sandbox violations).
func Banner(c *color.Color, title, body string) {
	fmt.Println(c.Sprint(addBorder(body, title)))
}

// Error prints a bordered error banner. Unless noPanic is passed as true
// it also panics with body so the error propagates as a Go panic to the
// nearest recover point (pcall, or the host entry point).
func Error(body string, noPanic ...bool) {
	Banner(errColor, "Error", body)
	if len(noPanic) == 0 || !noPanic[0] {
		panic(body)
	}
}

func WarnBanner(body string) {
	Banner(warnColor, "Warn", body)
}

func InfoBanner(body string) {
	Banner(infoColor, "Info", body)
}
