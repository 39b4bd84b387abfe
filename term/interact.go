package term

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const _prompt = "> "

// ReadLineConfig configures ReadLine, the plain buffered line reader
// behind the guest input() function and Confirm/Option. It doesn't
// attempt raw-mode arrow-key history editing.
type ReadLineConfig struct {
	// History is prior lines, offered back on blank input via Up would be
	// nice, but without raw mode we can't intercept arrow keys: History is
	// kept for API compatibility with callers that log it.
	History []string
	// Prompt is the prompt to show. Defaults to "> ".
	Prompt string
}

var stdinReader = bufio.NewReader(os.Stdin)

// ReadLine reads a single line from stdin, writing the prompt first.
func ReadLine(config ReadLineConfig) string {
	prompt := config.Prompt
	if prompt == "" {
		prompt = _prompt
	}
	fmt.Print(prompt)
	line, err := stdinReader.ReadString('\n')
	if err != nil {
		return strings.TrimRight(line, "\r\n")
	}
	return strings.TrimRight(line, "\r\n")
}

func Confirm(question string, default_ bool) bool {
	suffix := " [y/N]"
	if default_ {
		suffix = " [Y/n]"
	}

	input := ReadLine(ReadLineConfig{
		Prompt: fmt.Sprintf("%s%s: ", question, suffix),
	})
	if input == "" {
		return default_
	}
	return strings.ToLower(input) == "y"
}

func Option(question string, options []string, default_ int) int {
	fmt.Println()
	for i := range options {
		fmt.Printf("%d. %s\n", i+1, options[i])
	}
	suffix := fmt.Sprintf("[default %d]", default_+1)

	input := ReadLine(ReadLineConfig{
		Prompt: fmt.Sprintf("%s %s:", question, suffix),
	})
	if input == "" {
		return default_
	}
	inputIdx, err := strconv.Atoi(input)
	if err != nil {
		return default_
	}
	return inputIdx - 1
}
