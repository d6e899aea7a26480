/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// confirm.go asks the user to agree before destructive operations.
//
// On a terminal the prompt is an interactive yes/no. Piped input falls back
// to reading a y/N line so scripts can answer. --force skips the question.

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/erikgeiser/promptkit/confirmation"
	"golang.org/x/term"
)

// in is the input confirmations read from when stdin is not a terminal.
// Tests can replace it.
var in io.Reader = os.Stdin

// SetIn sets the confirmation input (for testing).
func SetIn(r io.Reader) { in = r }

// Confirm asks question and reports whether the user agreed. It returns
// true without asking when --force is set.
func Confirm(question string) (bool, error) {
	if force {
		return true, nil
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		ok, err := confirmation.New(question, confirmation.NewValue(false)).RunPrompt()
		if err != nil {
			return false, fmt.Errorf("reading confirmation: %w", err)
		}
		return ok, nil
	}

	fmt.Fprintf(out, "%s [y/N] ", question)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
