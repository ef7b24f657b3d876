package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

var errNotInteractive = errors.New("stdin is not a terminal")

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// askPassword reads a password from the terminal without echo.
func askPassword(w io.Writer) (string, error) {
	if !isTerminal() {
		return "", errNotInteractive
	}

	if _, err := fmt.Fprint(w, "Password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pw)), nil
}

func askEmail() (string, error) {
	if !isTerminal() {
		return "", errNotInteractive
	}

	prompt := promptui.Prompt{
		Label: "Email",
		Validate: func(s string) error {
			if !strings.Contains(s, "@") {
				return errors.New("not an email")
			}
			return nil
		},
	}
	email, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(email), nil
}
