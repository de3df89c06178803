package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readPassword prompts for a masked password on a terminal and reads a
// line from the command input otherwise.
func readPassword(cmd *cobra.Command, label string) (string, error) {
	if isTerminal(cmd) {
		prompt := promptui.Prompt{
			Label: label,
			Mask:  '*',
			Validate: func(s string) error {
				if s == "" {
					return errors.New("password can not be empty")
				}
				return nil
			},
		}
		return prompt.Run()
	}

	return readLine(cmd)
}

// readNewPassword reads a password twice on a terminal.
func readNewPassword(cmd *cobra.Command) (string, error) {
	password, err := readPassword(cmd, "Enter keyring passphrase")
	if err != nil {
		return "", err
	}
	if !isTerminal(cmd) {
		return password, nil
	}

	again, err := readPassword(cmd, "Re-enter keyring passphrase")
	if err != nil {
		return "", err
	}
	if password != again {
		return "", errors.New("passphrases don't match")
	}

	return password, nil
}

func readLine(cmd *cobra.Command) (string, error) {
	line, err := getCmdContext(cmd).in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// warn prints a highlighted warning to stderr.
func warn(cmd *cobra.Command, format string, args ...any) {
	color.New(color.FgYellow, color.Bold).Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
