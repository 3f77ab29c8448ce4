package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptSecret reads a credential from the terminal without echoing it.
func promptSecret(label string) (string, error) {
	fmt.Printf("%s: ", label)

	value, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()

	if err != nil {
		return "", fmt.Errorf("reading %s: %w", label, err)
	}

	return strings.TrimSpace(string(value)), nil
}

// confirm asks a yes/no question and returns true for an explicit yes.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)

	reader := bufio.NewReader(os.Stdin)

	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes"
}
