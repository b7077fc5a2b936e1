package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/ssh/terminal"
)

var stdin = bufio.NewReader(os.Stdin)

func promptString(label string) (string, error) {
	for {
		fmt.Fprintf(os.Stderr, "%s: ", label)
		line, err := stdin.ReadString('\n')
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
	}
}

func promptInt(label string, def int) (int, error) {
	fmt.Fprintf(os.Stderr, "%s [%d]: ", label, def)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return 0, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return strconv.Atoi(line)
}

func promptPassword(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	password, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}
