// Command user-add creates or updates an entry in the daygrid auth file.
// Passwords are read from the terminal and stored as argon2id hashes.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"daygrid/internal/auth"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: user-add <username>")
	}
	user := strings.TrimSpace(args[0])
	switch {
	case user == "":
		return errors.New("username must not be empty")
	case strings.Contains(user, ":"):
		return errors.New("username must not contain ':'")
	}

	path := authFilePath()
	existing, err := loadUsers(path)
	if err != nil {
		return err
	}
	if _, ok := existing[user]; ok {
		yes, err := confirm(fmt.Sprintf("User %q exists. Update password? [y/N]: ", user))
		if err != nil {
			return err
		}
		if !yes {
			return errors.New("no changes made")
		}
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	again, err := readPassword("Confirm: ")
	if err != nil {
		return err
	}
	if password != again {
		return errors.New("passwords do not match")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := writeUser(path, user, hash); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "updated %s\n", path)
	return nil
}

// authFilePath mirrors the server's lookup order: explicit auth file,
// then the data directory, then ./.daygrid.
func authFilePath() string {
	if v := os.Getenv("DAYGRID_AUTH_FILE"); v != "" {
		return v
	}
	data := os.Getenv("DAYGRID_DATA_PATH")
	if data == "" {
		data = ".daygrid"
	}
	return filepath.Join(data, "auth.txt")
}

func loadUsers(path string) (map[string]*auth.Hash, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat auth file: %w", err)
	}
	return auth.LoadFile(path)
}

func readPassword(prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(pass)), nil
}

func confirm(prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read response: %w", err)
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}

// writeUser rewrites the auth file with the user's line replaced or
// appended, keeping comments and blank lines, then swaps it into place.
func writeUser(path, user, hash string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create auth dir: %w", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read auth file: %w", err)
	}

	var out []string
	replaced := false
	for i, line := range strings.Split(strings.TrimRight(string(raw), "\n"), "\n") {
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") {
			if len(raw) > 0 {
				out = append(out, line)
			}
			continue
		}
		name, _, ok := strings.Cut(trim, ":")
		if !ok {
			return fmt.Errorf("invalid auth line %d: expected user:hash", i+1)
		}
		if name == user {
			out = append(out, user+":"+hash)
			replaced = true
		} else {
			out = append(out, line)
		}
	}
	if !replaced {
		out = append(out, user+":"+hash)
	}

	tmp, err := os.CreateTemp(dir, ".auth.tmp.*")
	if err != nil {
		return fmt.Errorf("create temp auth file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod auth file: %w", err)
	}
	if _, err := tmp.WriteString(strings.Join(out, "\n") + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("write auth file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close auth file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace auth file: %w", err)
	}
	return nil
}
