// Package exec expands desktop-entry execution templates into argument
// vectors.
//
// A template is a command line with field codes per the desktop-entry
// specification: %f/%F (target paths), %u/%U (target URIs), %i (icon),
// %c (display name), %k (launcher path) and %% (literal percent). The
// template is tokenized with shell quoting rules (mattn/go-shellwords)
// before field codes are substituted, so quoted arguments survive intact.
package exec

import (
	"fmt"
	"net/url"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

// DefaultTerminal is the command prefix used to wrap terminal launchers.
// Debian-style systems ship the x-terminal-emulator alternative; callers
// with better knowledge can override it.
var DefaultTerminal = []string{"x-terminal-emulator", "-e"}

// Parse expands template against the given targets and launcher context.
//
//   - targets are file paths or URIs the command is invoked on
//   - icon expands %i as the two arguments "--icon" <icon>
//   - name expands %c, path expands %k
//   - terminal wraps the resulting vector in DefaultTerminal
//
// Returns the expanded argument vector, or an error when the template does
// not tokenize or expands to an empty command.
func Parse(template string, targets []string, icon, name, path string, terminal bool) ([]string, error) {
	parser := shellwords.NewParser()
	tokens, err := parser.Parse(template)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command template: %w", err)
	}

	argv := make([]string, 0, len(tokens)+len(targets)+2)
	for _, token := range tokens {
		expanded, err := expandToken(token, targets, icon, name, path)
		if err != nil {
			return nil, err
		}
		argv = append(argv, expanded...)
	}

	if len(argv) == 0 {
		return nil, fmt.Errorf("command template expands to an empty command")
	}

	if terminal {
		argv = append(append([]string{}, DefaultTerminal...), argv...)
	}

	return argv, nil
}

// expandToken expands the field codes inside a single token. Tokens that
// consist of exactly one list-valued code (%F, %U, %i) may expand to zero
// or multiple arguments; embedded codes expand in place.
func expandToken(token string, targets []string, icon, name, path string) ([]string, error) {
	switch token {
	case "%F":
		return targetPaths(targets), nil
	case "%U":
		return targetURIs(targets), nil
	case "%i":
		if icon == "" {
			return nil, nil
		}
		return []string{"--icon", icon}, nil
	}

	var b strings.Builder
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}

		i++
		if i >= len(token) {
			return nil, fmt.Errorf("dangling %% at end of command template token %q", token)
		}

		switch token[i] {
		case '%':
			b.WriteByte('%')
		case 'f':
			if paths := targetPaths(targets); len(paths) > 0 {
				b.WriteString(paths[0])
			}
		case 'u':
			if uris := targetURIs(targets); len(uris) > 0 {
				b.WriteString(uris[0])
			}
		case 'c':
			b.WriteString(name)
		case 'k':
			b.WriteString(path)
		case 'F', 'U', 'i':
			return nil, fmt.Errorf("field code %%%c must be a separate argument", token[i])
		default:
			// Deprecated codes (%d, %D, %n, %N, %v, %m) expand to nothing.
		}
	}

	return []string{b.String()}, nil
}

// targetPaths converts targets to local paths, dropping non-file URIs.
func targetPaths(targets []string) []string {
	paths := make([]string, 0, len(targets))
	for _, target := range targets {
		if p, ok := TargetPath(target); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

// targetURIs converts targets to URIs, turning bare paths into file URIs.
func targetURIs(targets []string) []string {
	uris := make([]string, 0, len(targets))
	for _, target := range targets {
		uris = append(uris, toURI(target))
	}
	return uris
}

// TargetPath maps a target to a local filesystem path. Bare paths pass
// through; file:// URIs are unescaped; other schemes have no local path.
func TargetPath(target string) (string, bool) {
	if !strings.Contains(target, "://") {
		return target, true
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	return u.Path, true
}

// toURI maps a target to a URI, leaving anything with a scheme untouched.
func toURI(target string) string {
	if strings.Contains(target, "://") {
		return target
	}
	return (&url.URL{Scheme: "file", Path: target}).String()
}
