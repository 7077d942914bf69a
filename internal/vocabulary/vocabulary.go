// Package vocabulary loads user-maintained domain terms that the
// aggressive rewrite must keep verbatim.
package vocabulary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmarsh/cleanspeak/internal/logger"
)

// EnvVar overrides the vocabulary file location.
const EnvVar = "CLEANSPEAK_VOCABULARY_FILE"

// DefaultPath returns the vocabulary file path from the environment or
// the default location under the user config directory.
func DefaultPath() string {
	if custom := os.Getenv(EnvVar); custom != "" {
		return custom
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "vocabulary.txt"
	}
	return filepath.Join(home, ".config", "cleanspeak", "vocabulary.txt")
}

// Load reads vocabulary hints from path (or DefaultPath when empty) and
// returns them comma-separated. Blank lines and # comments are skipped.
// The file is read fresh on every call so users can edit it anytime; a
// missing file is not an error and yields an empty string.
func Load(path string) (string, error) {
	if path == "" {
		path = DefaultPath()
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading vocabulary file %s: %w", path, err)
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading vocabulary file %s: %w", path, err)
	}

	if len(terms) == 0 {
		return "", nil
	}
	logger.Debug("loaded vocabulary", "terms", len(terms), "path", path)
	return strings.Join(terms, ", "), nil
}
