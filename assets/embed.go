// assets/embed.go
//
// Embedded default word lists, used when no word files or word database are
// configured. Lines are trimmed and uppercased; blank lines and # comments
// are skipped.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

// AnswersList returns the embedded answer words.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

// AllowedList returns the embedded extra guess words (answers not included).
func AllowedList() ([]string, error) {
	return readLines("allowed.txt")
}
