// assets/embed.go
//
// Files compiled into the binary:
//   - words.txt: default dictionary (five-letter words, one per line).
//   - sql/*.sql: schema migrations applied by internal/database.

package assets

import (
	"bufio"
	"embed"
	"io"
	"io/fs"
	"strings"
)

//go:embed words.txt
var words string

//go:embed sql/*.sql
var sqlFS embed.FS

// Migrations returns the migration files rooted at their directory, so
// names are "001_init.sql" and so on.
func Migrations() fs.FS {
	sub, err := fs.Sub(sqlFS, "sql")
	if err != nil {
		panic(err) // sql/ is embedded above
	}
	return sub
}

// Words returns the embedded dictionary with comments and blank lines
// removed. Case is left as written.
func Words() ([]string, error) {
	return ReadLines(strings.NewReader(words))
}

// ReadLines reads one word per line, skipping blank lines and # comments.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}
