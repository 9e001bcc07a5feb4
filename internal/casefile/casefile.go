/*
Package casefile reads files of test cases.

Case files are line oriented, in the manner of the Unicode Character Database
test files: every non-empty line not starting with '#' is a case. Fields of a
case are separated by ';'. A '#' between blanks, or a blank followed by '#' at
the end of a line, starts a trailing comment; any other '#' is data ("#1 Hits").
Blanks and tabs around fields are removed; other white space is kept, as it
may be part of the data under test.

	# profile   ; input      ; terms
	entity-name ; R.E.S.     ; res       # acronym
	title       ; 1999–2000  ; 1999 | 2000
*/
package casefile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// File is a case file opened for scanning.
type File struct {
	in      *os.File
	scanner *bufio.Scanner
	name    string
	lineNo  int
	fields  []string
	comment string
}

// Open opens a case file.
func Open(filename string) (*File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loading case file: %w", err)
	}
	return &File{
		in:      f,
		scanner: bufio.NewScanner(f),
		name:    filename,
	}, nil
}

// Scan advances to the next case, skipping comment lines and empty lines.
// It returns false at the end of the file or on error.
func (cf *File) Scan() bool {
	for cf.scanner.Scan() {
		cf.lineNo++
		line := cf.scanner.Text()
		if strings.Trim(line, " \t") == "" || line[0] == '#' {
			continue
		}
		cf.comment = ""
		if i := commentStart(line); i >= 0 {
			line, cf.comment = line[:i], trim(line[i+1:])
		}
		cf.fields = cf.fields[:0]
		for _, f := range strings.Split(line, ";") {
			cf.fields = append(cf.fields, trim(f))
		}
		return true
	}
	return false
}

// commentStart returns the index of the '#' starting a trailing comment, or -1.
func commentStart(line string) int {
	for i := 1; i < len(line); i++ {
		if line[i] != '#' || !isBlank(line[i-1]) {
			continue
		}
		if i+1 == len(line) || isBlank(line[i+1]) {
			return i
		}
	}
	return -1
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// Field returns field #i (1…n) of the current case, or "" if the case has
// fewer fields.
func (cf *File) Field(i int) string {
	if i > 0 && i <= len(cf.fields) {
		return cf.fields[i-1]
	}
	return ""
}

// Fields returns the number of fields of the current case.
func (cf *File) Fields() int {
	return len(cf.fields)
}

// Comment returns the trailing comment of the current case.
func (cf *File) Comment() string {
	return cf.comment
}

// Pos returns a "file:line" position of the current case.
func (cf *File) Pos() string {
	return fmt.Sprintf("%s:%d", cf.name, cf.lineNo)
}

// Err returns the first error encountered while scanning.
func (cf *File) Err() error {
	return cf.scanner.Err()
}

// Close closes the underlying file.
func (cf *File) Close() error {
	return cf.in.Close()
}

// List splits a field holding a list of values separated by '|'. An empty
// field yields an empty list.
func List(field string) []string {
	if trim(field) == "" {
		return []string{}
	}
	parts := strings.Split(field, "|")
	for i := range parts {
		parts[i] = trim(parts[i])
	}
	return parts
}

func trim(s string) string {
	return strings.Trim(s, " \t")
}
