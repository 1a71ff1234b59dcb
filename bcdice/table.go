package bcdice

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrEmptyTable is returned by ParseOriginalTable when the input lacks a title or command.
var ErrEmptyTable = errors.New("original table needs a title line and a command line")

// OriginalTable is a user-defined table rolled by v2/original_table.
type OriginalTable struct {
	Title   string
	Command string
	Items   []string
}

// NewOriginalTable creates a table. Items is copied.
func NewOriginalTable(title, command string, items []string) OriginalTable {
	return OriginalTable{
		Title:   title,
		Command: command,
		Items:   append([]string(nil), items...),
	}
}

// Text returns the table in BCDice's text format: the title, the command, then
// one "N:item" line per item numbered by position. There is no trailing newline.
func (t OriginalTable) Text() string {
	var sb strings.Builder
	sb.WriteString(t.Title)
	sb.WriteByte('\n')
	sb.WriteString(t.Command)
	sb.WriteByte('\n')
	for i, item := range t.Items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteByte(':')
		sb.WriteString(item)
	}
	return sb.String()
}

// Encode returns Text percent-encoded for the table form parameter.
func (t OriginalTable) Encode() string {
	return encodeURI(t.Text())
}

// ParseOriginalTable reads a table file: a title line, a command line, then one
// item per line. Blank item lines are skipped. When every item line starts with
// its own position ("1:", "2:", ...), the prefixes are removed.
func ParseOriginalTable(r io.Reader) (OriginalTable, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return OriginalTable{}, fmt.Errorf("read original table: %w", err)
	}
	if len(lines) < 2 || strings.TrimSpace(lines[0]) == "" || strings.TrimSpace(lines[1]) == "" {
		return OriginalTable{}, ErrEmptyTable
	}

	var items []string
	for _, line := range lines[2:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, line)
	}

	return NewOriginalTable(strings.TrimSpace(lines[0]), strings.TrimSpace(lines[1]), stripPositions(items)), nil
}

func stripPositions(items []string) []string {
	if len(items) == 0 {
		return items
	}
	stripped := make([]string, len(items))
	for i, item := range items {
		prefix := strconv.Itoa(i+1) + ":"
		if !strings.HasPrefix(item, prefix) {
			return items
		}
		stripped[i] = strings.TrimPrefix(item, prefix)
	}
	return stripped
}

// uriUnescaped holds the bytes encodeURI leaves as they are.
var uriUnescaped = func() [256]bool {
	var set [256]bool
	for c := 'a'; c <= 'z'; c++ {
		set[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		set[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		set[c] = true
	}
	for _, c := range ";,/?:@&=+$-_.!~*'()#" {
		set[c] = true
	}
	return set
}()

// encodeURI escapes every byte of s outside the URI reserved and unreserved
// sets as %XX. Multi-byte UTF-8 sequences are escaped byte by byte.
func encodeURI(s string) string {
	const hex = "0123456789ABCDEF"

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriUnescaped[c] {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0f])
	}
	return sb.String()
}
