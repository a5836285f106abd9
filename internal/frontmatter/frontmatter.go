// Package frontmatter extracts single keys from a document's leading
// "---" delimited block without parsing it as YAML.
package frontmatter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// FooterURLKey is the front matter key holding the QR target.
const FooterURLKey = "footer-url"

var (
	// crlfOrCR matches Windows and classic Mac line endings.
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// block matches the first front matter block. Both delimiters must be a
	// line of exactly three hyphens, and the opening one must start the text.
	block = regexp.MustCompile(`(?s)\A---\n(.*?)\n---(?:\n|\z)`)
)

// ErrNoDocument is returned by ReadFile when path is empty.
var ErrNoDocument = errors.New("frontmatter: document path is empty")

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// Block returns the raw content between the delimiters.
func Block(text string) (string, bool) {
	m := block.FindStringSubmatch(NormalizeLineEndings(text))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Lookup returns the value of the first uncommented "key:" line in the
// front matter block. Surrounding whitespace and one matching pair of
// quotes are removed. An empty value is reported as absent.
func Lookup(text, key string) (string, bool) {
	content, ok := Block(text)
	if !ok {
		return "", false
	}
	prefix := key + ":"
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if !strings.HasPrefix(trimmed, prefix) {
			continue
		}
		value := unquote(strings.TrimSpace(trimmed[len(prefix):]))
		if value == "" {
			return "", false
		}
		return value, true
	}
	return "", false
}

// FooterURL returns the footer-url value of text.
func FooterURL(text string) (string, bool) {
	return Lookup(text, FooterURLKey)
}

// ReadFile reads path as UTF-8 text, dropping a leading byte order mark.
func ReadFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrNoDocument
	}
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(file, decoder))
	if err != nil {
		return "", fmt.Errorf("read document %s: %w", path, err)
	}
	return string(data), nil
}

// unquote drops at most one leading and one trailing quote character. The
// two sides are independent, so mismatched or unterminated quotes never leak
// into the value.
func unquote(value string) string {
	if value != "" && isQuote(value[0]) {
		value = value[1:]
	}
	if value != "" && isQuote(value[len(value)-1]) {
		value = value[:len(value)-1]
	}
	return strings.TrimSpace(value)
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}
