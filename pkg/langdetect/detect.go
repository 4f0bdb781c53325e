// Package langdetect decides whether a file holds PHP source.
// It uses go-enry for extension, shebang and vendor-path classification.
package langdetect

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names as reported by go-enry.
const (
	langPHP     = "PHP"
	langHTMLPHP = "HTML+PHP"
	langHack    = "Hack"
)

// Kind classifies a candidate file.
type Kind int

const (
	// NotPHP means the file is not formatted.
	NotPHP Kind = iota
	// PHP is a plain PHP source file.
	PHP
	// Template is an HTML file with embedded PHP (e.g. .phtml).
	Template
)

// String returns the language name.
func (k Kind) String() string {
	switch k {
	case PHP:
		return langPHP
	case Template:
		return langHTMLPHP
	default:
		return "none"
	}
}

// phpCandidates restricts ambiguous extensions (".php" is shared with Hack).
//
//nolint:gochecknoglobals // Read-only lookup table.
var phpCandidates = []string{langPHP, langHTMLPHP, langHack}

// ByPath classifies a file by its name alone.
func ByPath(path string) Kind {
	name := filepath.Base(path)
	langs := enry.GetLanguagesByExtension(name, nil, phpCandidates)
	if len(langs) == 0 {
		langs = enry.GetLanguagesByFilename(name, nil, phpCandidates)
	}
	switch {
	case slices.Contains(langs, langHTMLPHP):
		return Template
	case slices.Contains(langs, langPHP):
		return PHP
	default:
		return NotPHP
	}
}

// ByContent classifies a file by its first bytes: a "php" shebang or a
// leading open tag.
func ByContent(head []byte) Kind {
	if len(head) == 0 {
		return NotPHP
	}
	if lang, _ := enry.GetLanguageByShebang(head); lang == langPHP {
		return PHP
	}
	if bytes.HasPrefix(bytes.TrimLeft(head, " \t\r\n"), []byte("<?php")) {
		return PHP
	}
	return NotPHP
}

// Detect classifies a file by name, falling back to content for files
// without a recognised extension.
func Detect(path string, head []byte) Kind {
	if k := ByPath(path); k != NotPHP {
		return k
	}
	if filepath.Ext(path) != "" {
		return NotPHP
	}
	return ByContent(head)
}

// IsVendor reports whether a slash-separated relative path lies in a
// third-party directory such as vendor/ or node_modules/.
func IsVendor(rel string) bool {
	rel = filepath.ToSlash(rel)
	if rel == "" || rel == "." {
		return false
	}
	return enry.IsVendor(rel) || enry.IsVendor(strings.TrimSuffix(rel, "/")+"/")
}
