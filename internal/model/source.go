// Package model defines the data structures shared by the purge workflow.
package model

import (
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// Language is the grammar a script is parsed with.
type Language string

const (
	// LanguageJavaScript covers .js, .jsx, .mjs and .cjs files.
	LanguageJavaScript Language = "javascript"
	// LanguageTypeScript covers .ts files.
	LanguageTypeScript Language = "typescript"
	// LanguageTSX covers .tsx files.
	LanguageTSX Language = "tsx"
	// LanguageVue marks single-file components; each script block carries
	// its own script language.
	LanguageVue Language = "vue"
)

// File represents a source code file.
type File struct {
	FullPath  Path
	ShortPath Path // path as reported to the user, relative when possible
	Hash      string
}

// Source is a file selected for purging.
type Source struct {
	Origin   *File
	Language Language
}

// LanguageForPath maps a file extension to its language. The second result
// is false for files the purge does not handle.
func LanguageForPath(path Path) (Language, bool) {
	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript, true
	case ".ts", ".mts", ".cts":
		return LanguageTypeScript, true
	case ".tsx":
		return LanguageTSX, true
	case ".vue":
		return LanguageVue, true
	}

	return "", false
}

// ScriptLanguage maps the lang attribute of a Vue <script> block.
func ScriptLanguage(lang string) Language {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "ts", "typescript":
		return LanguageTypeScript
	case "tsx":
		return LanguageTSX
	}

	return LanguageJavaScript
}
