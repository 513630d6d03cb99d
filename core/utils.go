package core

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var slugInvalidRegex = regexp.MustCompile(`[^a-z0-9]+`)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Slugify lowers `s` and collapses every run of non-alphanumeric characters
// into a single hyphen. Extra parts (eg. a year) are appended hyphen-separated.
func Slugify(s string, extra ...string) string {
	parts := append([]string{s}, extra...)
	slug := slugInvalidRegex.ReplaceAllString(strings.ToLower(strings.Join(parts, " ")), "-")
	return strings.Trim(slug, "-")
}

// Getwd finds the project root (the directory holding go.mod).
// go-test changes the working directory to the package being tested;
// assets must still resolve relative to the root.
// see: https://stackoverflow.com/questions/23847003/golang-tests-and-working-directory
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err = os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd // fall back to the actual working directory
		}
		currDir = newDir
	}
}
