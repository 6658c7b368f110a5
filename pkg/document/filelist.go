package document

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
)

var ExcludedDirs = map[string]bool{"node_modules": true}

var ValidFilesExtensions = ".txt|.sb|.scrapbox"

var documentFiles = regexp.MustCompile(`(?i)(` + strings.ReplaceAll(ValidFilesExtensions, ".", `\.`) + `)$`)

func shouldSkip(name string) bool {
	if name == "." {
		return false
	}

	return strings.HasPrefix(name, ".") || ExcludedDirs[name]
}

// IsDocument reports whether name has one of the document extensions
func IsDocument(name string) bool {
	return documentFiles.MatchString(name)
}

// FileList returns the documents under path, skipping hidden and excluded
// directories.
func FileList(fileSystem fs.FS, path string) ([]string, error) {
	var files []string

	err := fs.WalkDir(fileSystem, path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() && shouldSkip(d.Name()) {
			return filepath.SkipDir
		}

		if d.IsDir() || !IsDocument(d.Name()) {
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// SkipEntry reports whether a walk should ignore d: excluded directories
// and anything that isn't a document.
func SkipEntry(_ string, d fs.DirEntry) bool {
	if d.IsDir() {
		return shouldSkip(d.Name())
	}
	return !IsDocument(d.Name())
}

// OutputPath swaps the document extension for .md or .html
func OutputPath(name string, html bool) string {
	ext := ".md"
	if html {
		ext = ".html"
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
