package discovery

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns are the glob patterns, relative to the root, that locate
// gradebook files when none are named on the command line.
var DefaultPatterns = []string{
	"**/*.gradebook.yaml",
	"**/*.gradebook.yml",
	"**/*.gradebook.json",
	"gradebooks/**/*.yaml",
	"gradebooks/**/*.yml",
	"gradebooks/**/*.json",
}

// FileType categorizes discovered files
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeGradebook
	FileTypeTable
)

// String returns the human-readable name of the file type.
func (ft FileType) String() string {
	switch ft {
	case FileTypeGradebook:
		return "gradebook"
	case FileTypeTable:
		return "table"
	default:
		return "unknown"
	}
}

// DetectFileType determines the file type from its extension.
func DetectFileType(path string) (FileType, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		return FileTypeGradebook, nil
	case ".csv", ".xlsx":
		return FileTypeTable, nil
	case "":
		return FileTypeUnknown, fmt.Errorf(
			"unsupported file: %s has no extension. gradecast reads .yaml, .yml, .json, .csv and .xlsx files", filepath.Base(path))
	default:
		return FileTypeUnknown, fmt.Errorf(
			"unsupported file type: %s. gradecast reads .yaml, .yml, .json, .csv and .xlsx files", ext)
	}
}

// ValidateFilePath checks that a gradebook path names a readable, non-empty
// text file and returns its absolute path.
//
// Example:
//
//	absPath, err := ValidateFilePath("./gradebooks/s1.yaml")
//	if err != nil {
//	    fmt.Fprintf(os.Stderr, "Error: %v\n", err)
//	    os.Exit(2)
//	}
func ValidateFilePath(path string) (absPath string, err error) {
	absPath, err = filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}

	info, err := os.Lstat(absPath) // Lstat to detect symlinks
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", absPath)
		}
		if os.IsPermission(err) {
			return "", fmt.Errorf("permission denied: %s", absPath)
		}
		return "", fmt.Errorf("cannot access file: %s: %w", absPath, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		realPath, evalErr := filepath.EvalSymlinks(absPath)
		if evalErr != nil {
			return "", fmt.Errorf("cannot resolve symlink %s: %w", absPath, evalErr)
		}
		absPath = realPath
		info, err = os.Stat(absPath)
		if err != nil {
			return "", fmt.Errorf("symlink target inaccessible: %s: %w", absPath, err)
		}
	}

	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", absPath)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("file is empty: %s", absPath)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %s: %w", absPath, err)
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %s: %w", absPath, err)
	}
	if bytes.Contains(buf[:n], []byte{0}) {
		return "", fmt.Errorf("file appears to be binary, not text: %s", absPath)
	}

	return absPath, nil
}

// File represents a discovered file with its metadata
type File struct {
	Path    string
	RelPath string
	Size    int64
	Type    FileType
}

// FileDiscovery manages file discovery operations
type FileDiscovery struct {
	rootPath       string
	patterns       []string
	followSymlinks bool
}

// NewFileDiscovery creates a new FileDiscovery instance. Empty patterns fall
// back to DefaultPatterns.
func NewFileDiscovery(rootPath string, patterns []string, followSymlinks bool) *FileDiscovery {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &FileDiscovery{
		rootPath:       rootPath,
		patterns:       patterns,
		followSymlinks: followSymlinks,
	}
}

// DiscoverFiles finds every gradebook under the root. A file matched by
// several patterns is reported once; results are sorted by relative path.
func (fd *FileDiscovery) DiscoverFiles() ([]File, error) {
	seen := make(map[string]bool)
	var files []File

	for _, pattern := range fd.patterns {
		// doublestar for ** support
		matches, err := doublestar.Glob(os.DirFS(fd.rootPath), pattern)
		if err != nil {
			return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			f, ok := fd.processMatch(match)
			if !ok {
				continue
			}
			seen[match] = true
			files = append(files, f)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// processMatch converts a glob match into a File, returning false if the match should be skipped.
func (fd *FileDiscovery) processMatch(match string) (File, bool) {
	fullPath := filepath.Join(fd.rootPath, match)

	info, err := os.Lstat(fullPath)
	if err != nil {
		return File{}, false
	}

	if info.Mode()&os.ModeSymlink != 0 {
		resolvedInfo, ok := fd.resolveSymlink(fullPath)
		if !ok {
			return File{}, false
		}
		info = resolvedInfo
	}

	if info.IsDir() {
		return File{}, false
	}

	fileType, err := DetectFileType(match)
	if err != nil || fileType != FileTypeGradebook {
		return File{}, false
	}

	return File{
		Path:    fullPath,
		RelPath: filepath.ToSlash(match),
		Size:    info.Size(),
		Type:    fileType,
	}, true
}

// resolveSymlink follows a symlink if configured. Targets outside the root
// are skipped.
func (fd *FileDiscovery) resolveSymlink(fullPath string) (os.FileInfo, bool) {
	if !fd.followSymlinks {
		return nil, false
	}

	realPath, err := filepath.EvalSymlinks(fullPath)
	if err != nil {
		return nil, false
	}

	root, err := filepath.EvalSymlinks(fd.rootPath)
	if err != nil {
		return nil, false
	}
	rel, err := filepath.Rel(root, realPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, false
	}

	info, err := os.Stat(realPath)
	if err != nil {
		return nil, false
	}
	return info, true
}

// Paths returns the full paths of discovered files.
func Paths(files []File) []string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return paths
}

// Matches reports whether a root-relative, slash-separated path matches any
// of the patterns. Empty patterns fall back to DefaultPatterns.
func Matches(patterns []string, relPath string) bool {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}
