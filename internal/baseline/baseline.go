// Package baseline records accepted check issues so that later runs only
// report new ones.
package baseline

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/dotcommander/gradecast/internal/types"
)

// DefaultFile is the baseline file name, resolved against the root.
const DefaultFile = ".gradecastbaseline.json"

var (
	quotedPattern = regexp.MustCompile(`"[^"]*"`)
	numberPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)
)

// Baseline is a snapshot of known issues.
type Baseline struct {
	Version      string   `json:"version"`
	CreatedAt    string   `json:"created_at"`
	Fingerprints []string `json:"fingerprints"`
	root         string
	index        map[string]bool
}

// CreateBaseline fingerprints issues. File paths are stored relative to root
// so the baseline survives a checkout in another directory.
func CreateBaseline(issues []types.ValidationError, root string) *Baseline {
	b := &Baseline{Version: "1.0", root: root, index: make(map[string]bool)}
	for _, issue := range issues {
		fp := b.fingerprint(issue)
		if !b.index[fp] {
			b.index[fp] = true
			b.Fingerprints = append(b.Fingerprints, fp)
		}
	}
	sort.Strings(b.Fingerprints)
	return b
}

// LoadBaseline reads a baseline written by Save.
func LoadBaseline(path, root string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline file: %w", err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse baseline file: %w", err)
	}

	b.root = root
	b.index = make(map[string]bool, len(b.Fingerprints))
	for _, fp := range b.Fingerprints {
		b.index[fp] = true
	}
	return &b, nil
}

// Save writes the baseline as indented JSON.
func (b *Baseline) Save(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write baseline file: %w", err)
	}
	return nil
}

// IsKnown reports whether the issue was recorded in the baseline.
func (b *Baseline) IsKnown(issue types.ValidationError) bool {
	if b == nil || b.index == nil {
		return false
	}
	return b.index[b.fingerprint(issue)]
}

// fingerprint hashes file, source, path and the message with its numbers
// and quoted names masked. Line numbers are left out.
func (b *Baseline) fingerprint(issue types.ValidationError) string {
	data := strings.Join([]string{
		b.relative(issue.File),
		issue.Source,
		issue.Path,
		normalizeMessage(issue.Message),
	}, "|")
	return fmt.Sprintf("%x", sha256.Sum256([]byte(data)))
}

func (b *Baseline) relative(file string) string {
	if file == "" || b.root == "" {
		return filepath.ToSlash(file)
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	absRoot, err := filepath.Abs(b.root)
	if err != nil {
		return filepath.ToSlash(file)
	}
	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(absFile)
	}
	return filepath.ToSlash(rel)
}

func normalizeMessage(msg string) string {
	msg = quotedPattern.ReplaceAllString(msg, `"*"`)
	msg = numberPattern.ReplaceAllString(msg, "N")
	return strings.Join(strings.Fields(msg), " ")
}
