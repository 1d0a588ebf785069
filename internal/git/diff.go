// Package git lists gradebooks touched in the working tree so that hooks
// can check only what changed.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dotcommander/gradecast/internal/discovery"
)

// StagedGradebooks returns the absolute paths of staged files under root
// that match the gradebook patterns. Outside a repository it returns none.
func StagedGradebooks(root string, patterns []string) ([]string, error) {
	if !IsGitRepo(root) {
		return []string{}, nil
	}

	output, err := run(root, "diff", "--name-only", "--relative", "--staged")
	if err != nil {
		return nil, err
	}
	return filterGradebooks(output, root, patterns), nil
}

// ChangedGradebooks returns staged and unstaged changes against HEAD. In a
// repository without commits every tracked file counts as changed.
func ChangedGradebooks(root string, patterns []string) ([]string, error) {
	if !IsGitRepo(root) {
		return []string{}, nil
	}

	var output string
	var err error
	if _, headErr := run(root, "rev-parse", "HEAD"); headErr != nil {
		output, err = run(root, "ls-files")
	} else {
		output, err = run(root, "diff", "--name-only", "--relative", "HEAD")
	}
	if err != nil {
		return nil, err
	}
	return filterGradebooks(output, root, patterns), nil
}

// IsGitRepo checks if the given directory is within a git repository.
func IsGitRepo(root string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = root
	return cmd.Run() == nil
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, output)
	}
	return string(output), nil
}

// filterGradebooks keeps existing files whose root-relative path matches
// the patterns. Deleted files are reported by git but skipped here.
func filterGradebooks(gitOutput, root string, patterns []string) []string {
	files := []string{}
	for _, line := range strings.Split(gitOutput, "\n") {
		rel := filepath.ToSlash(strings.TrimSpace(line))
		if rel == "" || !discovery.Matches(patterns, rel) {
			continue
		}

		absPath := filepath.Join(root, filepath.FromSlash(rel))
		if _, err := os.Stat(absPath); err != nil {
			continue
		}
		files = append(files, absPath)
	}
	return files
}
