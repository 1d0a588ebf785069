package discovery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestFileType_String tests the String method for all FileType constants
func TestFileType_String(t *testing.T) {
	tests := []struct {
		name     string
		fileType FileType
		want     string
	}{
		{"Gradebook", FileTypeGradebook, "gradebook"},
		{"Table", FileTypeTable, "table"},
		{"Unknown", FileTypeUnknown, "unknown"},
		{"Invalid", FileType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fileType.String(); got != tt.want {
				t.Errorf("FileType.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		path    string
		want    FileType
		wantErr string
	}{
		{"s1.gradebook.yaml", FileTypeGradebook, ""},
		{"dir/S1.YML", FileTypeGradebook, ""},
		{"s1.json", FileTypeGradebook, ""},
		{"marks.csv", FileTypeTable, ""},
		{"marks.XLSX", FileTypeTable, ""},
		{"README", FileTypeUnknown, "has no extension"},
		{"notes.md", FileTypeUnknown, "unsupported file type: .md"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFileType(tt.path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("DetectFileType(%q) error = %v, want containing %q", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectFileType(%q) unexpected error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("DetectFileType(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "s1.gradebook.yaml", "semester: S1\n")
	empty := writeFile(t, dir, "empty.yaml", "")
	binary := writeFile(t, dir, "bin.yaml", "semester\x00\x01")

	if abs, err := ValidateFilePath(good); err != nil || !filepath.IsAbs(abs) {
		t.Errorf("ValidateFilePath(good) = %q, %v", abs, err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), "file not found"},
		{"directory", dir, "is a directory"},
		{"empty", empty, "file is empty"},
		{"binary", binary, "appears to be binary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateFilePath(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateFilePath() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "s1.gradebook.yaml", "semester: S1\n")
	writeFile(t, root, "year2/s2.gradebook.json", "{}")
	writeFile(t, root, "gradebooks/2025/s3.yml", "semester: S3\n")
	// matched by two patterns, reported once
	writeFile(t, root, "gradebooks/s4.gradebook.yaml", "semester: S4\n")
	writeFile(t, root, "notes.yaml", "not a gradebook")
	writeFile(t, root, "gradebooks/marks.csv", "course\n")
	if err := os.MkdirAll(filepath.Join(root, "dir.gradebook.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := NewFileDiscovery(root, nil, false).DiscoverFiles()
	if err != nil {
		t.Fatalf("DiscoverFiles() error: %v", err)
	}

	var got []string
	for _, f := range files {
		got = append(got, f.RelPath)
		if f.Type != FileTypeGradebook {
			t.Errorf("%s: type = %v, want gradebook", f.RelPath, f.Type)
		}
		if f.Path != filepath.Join(root, f.RelPath) {
			t.Errorf("%s: path = %s", f.RelPath, f.Path)
		}
	}

	want := []string{
		"gradebooks/2025/s3.yml",
		"gradebooks/s4.gradebook.yaml",
		"s1.gradebook.yaml",
		"year2/s2.gradebook.json",
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("DiscoverFiles() = %v, want %v", got, want)
	}
}

func TestDiscoverFiles_CustomPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "terms/a.yaml", "semester: A\n")
	writeFile(t, root, "s1.gradebook.yaml", "semester: S1\n")

	files, err := NewFileDiscovery(root, []string{"terms/*.yaml"}, false).DiscoverFiles()
	if err != nil {
		t.Fatalf("DiscoverFiles() error: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "terms/a.yaml" {
		t.Errorf("DiscoverFiles() = %+v, want only terms/a.yaml", files)
	}
}

func TestDiscoverFiles_Symlinks(t *testing.T) {
	root := t.TempDir()
	target := writeFile(t, root, "store/real.yaml", "semester: S1\n")
	link := filepath.Join(root, "linked.gradebook.yaml")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := NewFileDiscovery(root, nil, false).DiscoverFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("expected symlink to be skipped, got %+v", files)
	}

	files, err = NewFileDiscovery(root, nil, true).DiscoverFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].RelPath != "linked.gradebook.yaml" {
		t.Errorf("expected followed symlink, got %+v", files)
	}
}

func TestDiscoverFiles_BadPattern(t *testing.T) {
	_, err := NewFileDiscovery(t.TempDir(), []string{"[unclosed"}, false).DiscoverFiles()
	if err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func TestPaths(t *testing.T) {
	got := Paths([]File{{Path: "/a"}, {Path: "/b"}})
	if len(got) != 2 || got[0] != "/a" || got[1] != "/b" {
		t.Errorf("Paths() = %v", got)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"s1.gradebook.yaml", true},
		{"year2/s2.gradebook.json", true},
		{"gradebooks/2025/s3.yml", true},
		{"notes.yaml", false},
		{"gradebooks/marks.csv", false},
	}
	for _, tt := range tests {
		if got := Matches(nil, tt.path); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	if !Matches([]string{"terms/*.yaml"}, "terms/a.yaml") || Matches([]string{"terms/*.yaml"}, "s1.gradebook.yaml") {
		t.Error("custom patterns should replace the defaults")
	}
}
