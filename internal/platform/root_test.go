package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	// /tmp/
	//   workspace/ (.quill)
	//     subdir/
	//       nested/
	//   empty/
	baseDir := t.TempDir()
	rootDir := filepath.Join(baseDir, "workspace")
	subDir := filepath.Join(rootDir, "subdir")
	nestedDir := filepath.Join(subDir, "nested")
	emptyDir := filepath.Join(baseDir, "empty")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(emptyDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(rootDir, DataDirName), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{
			name:      "Start at Root",
			startPath: rootDir,
			wantRoot:  rootDir,
		},
		{
			name:      "Start in Subdir",
			startPath: subDir,
			wantRoot:  rootDir,
		},
		{
			name:      "Start Nested Deeply",
			startPath: nestedDir,
			wantRoot:  rootDir,
		},
		{
			name:      "No Root Found",
			startPath: emptyDir,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != "" && filepath.Clean(got) != filepath.Clean(tt.wantRoot) {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}

func TestFindRoot_IgnoresMarkerFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DataDirName), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := FindRoot(dir); err == nil {
		t.Error("a plain file named .quill must not mark a root")
	}
}

func TestDefaultDataPath(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if got, want := DefaultDataPath(nested), filepath.Join(nested, DataDirName); got != want {
		t.Errorf("without root: got %s, want %s", got, want)
	}

	if err := os.Mkdir(filepath.Join(dir, DataDirName), 0755); err != nil {
		t.Fatal(err)
	}
	if got, want := DefaultDataPath(nested), filepath.Join(dir, DataDirName); got != want {
		t.Errorf("with root: got %s, want %s", got, want)
	}
}
