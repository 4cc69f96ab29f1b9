package fileset

import "testing"

type fakeGit struct {
	tracked, staged, unstaged []string
}

func (g fakeGit) TrackedFiles() ([]string, error)  { return g.tracked, nil }
func (g fakeGit) StagedFiles() ([]string, error)   { return g.staged, nil }
func (g fakeGit) UnstagedFiles() ([]string, error) { return g.unstaged, nil }

type fakeClassifier struct{}

func (fakeClassifier) TypesForExtension(ext string) []string {
	switch ext {
	case "py":
		return []string{"python", "text"}
	case "txt":
		return []string{"text"}
	}
	return nil
}

func (fakeClassifier) TypesForFilename(name string) []string { return nil }

func TestBuildAllFiles(t *testing.T) {
	g := fakeGit{tracked: []string{"a.py", "b.txt"}}
	fs, err := Build("/root", g, fakeClassifier{}, true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(fs.Files) != 2 {
		t.Fatalf("unexpected files: %v", fs.Files)
	}
	if !fs.HasType("a.py", "python") {
		t.Fatal("expected a.py to have python tag")
	}
	if fs.HasType("b.txt", "python") {
		t.Fatal("b.txt should not have python tag")
	}
}

func TestBuildAbortsOnUnstagedChanges(t *testing.T) {
	g := fakeGit{staged: []string{"a.py"}, unstaged: []string{"b.py"}}
	_, err := Build("/root", g, fakeClassifier{}, false)
	if err != ErrUnstagedChanges {
		t.Fatalf("expected ErrUnstagedChanges, got %v", err)
	}
}

func TestBuildStagedMode(t *testing.T) {
	g := fakeGit{staged: []string{"a.py"}}
	fs, err := Build("/root", g, fakeClassifier{}, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(fs.Files) != 1 || fs.Files[0] != "a.py" {
		t.Fatalf("unexpected files: %v", fs.Files)
	}
}
