package term

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsTerminalRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsTerminal(f.Fd()) {
		t.Error("IsTerminal reported a regular file as a terminal")
	}
}

func TestIsTerminalPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	if IsTerminal(r.Fd()) || IsTerminal(w.Fd()) {
		t.Error("IsTerminal reported a pipe as a terminal")
	}
}
