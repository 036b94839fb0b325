package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestFileLineLog_AppendsWholeLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l := NewFileLineLog(path)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := l.Append(fmt.Sprintf("line %02d %s", i, strings.Repeat("x", 200))); err != nil {
				t.Errorf("Append: %v", err)
			}
		}(i)
	}
	wg.Wait()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	if len(lines) != 50 {
		t.Fatalf("want 50 lines, got %d", len(lines))
	}
	for _, ln := range lines {
		if !strings.HasPrefix(ln, "line ") || len(ln) != len("line 00 ")+200 {
			t.Fatalf("interleaved line: %q", ln)
		}
	}
}

func TestFileLineLog_MissingDirectory(t *testing.T) {
	l := NewFileLineLog(filepath.Join(t.TempDir(), "nope", "audit.log"))
	if err := l.Append("x"); err == nil {
		t.Fatal("expected error")
	}
}
