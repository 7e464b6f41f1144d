package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/tag-extractor/pkg/source"
)

func TestLoadSourcesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var names []string
	for i := 0; i < 10; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%02d.txt", i))
		if err := os.WriteFile(path, []byte(fmt.Sprintf("line %d", i)), 0644); err != nil {
			t.Fatal(err)
		}
		names = append(names, path)
	}

	texts, err := loadSources(context.Background(), testLogger(), &source.Loader{}, names, 4)
	if err != nil {
		t.Fatalf("loadSources() error = %v", err)
	}
	for i, text := range texts {
		if text.Name != names[i] {
			t.Errorf("texts[%d] = %s, want %s", i, text.Name, names[i])
		}
	}
}

func TestLoadSourcesReportsEveryFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	if err := os.WriteFile(good, []byte("fox"), 0644); err != nil {
		t.Fatal(err)
	}
	names := []string{filepath.Join(dir, "a.txt"), good, filepath.Join(dir, "b.txt")}

	texts, err := loadSources(context.Background(), testLogger(), &source.Loader{}, names, 0)
	if err == nil {
		t.Fatal("loadSources() error = nil")
	}
	if texts != nil {
		t.Errorf("loadSources() returned texts alongside an error")
	}
	if !errors.Is(err, source.ErrSourceRead) {
		t.Errorf("error = %v, want ErrSourceRead", err)
	}
	msg := err.Error()
	for _, name := range []string{names[0], names[2]} {
		if !strings.Contains(msg, name) {
			t.Errorf("error %q does not mention %s", msg, name)
		}
	}
}

func TestLoadSourcesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loadSources(ctx, testLogger(), &source.Loader{}, []string{"whatever.txt"}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("loadSources() error = %v, want context.Canceled", err)
	}
}
