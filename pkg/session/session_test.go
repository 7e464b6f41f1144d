package session

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dtnitsch/tag-extractor/pkg/tagger"
)

type memorySink struct {
	path  string
	lines []string
	err   error
}

func (m *memorySink) SaveLines(path string, lines []string) error {
	if m.err != nil {
		return m.err
	}
	m.path = path
	m.lines = lines
	return nil
}

func TestSessionExtract(t *testing.T) {
	s := New()

	if _, err := s.Extract(); !errors.Is(err, tagger.ErrMissingPrerequisite) {
		t.Fatalf("Extract() with nothing loaded error = %v, want ErrMissingPrerequisite", err)
	}

	s.LoadStopWords("stop.txt", []string{"The"})
	if _, err := s.Extract(); !errors.Is(err, tagger.ErrMissingText) {
		t.Fatalf("Extract() without text error = %v, want ErrMissingText", err)
	}
	if s.Result() != nil {
		t.Errorf("Result() = %v, want nil before any successful run", s.Result())
	}

	s.LoadText("fox.txt", []string{"The Quick fox.", "fox FOX!! fox"})
	got, err := s.Extract()
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := tagger.Frequencies{"quick": 1, "fox": 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}

	// A rerun does not accumulate.
	got, _ = s.Extract()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("second Extract() = %v, want %v", got, want)
	}

	if names := s.TextNames(); len(names) != 1 || names[0] != "fox.txt" || s.StopWordsName() != "stop.txt" {
		t.Errorf("names = %q, %q", names, s.StopWordsName())
	}
}

func TestSessionTextWithoutStopWords(t *testing.T) {
	s := New()
	s.LoadText("fox.txt", []string{"fox"})
	if _, err := s.Extract(); !errors.Is(err, tagger.ErrMissingStopWords) {
		t.Fatalf("Extract() error = %v, want ErrMissingStopWords", err)
	}
	if s.Result() != nil || s.TextTotals() != nil {
		t.Error("failed Extract() left a result behind")
	}
}

func TestSessionMultipleTexts(t *testing.T) {
	s := New()
	s.LoadStopWords("stop.txt", []string{"the"})
	s.AddText("a.txt", []string{"The Quick fox."})
	s.AddText("b.txt", []string{"fox FOX!! fox"})

	got, err := s.Extract()
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := tagger.Frequencies{"quick": 1, "fox": 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
	if totals := s.TextTotals(); !reflect.DeepEqual(totals, []int{2, 3}) {
		t.Errorf("TextTotals() = %v, want [2 3]", totals)
	}

	// LoadText starts over with a single text.
	s.LoadText("c.txt", []string{"hound"})
	got, _ = s.Extract()
	if !reflect.DeepEqual(got, tagger.Frequencies{"hound": 1}) {
		t.Errorf("Extract() after LoadText = %v", got)
	}
	if names := s.TextNames(); !reflect.DeepEqual(names, []string{"c.txt"}) {
		t.Errorf("TextNames() = %q", names)
	}
}

func TestSessionReloadStopWords(t *testing.T) {
	s := New()
	s.LoadText("fox.txt", []string{"the fox and the hound"})
	s.LoadStopWords("a.txt", []string{"the"})
	s.LoadStopWords("b.txt", []string{"and"})

	got, err := s.Extract()
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := tagger.Frequencies{"the": 2, "fox": 1, "hound": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v (stop words must be replaced, not merged)", got, want)
	}
}

func TestSessionSave(t *testing.T) {
	s := New()
	sink := &memorySink{}

	if err := s.Save(sink, "out.txt"); !errors.Is(err, ErrNothingToSave) {
		t.Fatalf("Save() before Extract error = %v, want ErrNothingToSave", err)
	}

	s.LoadText("fox.txt", []string{"fox fox quick"})
	s.LoadStopWords("stop.txt", nil)
	if _, err := s.Extract(); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if err := s.Save(sink, "out.txt"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if sink.path != "out.txt" {
		t.Errorf("path = %q", sink.path)
	}
	if want := []string{"fox: 2", "quick: 1"}; !reflect.DeepEqual(sink.lines, want) {
		t.Errorf("lines = %q, want %q", sink.lines, want)
	}

	failing := &memorySink{err: errors.New("read-only")}
	if err := s.Save(failing, "out.txt"); err == nil {
		t.Error("Save() error = nil, want sink error")
	}
}

func TestSessionKeepsEmptyTags(t *testing.T) {
	s := New(tagger.WithEmptyTags())
	s.LoadText("punct.txt", []string{"!!! fox"})
	s.LoadStopWords("stop.txt", []string{})

	got, err := s.Extract()
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got[""] != 1 || got["fox"] != 1 {
		t.Errorf("Extract() = %v, want empty tag counted once", got)
	}
}
