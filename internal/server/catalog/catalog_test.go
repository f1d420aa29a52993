package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aturkov/scorekeep/internal/common"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quizzes.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleCatalog = `{
  "math": {
    "title": "Mathematics",
    "description": "Numbers and such",
    "emoji": "🧮",
    "professor": "Dr. Gauss",
    "pdf_key": "materials/math.pdf",
    "questions": [
      {"question": "2+2?", "options": ["3", "4"], "answer": 1}
    ]
  },
  "history": {
    "title": "History",
    "questions": []
  }
}`

func TestLoad(t *testing.T) {
	path := writeCatalog(t, sampleCatalog)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	courses := c.Courses()
	if len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(courses))
	}
	// ordered by subject
	if courses[0].Subject != "history" || courses[1].Subject != "math" {
		t.Errorf("unexpected order: %v, %v", courses[0].Subject, courses[1].Subject)
	}
	if courses[1].Title != "Mathematics" || courses[1].Professor != "Dr. Gauss" {
		t.Errorf("unexpected course info: %+v", courses[1])
	}
	if !courses[1].HasPDF || courses[0].HasPDF {
		t.Errorf("unexpected HasPDF flags: %+v", courses)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeCatalog(t, "{not json")
	_, err := Load(path)
	if err == nil {
		t.Error("expected error for bad json")
	}
}

func TestLoadDefaultsTitle(t *testing.T) {
	path := writeCatalog(t, `{"bio": {"questions": []}}`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	courses := c.Courses()
	if courses[0].Title != "Untitled" {
		t.Errorf("expected placeholder title, got %q", courses[0].Title)
	}
}

func TestLoadNullEntry(t *testing.T) {
	path := writeCatalog(t, `{"bio": null, "math": {"questions": []}}`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for null catalog entry")
	}
	if !strings.Contains(err.Error(), "bio") {
		t.Errorf("error should name the offending subject: %v", err)
	}
}

func TestQuestions(t *testing.T) {
	c, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatal(err)
	}

	qs, err := c.Questions("math")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 1 || qs[0].Answer != 1 {
		t.Errorf("unexpected questions: %+v", qs)
	}

	_, err = c.Questions("chemistry")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCoursesOmitQuestions(t *testing.T) {
	c, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatal(err)
	}
	// Info carries no question data at all, so listing cannot leak answers.
	for _, info := range c.Courses() {
		if info.Subject == "" {
			t.Errorf("course missing subject: %+v", info)
		}
	}
}

func TestPDFKey(t *testing.T) {
	c, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatal(err)
	}

	key, err := c.PDFKey("math")
	if err != nil || key != "materials/math.pdf" {
		t.Errorf("unexpected result: %q, %v", key, err)
	}

	if _, err := c.PDFKey("history"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound for course without pdf, got %v", err)
	}
	if _, err := c.PDFKey("chemistry"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown course, got %v", err)
	}
}
