package admin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aturkov/scorekeep/internal/common"
	"github.com/aturkov/scorekeep/internal/server/config"
)

func newTestApp() *App {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return NewApp(cfg)
}

func TestRun_NoArgs(t *testing.T) {
	app := newTestApp()
	err := app.Run(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "usage:") {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	app := newTestApp()
	err := app.Run(context.Background(), []string{"frobnicate"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestRun_PublishArgCount(t *testing.T) {
	app := newTestApp()
	err := app.Run(context.Background(), []string{"publish", "math"})
	if err == nil || !strings.Contains(err.Error(), "usage: publish") {
		t.Fatalf("expected publish usage error, got %v", err)
	}
}

func TestRun_PublishRejectsSubjectWithoutMaterial(t *testing.T) {
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "quizzes.json")
	content := `{"math": {"title": "Math", "pdf_key": "materials/math.pdf", "questions": []},
		"history": {"title": "History", "questions": []}}`
	if err := os.WriteFile(catalogPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	pdfPath := filepath.Join(dir, "notes.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.7"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.CatalogFile = catalogPath
	app := NewApp(cfg)

	// Unknown subject and subject without a pdf_key both fail before any
	// upload is attempted.
	for _, subject := range []string{"chemistry", "history"} {
		err := app.Run(context.Background(), []string{"publish", subject, pdfPath})
		if !errors.Is(err, common.ErrNotFound) {
			t.Fatalf("subject %q: want ErrNotFound, got %v", subject, err)
		}
	}
}
