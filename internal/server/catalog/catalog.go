// Package catalog loads the course/quiz catalog from its JSON file and
// serves course metadata and quiz questions. The catalog is read once at
// startup and treated as immutable afterwards.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/aturkov/scorekeep/internal/common"
)

// Question is one quiz question. Answer is the index into Options of the
// correct choice.
type Question struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

// Course describes one subject in the catalog. Subject doubles as the key
// that progress records are stored under.
type Course struct {
	Subject     string     `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Emoji       string     `json:"emoji"`
	Professor   string     `json:"professor"`
	PDFKey      string     `json:"pdf_key"`
	Questions   []Question `json:"questions"`
}

// Info is the public view of a course: everything except the questions, so
// listing the catalog can never leak answers.
type Info struct {
	Subject     string `json:"subject"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Professor   string `json:"professor"`
	HasPDF      bool   `json:"has_pdf"`
}

// Catalog holds the loaded courses keyed by subject.
type Catalog struct {
	courses map[string]*Course
}

// Load reads and parses the catalog file. Courses with no title fall back to
// a placeholder so a sparse catalog entry still lists cleanly.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var raw map[string]*Course
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	for subject, course := range raw {
		// JSON null decodes to a nil entry.
		if course == nil {
			return nil, fmt.Errorf("parsing catalog %s: subject %q has a null entry", path, subject)
		}
		course.Subject = subject
		if course.Title == "" {
			course.Title = "Untitled"
		}
	}

	return &Catalog{courses: raw}, nil
}

// Courses returns the public view of every course, ordered by subject.
func (c *Catalog) Courses() []Info {
	result := make([]Info, 0, len(c.courses))
	for _, course := range c.courses {
		result = append(result, Info{
			Subject:     course.Subject,
			Title:       course.Title,
			Description: course.Description,
			Emoji:       course.Emoji,
			Professor:   course.Professor,
			HasPDF:      course.PDFKey != "",
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Subject < result[j].Subject })
	return result
}

// Questions returns the quiz questions for subject, or common.ErrNotFound.
func (c *Catalog) Questions(subject string) ([]Question, error) {
	course, ok := c.courses[subject]
	if !ok {
		return nil, common.ErrNotFound
	}
	return course.Questions, nil
}

// PDFKey returns the storage key of the subject's course material, or
// common.ErrNotFound when the subject is unknown or has no material.
func (c *Catalog) PDFKey(subject string) (string, error) {
	course, ok := c.courses[subject]
	if !ok || course.PDFKey == "" {
		return "", common.ErrNotFound
	}
	return course.PDFKey, nil
}
