package models

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// LessonKey addresses one lesson's index and source document.
type LessonKey struct {
	Course string
	ID     int
}

func (k LessonKey) String() string {
	return fmt.Sprintf("%s/%d", k.Course, k.ID)
}

// Validate rejects keys that cannot be used as path components.
func (k LessonKey) Validate() error {
	if strings.TrimSpace(k.Course) == "" {
		return Errorf(ErrValidation, "course is required")
	}
	if strings.ContainsAny(k.Course, `/\`) || strings.Contains(k.Course, "..") {
		return Errorf(ErrValidation, "invalid course: %q", k.Course)
	}
	if k.ID < 1 {
		return Errorf(ErrValidation, "invalid id: %d", k.ID)
	}
	return nil
}

// FormatPath substitutes {course} and {id} in template.
func (k LessonKey) FormatPath(template string) string {
	r := strings.NewReplacer("{course}", k.Course, "{id}", strconv.Itoa(k.ID))
	return filepath.FromSlash(r.Replace(template))
}
