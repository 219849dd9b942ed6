package errors

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
)

func TestKssgError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *KssgError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestKssgError_WithContext(t *testing.T) {
	err := New(CategoryTemplate, SeverityError, "render failed").
		WithContext("item", "index.html").
		WithContext("template", "_base.html")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}
	if err.Context["item"] != "index.html" {
		t.Errorf("Context[item] = %v, want index.html", err.Context["item"])
	}
	if err.Context["template"] != "_base.html" {
		t.Errorf("Context[template] = %v, want _base.html", err.Context["template"])
	}
}

func TestIsCategory(t *testing.T) {
	configErr := New(CategoryConfig, SeverityFatal, "config error")
	templateErr := New(CategoryTemplate, SeverityFatal, "template error")
	wrapped := fmt.Errorf("outer: %w", configErr)
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"config error matches config category", configErr, CategoryConfig, true},
		{"config error doesn't match template category", configErr, CategoryTemplate, false},
		{"template error matches template category", templateErr, CategoryTemplate, true},
		{"wrapped error keeps its category", wrapped, CategoryConfig, true},
		{"standard error doesn't match any category", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsCategory(test.err, test.category)
			if result != test.expected {
				t.Errorf("IsCategory() = %v, want %v", result, test.expected)
			}
		})
	}
}

func TestGetCategory_DefaultsToInternal(t *testing.T) {
	if got := GetCategory(fmt.Errorf("plain")); got != CategoryInternal {
		t.Errorf("GetCategory() = %v, want %v", got, CategoryInternal)
	}
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("ConfigNotFound", func(t *testing.T) {
		cause := fmt.Errorf("stat failed")
		err := ConfigNotFound("/path/to/kssg.json", cause)
		if err.Category != CategoryConfig {
			t.Errorf("Category = %v, want %v", err.Category, CategoryConfig)
		}
		if err.Severity != SeverityFatal {
			t.Errorf("Severity = %v, want %v", err.Severity, SeverityFatal)
		}
		if err.Context["path"] != "/path/to/kssg.json" {
			t.Errorf("Context[path] = %v, want /path/to/kssg.json", err.Context["path"])
		}
		if !stdErrors.Is(err, cause) {
			t.Errorf("Cause should match wrapped cause: %v", cause)
		}
	})

	t.Run("ClassificationFailed", func(t *testing.T) {
		err := ClassificationFailed("projects.json", fmt.Errorf("missing title"))
		if err.Category != CategoryValidation {
			t.Errorf("Category = %v, want %v", err.Category, CategoryValidation)
		}
		if err.Context["item"] != "projects.json" {
			t.Errorf("Context[item] = %v, want projects.json", err.Context["item"])
		}
	})
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{fmt.Errorf("plain"), 1},
		{New(CategoryValidation, SeverityFatal, "x"), 2},
		{New(CategoryConfig, SeverityFatal, "x"), 7},
		{New(CategoryTemplate, SeverityFatal, "x"), 11},
		{New(CategoryBuild, SeverityFatal, "x"), 11},
		{New(CategoryFileSystem, SeverityFatal, "x"), 11},
		{New(CategoryRuntime, SeverityFatal, "x"), 12},
		{New(CategoryInternal, SeverityFatal, "x"), 10},
		{fmt.Errorf("wrapped: %w", New(CategoryConfig, SeverityFatal, "x")), 7},
	}

	for _, tt := range tests {
		if got := a.ExitCodeFor(tt.err); got != tt.want {
			t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	a := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(io.Discard, nil)))
	a.out = &out
	code := -1
	a.exit = func(c int) { code = c }

	a.HandleError(ConfigInvalid("kssg.json", fmt.Errorf("missing key \"src\"")))

	if code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}
	if got, want := out.String(), "configuration invalid: missing key \"src\"\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCLIErrorAdapter_FormatVerbose(t *testing.T) {
	a := NewCLIErrorAdapter(true, nil)
	err := BuildFailed("render", fmt.Errorf("disk full"))
	if got, want := a.FormatError(err), "build (fatal): build failed: disk full"; got != want {
		t.Errorf("FormatError() = %q, want %q", got, want)
	}
}
