package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestBuildError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *BuildError
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

func TestBuildError_WithContext(t *testing.T) {
	err := New(CategoryMerge, SeverityWarning, "overlay missing").
		WithContext("language", "fr").
		WithContext("step", "manual")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}

	if err.Context["language"] != "fr" {
		t.Errorf("Context[language] = %v, want fr", err.Context["language"])
	}

	if err.Context["step"] != "manual" {
		t.Errorf("Context[step] = %v, want manual", err.Context["step"])
	}
}

func TestIsCategory(t *testing.T) {
	configErr := New(CategoryConfig, SeverityFatal, "config error")
	toolErr := New(CategoryTool, SeverityFatal, "tool error")
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"config error matches config category", configErr, CategoryConfig, true},
		{"config error doesn't match tool category", configErr, CategoryTool, false},
		{"tool error matches tool category", toolErr, CategoryTool, true},
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

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"tool failure carries its code", ToolFailed(fmt.Errorf("exit status 2"), "build", 2), 2},
		{"wrapped tool failure carries its code", fmt.Errorf("build en: %w", ToolFailed(fmt.Errorf("exit status 3"), "build", 3)), 3},
		{"plain build error maps to 1", New(CategoryConfig, SeverityFatal, "invalid"), 1},
		{"standard error maps to 1", fmt.Errorf("boom"), 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := ExitCode(test.err)
			if result != test.expected {
				t.Errorf("ExitCode() = %d, want %d", result, test.expected)
			}
		})
	}
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("ConfigNotFound", func(t *testing.T) {
		err := ConfigNotFound("/path/to/languages.yaml")
		if err.Category != CategoryConfig {
			t.Errorf("Category = %v, want %v", err.Category, CategoryConfig)
		}
		if err.Severity != SeverityFatal {
			t.Errorf("Severity = %v, want %v", err.Severity, SeverityFatal)
		}
		if err.Context["path"] != "/path/to/languages.yaml" {
			t.Errorf("Context[path] = %v, want /path/to/languages.yaml", err.Context["path"])
		}
	})

	t.Run("ToolNotFound", func(t *testing.T) {
		cause := fmt.Errorf("executable file not found in $PATH")
		err := ToolNotFound(cause, "docfx")
		if err.Category != CategoryTool {
			t.Errorf("Category = %v, want %v", err.Category, CategoryTool)
		}
		if !stdErrors.Is(err, cause) {
			t.Errorf("Cause should match wrapped cause: %v", cause)
		}
		if err.Context["binary"] != "docfx" {
			t.Errorf("Context[binary] = %v, want docfx", err.Context["binary"])
		}
	})

	t.Run("MergeFailed", func(t *testing.T) {
		err := MergeFailed(fmt.Errorf("copy failed"), "ja", "overlay")
		if err.Category != CategoryMerge {
			t.Errorf("Category = %v, want %v", err.Category, CategoryMerge)
		}
		if err.Context["language"] != "ja" {
			t.Errorf("Context[language] = %v, want ja", err.Context["language"])
		}
		if err.Context["step"] != "overlay" {
			t.Errorf("Context[step] = %v, want overlay", err.Context["step"])
		}
	})
}
