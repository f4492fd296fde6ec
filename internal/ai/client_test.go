package ai

import (
	"context"
	"errors"
	"testing"
)

func TestUnconfiguredAnalyzer(t *testing.T) {
	a := NewAnalyzer("")

	if a.Available() {
		t.Error("analyzer without key should not be available")
	}

	_, err := a.AnalyzeDocument(context.Background(), "lease text", "")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestEmptyDocumentRejected(t *testing.T) {
	a := NewAnalyzer("test-key")

	if !a.Available() {
		t.Fatal("analyzer with key should be available")
	}

	if _, err := a.AnalyzeDocument(context.Background(), "   ", "q"); err == nil {
		t.Error("expected error for empty document")
	}
}
