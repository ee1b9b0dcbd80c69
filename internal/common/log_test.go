package common

import (
	"testing"
	"time"
)

func TestLoggerIsSingleton(t *testing.T) {
	first := Logger()
	second := Logger()
	if first == nil {
		t.Fatal("expected non-nil logger")
	}
	if first != second {
		t.Fatal("expected Logger to return the same instance")
	}
}

func TestSugarSharesCore(t *testing.T) {
	if Sugar() == nil {
		t.Fatal("expected non-nil sugared logger")
	}
	if Sugar().Desugar().Core() != Logger().Core() {
		t.Fatal("expected sugared logger to share the base core")
	}
}

func TestErrReportsNoInitFailure(t *testing.T) {
	if err := Err(); err != nil {
		t.Fatalf("unexpected logger init error: %v", err)
	}
}

func TestRFC3339MicrosLayout(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 30, 45, 123456000, time.UTC)
	got := ts.Format(RFC3339Micros)
	want := "2024-06-01T12:30:45.123456Z"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
