package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_VerboseEnablesDebug(t *testing.T) {
	tests := []struct {
		verbose   bool
		wantDebug bool
	}{
		{verbose: true, wantDebug: true},
		{verbose: false, wantDebug: false},
	}

	for _, tt := range tests {
		logger, err := New(tt.verbose)
		if err != nil {
			t.Fatalf("New(%v) error = %v", tt.verbose, err)
		}
		if got := logger.Core().Enabled(zapcore.DebugLevel); got != tt.wantDebug {
			t.Errorf("New(%v): debug enabled = %v, want %v", tt.verbose, got, tt.wantDebug)
		}
		if !logger.Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("New(%v): info should always be enabled", tt.verbose)
		}
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	// Must not panic
	OrNop(nil).Debug("discarded")
}
