package utils

import (
	"testing"

	"go.uber.org/zap"

	"github.com/yungbote/canonkeeper-backend/internal/logger"
)

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func TestGetEnv(t *testing.T) {
	log := newTestLogger()

	t.Setenv("CANONKEEPER_TEST_VAR", "set-value")
	if got := GetEnv("CANONKEEPER_TEST_VAR", "fallback", log); got != "set-value" {
		t.Fatalf("GetEnv set = %q", got)
	}
	if got := GetEnv("CANONKEEPER_TEST_MISSING", "fallback", log); got != "fallback" {
		t.Fatalf("GetEnv missing = %q", got)
	}
	if got := GetEnv("CANONKEEPER_TEST_MISSING", "fallback", nil); got != "fallback" {
		t.Fatalf("GetEnv nil logger = %q", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	log := newTestLogger()

	t.Setenv("CANONKEEPER_TEST_INT", "42")
	if got := GetEnvAsInt("CANONKEEPER_TEST_INT", 7, log); got != 42 {
		t.Fatalf("GetEnvAsInt set = %d", got)
	}
	t.Setenv("CANONKEEPER_TEST_INT", "not-a-number")
	if got := GetEnvAsInt("CANONKEEPER_TEST_INT", 7, log); got != 7 {
		t.Fatalf("GetEnvAsInt garbage = %d", got)
	}
	if got := GetEnvAsInt("CANONKEEPER_TEST_INT_MISSING", 7, log); got != 7 {
		t.Fatalf("GetEnvAsInt missing = %d", got)
	}
}
