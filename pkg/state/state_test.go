package state

import (
	"context"
	"log"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEnvFromContext(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil || env.Log != nil {
		t.Fatal("Expected an environment without a logger until one is prepared")
	}
	if EnvFromContext(ctx) != env {
		t.Error("Expected the same environment on every lookup")
	}
	time.Sleep(time.Millisecond)
	if env.Uptime() <= 0 {
		t.Error("Expected uptime to advance")
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic without an environment")
		}
	}()
	EnvFromContext(context.Background())
}

func TestRedirectStdLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Log = zap.New(core)

	env.RedirectStdLog()
	log.Print("from the standard logger")
	env.RestoreStdLog()
	env.RestoreStdLog()

	if logs.FilterMessage("from the standard logger").Len() != 1 {
		t.Errorf("Expected the standard log line to reach zap, got %v", logs.All())
	}
}
