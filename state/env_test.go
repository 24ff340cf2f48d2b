package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/charmap"

	"p2t/config"
)

func TestEnvFromContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ctx := ContextWithEnv(context.Background())

		env := EnvFromContext(ctx)
		if env == nil {
			t.Fatal("EnvFromContext() returned nil")
		}
		if env.start.IsZero() {
			t.Error("Environment start time not set")
		}
	})

	t.Run("panic on missing env", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic when env not in context")
			}
		}()
		EnvFromContext(context.Background())
	})
}

func TestLocalEnv_Uptime(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)

	time.Sleep(10 * time.Millisecond)
	uptime := env.Uptime()

	if uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
	if uptime > 1*time.Second {
		t.Errorf("Uptime() = %v, unexpectedly large", uptime)
	}
}

func TestLocalEnv_StdLogRedirect(t *testing.T) {
	t.Run("redirect and restore cycles", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}
		for i := 0; i < 3; i++ {
			env.RedirectStdLog()
			if env.restoreStdLog == nil {
				t.Errorf("Iteration %d: restoreStdLog not set", i)
			}
			env.RestoreStdLog()
		}
	})

	t.Run("without logger", func(t *testing.T) {
		env := &LocalEnv{}

		// must not panic
		env.RedirectStdLog()
		if env.restoreStdLog != nil {
			t.Error("Expected restoreStdLog to remain nil")
		}
		env.RestoreStdLog()
	})

	t.Run("restore without redirect", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}

		// must not panic
		env.RestoreStdLog()
	})
}

func TestLocalEnv_ConversionSetup(t *testing.T) {
	// the way the convert subcommand populates env before processing
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)

	env.Cfg = &config.Config{Version: 1}
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	env.Rpt = &config.Report{}
	env.Edition = config.EditionTypeTranslation
	env.CodePage = charmap.Windows1251
	env.NoDirs = true

	again := EnvFromContext(ctx)
	if again != env {
		t.Fatal("EnvFromContext() must return the same environment")
	}
	if again.Edition != config.EditionTypeTranslation {
		t.Errorf("Edition = %v, want translation", again.Edition)
	}
	if again.CodePage != charmap.Windows1251 {
		t.Error("CodePage not carried through context")
	}
	if !again.NoDirs || again.Overwrite {
		t.Error("Flags not carried through context")
	}
}
