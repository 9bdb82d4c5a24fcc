package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("error parsing flags: %s", err)
	}
	return fs
}

func setCredentials(t *testing.T, api, bot, chat string) {
	t.Helper()
	t.Setenv("PRACTICUM_TOKEN", api)
	t.Setenv("TOKEN", bot)
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("CHAT_ID", chat)
	t.Setenv("TELEGRAM_CHAT_ID", "")
}

func TestLoadDefaults(t *testing.T) {
	setCredentials(t, "api", "bot", "42")

	cfg, err := Load(newFlags(t))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cfg.APIToken != "api" || cfg.BotToken != "bot" || cfg.ChatID != "42" {
		t.Errorf("credentials not loaded: %+v", cfg)
	}
	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("unexpected endpoint %q", cfg.Endpoint)
	}
	if cfg.Interval != 10*time.Minute {
		t.Errorf("unexpected interval %s", cfg.Interval)
	}
	if cfg.Notifier != NotifierTelegram || cfg.Cursor != CursorFixed {
		t.Errorf("unexpected notifier/cursor: %q/%q", cfg.Notifier, cfg.Cursor)
	}
	if !cfg.ReportErrors || cfg.Silent {
		t.Errorf("unexpected reportErrors/silent: %t/%t", cfg.ReportErrors, cfg.Silent)
	}
	if len(cfg.Verdicts) != 3 {
		t.Errorf("expected three verdicts, got %d", len(cfg.Verdicts))
	}
	if err := cfg.Check(); err != nil {
		t.Errorf("unexpected check error: %s", err)
	}
}

func TestLoadFlags(t *testing.T) {
	setCredentials(t, "api", "bot", "C123")

	cfg, err := Load(newFlags(t,
		"--interval=1m",
		"--notifier=slack",
		"--cursor=advance",
		"--silent",
		"--reportErrors=false",
	))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if cfg.Interval != time.Minute {
		t.Errorf("unexpected interval %s", cfg.Interval)
	}
	if cfg.Notifier != NotifierSlack || cfg.Cursor != CursorAdvance {
		t.Errorf("unexpected notifier/cursor: %q/%q", cfg.Notifier, cfg.Cursor)
	}
	if !cfg.Silent || cfg.ReportErrors {
		t.Errorf("unexpected silent/reportErrors: %t/%t", cfg.Silent, cfg.ReportErrors)
	}
}

func TestLoadAlternateEnv(t *testing.T) {
	setCredentials(t, "api", "", "")
	t.Setenv("TELEGRAM_TOKEN", "bot")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(newFlags(t))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if cfg.BotToken != "bot" || cfg.ChatID != "42" {
		t.Errorf("alternate variables not honoured: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	setCredentials(t, "api", "bot", "42")

	for _, tt := range []struct {
		name string
		args []string
	}{
		{name: "Unknown notifier", args: []string{"--notifier=carrier-pigeon"}},
		{name: "Unknown cursor", args: []string{"--cursor=backwards"}},
		{name: "Zero interval", args: []string{"--interval=0s"}},
		{name: "Empty endpoint", args: []string{"--endpoint="}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newFlags(t, tt.args...))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	for _, tt := range []struct {
		name        string
		cfg         Config
		wantMissing []string
	}{
		{
			name: "All set",
			cfg:  Config{APIToken: "a", BotToken: "b", ChatID: "c"},
		},
		{
			name:        "Missing api token",
			cfg:         Config{BotToken: "b", ChatID: "c"},
			wantMissing: []string{"PRACTICUM_TOKEN"},
		},
		{
			name:        "Nothing set",
			cfg:         Config{},
			wantMissing: []string{"PRACTICUM_TOKEN", "TOKEN", "CHAT_ID"},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Check()
			if len(tt.wantMissing) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %s", err)
				}
				return
			}

			if !errors.Is(err, ErrMissingCredentials) {
				t.Fatalf("expected ErrMissingCredentials, got %v", err)
			}
			for _, name := range tt.wantMissing {
				if !strings.Contains(err.Error(), name) {
					t.Errorf("error %q does not name %s", err, name)
				}
			}
		})
	}
}

func TestLoadMissingIsNotAnError(t *testing.T) {
	setCredentials(t, "", "", "")

	cfg, err := Load(newFlags(t))
	if err != nil {
		t.Fatalf("Load must leave credential checks to Check: %s", err)
	}
	if !errors.Is(cfg.Check(), ErrMissingCredentials) {
		t.Error("expected missing credentials")
	}
}
