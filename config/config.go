package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatcatfablab/hwbot/homework"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultInterval = 600 * time.Second
	DefaultTimeout  = 30 * time.Second

	NotifierTelegram = "telegram"
	NotifierSlack    = "slack"

	keyAPIToken     = "practicumToken"
	keyBotToken     = "botToken"
	keyChatID       = "chatId"
	keyEndpoint     = "endpoint"
	keyInterval     = "interval"
	keyTimeout      = "timeout"
	keyNotifier     = "notifier"
	keyCursor       = "cursor"
	keySilent       = "silent"
	keyReportErrors = "reportErrors"
)

var (
	ErrMissingCredentials = errors.New("missing required environment variables")
	ErrInvalid            = errors.New("invalid configuration")

	// Environment variables each credential is read from, in precedence order.
	envAPIToken = []string{"PRACTICUM_TOKEN"}
	envBotToken = []string{"TOKEN", "TELEGRAM_TOKEN"}
	envChatID   = []string{"CHAT_ID", "TELEGRAM_CHAT_ID"}
)

// CursorPolicy decides what happens to the from_date cursor after a poll.
type CursorPolicy string

const (
	// CursorFixed keeps the startup time for the whole process lifetime.
	CursorFixed CursorPolicy = "fixed"
	// CursorAdvance moves the cursor forward once nothing is left to notify.
	CursorAdvance CursorPolicy = "advance"
)

type Config struct {
	APIToken string
	BotToken string
	ChatID   string

	Endpoint     string
	Interval     time.Duration
	Timeout      time.Duration
	Notifier     string
	Cursor       CursorPolicy
	Silent       bool
	ReportErrors bool

	Verdicts homework.Verdicts
}

// RegisterFlags adds the tunables to fs. Credentials are environment only.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(keyEndpoint, DefaultEndpoint, "Homework statuses endpoint")
	fs.Duration(keyInterval, DefaultInterval, "Time between polls")
	fs.Duration(keyTimeout, DefaultTimeout, "HTTP request timeout, 0 for none")
	fs.String(keyNotifier, NotifierTelegram, "Where to send notifications: telegram or slack")
	fs.String(keyCursor, string(CursorFixed), "from_date update policy: fixed or advance")
	fs.Bool(keySilent, false, "Log notifications instead of sending them")
	fs.Bool(keyReportErrors, true, "Send polling failures to the chat")
}

// Load reads the configuration from fs and the environment. It does not
// check the credentials; see Check.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("error binding flags: %w", err)
	}
	for key, envs := range map[string][]string{
		keyAPIToken: envAPIToken,
		keyBotToken: envBotToken,
		keyChatID:   envChatID,
	} {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return Config{}, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	cfg := Config{
		APIToken:     strings.TrimSpace(v.GetString(keyAPIToken)),
		BotToken:     strings.TrimSpace(v.GetString(keyBotToken)),
		ChatID:       strings.TrimSpace(v.GetString(keyChatID)),
		Endpoint:     v.GetString(keyEndpoint),
		Interval:     v.GetDuration(keyInterval),
		Timeout:      v.GetDuration(keyTimeout),
		Notifier:     strings.ToLower(v.GetString(keyNotifier)),
		Cursor:       CursorPolicy(strings.ToLower(v.GetString(keyCursor))),
		Silent:       v.GetBool(keySilent),
		ReportErrors: v.GetBool(keyReportErrors),
		Verdicts:     homework.DefaultVerdicts(),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Notifier {
	case NotifierTelegram, NotifierSlack:
	default:
		return fmt.Errorf("%w: unknown notifier %q", ErrInvalid, c.Notifier)
	}

	switch c.Cursor {
	case CursorFixed, CursorAdvance:
	default:
		return fmt.Errorf("%w: unknown cursor policy %q", ErrInvalid, c.Cursor)
	}

	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %s", ErrInvalid, c.Interval)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %s", ErrInvalid, c.Timeout)
	}
	if c.Endpoint == "" {
		return fmt.Errorf("%w: empty endpoint", ErrInvalid)
	}
	return nil
}

// Missing lists the environment variables of every unset credential.
func (c Config) Missing() []string {
	var missing []string
	if c.APIToken == "" {
		missing = append(missing, envAPIToken[0])
	}
	if c.BotToken == "" {
		missing = append(missing, envBotToken[0])
	}
	if c.ChatID == "" {
		missing = append(missing, envChatID[0])
	}
	return missing
}

// Check fails with ErrMissingCredentials unless all three credentials are set.
func (c Config) Check() error {
	if missing := c.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}
