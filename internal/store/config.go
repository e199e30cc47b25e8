package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultCurrentUser    = "Current User"
	DefaultSaveLatency    = 300 * time.Millisecond
	DefaultCommentLatency = 300 * time.Millisecond
)

type GlobalConfig struct {
	// CurrentUser is the display name attributed to comments written from this machine.
	CurrentUser string `json:"currentUser,omitempty"`

	// DBPath overrides the default SQLite location (~/.itemedit/items.sqlite).
	DBPath string `json:"dbPath,omitempty"`

	// ShowComments toggles the comment panel next to the editor form. Defaults to true.
	ShowComments *bool `json:"showComments,omitempty"`

	// Simulated latency before save/comment callbacks run, in milliseconds.
	SaveLatencyMS    *int `json:"saveLatencyMs,omitempty"`
	CommentLatencyMS *int `json:"commentLatencyMs,omitempty"`

	LogFile  string `json:"logFile,omitempty"`
	LogLevel string `json:"logLevel,omitempty"`

	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Theme is light|dark|auto.
	Theme string `json:"theme,omitempty"`
}

// Settings is the resolved configuration after defaults and env overrides.
type Settings struct {
	CurrentUser    string
	DBPath         string
	ShowComments   bool
	SaveLatency    time.Duration
	CommentLatency time.Duration
	LogFile        string
	LogLevel       string
	Theme          string
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.itemedit).
	if v := strings.TrimSpace(os.Getenv("ITEMEDIT_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".itemedit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// Resolve applies defaults, then ITEMEDIT_* env overrides. Flags are applied by the CLI afterwards.
func (cfg *GlobalConfig) Resolve() (Settings, error) {
	if cfg == nil {
		cfg = &GlobalConfig{}
	}
	dir, err := ConfigDir()
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		CurrentUser:    DefaultCurrentUser,
		DBPath:         filepath.Join(dir, "items.sqlite"),
		ShowComments:   true,
		SaveLatency:    DefaultSaveLatency,
		CommentLatency: DefaultCommentLatency,
		LogFile:        filepath.Join(dir, "itemedit.log"),
		LogLevel:       "info",
		Theme:          "auto",
	}
	if v := strings.TrimSpace(cfg.CurrentUser); v != "" {
		s.CurrentUser = v
	}
	if v := strings.TrimSpace(cfg.DBPath); v != "" {
		s.DBPath = v
	}
	if cfg.ShowComments != nil {
		s.ShowComments = *cfg.ShowComments
	}
	if cfg.SaveLatencyMS != nil && *cfg.SaveLatencyMS >= 0 {
		s.SaveLatency = time.Duration(*cfg.SaveLatencyMS) * time.Millisecond
	}
	if cfg.CommentLatencyMS != nil && *cfg.CommentLatencyMS >= 0 {
		s.CommentLatency = time.Duration(*cfg.CommentLatencyMS) * time.Millisecond
	}
	if v := strings.TrimSpace(cfg.LogFile); v != "" {
		s.LogFile = v
	}
	if v := strings.TrimSpace(cfg.LogLevel); v != "" {
		s.LogLevel = v
	}
	if cfg.TUI != nil && strings.TrimSpace(cfg.TUI.Theme) != "" {
		s.Theme = strings.ToLower(strings.TrimSpace(cfg.TUI.Theme))
	}

	if v := strings.TrimSpace(os.Getenv("ITEMEDIT_USER")); v != "" {
		s.CurrentUser = v
	}
	if v := strings.TrimSpace(os.Getenv("ITEMEDIT_DB")); v != "" {
		s.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("ITEMEDIT_SHOW_COMMENTS")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.ShowComments = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("ITEMEDIT_TUI_THEME")); v != "" {
		s.Theme = strings.ToLower(v)
	}
	return s, nil
}
