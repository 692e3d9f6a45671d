package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gulcinmobile/newsengine/internal/translate"
)

// DefaultLanguage is used until the reader picks one.
const DefaultLanguage = "tr"

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Settings is what the reader has chosen.
type Settings struct {
	Language  string    `json:"language"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Prefs keeps reader settings in a JSON file
type Prefs struct {
	filePath string
	settings Settings
	mu       sync.RWMutex
}

func NewPrefs(filePath string) *Prefs {
	return &Prefs{
		filePath: filePath,
		settings: Settings{Language: DefaultLanguage},
	}
}

// Load reads settings from file. A missing or empty file keeps the defaults;
// an unknown language in the file falls back to DefaultLanguage.
func (p *Prefs) Load() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(p.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if !translate.Supported(s.Language) {
		s.Language = DefaultLanguage
	}
	p.settings = s
	return nil
}

// Save writes settings to file via a temp file and rename.
func (p *Prefs) Save() error {
	p.mu.RLock()
	s := p.settings
	p.mu.RUnlock()
	return p.write(s)
}

func (p *Prefs) write(s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if dir := filepath.Dir(p.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings dir: %w", err)
		}
	}
	tmp := p.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, p.filePath); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

func (p *Prefs) Settings() Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

func (p *Prefs) Language() string {
	return p.Settings().Language
}

// SetLanguage validates and persists the selected language.
func (p *Prefs) SetLanguage(code string) error {
	if !translate.Supported(code) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	next := Settings{Language: code, UpdatedAt: time.Now().UTC()}
	if err := p.write(next); err != nil {
		return err
	}
	p.settings = next
	return nil
}
