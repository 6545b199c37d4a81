// Package localization loads the language packs that drive greeting
// detection, canned replies, response-language instructions and
// user-facing status messages. Built-in packs are embedded; packs from
// a user directory merge over them, so a deployment can reword any
// string or add a language without rebuilding.
package localization

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/localization/packs"
	"github.com/docentlabs/docent-cli/internal/logger"
)

// fallbackLanguage backs Message lookups for untranslated keys.
const fallbackLanguage = "en"

// Catalog holds the merged language packs: one profile per language for
// the prompt builder, plus per-language message tables for rendering
// answer categories and other status text.
type Catalog struct {
	profiles map[string]domain.LanguageProfile
	messages map[string]map[string]string
}

// pack is the on-disk shape of one language pack file. RTL is a
// pointer so an override file that omits it leaves the built-in value
// alone.
type pack struct {
	Code          string            `yaml:"code"`
	Name          string            `yaml:"name"`
	RTL           *bool             `yaml:"rtl"`
	Instruction   string            `yaml:"instruction"`
	Greetings     []string          `yaml:"greetings"`
	GreetingReply string            `yaml:"greeting_reply"`
	AndMore       string            `yaml:"and_more"`
	Messages      map[string]string `yaml:"messages"`
}

func (p *pack) validate() error {
	if strings.TrimSpace(p.Code) == "" {
		return errors.New("missing language code")
	}
	if p.GreetingReply != "" {
		if !strings.Contains(p.GreetingReply, "%d") || !strings.Contains(p.GreetingReply, "%s") {
			return errors.New("greeting_reply must reference the document count (%d) and list (%s)")
		}
	}
	return nil
}

// Load builds a catalog from the embedded language packs. A malformed
// built-in pack is a build defect and fails hard.
func Load() (*Catalog, error) {
	c := &Catalog{
		profiles: make(map[string]domain.LanguageProfile),
		messages: make(map[string]map[string]string),
	}

	entries, err := fs.ReadDir(packs.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("reading built-in language packs: %w", err)
	}
	for _, entry := range entries {
		data, err := fs.ReadFile(packs.FS, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading language pack %s: %w", entry.Name(), err)
		}
		if err := c.merge(data); err != nil {
			return nil, fmt.Errorf("language pack %s: %w", entry.Name(), err)
		}
	}
	return c, nil
}

// MergeDir merges user language packs from dir over the catalog. A
// missing directory is fine; a malformed pack file is logged and
// skipped so one bad override never takes the others down.
func (c *Catalog) MergeDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading language pack directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isPackFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping language pack %s: %v", path, err)
			continue
		}
		if err := c.merge(data); err != nil {
			logger.Warn("Skipping language pack %s: %v", path, err)
			continue
		}
		logger.Debug("Merged language pack %s", path)
	}
	return nil
}

// merge parses one pack and applies it over any existing entry for the
// same code. Only the fields a pack sets override; its messages merge
// key by key.
func (c *Catalog) merge(data []byte) error {
	var p pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return err
	}
	if err := p.validate(); err != nil {
		return err
	}

	profile := c.profiles[p.Code]
	profile.Code = p.Code
	if p.Name != "" {
		profile.Name = p.Name
	}
	if p.RTL != nil {
		profile.RTL = *p.RTL
	}
	if p.Instruction != "" {
		profile.Instruction = p.Instruction
	}
	if len(p.Greetings) > 0 {
		profile.Greetings = p.Greetings
	}
	if p.GreetingReply != "" {
		profile.GreetingReply = p.GreetingReply
	}
	if p.AndMore != "" {
		profile.AndMore = p.AndMore
	}
	c.profiles[p.Code] = profile

	if len(p.Messages) > 0 {
		msgs := c.messages[p.Code]
		if msgs == nil {
			msgs = make(map[string]string, len(p.Messages))
		}
		for key, text := range p.Messages {
			msgs[key] = text
		}
		c.messages[p.Code] = msgs
	}
	return nil
}

// Profiles returns a copy of the language table, keyed by code.
func (c *Catalog) Profiles() map[string]domain.LanguageProfile {
	out := make(map[string]domain.LanguageProfile, len(c.profiles))
	for code, profile := range c.profiles {
		out[code] = profile
	}
	return out
}

// Profile returns the profile for code.
func (c *Catalog) Profile(code string) (domain.LanguageProfile, bool) {
	profile, ok := c.profiles[code]
	return profile, ok
}

// Message returns the text for key in lang, falling back to English and
// finally to the key itself so a missing translation never renders as
// an empty string.
func (c *Catalog) Message(lang, key string) string {
	if msgs, ok := c.messages[lang]; ok {
		if text, ok := msgs[key]; ok {
			return text
		}
	}
	if msgs, ok := c.messages[fallbackLanguage]; ok {
		if text, ok := msgs[key]; ok {
			return text
		}
	}
	return key
}

// Languages returns the supported language codes, sorted.
func (c *Catalog) Languages() []string {
	codes := make([]string, 0, len(c.profiles))
	for code := range c.profiles {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func isPackFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
