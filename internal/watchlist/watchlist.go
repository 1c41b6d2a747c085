// Package watchlist loads the company registry that drives a monitoring run.
package watchlist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Company is one monitored vendor with its announcement sources.
type Company struct {
	Name             string   `json:"name" yaml:"name"`
	BlogURL          string   `json:"blog_url" yaml:"blog_url"`
	PressURL         string   `json:"press_url" yaml:"press_url"`
	Keywords         []string `json:"keywords" yaml:"keywords"`
	ExcludedKeywords []string `json:"excluded_keywords" yaml:"excluded_keywords"`
}

// Sources returns the company's non-empty source URLs, blog first.
func (c Company) Sources() []string {
	var out []string
	if c.BlogURL != "" {
		out = append(out, c.BlogURL)
	}
	if c.PressURL != "" {
		out = append(out, c.PressURL)
	}
	return out
}

// Watchlist is the full registry: companies plus shared keyword lists that
// apply to every company on top of its own.
type Watchlist struct {
	Companies        []Company `json:"companies" yaml:"companies"`
	Keywords         []string  `json:"keywords" yaml:"keywords"`
	ExcludedKeywords []string  `json:"excluded_keywords" yaml:"excluded_keywords"`
}

// DefaultKeywords matches announcement vocabulary when the registry supplies
// no keyword list of its own.
var DefaultKeywords = []string{
	"launch", "release", "announce", "introduce", "unveil",
	"new feature", "now available", "general availability", "preview",
}

// Load reads a watchlist from a JSON or YAML file, chosen by extension.
// A missing or malformed file degrades to an empty registry so a bad config
// edit cannot take down a scheduled run.
func Load(path string) *Watchlist {
	wl, err := parse(path)
	if err != nil {
		zap.L().Error("watchlist load failed, using empty registry",
			zap.String("path", path),
			zap.Error(err))
		return &Watchlist{}
	}
	if len(wl.Keywords) == 0 {
		wl.Keywords = DefaultKeywords
	}
	return wl
}

func parse(path string) (*Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "watchlist: read %s", path)
	}

	var wl Watchlist
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &wl); err != nil {
			return nil, eris.Wrapf(err, "watchlist: parse yaml %s", path)
		}
	default:
		if err := json.Unmarshal(data, &wl); err != nil {
			return nil, eris.Wrapf(err, "watchlist: parse json %s", path)
		}
	}
	return &wl, nil
}
