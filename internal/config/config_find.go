// config_find.go converts between the find.* keys and find-all settings.
//
// The find-all controller never reads config itself. Hosts build its
// Settings from FindSettings and persist changes through a Saver.

package config

import (
	"github.com/jpl-au/hive/internal/find"
	"github.com/jpl-au/hive/internal/findall"
)

var findKeyFlags = []struct {
	key  string
	flag find.Options
}{
	{"find.keys", find.SearchKeys},
	{"find.values", find.SearchValues},
	{"find.data", find.SearchData},
	{"find.whole_words", find.MatchWholeWords},
	{"find.match_case", find.MatchCase},
	{"find.std", find.SearchStdRegistry},
	{"find.real", find.SearchRealRegistry},
	{"find.selected", find.SearchSelected},
}

// FindSettings returns the effective find settings.
func (c *Config) FindSettings() findall.Settings {
	var o find.Options
	for _, kf := range findKeyFlags {
		o = o.Set(kf.flag, c.flag(kf.key))
	}
	return findall.Settings{Options: o, Append: c.flag("find.append")}
}

// SetFindSettings stores s in the find.* keys.
func (c *Config) SetFindSettings(s findall.Settings) {
	for _, kf := range findKeyFlags {
		p, _, _ := c.findFlag(kf.key)
		b := s.Options.Has(kf.flag)
		*p = &b
	}
	a := s.Append
	c.Find.Append = &a
}

// Saver writes find settings into one config scope.
type Saver struct {
	Scope Scope
}

var _ findall.Saver = Saver{}

// SaveSettings loads the scope's config, replaces its find keys and saves it.
func (s Saver) SaveSettings(st findall.Settings) error {
	cfg, err := LoadScope(s.Scope)
	if err != nil {
		return err
	}
	cfg.SetFindSettings(st)
	return cfg.Save()
}
