package ingest

import (
	"os"
	"path/filepath"

	"github.com/blobtoolkit/core/pkg/errcode"
	"github.com/blobtoolkit/core/pkg/ghubs"
	"github.com/blobtoolkit/core/pkg/gnerr"
	"gopkg.in/yaml.v3"
)

// LoadGHubsConfig reads the GenomeHubs config document at path and
// recursively pre-merges every config named in its file.needs, each
// resolved relative to the directory of the document that names it.
// Needs are merged in list order before the document's own fields are
// applied over the result, per ghubs.MergeNeeds's outer-wins rule.
func LoadGHubsConfig(path string) (*ghubs.Config, error) {
	return loadGHubsConfig(path, map[string]bool{})
}

func loadGHubsConfig(path string, seen map[string]bool) (*ghubs.Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if seen[abs] {
		return nil, &gnerr.Error{
			Code: errcode.ParseError,
			Msg:  "Config <em>%s</em> references itself via needs",
			Vars: []any{path},
		}
	}
	seen[abs] = true

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, openErr(path, err)
	}

	cfg := ghubs.New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &gnerr.Error{
			Code: errcode.SerdeError,
			Msg:  "Cannot parse GenomeHubs config <em>%s</em>",
			Vars: []any{path},
			Err:  err,
		}
	}

	if len(cfg.File.Needs) == 0 {
		return cfg, nil
	}

	needs := make([]*ghubs.Config, 0, len(cfg.File.Needs))
	for _, rel := range cfg.File.Needs {
		needPath := rel
		if !filepath.IsAbs(needPath) {
			needPath = filepath.Join(filepath.Dir(abs), rel)
		}
		needCfg, err := loadGHubsConfig(needPath, seen)
		if err != nil {
			return nil, err
		}
		needs = append(needs, needCfg)
	}

	return ghubs.MergeNeeds(cfg, needs), nil
}
