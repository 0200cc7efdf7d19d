package keywords

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File names expected inside the keyword config directory.
const (
	SectionKeywordsFile = "section_keywords.yml"
	HeaderKeywordsFile  = "header_keywords.yml"
	MetaKeywordsFile    = "jd_meta_keywords.yml"
	NoiseKeywordsFile   = "noise_keywords.yml"
	VocabFile           = "jd_vocab.yml"
	SkillVocabFile      = "skill_vocab.yml"
	SkillAliasFile      = "skill_alias.yml"
)

// Load reads every keyword file under dir and returns an immutable Registry.
// Missing files fail the load; the worker cannot run without its policy data.
func Load(dir string) (*Registry, error) {
	reg := &Registry{}

	if err := loadYAML(dir, SectionKeywordsFile, &reg.SectionKeywords); err != nil {
		return nil, err
	}
	for zone, kws := range reg.SectionKeywords {
		reg.SectionKeywords[zone] = lowerAll(kws)
	}

	var headerDoc struct {
		HeaderKeywords []string `yaml:"header_keywords"`
	}
	if err := loadYAML(dir, HeaderKeywordsFile, &headerDoc); err != nil {
		return nil, err
	}
	reg.HeaderKeywords = lowerAll(headerDoc.HeaderKeywords)

	var metaDoc struct {
		MetaKeywords []string `yaml:"meta_keywords"`
	}
	if err := loadYAML(dir, MetaKeywordsFile, &metaDoc); err != nil {
		return nil, err
	}
	reg.MetaKeywords = lowerAll(metaDoc.MetaKeywords)

	if err := loadYAML(dir, NoiseKeywordsFile, &reg.Noise); err != nil {
		return nil, err
	}
	reg.Noise.Exact = lowerAll(reg.Noise.Exact)
	reg.Noise.Prefix = lowerAll(reg.Noise.Prefix)
	reg.Noise.Suffix = lowerAll(reg.Noise.Suffix)
	reg.Noise.Navigation = lowerAll(reg.Noise.Navigation)

	var vocabDoc struct {
		Vocab []string `yaml:"vocab"`
	}
	if err := loadYAML(dir, VocabFile, &vocabDoc); err != nil {
		return nil, err
	}
	reg.Vocab = trimAll(vocabDoc.Vocab)

	if err := loadYAML(dir, SkillVocabFile, &reg.SkillVocab); err != nil {
		return nil, err
	}
	if err := loadYAML(dir, SkillAliasFile, &reg.SkillAlias); err != nil {
		return nil, err
	}

	reg.finish()
	return reg, nil
}

func loadYAML(dir, name string, out any) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
