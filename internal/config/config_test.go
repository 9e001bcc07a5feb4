package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/mbsearch/analyzer"
	"github.com/npillmayer/mbsearch/similarity"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// listConf adds key enumeration to a test configuration.
type listConf struct {
	testconfig.Conf
}

func (c listConf) Keys() []string {
	keys := make([]string, 0, len(c.Conf))
	for k := range c.Conf {
		keys = append(keys, k)
	}
	return keys
}

func TestDefaults(t *testing.T) {
	s, err := FromConfiguration(testconfig.Conf{})
	if err != nil {
		t.Fatal(err)
	}
	if s.MaxTokenLength != 255 || s.PositionGap != 100 || s.PoolMaxIdle != 8 {
		t.Errorf("unexpected defaults %+v", s)
	}
	if s.Registry.Default() != analyzer.EntityName {
		t.Errorf("expected default profile entity-name, have %s", s.Registry.Default().Name)
	}
	if _, ok := s.Scorer.Rule("alias"); !ok {
		t.Errorf("expected standard rule for field alias")
	}
}

func TestFromConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mbsearch.config")
	defer teardown()
	//
	conf := listConf{testconfig.Conf{
		"analysis.maxtokenlength":          128,
		"analysis.defaultprofile":          "keyword-exact",
		"analysis.fields.label":            "title",
		"similarity.tfscope":               "rule-fields",
		"similarity.rules.tag.threshold":   "4",
		"similarity.rules.track.threshold": "9",
		"similarity.rules.track.frozen":    "0.25",
		"similarity.rules.alias.threshold": "5",
	}}
	s, err := FromConfiguration(conf)
	if err != nil {
		t.Fatal(err)
	}
	if s.MaxTokenLength != 128 {
		t.Errorf("expected max token length 128, have %d", s.MaxTokenLength)
	}
	if s.Registry.Lookup("label") != analyzer.Title || s.Registry.Lookup("x") != analyzer.KeywordExact {
		t.Errorf("unexpected field profiles")
	}
	if s.Scorer.TermFrequencyScope() != similarity.ScopeRuleFields {
		t.Errorf("expected tf scope rule-fields")
	}
	if r, _ := s.Scorer.Rule("tag"); r.Threshold != 4 || r.Frozen != 0.5 {
		t.Errorf("unexpected rule for tag: %+v", r)
	}
	if r, _ := s.Scorer.Rule("track"); r.Threshold != 9 || r.Frozen != 0.25 {
		t.Errorf("unexpected rule for track: %+v", r)
	}
	if r, _ := s.Scorer.Rule("alias"); r.Threshold != 5 {
		t.Errorf("expected configured rule to replace standard rule, have %+v", r)
	}
}

func TestInvalidConfiguration(t *testing.T) {
	for _, conf := range []listConf{
		{testconfig.Conf{"analysis.maxtokenlength": 0}},
		{testconfig.Conf{"analysis.positiongap": -1}},
		{testconfig.Conf{"analysis.fields.artist": "stemming"}},
		{testconfig.Conf{"analysis.defaultprofile": "stemming"}},
		{testconfig.Conf{"similarity.tfscope": "sometimes"}},
		{testconfig.Conf{"similarity.rules.alias.threshold": "many"}},
		{testconfig.Conf{"similarity.rules.alias.threshold": "3", "similarity.rules.alias.frozen": "-1"}},
	} {
		if _, err := FromConfiguration(conf); err == nil {
			t.Errorf("expected error for %v", conf.Conf)
		}
	}
	_, err := FromConfiguration(listConf{testconfig.Conf{"analysis.fields.artist": "stemming"}})
	if !errors.Is(err, analyzer.ErrUnknownProfile) {
		t.Errorf("expected ErrUnknownProfile, have %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mbsearch.yaml")
	yml := "analysis:\n  positiongap: 50\n  fields:\n    label: title\npool:\n  maxidle: 2\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MBSEARCH_ANALYSIS_MAXTOKENLENGTH", "64")
	conf, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	s, err := FromConfiguration(conf)
	if err != nil {
		t.Fatal(err)
	}
	if s.PositionGap != 50 || s.PoolMaxIdle != 2 || s.MaxTokenLength != 64 {
		t.Errorf("unexpected settings %+v", s)
	}
	if s.Registry.Lookup("label") != analyzer.Title {
		t.Errorf("expected field label to use profile title")
	}
	if conf.GetString("tracing.adapter") != "go" {
		t.Errorf("expected default tracing adapter")
	}
}

func TestLoadNestedText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mbsearch.nt")
	nt := "analysis:\n    defaultprofile: title\nsimilarity:\n    tfscope: rule-fields\n"
	if err := os.WriteFile(path, []byte(nt), 0o644); err != nil {
		t.Fatal(err)
	}
	conf, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	s, err := FromConfiguration(conf)
	if err != nil {
		t.Fatal(err)
	}
	if s.Registry.Default() != analyzer.Title {
		t.Errorf("expected default profile title, have %s", s.Registry.Default().Name)
	}
	if s.Scorer.TermFrequencyScope() != similarity.ScopeRuleFields {
		t.Errorf("expected tf scope rule-fields")
	}
}

func TestLoadUnknownFormat(t *testing.T) {
	if _, err := Load("settings.ini"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, have %v", err)
	}
}
