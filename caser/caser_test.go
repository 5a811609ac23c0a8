package caser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	cases := map[string][]string{
		"maxLabelSize":            {"max", "Label", "Size"},
		"ui.labelDistanceMin":     {"ui", "label", "Distance", "Min"},
		"Meditech Corp":           {"Meditech", "Corp"},
		"industry.allowSelfLoops": {"industry", "allow", "Self", "Loops"},
		"snake_case-and kebab":    {"snake", "case", "and", "kebab"},
		"net2Net":                 {"net2", "Net"},
		"":                        {},
	}
	for in, want := range cases {
		assert.Equal(t, want, New(in).Words(), in)
	}
}

func TestCasings(t *testing.T) {
	c := New("ui.maxLabelSize")
	assert.Equal(t, "UI_MAX_LABEL_SIZE", c.ScreamingSnakeCase())
	assert.Equal(t, "ui_max_label_size", c.SnakeCase())
	assert.Equal(t, "ui-max-label-size", c.KebabCase())
	assert.Equal(t, "UiMaxLabelSize", c.PascalCase())
	assert.Equal(t, "uiMaxLabelSize", c.CamelCase())
	assert.Equal(t, "meditech-corp", New("Meditech Corp").KebabCase())
	assert.Equal(t, "", New("").CamelCase())
}
