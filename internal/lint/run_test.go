package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxvg/oxvg-go/internal/diagnostic"
)

func kinds(t *testing.T, report *diagnostic.Report) []string {
	t.Helper()
	var out []string
	for _, d := range report.Diagnostics {
		out = append(out, d.Kind)
	}
	return out
}

func TestRunDefaultConfigFindsNothingOnCleanDocument(t *testing.T) {
	report, err := Run(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect x="1" y="2"/></svg>`, "clean.svg", DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, report.Diagnostics)
}

func TestRunNoInvalidAttrValue(t *testing.T) {
	report, err := Run(`<svg xmlns="http://www.w3.org/2000/svg"><rect cursor="not-a-cursor"/></svg>`, "bad.svg", DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, kinds(t, report), "InvalidAttributeValue")
}

func TestRunNoInvalidAttrValueOffSkipsRule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoInvalidAttrValue = diagnostic.SeverityOff
	report, err := Run(`<svg xmlns="http://www.w3.org/2000/svg"><rect cursor="not-a-cursor"/></svg>`, "bad.svg", cfg)
	require.NoError(t, err)
	assert.NotContains(t, kinds(t, report), "InvalidAttributeValue")
}

func TestRunNoUnknownElements(t *testing.T) {
	report, err := Run(`<svg xmlns="http://www.w3.org/2000/svg"><bogus/></svg>`, "unknown.svg", DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, kinds(t, report), "UnknownElement")
}

func TestRunNoXLink(t *testing.T) {
	report, err := Run(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"><use xlink:href="#a"/></svg>`, "xlink.svg", DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, kinds(t, report), "DeprecatedXLink")
}
