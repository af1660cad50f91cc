package signal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScanResultEnvelope(t *testing.T) {
	path := writeFile(t, "scan.json", `{
		"component_count": 12,
		"token_count": 30,
		"signals": [
			{
				"id": "sig-1",
				"type": "hardcoded-value",
				"severity": "warning",
				"source": {"entity_type": "component", "entity_id": "c1", "entity_name": "Button", "location": "src/Button.tsx:10"},
				"message": "Hardcoded color #3b82f6",
				"details": {"actual": "#3b82f6"}
			}
		]
	}`)

	result, err := LoadScanResult(path)
	require.NoError(t, err)
	assert.Equal(t, 12, result.ComponentCount)
	assert.Equal(t, 30, result.TokenCount)
	require.Len(t, result.Signals, 1)
	assert.Equal(t, TypeHardcodedValue, result.Signals[0].Type)
	assert.Equal(t, "#3b82f6", result.Signals[0].Actual())
}

func TestLoadScanResultBareArray(t *testing.T) {
	path := writeFile(t, "scan.json", `[
		{
			"id": "sig-1",
			"type": "unused-token",
			"severity": "info",
			"source": {"entity_type": "token", "entity_id": "t1", "entity_name": "color.old", "location": "tokens.css:3"},
			"message": "Token color.old is never used"
		}
	]`)

	result, err := LoadScanResult(path)
	require.NoError(t, err)
	assert.Zero(t, result.ComponentCount)
	require.Len(t, result.Signals, 1)
}

func TestLoadScanResultCanonicalizesSeverity(t *testing.T) {
	path := writeFile(t, "scan.json", `[
		{
			"id": "sig-1",
			"type": "hardcoded-value",
			"severity": "warn",
			"source": {"entity_type": "component", "entity_id": "c1", "entity_name": "Button", "location": "src/Button.tsx:10"},
			"message": "Hardcoded color"
		}
	]`)

	result, err := LoadScanResult(path)
	require.NoError(t, err)
	require.Len(t, result.Signals, 1)
	assert.Equal(t, SeverityWarning, result.Signals[0].Severity)
	assert.Equal(t, 2, result.Signals[0].Severity.Rank())
}

func TestLoadScanResultErrors(t *testing.T) {
	_, err := LoadScanResult(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := writeFile(t, "bad.json", `{not json`)
	_, err = LoadScanResult(bad)
	assert.Error(t, err)

	malformed := writeFile(t, "malformed.json", `[{"type": "", "severity": "info", "source": {"location": "a.ts"}}]`)
	_, err = LoadScanResult(malformed)
	assert.Error(t, err)
}
