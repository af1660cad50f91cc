package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "invalid configuration")
	assert.Equal(t, "[CONFIG-002] invalid configuration", err.Error())
}

func TestErrorWithCause(t *testing.T) {
	cause := stderrors.New("yaml: line 3: mapping values are not allowed")
	err := Wrap(ErrCodeConfigUnmarshal, "failed to parse config", cause)

	assert.Contains(t, err.Error(), "[CONFIG-003] failed to parse config: yaml: line 3")
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, stderrors.Is(err, cause))
}

func TestErrorWithSuggestionsAndDocs(t *testing.T) {
	err := New(ErrCodeSignalsNotFound, "signals file not found").
		WithSuggestion("Run your scanner first").
		WithSuggestions("Check the path", "Check permissions").
		WithDocs("https://example.com/docs")

	out := err.Error()
	assert.Contains(t, out, "Suggestions:")
	assert.Contains(t, out, "• Run your scanner first")
	assert.Contains(t, out, "• Check the path")
	assert.Contains(t, out, "Documentation: https://example.com/docs")
	assert.Len(t, err.Suggestions, 3)
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeFileWriteFailed, "failed to write file")
	wrapped := fmt.Errorf("saving ignore list: %w", inner)

	var driftErr *DriftError
	require.True(t, stderrors.As(wrapped, &driftErr))
	assert.Equal(t, ErrCodeFileWriteFailed, driftErr.Code)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *DriftError
		wantCode ErrorCode
	}{
		{"config not found", NewConfigNotFoundError(".dsdrift.yaml"), ErrCodeConfigNotFound},
		{"config invalid", NewConfigInvalidError("unknown severity"), ErrCodeConfigInvalid},
		{"signals not found", NewSignalsNotFoundError("scan.json"), ErrCodeSignalsNotFound},
		{"signals unmarshal", NewSignalsUnmarshalError("scan.json", stderrors.New("bad json")), ErrCodeSignalsUnmarshal},
		{"signal malformed", NewSignalMalformedError(3, "missing type"), ErrCodeSignalMalformed},
		{"unknown strategy", NewUnknownStrategyError("vibes"), ErrCodeUnknownStrategy},
		{"file write", NewFileWriteError("out.json", stderrors.New("permission denied")), ErrCodeFileWriteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.NotEmpty(t, tt.err.Suggestions, "constructors should always suggest a fix")
		})
	}
}

func TestSignalMalformedIncludesIndex(t *testing.T) {
	err := NewSignalMalformedError(7, "missing severity")
	assert.Contains(t, err.Error(), "malformed signal at index 7")
}
