package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"goscores/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsInnerCode(t *testing.T) {
	inner := SchemaError(core.NewMissingColumnError("lunch"))
	outer := Wrap(inner, "failed to load dataset")

	assert.Equal(t, CodeSchemaError, GetCode(outer))
	assert.True(t, stderrors.Is(outer, core.ErrMissingColumn))
	assert.Contains(t, outer.Error(), "lunch")
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	err := Wrapf(fmt.Errorf("boom"), "step %d", 2)
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Equal(t, "step 2: boom", err.Error())
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestGetCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("session", core.ErrSessionNotFound))
	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, fmt.Errorf("bad body"))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "bad body", err.Error())
}
