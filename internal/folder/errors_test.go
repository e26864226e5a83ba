package folder

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: app not found (app=a1)", NewNotFound("app", "a1").Error())
	assert.Equal(t, "CORRUPTION: checksum mismatch (id=folder/u1)",
		NewCorruption("folder/u1", "checksum mismatch").Error())
	assert.Equal(t, "PROTOCOL_VIOLATION: editor accessed before initialization",
		NewProtocolViolation("editor accessed before initialization").Error())
}

func TestErrorHelpers_Wrapped(t *testing.T) {
	err := fmt.Errorf("load revisions: %w", NewCorruption("folder/u1", "bad checksum"))
	assert.True(t, IsCorruption(err))
	assert.False(t, IsNotFound(err))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk gone")
	err := NewStoreUnavailable(cause)
	assert.True(t, IsStoreUnavailable(err))
	assert.ErrorIs(t, err, cause)
}

func TestErrorHelpers_NonTyped(t *testing.T) {
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}
