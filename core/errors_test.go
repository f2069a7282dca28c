package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	err := Error(EFORMAT, "No transformations in file")
	assert.Equal(t, EFORMAT, Code(err))
	assert.Equal(t, "No transformations in file", UserMessage(err))
	assert.True(t, Is(err, EFORMAT))
	assert.False(t, Is(err, ESYNTAX))
	//
	wrapped := fmt.Errorf("loading rules: %w", err)
	assert.Equal(t, EFORMAT, Code(wrapped))
	assert.Equal(t, "No transformations in file", UserMessage(wrapped))
}

func TestNilAndForeignErrors(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
	assert.False(t, Is(nil, NOERROR))
	//
	foreign := errors.New("boom")
	assert.Equal(t, EINTERNAL, Code(foreign))
	assert.Equal(t, "internal error", UserMessage(foreign))
}

func TestWrapError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := WrapError(cause, EFORMAT, "Invalid XML syntax")
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Invalid XML syntax", UserMessage(err))
	//
	err = ErrorWithCode(nil, ESPLIT)
	assert.Equal(t, ESPLIT, Code(err))
	assert.Equal(t, "invalid split", UserMessage(err))
}
