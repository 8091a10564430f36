package types

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_MatchesByKind(t *testing.T) {
	err := Validationf("keystore.Create", "private key length %d", 31)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrParse))
	assert.Equal(t, "validation error in keystore.Create: private key length 31", err.Error())

	wrapped := fmt.Errorf("sign: %w", Encodingf("rlp.Decode", "truncated"))
	assert.True(t, errors.Is(wrapped, ErrEncoding))

	var e *Error
	require.True(t, errors.As(wrapped, &e))
	assert.Equal(t, KindEncoding, e.Kind)
	assert.Equal(t, "rlp.Decode", e.Op)
}

func TestWrapKind(t *testing.T) {
	assert.Nil(t, WrapKind(KindCrypto, "op", nil))

	err := WrapKind(KindCrypto, "signature.Recover", io.ErrUnexpectedEOF)
	assert.True(t, errors.Is(err, ErrCrypto))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Contains(t, err.Error(), "crypto error in signature.Recover")
}

func TestSchemaError(t *testing.T) {
	var se *SchemaError
	assert.NoError(t, se.ErrOrNil())

	se = &SchemaError{Subject: "keystore"}
	assert.NoError(t, se.ErrOrNil())

	se.Missing("address")
	se.Unexpected("comment")
	se.Mistyped("version", "integer")
	err := se.ErrOrNil()
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrParse))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t,
		"parse error in keystore: address: missing; comment: unexpected field; version: expected integer",
		err.Error())

	var got *SchemaError
	require.True(t, errors.As(fmt.Errorf("read: %w", err), &got))
	assert.Len(t, got.Issues, 3)
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "configuration", KindConfiguration.String())
	assert.Equal(t, "kind(42)", ErrorKind(42).String())
}
