package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransport("http://localhost:4000", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "localhost:4000")
}

func TestProtocolError(t *testing.T) {
	err := NewProtocol("/api/search", 502, "bad gateway")

	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Contains(t, err.Error(), "/api/search")
}

func TestDataErrorAs(t *testing.T) {
	wrapped := fmt.Errorf("load dataset: %w", NewDataWrap("no test cases", errors.New("empty file")))

	var de *DataError
	require.ErrorAs(t, wrapped, &de)
	assert.Equal(t, "no test cases", de.Message)
	assert.Equal(t, "no test cases: empty file", de.Error())
}
