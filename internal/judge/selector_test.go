package judge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcmap/evalkit/internal/dataset"
	"github.com/srcmap/evalkit/internal/srcmap"
)

type fakeJudge struct{ name string }

func (f *fakeJudge) Name() string { return f.name }
func (f *fakeJudge) ScoreCase(context.Context, dataset.TestCase, []srcmap.Card) (Scores, error) {
	return Scores{}, nil
}

func backendFor(t *testing.T, name, envKey string, initErr error) Backend {
	t.Helper()
	return Backend{
		Name:   name,
		EnvKey: envKey,
		New: func(apiKey string) (Judge, error) {
			if initErr != nil {
				return nil, initErr
			}
			return &fakeJudge{name: name}, nil
		},
	}
}

func TestSelectPriorityOrder(t *testing.T) {
	t.Setenv("TEST_KEY_A", "key-a")
	t.Setenv("TEST_KEY_B", "key-b")

	j := Select([]Backend{
		backendFor(t, "first", "TEST_KEY_A", nil),
		backendFor(t, "second", "TEST_KEY_B", nil),
	})

	require.NotNil(t, j)
	assert.Equal(t, "first", j.Name())
}

func TestSelectSkipsMissingCredential(t *testing.T) {
	t.Setenv("TEST_KEY_A", "")
	t.Setenv("TEST_KEY_B", "key-b")

	j := Select([]Backend{
		backendFor(t, "first", "TEST_KEY_A", nil),
		backendFor(t, "second", "TEST_KEY_B", nil),
	})

	require.NotNil(t, j)
	assert.Equal(t, "second", j.Name())
}

func TestSelectSkipsFailingInit(t *testing.T) {
	t.Setenv("TEST_KEY_A", "key-a")
	t.Setenv("TEST_KEY_B", "key-b")

	j := Select([]Backend{
		backendFor(t, "first", "TEST_KEY_A", errors.New("bad credential")),
		backendFor(t, "second", "TEST_KEY_B", nil),
	})

	require.NotNil(t, j)
	assert.Equal(t, "second", j.Name())
}

func TestSelectNoneUsable(t *testing.T) {
	t.Setenv("TEST_KEY_A", "")

	j := Select([]Backend{backendFor(t, "first", "TEST_KEY_A", nil)})
	assert.Nil(t, j)
}

func TestDefaultBackendsOrder(t *testing.T) {
	backends := DefaultBackends()
	require.Len(t, backends, 3)
	assert.Equal(t, "deepseek", backends[0].Name)
	assert.Equal(t, "openai", backends[1].Name)
	assert.Equal(t, "gemini", backends[2].Name)
}
