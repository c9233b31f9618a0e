package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srcmap/evalkit/internal/srcmap"
)

func cardsWithFlows(flows ...string) []srcmap.Card {
	cards := make([]srcmap.Card, len(flows))
	for i, f := range flows {
		cards[i] = srcmap.Card{Flow: f}
	}
	return cards
}

func TestScoreFlowHitRate(t *testing.T) {
	tests := []struct {
		name        string
		expected    []string
		results     []srcmap.Card
		wantRate    float64
		wantFound   []string
		wantMissing []string
	}{
		{
			name:        "partial hit",
			expected:    []string{"billing", "invoicing"},
			results:     cardsWithFlows("billing", "shipping"),
			wantRate:    0.5,
			wantFound:   []string{"billing"},
			wantMissing: []string{"invoicing"},
		},
		{
			name:        "case insensitive match",
			expected:    []string{"Billing"},
			results:     cardsWithFlows("BILLING"),
			wantRate:    1.0,
			wantFound:   []string{"billing"},
			wantMissing: nil,
		},
		{
			name:        "empty expected set is vacuously satisfied",
			expected:    nil,
			results:     cardsWithFlows("anything"),
			wantRate:    1.0,
			wantFound:   []string{},
			wantMissing: nil,
		},
		{
			name:        "no results",
			expected:    []string{"billing"},
			results:     nil,
			wantRate:    0.0,
			wantFound:   []string{},
			wantMissing: []string{"billing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Score(tt.expected, nil, tt.results)
			assert.InDelta(t, tt.wantRate, m.FlowHitRate, 1e-9)
			assert.Equal(t, tt.wantFound, m.FoundFlows)
			assert.Equal(t, tt.wantMissing, m.MissingFlows)
		})
	}
}

func TestScoreFileHitRate(t *testing.T) {
	results := []srcmap.Card{
		{Flow: "billing", SourceFiles: srcmap.FileList{"app/models/user_model.rb"}},
	}

	tests := []struct {
		name      string
		fragments []string
		want      float64
	}{
		{
			name:      "one of two fragments found",
			fragments: []string{"user_model", "auth_controller"},
			want:      0.5,
		},
		{
			name:      "fragment matched case insensitively",
			fragments: []string{"USER_MODEL"},
			want:      1.0,
		},
		{
			name:      "empty fragments are vacuously satisfied",
			fragments: nil,
			want:      1.0,
		},
		{
			name:      "nothing found",
			fragments: []string{"payments_service"},
			want:      0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Score(nil, tt.fragments, results)
			assert.InDelta(t, tt.want, m.FileHitRate, 1e-9)
		})
	}
}

func TestScorePrecisionAtK(t *testing.T) {
	t.Run("4 of 10 results relevant", func(t *testing.T) {
		results := cardsWithFlows(
			"billing", "billing", "invoicing", "invoicing",
			"shipping", "shipping", "shipping", "shipping", "shipping", "shipping",
		)
		m := Score([]string{"billing", "invoicing"}, nil, results)
		assert.InDelta(t, 0.4, m.PrecisionAtK, 1e-9)
		assert.Equal(t, 10, m.ResultCount)
	})

	t.Run("no results returned scores zero, not vacuous", func(t *testing.T) {
		m := Score([]string{"billing"}, nil, nil)
		assert.Equal(t, 0.0, m.PrecisionAtK)
		assert.Equal(t, 0, m.ResultCount)
	})

	t.Run("k is the returned count, not the requested limit", func(t *testing.T) {
		m := Score([]string{"billing"}, nil, cardsWithFlows("billing", "shipping", "shipping"))
		assert.Equal(t, 3, m.ResultCount)
		assert.InDelta(t, 1.0/3.0, m.PrecisionAtK, 1e-9)
	})
}

func TestScoreBounds(t *testing.T) {
	cases := [][]srcmap.Card{
		nil,
		cardsWithFlows("a"),
		cardsWithFlows("a", "b", "a"),
		{{Flow: "a", SourceFiles: srcmap.FileList{"x/y/z.go", "x/w.go"}}},
	}

	for _, results := range cases {
		m := Score([]string{"a", "b"}, []string{"y", "nowhere"}, results)
		for _, rate := range []float64{m.FlowHitRate, m.FileHitRate, m.PrecisionAtK} {
			assert.GreaterOrEqual(t, rate, 0.0)
			assert.LessOrEqual(t, rate, 1.0)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	results := []srcmap.Card{
		{Flow: "Billing", SourceFiles: srcmap.FileList{"app/billing.rb"}},
		{Flow: "Shipping", SourceFiles: srcmap.FileList{"app/shipping.rb"}},
	}

	first := Score([]string{"billing", "refunds"}, []string{"billing"}, results)
	second := Score([]string{"billing", "refunds"}, []string{"billing"}, results)
	assert.Equal(t, first, second)
}
