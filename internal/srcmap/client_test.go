package srcmap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcmap/evalkit/internal/apperr"
)

func TestSearchResultsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "billing flow", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"results": [{"title": "Billing overview", "flow": "Billing", "score": 0.92}], "cacheHit": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.Search(context.Background(), "billing flow", 10)
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, "Billing overview", res.Cards[0].Title)
	assert.True(t, res.CacheHit)
}

func TestSearchCardsAlias(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cards": [{"title": "A"}, {"title": "B"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Len(t, res.Cards, 2)
	assert.False(t, res.CacheHit)
}

func TestSearchProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Search(context.Background(), "q", 10)

	var pe *apperr.ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusInternalServerError, pe.Status)
}

func TestSearchTransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	_, err := c.Search(context.Background(), "q", 10)

	var te *apperr.TransportError
	require.ErrorAs(t, err, &te)
}

func TestHealthAndCatalogue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			w.Write([]byte(`{"cards": 120, "flows": 14}`))
		case "/api/flows":
			w.Write([]byte(`[{"flow": "Billing", "cardCount": 12, "fileCount": 30, "repos": "api,web"}]`))
		case "/api/cards":
			assert.Equal(t, "Billing", r.URL.Query().Get("flow"))
			w.Write([]byte(`[{"title": "Invoice model", "card_type": "model"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, h.Cards)
	assert.Equal(t, 14, h.Flows)

	flows, err := c.Flows(context.Background())
	require.NoError(t, err)
	require.Len(t, flows, 1)
	assert.Equal(t, []string{"api", "web"}, []string(flows[0].Repos))

	cards, err := c.FlowCards(context.Background(), "Billing")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "model", cards[0].CardType)
}
