package main

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcmap/evalkit/internal/apperr"
	"github.com/srcmap/evalkit/internal/dataset"
	"github.com/srcmap/evalkit/internal/srcmap"
)

func flowServer(t *testing.T, failFlow string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/cards", r.URL.Path)
		if r.URL.Query().Get("flow") == failFlow {
			http.Error(w, "index unavailable", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"title": "t", "content": "c", "card_type": "model", "source_files": ["app/models/invoice.rb"]}]`))
	}))
}

func TestBuildDataset(t *testing.T) {
	srv := flowServer(t, "")
	defer srv.Close()

	client := srcmap.NewClient(srv.URL)
	sampler := dataset.NewSampler(rand.New(rand.NewSource(1)))
	selected := []srcmap.Flow{
		{Name: "Billing", CardCount: 3},
		{Name: "Shipping", CardCount: 2},
	}

	ds, err := buildDataset(context.Background(), client, sampler, selected, "test run")
	require.NoError(t, err)
	assert.Equal(t, "test run", ds.Description)
	require.Len(t, ds.TestCases, 2)
	assert.Equal(t, "billing", ds.TestCases[0].ID)
	assert.Equal(t, "shipping", ds.TestCases[1].ID)
}

func TestBuildDatasetAbortsWhenCardsFail(t *testing.T) {
	srv := flowServer(t, "Shipping")
	defer srv.Close()

	client := srcmap.NewClient(srv.URL)
	sampler := dataset.NewSampler(rand.New(rand.NewSource(1)))
	selected := []srcmap.Flow{
		{Name: "Billing", CardCount: 3},
		{Name: "Shipping", CardCount: 2},
	}

	ds, err := buildDataset(context.Background(), client, sampler, selected, "test run")

	// One unreachable flow aborts generation instead of producing a
	// quietly smaller dataset.
	require.Error(t, err)
	assert.Nil(t, ds)
	var pe *apperr.ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), "Shipping")
}

func TestBuildDatasetAbortsOnTransportFailure(t *testing.T) {
	client := srcmap.NewClient("http://127.0.0.1:1")
	sampler := dataset.NewSampler(rand.New(rand.NewSource(1)))

	_, err := buildDataset(context.Background(), client, sampler, []srcmap.Flow{{Name: "Billing"}}, "")

	var te *apperr.TransportError
	require.ErrorAs(t, err, &te)
}
