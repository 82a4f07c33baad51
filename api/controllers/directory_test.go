package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/tradedir-backend/internal/directory"
	"github.com/angelmondragon/tradedir-backend/pkg/config"
	"github.com/angelmondragon/tradedir-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/tradedir-backend/pkg/errors"
	"github.com/angelmondragon/tradedir-backend/pkg/tiers"
)

type recordingService struct {
	got  directory.SearchInput
	page *directory.ResultPage
	err  error
}

func (s *recordingService) Search(_ context.Context, in directory.SearchInput) (*directory.ResultPage, error) {
	s.got = in
	return s.page, s.err
}

func (s *recordingService) Tiers() []tiers.Descriptor {
	return tiers.Table()
}

func TestDirectoryProductsNormalizesQuery(t *testing.T) {
	cases := []struct {
		query string
		want  directory.SearchInput
	}{
		{
			query: "",
			want:  directory.SearchInput{Sort: enums.ProductSortNewest, Page: 1, Limit: 20},
		},
		{
			query: "page=0&limit=500&sort=price_desc",
			want:  directory.SearchInput{Sort: enums.ProductSortPriceDesc, Page: 1, Limit: 50},
		},
		{
			query: "page=abc&limit=-1&sort=popular",
			want:  directory.SearchInput{Sort: enums.ProductSortNewest, Page: 1, Limit: 1},
		},
		{
			query: "page=9999&limit=7&sort=price_asc&q=+Kush+&microSlug=pre-rolls&stateId=s1&cityId=c1",
			want: directory.SearchInput{
				Query: "Kush", MicroSlug: "pre-rolls", StateID: "s1", CityID: "c1",
				Sort: enums.ProductSortPriceAsc, Page: 5000, Limit: 7,
			},
		},
	}
	for _, tc := range cases {
		svc := &recordingService{page: &directory.ResultPage{Listings: []directory.Listing{}}}
		w := httptest.NewRecorder()
		DirectoryProducts(svc, nil)(w, httptest.NewRequest("GET", "/api/v1/directory/products?"+tc.query, nil))

		require.Equal(t, http.StatusOK, w.Code, tc.query)
		require.Equal(t, tc.want, svc.got, tc.query)
	}
}

func TestDirectoryProductsTruncatesQuery(t *testing.T) {
	svc := &recordingService{page: &directory.ResultPage{Listings: []directory.Listing{}}}
	long := strings.Repeat("a", 150)
	DirectoryProducts(svc, nil)(httptest.NewRecorder(), httptest.NewRequest("GET", "/products?q="+long, nil))
	require.Len(t, svc.got.Query, directory.MaxQueryLength)
}

func TestDirectoryProductsWritesEnvelope(t *testing.T) {
	svc := &recordingService{page: &directory.ResultPage{
		Listings: []directory.Listing{{Name: "Blue Dream", PlanName: "Gold", Tier: "Gold", TierPriority: 600}},
		Count:    18,
	}}
	w := httptest.NewRecorder()
	DirectoryProducts(svc, nil)(w, httptest.NewRequest("GET", "/products", nil))

	var body struct {
		Success bool                `json:"success"`
		Data    []directory.Listing `json:"data"`
		Count   int64               `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.True(t, body.Success)
	require.Equal(t, int64(18), body.Count)
	require.Equal(t, "Blue Dream", body.Data[0].Name)
	require.Equal(t, 600, body.Data[0].TierPriority)
}

func TestDirectoryProductsQueryFailure(t *testing.T) {
	svc := &recordingService{err: pkgerrors.Query(errors.New("timeout"), "failed to count gold listings")}
	w := httptest.NewRecorder()
	DirectoryProducts(svc, nil)(w, httptest.NewRequest("GET", "/products", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, false, body["success"])
	require.Equal(t, "QUERY_FAILED", body["error"])
	require.Equal(t, "timeout", body["details"])
	require.NotContains(t, body, "data")
}

func TestDirectoryTiers(t *testing.T) {
	w := httptest.NewRecorder()
	DirectoryTiers(&recordingService{}, nil)(w, httptest.NewRequest("GET", "/tiers", nil))

	var body struct {
		Data []tiers.Descriptor `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body.Data, tiers.Count)
	require.Equal(t, tiers.Descriptor{Key: "diamond", Label: "Diamond", Priority: 700}, body.Data[0])
}

func TestDirectoryHandlersWithoutService(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"products": DirectoryProducts(nil, nil),
		"tiers":    DirectoryTiers(nil, nil),
	}
	for name, h := range handlers {
		w := httptest.NewRecorder()
		require.NotPanics(t, func() { h(w, httptest.NewRequest("GET", "/", nil)) }, name)
		require.Equal(t, http.StatusInternalServerError, w.Code, name)

		var body map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body), name)
		require.Equal(t, false, body["success"], name)
		require.Equal(t, "INTERNAL_ERROR", body["error"], name)
	}
}

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	w := httptest.NewRecorder()
	HealthReady(cfg, nil, map[string]Pinger{"db": ok, "redis": nil})(w, httptest.NewRequest("GET", "/health/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"redis":"disabled"`)

	w = httptest.NewRecorder()
	HealthReady(cfg, nil, map[string]Pinger{"db": down})(w, httptest.NewRequest("GET", "/health/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "connection refused")
}
