package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/spanish-vocab/internal/catalog"
	"github.com/heartmarshall/spanish-vocab/internal/domain"
	"github.com/heartmarshall/spanish-vocab/internal/service/words"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockWords records the arguments it receives.
type mockWords struct {
	GetByIDFunc         func(id int) (domain.CatalogWord, error)
	ListByFrequencyFunc func(count, skip int) ([]domain.CatalogWord, error)
	RandomFunc          func(count int, exclude []int) []domain.CatalogWord
	InfoFunc            func() words.Info
}

func (m *mockWords) GetByID(id int) (domain.CatalogWord, error) { return m.GetByIDFunc(id) }
func (m *mockWords) ListByFrequency(count, skip int) ([]domain.CatalogWord, error) {
	return m.ListByFrequencyFunc(count, skip)
}
func (m *mockWords) Random(count int, exclude []int) []domain.CatalogWord {
	return m.RandomFunc(count, exclude)
}
func (m *mockWords) Info() words.Info { return m.InfoFunc() }

// newTestServer serves a catalog of n words through the real service.
func newTestServer(t *testing.T, n int) *httptest.Server {
	t.Helper()

	store := catalog.NewMemory()
	ws := make([]domain.CatalogWord, 0, n)
	for i := 1; i <= n; i++ {
		ws = append(ws, domain.CatalogWord{
			ID: i, Spanish: "es" + string(rune('a'+i-1)), English: "en", PartOfSpeech: "noun", FrequencyRank: i + 1,
		})
	}
	_, err := store.ReplaceAll(context.Background(), uuid.New(), domain.DataSourceDictionary, ws)
	require.NoError(t, err)

	svc := words.NewService(discardLogger(), store)
	require.NoError(t, svc.Reload(context.Background()))

	router := NewRouter(NewWordsHandler(svc, discardLogger()), NewHealthHandler(nil, svc, "test"))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestRouter_Words(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 10)

	t.Run("get by id", func(t *testing.T) {
		t.Parallel()

		var w domain.CatalogWord
		code := getJSON(t, srv.URL+"/words/3", &w)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, 3, w.ID)
		assert.Equal(t, 4, w.FrequencyRank)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		var e ErrorResponse
		code := getJSON(t, srv.URL+"/words/99", &e)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "not found", e.Error)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		var e ErrorResponse
		code := getJSON(t, srv.URL+"/words/abc", &e)
		assert.Equal(t, http.StatusBadRequest, code)
		require.Len(t, e.Fields, 1)
		assert.Equal(t, "id", e.Fields[0].Field)
	})

	t.Run("page", func(t *testing.T) {
		t.Parallel()

		var list WordList
		code := getJSON(t, srv.URL+"/words?count=3&skip=2", &list)
		assert.Equal(t, http.StatusOK, code)
		require.Equal(t, 3, list.Count)
		assert.Equal(t, []int{3, 4, 5}, []int{list.Words[0].ID, list.Words[1].ID, list.Words[2].ID})
	})

	t.Run("page past end is empty array", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Get(srv.URL + "/words?skip=50")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"words":[],"count":0}`, string(body))
	})

	t.Run("negative skip", func(t *testing.T) {
		t.Parallel()

		code := getJSON(t, srv.URL+"/words?skip=-1", nil)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("random with exclusions", func(t *testing.T) {
		t.Parallel()

		var list WordList
		code := getJSON(t, srv.URL+"/words/random?count=20&exclude=1,2,3", &list)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, 7, list.Count)
		for _, w := range list.Words {
			assert.Greater(t, w.ID, 3)
		}
	})

	t.Run("random with bad exclude", func(t *testing.T) {
		t.Parallel()

		code := getJSON(t, srv.URL+"/words/random?exclude=1,x", nil)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("info", func(t *testing.T) {
		t.Parallel()

		var info words.Info
		code := getJSON(t, srv.URL+"/catalog/info", &info)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, domain.DataSourceDictionary, info.Source)
		assert.Equal(t, 10, info.Total)
		assert.NotNil(t, info.BuildID)
	})

	t.Run("ready", func(t *testing.T) {
		t.Parallel()

		code := getJSON(t, srv.URL+"/ready", nil)
		assert.Equal(t, http.StatusOK, code)
	})
}

func TestWordsHandler_List_Params(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantCount int
		wantSkip  int
	}{
		{name: "defaults", query: "", wantCode: http.StatusOK, wantCount: defaultCount, wantSkip: 0},
		{name: "explicit", query: "?count=5&skip=7", wantCode: http.StatusOK, wantCount: 5, wantSkip: 7},
		{name: "count clamped", query: "?count=5000", wantCode: http.StatusOK, wantCount: domain.MaxCatalogWords},
		{name: "bad count", query: "?count=ten", wantCode: http.StatusBadRequest},
		{name: "bad skip", query: "?skip=1.5", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotCount, gotSkip int
			h := NewWordsHandler(&mockWords{
				ListByFrequencyFunc: func(count, skip int) ([]domain.CatalogWord, error) {
					gotCount, gotSkip = count, skip
					return []domain.CatalogWord{}, nil
				},
			}, discardLogger())

			req := httptest.NewRequest(http.MethodGet, "/words"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.List(rec, req)

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantCount, gotCount)
				assert.Equal(t, tt.wantSkip, gotSkip)
			}
		})
	}
}

func TestWordsHandler_InvalidParamsReportedTogether(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		serve      func(h *WordsHandler) http.HandlerFunc
		wantFields []string
	}{
		{
			name:       "list",
			path:       "/words?count=ten&skip=x",
			serve:      func(h *WordsHandler) http.HandlerFunc { return h.List },
			wantFields: []string{"count", "skip"},
		},
		{
			name:       "random",
			path:       "/words/random?count=ten&exclude=1,a",
			serve:      func(h *WordsHandler) http.HandlerFunc { return h.Random },
			wantFields: []string{"count", "exclude"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Nil funcs panic if the handler reaches the service.
			h := NewWordsHandler(&mockWords{}, discardLogger())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			tt.serve(h)(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			got := make([]string, 0, len(body.Fields))
			for _, f := range body.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestWordsHandler_Random_ParsesExclude(t *testing.T) {
	t.Parallel()

	var gotExclude []int
	h := NewWordsHandler(&mockWords{
		RandomFunc: func(count int, exclude []int) []domain.CatalogWord {
			gotExclude = exclude
			return []domain.CatalogWord{}
		},
	}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/words/random?exclude=4,%205,,6", nil)
	rec := httptest.NewRecorder()
	h.Random(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{4, 5, 6}, gotExclude)
}

func TestWordsHandler_Get_InternalError(t *testing.T) {
	t.Parallel()

	h := NewWordsHandler(&mockWords{
		GetByIDFunc: func(int) (domain.CatalogWord, error) {
			return domain.CatalogWord{}, errors.New("boom")
		},
	}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/words/1", nil)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestIDList(t *testing.T) {
	t.Parallel()

	ids, err := idList("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = idList("1,,2,a")
	assert.ErrorIs(t, err, errBadIDList)
}
