package dict

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/henryli127-lang/volca/internal/platform/retry"
)

const appleEntry = `[{
	"word": "apple",
	"phonetic": "/ˈæp.əl/",
	"phonetics": [{"text": "/ˈæp.əl/"}],
	"meanings": [
		{
			"partOfSpeech": "noun",
			"definitions": [
				{"definition": "A common, round fruit.", "example": "She ate an apple."},
				{"definition": "The tree of the genus Malus."}
			]
		}
	]
}]`

func TestClient_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entries/en/apple", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(appleEntry))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	entry, err := client.Lookup(context.Background(), "apple", "en")
	require.NoError(t, err)

	assert.Equal(t, "apple", entry.Text)
	assert.Equal(t, "/ˈæp.əl/", entry.Phonetic)
	assert.Equal(t, "A common, round fruit.", entry.Definition)
	assert.Equal(t, "She ate an apple.", entry.Example)
}

func TestClient_Lookup_UnknownWordStopsImmediately(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"title":"No Definitions Found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Lookup(context.Background(), "xzqwv", "en")
	assert.ErrorIs(t, err, domain.ErrWordNotFound)
	assert.Equal(t, 1, calls)
}

func TestClient_Lookup_RetriesServerErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(appleEntry))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	entry, err := client.Lookup(context.Background(), "apple", "en")
	require.NoError(t, err)
	assert.Equal(t, "apple", entry.Text)
	assert.Equal(t, 3, calls)
}

func TestClient_Lookup_ExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Lookup(context.Background(), "apple", "en")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrWordNotFound)
}

func TestClassifyLookupError(t *testing.T) {
	assert.Equal(t, retry.Stop, classifyLookupError(domain.ErrWordNotFound))
	assert.Equal(t, retry.Stop, classifyLookupError(&statusError{code: http.StatusBadRequest}))
	assert.Equal(t, retry.After, classifyLookupError(&statusError{code: http.StatusTooManyRequests}))
	assert.Equal(t, retry.Retry, classifyLookupError(&statusError{code: http.StatusBadGateway}))
	assert.Equal(t, retry.Retry, classifyLookupError(errors.New("connection refused")))
}

func TestToWordEntry_FallsBackToPhoneticsList(t *testing.T) {
	entry := toWordEntry(dictEntry{
		Word: "pear",
		Phonetics: []struct {
			Text string `json:"text"`
		}{{Text: ""}, {Text: "/peər/"}},
	})
	assert.Equal(t, "/peər/", entry.Phonetic)
	assert.Empty(t, entry.Definition)
}
