package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	sharedConfig "github.com/parapente-jp/flightpass/internal/shared/config"
)

// fakeContentsAPI emulates the subset of the GitHub contents API the store
// uses: GET returns the blob plus its SHA, PUT requires the current SHA.
type fakeContentsAPI struct {
	content []byte
	sha     string
	puts    int
}

func (f *fakeContentsAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}

		switch r.Method {
		case http.MethodGet:
			if f.content == nil {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			resp := map[string]string{
				"content": base64.StdEncoding.EncodeToString(f.content),
				"sha":     f.sha,
			}
			json.NewEncoder(w).Encode(resp)

		case http.MethodPut:
			f.puts++
			var req struct {
				Content string `json:"content"`
				SHA     string `json:"sha"`
				Branch  string `json:"branch"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			if f.content != nil && req.SHA != f.sha {
				w.WriteHeader(http.StatusConflict)
				return
			}

			raw, err := base64.StdEncoding.DecodeString(req.Content)
			require.NoError(t, err)

			f.content = raw
			f.sha = fmt.Sprintf("sha-%d", f.puts)
			w.WriteHeader(http.StatusOK)

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func newTestGitHubStore(t *testing.T, api *fakeContentsAPI) *GitHubStore {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	s := NewGitHubStore(&sharedConfig.GitHubStoreConfig{
		Owner:  "parapente-jp",
		Repo:   "flightpass-data",
		Path:   "data/tickets.json",
		Branch: "main",
		Token:  "test-token",
	})
	s.baseURL = srv.URL
	return s
}

func TestGitHubStore_LoadMissingBlobIsEmpty(t *testing.T) {
	s := newTestGitHubStore(t, &fakeContentsAPI{})

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Tickets)
	assert.Equal(t, "", snap.Version)
}

func TestGitHubStore_SaveAndReload(t *testing.T) {
	s := newTestGitHubStore(t, &fakeContentsAPI{})
	ctx := context.Background()

	tk := testTicket(t, "sess_gh")
	require.NoError(t, s.Save(ctx, []*ticket.Ticket{tk}, ""))

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Tickets, 1)
	assert.Equal(t, tk.ID(), snap.Tickets[0].ID())
	assert.NotEmpty(t, snap.Version)
}

func TestGitHubStore_StaleSHAConflicts(t *testing.T) {
	s := newTestGitHubStore(t, &fakeContentsAPI{})
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []*ticket.Ticket{testTicket(t, "sess_1")}, ""))

	snap, err := s.Load(ctx)
	require.NoError(t, err)

	// Another writer commits in between.
	require.NoError(t, s.Save(ctx, append(snap.Tickets, testTicket(t, "sess_2")), snap.Version))

	// The original token is now stale.
	err = s.Save(ctx, snap.Tickets, snap.Version)
	assert.ErrorIs(t, err, ticket.ErrVersionConflict)
}

func TestGitHubStore_WrappedBase64Content(t *testing.T) {
	tk := testTicket(t, "sess_wrapped")
	data, err := encodeSnapshot([]*ticket.Ticket{tk})
	require.NoError(t, err)

	// The real API hard-wraps base64 at 60 columns.
	encoded := base64.StdEncoding.EncodeToString(data)
	wrapped := ""
	for len(encoded) > 60 {
		wrapped += encoded[:60] + "\n"
		encoded = encoded[60:]
	}
	wrapped += encoded + "\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"content": wrapped, "sha": "abc123"})
	}))
	t.Cleanup(srv.Close)

	s := NewGitHubStore(&sharedConfig.GitHubStoreConfig{
		Owner: "o", Repo: "r", Path: "p", Token: "test-token",
	})
	s.baseURL = srv.URL

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Tickets, 1)
	assert.Equal(t, "sess_wrapped", snap.Tickets[0].SessionID())
	assert.Equal(t, "abc123", snap.Version)
}

func TestGitHubStore_ServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	s := NewGitHubStore(&sharedConfig.GitHubStoreConfig{
		Owner: "o", Repo: "r", Path: "p", Token: "test-token",
	})
	s.baseURL = srv.URL

	_, err := s.Load(context.Background())
	assert.Error(t, err)

	err = s.Save(context.Background(), nil, "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ticket.ErrVersionConflict)
}
