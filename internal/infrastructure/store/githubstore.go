package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	sharedConfig "github.com/parapente-jp/flightpass/internal/shared/config"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

const githubAPIBase = "https://api.github.com"

// GitHubStore keeps the ticket snapshot as a file in a GitHub repository,
// for stateless deployments with no persistent disk. The blob SHA returned
// by the contents API is the optimistic-concurrency token: writes carry the
// SHA they were based on and the API rejects stale ones, so concurrent
// read-modify-write cycles cannot silently drop each other's updates.
type GitHubStore struct {
	owner   string
	repo    string
	path    string
	branch  string
	token   string
	baseURL string
	client  *http.Client
	logger  logger.Interface
}

func NewGitHubStore(cfg *sharedConfig.GitHubStoreConfig) *GitHubStore {
	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}
	return &GitHubStore{
		owner:   cfg.Owner,
		repo:    cfg.Repo,
		path:    cfg.Path,
		branch:  branch,
		token:   cfg.Token,
		baseURL: githubAPIBase,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger.NewLogger().Named("githubstore"),
	}
}

type contentsResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

type updateRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch"`
}

func (s *GitHubStore) Load(ctx context.Context) (*ticket.Snapshot, error) {
	body, status, err := s.do(ctx, http.MethodGet, s.contentsURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read ticket blob: %w", err)
	}

	if status == http.StatusNotFound {
		// The blob has never been committed.
		return &ticket.Snapshot{Tickets: []*ticket.Ticket{}, Version: ""}, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("github contents API returned status %d", status)
	}

	var contents contentsResponse
	if err := json.Unmarshal(body, &contents); err != nil {
		return nil, fmt.Errorf("failed to decode contents response: %w", err)
	}

	// The API wraps base64 output at 60 columns.
	raw, err := base64.StdEncoding.DecodeString(stripNewlines(contents.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to decode blob content: %w", err)
	}

	tickets, err := decodeSnapshot(raw)
	if err != nil {
		return nil, err
	}

	return &ticket.Snapshot{Tickets: tickets, Version: contents.SHA}, nil
}

func (s *GitHubStore) Save(ctx context.Context, tickets []*ticket.Ticket, version string) error {
	data, err := encodeSnapshot(tickets)
	if err != nil {
		return err
	}

	payload := updateRequest{
		Message: "flightpass: update ticket records",
		Content: base64.StdEncoding.EncodeToString(data),
		SHA:     version,
		Branch:  s.branch,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode update request: %w", err)
	}

	respBody, status, err := s.do(ctx, http.MethodPut, s.contentsURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to write ticket blob: %w", err)
	}

	switch status {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusConflict, http.StatusUnprocessableEntity:
		// The blob moved under us: the SHA we loaded is no longer current.
		s.logger.Warnw("stale snapshot write rejected by github", "status", status)
		return ticket.ErrVersionConflict
	default:
		return fmt.Errorf("github contents API returned status %d: %s", status, truncate(respBody, 200))
	}
}

func (s *GitHubStore) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.baseURL, s.owner, s.repo, s.path)
}

func (s *GitHubStore) do(ctx context.Context, method, url string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Cache-Control", "no-cache")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodGet {
		q := req.URL.Query()
		q.Set("ref", s.branch)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	return respBody, resp.StatusCode, nil
}

func stripNewlines(s string) string {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			continue
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
