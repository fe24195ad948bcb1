package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"commandcenter-backend/clients"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var reconNow = time.Date(2025, time.March, 4, 6, 0, 0, 0, time.UTC)

// fakeSearch answers from a per-target table and counts calls
type fakeSearch struct {
	mu      sync.Mutex
	calls   []string
	byQuery func(query string) (*clients.SearchResponse, error)
}

func (f *fakeSearch) Search(ctx context.Context, req clients.SearchRequest) (*clients.SearchResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req.Query)
	f.mu.Unlock()
	return f.byQuery(req.Query)
}

type fakeMailer struct {
	sent []clients.Email
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, email clients.Email) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, email)
	return "email-1", nil
}

func organic(n int) *clients.SearchResponse {
	resp := &clients.SearchResponse{}
	for i := 0; i < n; i++ {
		resp.Organic = append(resp.Organic, clients.OrganicResult{
			Title:   "title",
			Link:    "https://example.com",
			Snippet: "snippet",
		})
	}
	return resp
}

func baseConfig(targets ...string) ReconConfig {
	return ReconConfig{
		Targets:        targets,
		SearchAPIKey:   "serper",
		EmailAPIKey:    "resend",
		RecipientEmail: "ops@example.com",
	}
}

func TestBuildQuery(t *testing.T) {
	assert.Equal(t,
		`Acme LLC news reddit "judgment" OR "lawsuit" OR "business" OR "asset"`,
		BuildQuery("Acme LLC", DefaultSearchTerms))
	assert.Equal(t, "Acme news reddit", BuildQuery("Acme", nil))
}

func TestReportSubject(t *testing.T) {
	assert.Equal(t, "Good Dogg Recovery - Daily Recon Report - Mar 4, 2025", ReportSubject(DefaultBrand, reconNow))
}

func TestBuildReport(t *testing.T) {
	report := BuildReport("Good Dogg Recovery", reconNow, []TargetResult{
		{Target: "A", Error: "API Error: 500"},
		{Target: "B", Results: []clients.OrganicResult{{Title: "T", Link: "L", Snippet: "S"}}},
		{Target: "C"},
	})

	assert.True(t, strings.HasPrefix(report, reportRule+"\nGOOD DOGG RECOVERY - DAILY RECON REPORT\nGenerated: 2025-03-04T06:00:00Z\n"))
	assert.Contains(t, report, "--- A ---\n[API Error: 500]\n\n")
	assert.Contains(t, report, "--- B ---\nTitle: T\nLink: L\nSnippet: S\n\n")
	assert.Contains(t, report, "--- C ---\n"+noResultsLine+"\n\n")
	assert.True(t, strings.HasSuffix(report, guardrailNotice+"\n"+reportRule+"\n"))
	assert.Less(t, strings.Index(report, "--- A ---"), strings.Index(report, "--- B ---"))
	assert.Less(t, strings.Index(report, "--- B ---"), strings.Index(report, "--- C ---"))
}

func TestReconService_IsolatesFailedTarget(t *testing.T) {
	search := &fakeSearch{byQuery: func(q string) (*clients.SearchResponse, error) {
		if strings.HasPrefix(q, "A ") {
			return nil, &clients.StatusError{Provider: "serper", StatusCode: 500}
		}
		return organic(2), nil
	}}
	mailer := &fakeMailer{}

	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewReconService(
		WithReconConfig(baseConfig("A", "B")),
		WithSearchClient(search),
		WithMailer(mailer),
		WithReconLogger(zap.New(core)),
		WithReconClock(func() time.Time { return reconNow }),
	)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusReportSent, result.Status)
	assert.Equal(t, "email-1", result.EmailID)
	assert.Equal(t, reconNow, result.Timestamp)

	require.Len(t, mailer.sent, 1)
	body := mailer.sent[0].Text
	assert.Contains(t, body, "--- A ---\n[API Error: 500]")
	assert.Equal(t, 2, strings.Count(body, "Title: "))
	assert.Equal(t, []string{"ops@example.com"}, mailer.sent[0].To)
	assert.Equal(t, DefaultFromEmail, mailer.sent[0].From)

	assert.Equal(t, 1, logs.FilterMessage("recon search failed").Len())
}

func TestReconService_CapsResultsPerTarget(t *testing.T) {
	search := &fakeSearch{byQuery: func(string) (*clients.SearchResponse, error) { return organic(8), nil }}
	mailer := &fakeMailer{}

	result, err := NewReconService(
		WithReconConfig(baseConfig("A")),
		WithSearchClient(search),
		WithMailer(mailer),
	).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Targets[0].Results, DefaultMaxResults)
	assert.Equal(t, DefaultMaxResults, strings.Count(result.Report, "Title: "))
}

func TestReconService_ConfigurationErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	tests := []struct {
		name string
		cfg  ReconConfig
		want error
	}{
		{"no targets", ReconConfig{SearchAPIKey: "k", EmailAPIKey: "k", RecipientEmail: "r@example.com"}, ErrNoTargets},
		{"blank targets", ReconConfig{Targets: []string{" ", ""}, SearchAPIKey: "k", EmailAPIKey: "k", RecipientEmail: "r@example.com"}, ErrNoTargets},
		{"no search key", ReconConfig{Targets: []string{"A"}, EmailAPIKey: "k", RecipientEmail: "r@example.com"}, ErrMissingCredentials},
		{"no email key", ReconConfig{Targets: []string{"A"}, SearchAPIKey: "k", RecipientEmail: "r@example.com"}, ErrMissingCredentials},
		{"no recipient", ReconConfig{Targets: []string{"A"}, SearchAPIKey: "k", EmailAPIKey: "k"}, ErrMissingCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.SearchURL = srv.URL
			tt.cfg.EmailURL = srv.URL
			_, err := NewReconService(WithReconConfig(tt.cfg)).Run(context.Background())
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
	assert.Zero(t, hits.Load())
}

func TestReconService_DeliveryFailure(t *testing.T) {
	search := &fakeSearch{byQuery: func(string) (*clients.SearchResponse, error) { return organic(1), nil }}
	sendErr := &clients.StatusError{Provider: "resend", StatusCode: 403}

	result, err := NewReconService(
		WithReconConfig(baseConfig("A")),
		WithSearchClient(search),
		WithMailer(&fakeMailer{err: sendErr}),
	).Run(context.Background())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrDeliveryFailed)

	var se *clients.StatusError
	assert.True(t, errors.As(err, &se))
	assert.NotErrorIs(t, err, ErrConfiguration)
}

func TestReconService_TimeoutIsolated(t *testing.T) {
	slow := clientFunc(func(ctx context.Context, req clients.SearchRequest) (*clients.SearchResponse, error) {
		if strings.HasPrefix(req.Query, "Slow ") {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return organic(1), nil
	})

	cfg := baseConfig("Slow", "Fast")
	cfg.RequestTimeout = 20 * time.Millisecond
	mailer := &fakeMailer{}

	result, err := NewReconService(
		WithReconConfig(cfg),
		WithSearchClient(slow),
		WithMailer(mailer),
	).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, result.Targets[0].Error, "Search Error")
	assert.Empty(t, result.Targets[1].Error)
	assert.Len(t, result.Targets[1].Results, 1)
}

type clientFunc func(ctx context.Context, req clients.SearchRequest) (*clients.SearchResponse, error)

func (f clientFunc) Search(ctx context.Context, req clients.SearchRequest) (*clients.SearchResponse, error) {
	return f(ctx, req)
}

func TestReconService_ConcurrentKeepsOrder(t *testing.T) {
	targets := []string{"T1", "T2", "T3", "T4", "T5", "T6"}
	search := clientFunc(func(ctx context.Context, req clients.SearchRequest) (*clients.SearchResponse, error) {
		// earlier targets finish last
		n := len(targets) - int(req.Query[1]-'0')
		time.Sleep(time.Duration(n) * 5 * time.Millisecond)
		return &clients.SearchResponse{Organic: []clients.OrganicResult{{Title: req.Query[:2]}}}, nil
	})

	cfg := baseConfig(targets...)
	cfg.Concurrency = 3
	result, err := NewReconService(
		WithReconConfig(cfg),
		WithSearchClient(search),
		WithMailer(&fakeMailer{}),
	).Run(context.Background())
	require.NoError(t, err)

	last := -1
	for i, target := range targets {
		assert.Equal(t, target, result.Targets[i].Target)
		idx := strings.Index(result.Report, "--- "+target+" ---")
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestReconService_EndToEndWithProviders(t *testing.T) {
	var searches atomic.Int32
	serper := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		searches.Add(1)
		var req clients.SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "qdr:d", req.Recency)
		if strings.HasPrefix(req.Query, "A ") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"organic":[{"title":"one","link":"l1","snippet":"s1"},{"title":"two","link":"l2","snippet":"s2"}]}`))
	}))
	defer serper.Close()

	var email clients.Email
	resend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&email))
		w.Write([]byte(`{"id":"re_123"}`))
	}))
	defer resend.Close()

	cfg := baseConfig("A", "B")
	cfg.SearchURL = serper.URL
	cfg.EmailURL = resend.URL

	result, err := NewReconService(WithReconConfig(cfg)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "re_123", result.EmailID)
	assert.EqualValues(t, 2, searches.Load())
	assert.Contains(t, email.Text, "[API Error: 500]")
	assert.Contains(t, email.Text, "Title: two")
}

func TestReconService_UnconfirmedDeliveryFails(t *testing.T) {
	serper := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"organic":[]}`))
	}))
	defer serper.Close()
	resend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer resend.Close()

	cfg := baseConfig("A")
	cfg.SearchURL = serper.URL
	cfg.EmailURL = resend.URL

	result, err := NewReconService(WithReconConfig(cfg)).Run(context.Background())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.ErrorIs(t, err, clients.ErrMissingMessageID)
}
