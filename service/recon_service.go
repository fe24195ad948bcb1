package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"commandcenter-backend/clients"
	"commandcenter-backend/telemetry"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Recon errors. Configuration problems are detected before any network call.
var (
	ErrConfiguration      = errors.New("recon misconfigured")
	ErrNoTargets          = fmt.Errorf("%w: no targets configured", ErrConfiguration)
	ErrMissingCredentials = fmt.Errorf("%w: missing credentials", ErrConfiguration)
	ErrDeliveryFailed     = errors.New("report delivery failed")
)

const (
	// StatusReportSent is the status of a successful run
	StatusReportSent = "Report Sent"

	DefaultFromEmail      = "recon@gooddogg.com"
	DefaultBrand          = "Good Dogg Recovery"
	DefaultMaxResults     = 5
	DefaultRequestTimeout = 5 * time.Second

	// recencyLastDay restricts results to the last 24 hours
	recencyLastDay = "qdr:d"
)

// DefaultSearchTerms are OR-ed into every target query
var DefaultSearchTerms = []string{"judgment", "lawsuit", "business", "asset"}

// ReconConfig holds the inputs of one recon run
type ReconConfig struct {
	Targets        []string      `koanf:"targets"`
	SearchTerms    []string      `koanf:"search_terms"`
	SearchAPIKey   string        `koanf:"serper_api_key"`
	EmailAPIKey    string        `koanf:"resend_api_key"`
	FromEmail      string        `koanf:"from_email"`
	RecipientEmail string        `koanf:"recipient_email"`
	Brand          string        `koanf:"brand"`
	MaxResults     int           `koanf:"max_results"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	Concurrency    int           `koanf:"concurrency"`
	SearchURL      string        `koanf:"search_url"`
	EmailURL       string        `koanf:"email_url"`
}

// WithDefaults fills unset optional fields. Targets and credentials are left alone.
func (c ReconConfig) WithDefaults() ReconConfig {
	c.Targets = compact(c.Targets)
	c.SearchTerms = compact(c.SearchTerms)
	if len(c.SearchTerms) == 0 {
		c.SearchTerms = append([]string(nil), DefaultSearchTerms...)
	}
	if c.FromEmail == "" {
		c.FromEmail = DefaultFromEmail
	}
	if c.Brand == "" {
		c.Brand = DefaultBrand
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	return c
}

// compact trims entries and drops blanks
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ReconService runs the daily recon job
type ReconService struct {
	cfg        ReconConfig
	search     clients.SearchClient
	mailer     clients.Mailer
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *telemetry.Metrics
	now        func() time.Time
}

// ReconServiceOption is a functional option for ReconService
type ReconServiceOption func(*ReconService)

// WithReconConfig sets the run configuration
func WithReconConfig(cfg ReconConfig) ReconServiceOption {
	return func(s *ReconService) {
		s.cfg = cfg
	}
}

// WithSearchClient injects the search client. Without it a Serper client is
// built from the configured key on each run.
func WithSearchClient(c clients.SearchClient) ReconServiceOption {
	return func(s *ReconService) {
		s.search = c
	}
}

// WithMailer injects the mailer. Without it a Resend client is built from
// the configured key on each run.
func WithMailer(m clients.Mailer) ReconServiceOption {
	return func(s *ReconService) {
		s.mailer = m
	}
}

// WithReconHTTPClient sets the HTTP client for the built-in provider clients
func WithReconHTTPClient(hc *http.Client) ReconServiceOption {
	return func(s *ReconService) {
		s.httpClient = hc
	}
}

// WithReconLogger sets the logger
func WithReconLogger(logger *zap.Logger) ReconServiceOption {
	return func(s *ReconService) {
		s.logger = logger
	}
}

// WithReconMetrics sets the metrics sink
func WithReconMetrics(m *telemetry.Metrics) ReconServiceOption {
	return func(s *ReconService) {
		s.metrics = m
	}
}

// WithReconClock overrides the report timestamp source
func WithReconClock(now func() time.Time) ReconServiceOption {
	return func(s *ReconService) {
		s.now = now
	}
}

// NewReconService creates a new recon service
func NewReconService(opts ...ReconServiceOption) *ReconService {
	s := &ReconService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// TargetResult is the outcome of one target lookup
type TargetResult struct {
	Target  string                  `json:"target"`
	Results []clients.OrganicResult `json:"results"`
	Error   string                  `json:"error,omitempty"`
}

// ReconResult is returned when the report was delivered
type ReconResult struct {
	Status    string         `json:"status"`
	EmailID   string         `json:"emailId"`
	Timestamp time.Time      `json:"timestamp"`
	Report    string         `json:"-"`
	Targets   []TargetResult `json:"-"`
}

// Run searches every target, builds the report and emails it. A failed
// lookup only marks its own section; a failed send fails the run.
func (s *ReconService) Run(ctx context.Context) (*ReconResult, error) {
	start := time.Now()
	cfg := s.cfg.WithDefaults()

	search, mailer, err := s.resolveClients(cfg)
	if err != nil {
		s.recordRun("config_error", start)
		s.logger.Error("recon run rejected", zap.Error(err))
		return nil, err
	}

	s.logger.Info("recon run started",
		zap.Int("targets", len(cfg.Targets)),
		zap.Int("concurrency", cfg.Concurrency))

	results := s.lookupAll(ctx, cfg, search)
	generatedAt := s.now().UTC()
	report := BuildReport(cfg.Brand, generatedAt, results)

	emailID, err := mailer.Send(ctx, clients.Email{
		From:    cfg.FromEmail,
		To:      []string{cfg.RecipientEmail},
		Subject: ReportSubject(cfg.Brand, generatedAt),
		Text:    report,
	})
	if err != nil {
		s.recordRun("delivery_error", start)
		s.logger.Error("recon report delivery failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	s.recordRun("sent", start)
	s.logger.Info("recon report sent",
		zap.String("email_id", emailID),
		zap.Duration("duration", time.Since(start)))

	return &ReconResult{
		Status:    StatusReportSent,
		EmailID:   emailID,
		Timestamp: generatedAt,
		Report:    report,
		Targets:   results,
	}, nil
}

// resolveClients validates cfg and returns the clients for this run
func (s *ReconService) resolveClients(cfg ReconConfig) (clients.SearchClient, clients.Mailer, error) {
	if len(cfg.Targets) == 0 {
		return nil, nil, ErrNoTargets
	}

	var missing []string
	if s.search == nil && cfg.SearchAPIKey == "" {
		missing = append(missing, "search API key")
	}
	if s.mailer == nil && cfg.EmailAPIKey == "" {
		missing = append(missing, "email API key")
	}
	if cfg.RecipientEmail == "" {
		missing = append(missing, "recipient email")
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	search := s.search
	if search == nil {
		c, err := clients.NewSerperClient(cfg.SearchAPIKey,
			clients.WithSearchURL(cfg.SearchURL),
			clients.WithSearchHTTPClient(s.httpClient))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		search = c
	}

	mailer := s.mailer
	if mailer == nil {
		c, err := clients.NewResendClient(cfg.EmailAPIKey,
			clients.WithEmailURL(cfg.EmailURL),
			clients.WithEmailHTTPClient(s.httpClient))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		mailer = c
	}

	return search, mailer, nil
}

// lookupAll searches every target, at most cfg.Concurrency at a time.
// Results keep the order of cfg.Targets.
func (s *ReconService) lookupAll(ctx context.Context, cfg ReconConfig, search clients.SearchClient) []TargetResult {
	results := make([]TargetResult, len(cfg.Targets))

	var g errgroup.Group
	g.SetLimit(cfg.Concurrency)
	for i, target := range cfg.Targets {
		g.Go(func() error {
			results[i] = s.lookup(ctx, cfg, search, target)
			return nil
		})
	}
	_ = g.Wait() // lookups never fail the group

	return results
}

func (s *ReconService) lookup(ctx context.Context, cfg ReconConfig, search clients.SearchClient, target string) TargetResult {
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	res := TargetResult{Target: target}
	resp, err := search.Search(ctx, clients.SearchRequest{
		Query:   BuildQuery(target, cfg.SearchTerms),
		Recency: recencyLastDay,
	})
	if err != nil {
		var se *clients.StatusError
		if errors.As(err, &se) {
			res.Error = fmt.Sprintf("API Error: %d", se.StatusCode)
			s.recordSearch("api_error")
		} else {
			res.Error = "Search Error: " + err.Error()
			s.recordSearch("error")
		}
		s.logger.Warn("recon search failed", zap.String("target", target), zap.Error(err))
		return res
	}

	organic := resp.Organic
	if len(organic) > cfg.MaxResults {
		organic = organic[:cfg.MaxResults]
	}
	res.Results = append([]clients.OrganicResult{}, organic...)
	if len(res.Results) == 0 {
		s.recordSearch("empty")
	} else {
		s.recordSearch("results")
	}
	return res
}

func (s *ReconService) recordRun(status string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordReconRun(status, time.Since(start).Seconds())
	}
}

func (s *ReconService) recordSearch(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordSearch(outcome)
	}
}
