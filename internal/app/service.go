package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
	"github.com/shrimpsizemoose/placement-tracker/internal/placement"
	"github.com/shrimpsizemoose/placement-tracker/internal/resume"
	"github.com/shrimpsizemoose/placement-tracker/internal/store"
)

type Service struct {
	Config     *Config
	Store      store.PlacementStore
	Auth       *Authenticator
	Sessions   *SessionManager
	Evaluator  *placement.Evaluator
	Recorder   *placement.Recorder
	Catalog    *placement.Catalog
	Roster     *placement.RosterBuilder
	Summarizer *resume.Summarizer
}

func NewService(ctx context.Context, configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := NewStore(config)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	var sessions *SessionManager
	if config.Server.EnableAuth {
		client, err := newRedisClient(ctx, config.Auth.RedisURL)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to init sessions: %w", err)
		}
		sessions = NewSessionManager(client, config.Auth.SessionTTL.Duration)
	}

	var generator resume.Generator = resume.DisabledGenerator{}
	if config.GenAI.APIKey != "" {
		generator, err = resume.NewGeminiGenerator(ctx, config.GenAI.APIKey, config.GenAI.Model)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to init generator: %w", err)
		}
	} else {
		logger.Error.Println("GEMINI_API_KEY is not set, resume summaries will fail")
	}

	return NewServiceWith(config, store, sessions, generator), nil
}

// NewServiceWith wires the domain components around already opened
// dependencies. sessions may be nil when auth is disabled.
func NewServiceWith(config *Config, store store.PlacementStore, sessions *SessionManager, generator resume.Generator) *Service {
	evaluator := placement.NewEvaluator(store)
	return &Service{
		Config:     config,
		Store:      store,
		Auth:       NewAuthenticator(store),
		Sessions:   sessions,
		Evaluator:  evaluator,
		Recorder:   placement.NewRecorder(store),
		Catalog:    placement.NewCatalog(store),
		Roster:     placement.NewRosterBuilder(evaluator, store, config.Roster.Concurrency),
		Summarizer: resume.NewSummarizer(
			store,
			resume.NewPDFExtractor(),
			generator,
			config.GenAI.Timeout.Duration,
		),
	}
}

func newRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (s *Service) AuthEnabled() bool {
	return s.Config.Server.EnableAuth && s.Sessions != nil
}

// SessionToken pulls the bearer token out of the configured header.
func (s *Service) SessionToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get(s.Config.Auth.TokenHeader)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fmt.Errorf("%w: invalid authorization header format", apperrors.ErrUnauthorized)
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), nil
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if s.Sessions != nil {
		if err := s.Sessions.Close(); err != nil {
			errs = append(errs, fmt.Errorf("sessions: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
