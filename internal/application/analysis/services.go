package analysis

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/vision-analyzer/internal/application"
	domain "github.com/bryanwahyu/vision-analyzer/internal/domain/analysis"
	"github.com/bryanwahyu/vision-analyzer/internal/domain/history"
	"github.com/bryanwahyu/vision-analyzer/internal/domain/identity"
	"github.com/bryanwahyu/vision-analyzer/internal/domain/upload"
	"github.com/bryanwahyu/vision-analyzer/internal/domain/usage"
)

const fallbackDescription = "No description available"

// Service implements the analysis use-cases. It is the sole writer of the
// usage ledger and the history log, and is safe for concurrent use.
type Service struct {
	Ledger    *usage.Ledger
	History   *history.Log
	Describer domain.Describer
	Archive   domain.Archiver // optional, nil disables archiving
	Clock     application.Clock

	// DescribeTimeout bounds only the provider call; no per-user lock is
	// held while waiting on it.
	DescribeTimeout time.Duration
}

// UsageReport is the payload for the usage endpoint. Limit and Remaining are
// ints for free users and the string "unlimited" for premium.
type UsageReport struct {
	UserID       string `json:"user_id"`
	Tier         string `json:"tier"`
	AnalysesUsed int    `json:"analyses_used"`
	Limit        any    `json:"limit"`
	Remaining    any    `json:"remaining"`
	HistoryCount int    `json:"history_count"`
}

// HistoryReport is the payload for the history endpoint.
type HistoryReport struct {
	Success bool            `json:"success"`
	UserID  string          `json:"user_id"`
	Count   int             `json:"count"`
	History []history.Entry `json:"history"`
}

// Analyze runs the full pipeline for one upload: classify tier, consume
// quota, validate, describe, tag, log. The quota gate runs before
// validation, so a free user's single analysis is spent even when the
// upload then fails a check. Nothing is logged unless a full entry was
// produced.
func (s *Service) Analyze(ctx context.Context, claims identity.Claims, filename string, content []byte) (*domain.Result, error) {
	userID := claims.Subject()
	tier := identity.Classify(claims)

	if !s.Ledger.TryConsume(userID, tier) {
		return nil, &domain.QuotaExceededError{
			Tier:  string(identity.TierFree),
			Limit: s.Ledger.Limit(),
		}
	}

	validated, err := upload.Validate(filename, content)
	if err != nil {
		return nil, err
	}

	description, err := s.describe(ctx, validated)
	if err != nil {
		return nil, &domain.DescribeError{Cause: err}
	}
	if description == "" {
		description = fallbackDescription
	}

	tags := domain.ExtractTags(description)
	timestamp := s.Clock.Now().UTC().Format(time.RFC3339)

	s.History.Append(userID, history.Entry{
		Filename:    validated.Filename,
		Timestamp:   timestamp,
		Description: description,
		Tags:        tags,
	})

	// best-effort, never fails the request
	s.archive(ctx, userID, validated)

	return &domain.Result{
		Success:      true,
		Description:  description,
		UserID:       userID,
		Tier:         string(tier),
		AnalysesUsed: s.Ledger.Peek(userID),
		Filename:     validated.Filename,
		Timestamp:    timestamp,
		Tags:         tags,
	}, nil
}

// Usage builds the usage report for the caller.
func (s *Service) Usage(claims identity.Claims) UsageReport {
	userID := claims.Subject()
	tier := identity.Classify(claims)
	used := s.Ledger.Peek(userID)

	report := UsageReport{
		UserID:       userID,
		Tier:         string(tier),
		AnalysesUsed: used,
		HistoryCount: s.History.Count(userID),
	}

	if tier == identity.TierPremium {
		report.Limit = "unlimited"
		report.Remaining = "unlimited"
	} else {
		limit := s.Ledger.Limit()
		remaining := limit - used
		if remaining < 0 {
			remaining = 0
		}
		report.Limit = limit
		report.Remaining = remaining
	}

	return report
}

// RecentHistory returns the caller's bounded analysis history.
func (s *Service) RecentHistory(claims identity.Claims) HistoryReport {
	userID := claims.Subject()
	entries := s.History.Get(userID)

	return HistoryReport{
		Success: true,
		UserID:  userID,
		Count:   len(entries),
		History: entries,
	}
}

func (s *Service) describe(ctx context.Context, v *upload.Validated) (string, error) {
	if s.DescribeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.DescribeTimeout)
		defer cancel()
	}
	return s.Describer.Describe(ctx, v.Content, v.MIME)
}

func (s *Service) archive(ctx context.Context, userID string, v *upload.Validated) {
	if s.Archive == nil {
		return
	}
	key := userID + "/" + uuid.New().String() + "-" + filepath.Base(v.Filename)
	if _, err := s.Archive.Archive(ctx, key, v.Content, v.MIME); err != nil {
		log.Printf("archive failed for user=%s key=%s: %v", userID, key, err)
	}
}
