package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/internal/prediction"
	"github.com/packdash/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

const defaultReportPrefix = "reports"

// Report is the archived prediction snapshot of one week.
type Report struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Week        domain.WeekYear        `json:"week"`
	Clients     []domain.ClientInsight `json:"clients"`
}

// ReportService archives weekly prediction snapshots to object storage.
type ReportService struct {
	insights *InsightService
	store    storage.ObjectStorage
	prefix   string
}

func NewReportService(insights *InsightService, store storage.ObjectStorage, prefix string) *ReportService {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = defaultReportPrefix
	}
	return &ReportService{insights: insights, store: store, prefix: prefix}
}

// Build computes the report for the week containing now.
func (s *ReportService) Build(ctx context.Context, now time.Time) (*Report, error) {
	clients, err := s.insights.AllInsights(ctx, now)
	if err != nil {
		return nil, err
	}
	return &Report{
		GeneratedAt: now.UTC(),
		Week:        prediction.CurrentWeek(now),
		Clients:     clients,
	}, nil
}

// Snapshot builds the report and uploads it, overwriting any earlier
// snapshot of the same week. It returns the object key.
func (s *ReportService) Snapshot(ctx context.Context, now time.Time) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	report, err := s.Build(ctx, now)
	if err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	key := s.ReportKey(report.Week)
	if err := s.store.UploadObject(ctx, key, payload, "application/json"); err != nil {
		return "", err
	}

	log.Info().Str("key", key).Int("clients", len(report.Clients)).Msg("prediction snapshot uploaded")
	return key, nil
}

// List returns the archived reports.
func (s *ReportService) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.store == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	return s.store.ListObjects(ctx, s.prefix+"/")
}

func (s *ReportService) ReportKey(week domain.WeekYear) string {
	return path.Join(s.prefix, fmt.Sprintf("%d-W%02d.json", week.Year, week.Week))
}
