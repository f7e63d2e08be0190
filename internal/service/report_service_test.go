package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/packdash/backend-go/internal/domain"
)

func TestReportService_Snapshot(t *testing.T) {
	insights, _ := newInsightFixture()
	store := newMemStorage()
	svc := NewReportService(insights, store, "/archives/")

	key, err := svc.Snapshot(context.Background(), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "archives/2024-W11.json" {
		t.Errorf("key = %q", key)
	}

	var report Report
	if err := json.Unmarshal(store.objects[key], &report); err != nil {
		t.Fatalf("uploaded report does not decode: %v", err)
	}
	if report.Week != (domain.WeekYear{Week: 11, Year: 2024}) || len(report.Clients) != 2 {
		t.Errorf("report = week %+v with %d clients", report.Week, len(report.Clients))
	}

	listed, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 1 || listed[0].Key != key {
		t.Errorf("listed = %+v", listed)
	}
}

func TestReportService_DefaultsAndMissingStorage(t *testing.T) {
	insights, _ := newInsightFixture()

	svc := NewReportService(insights, nil, "")
	if got := svc.ReportKey(domain.WeekYear{Week: 3, Year: 2025}); got != "reports/2025-W03.json" {
		t.Errorf("ReportKey = %q", got)
	}
	if _, err := svc.Snapshot(context.Background(), testNow); err == nil {
		t.Error("expected error without storage")
	}
}
