package db

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewHealthReport_Healthy(t *testing.T) {
	status := PoolStatus{TotalConns: 10, IdleConns: 6, AcquiredConns: 4, MaxConns: 20}

	report := NewHealthReport(status, "rome", nil)

	if !report.Healthy() {
		t.Error("expected a healthy report when the ping succeeds")
	}
	if report.Status != "healthy" {
		t.Errorf("expected status healthy, got %q", report.Status)
	}
	if report.Clinic != "rome" {
		t.Errorf("expected clinic rome, got %q", report.Clinic)
	}
	if report.Error != "" {
		t.Errorf("expected no error message, got %q", report.Error)
	}
	if report.Pool.AcquiredConns != 4 {
		t.Errorf("expected 4 acquired conns, got %d", report.Pool.AcquiredConns)
	}
}

func TestNewHealthReport_PingFailure(t *testing.T) {
	report := NewHealthReport(PoolStatus{MaxConns: 20}, "rome", errors.New("connection refused"))

	if report.Healthy() {
		t.Error("expected an unhealthy report when the ping fails")
	}
	if report.Status != "unhealthy" {
		t.Errorf("expected status unhealthy, got %q", report.Status)
	}
	if report.Error != "connection refused" {
		t.Errorf("expected ping error in report, got %q", report.Error)
	}
}

func TestHealthReport_ClinicOmittedWhenUnknown(t *testing.T) {
	// Health checks from load balancers carry no clinic context; the field
	// must disappear from the JSON rather than render as "".
	report := NewHealthReport(PoolStatus{}, "", nil)

	raw, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if _, ok := decoded["clinic"]; ok {
		t.Error("expected clinic field to be omitted when empty")
	}
	if _, ok := decoded["error"]; ok {
		t.Error("expected error field to be omitted when empty")
	}
	if decoded["status"] != "healthy" {
		t.Errorf("expected status healthy, got %v", decoded["status"])
	}
}
