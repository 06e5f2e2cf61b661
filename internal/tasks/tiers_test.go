package tasks

import (
	"encoding/json"
	"testing"
)

func TestExportTierScale(t *testing.T) {
	cases := []struct {
		tier      ExportTier
		scale     int
		label     string
		outWidth  int
		outHeight int
	}{
		{TierDraft, 2, "2K", 1600, 1200},
		{TierHD, 4, "HD", 3200, 2400},
		{TierUltra, 8, "8K", 6400, 4800},
	}

	// 以 800×600 的 CSS 画布为例验证输出分辨率倍率。
	const cssWidth, cssHeight = 800, 600

	for _, tc := range cases {
		if !tc.tier.Valid() {
			t.Errorf("tier %q reported invalid", tc.tier)
		}
		if got := tc.tier.Scale(); got != tc.scale {
			t.Errorf("%q scale = %d, want %d", tc.tier, got, tc.scale)
		}
		if got := tc.tier.Label(); got != tc.label {
			t.Errorf("%q label = %q, want %q", tc.tier, got, tc.label)
		}
		if w := cssWidth * tc.tier.Scale(); w != tc.outWidth {
			t.Errorf("%q output width = %d, want %d", tc.tier, w, tc.outWidth)
		}
		if h := cssHeight * tc.tier.Scale(); h != tc.outHeight {
			t.Errorf("%q output height = %d, want %d", tc.tier, h, tc.outHeight)
		}
	}
}

func TestExportTierInvalid(t *testing.T) {
	for _, tier := range []ExportTier{"", "4k", "print"} {
		if tier.Valid() {
			t.Errorf("tier %q reported valid", tier)
		}
	}
}

func TestNewPosterExportTask(t *testing.T) {
	task, err := NewPosterExportTask("session-1", string(TierHD), "corr-1")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != TypePosterExport {
		t.Fatalf("type = %q", task.Type())
	}

	var payload PosterExportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.SessionID != "session-1" || payload.Tier != "hd" || payload.CorrelationID != "corr-1" {
		t.Fatalf("payload = %+v", payload)
	}
}
