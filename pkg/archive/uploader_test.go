package archive

import (
	"testing"
	"time"

	"github.com/rowlog/rowlog/pkg/config"
)

func TestObjectKeyFor(t *testing.T) {
	now := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

	if got, want := objectKeyFor("rowlogs", "/var/log/rows.csv", now), "rowlogs/2026/03/07/rows.csv"; got != want {
		t.Errorf("objectKeyFor() = %q, want %q", got, want)
	}
	if got, want := objectKeyFor("", "rows.csv", now), "rowlogs/2026/03/07/rows.csv"; got != want {
		t.Errorf("objectKeyFor() with empty prefix = %q, want %q", got, want)
	}
	if got, want := objectKeyFor("audit", "a/b/c.xlsx", now), "audit/2026/03/07/c.xlsx"; got != want {
		t.Errorf("objectKeyFor() = %q, want %q", got, want)
	}
}

func TestNewUploader_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ArchiveConfig
	}{
		{"empty config", config.ArchiveConfig{}},
		{"missing bucket", config.ArchiveConfig{Endpoint: "oss-cn-hangzhou.aliyuncs.com"}},
		{
			"missing secret",
			config.ArchiveConfig{
				Endpoint:    "oss-cn-hangzhou.aliyuncs.com",
				Bucket:      "logs",
				AccessKeyID: "key",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewUploader(&tt.cfg, nil); err == nil {
				t.Error("NewUploader() expected error")
			}
		})
	}
}
