package paperless_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/paperless"
	"github.com/JaimeStill/paperless/pkg/pagination"
	"github.com/JaimeStill/paperless/pkg/transport"
	"github.com/JaimeStill/paperless/tasks"
)

var testEnv = &paperless.Env{
	Transport: transport.Env{
		BaseURL: "TEST_PAPERLESS_BASE_URL",
		Token:   "TEST_PAPERLESS_TOKEN",
	},
	Pagination: pagination.Env{
		DefaultPageSize: "TEST_PAPERLESS_PAGE_SIZE",
	},
	TaskPollDelay: "TEST_PAPERLESS_TASK_POLL_DELAY",
}

func TestConfig_Finalize(t *testing.T) {
	tests := []struct {
		name      string
		config    paperless.Config
		env       map[string]string
		wantErr   bool
		wantDelay time.Duration
		wantPage  int
	}{
		{
			name:      "defaults",
			config:    paperless.Config{Server: transport.Config{BaseURL: "http://paperless:8000", Token: "t"}},
			wantDelay: tasks.DefaultPollDelay,
			wantPage:  25,
		},
		{
			name: "env overrides",
			env: map[string]string{
				"TEST_PAPERLESS_BASE_URL":        "https://docs.example.com",
				"TEST_PAPERLESS_TOKEN":           "secret",
				"TEST_PAPERLESS_PAGE_SIZE":       "50",
				"TEST_PAPERLESS_TASK_POLL_DELAY": "1s",
			},
			wantDelay: time.Second,
			wantPage:  50,
		},
		{
			name:    "missing server",
			wantErr: true,
		},
		{
			name: "invalid delay",
			config: paperless.Config{
				Server:        transport.Config{BaseURL: "http://paperless:8000", Token: "t"},
				TaskPollDelay: "soon",
			},
			wantErr: true,
		},
		{
			name: "negative delay",
			config: paperless.Config{
				Server:        transport.Config{BaseURL: "http://paperless:8000", Token: "t"},
				TaskPollDelay: "-1s",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := tt.config
			err := cfg.Finalize(testEnv)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := cfg.TaskPollDelayDuration(); got != tt.wantDelay {
				t.Errorf("TaskPollDelayDuration() = %v, want %v", got, tt.wantDelay)
			}
			if cfg.Pagination.DefaultPageSize != tt.wantPage {
				t.Errorf("DefaultPageSize = %d, want %d", cfg.Pagination.DefaultPageSize, tt.wantPage)
			}
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	base := paperless.Config{
		Server:        transport.Config{BaseURL: "http://a:8000", Token: "a"},
		TaskPollDelay: "250ms",
	}
	overlay := paperless.Config{
		Server:        transport.Config{BaseURL: "http://b:8000"},
		Pagination:    pagination.Config{DefaultPageSize: 10},
		TaskPollDelay: "2s",
	}

	base.Merge(&overlay)

	if base.Server.BaseURL != "http://b:8000" {
		t.Errorf("BaseURL = %q", base.Server.BaseURL)
	}
	if base.Server.Token != "a" {
		t.Errorf("Token = %q, want unchanged", base.Server.Token)
	}
	if base.Pagination.DefaultPageSize != 10 {
		t.Errorf("DefaultPageSize = %d", base.Pagination.DefaultPageSize)
	}
	if base.TaskPollDelay != "2s" {
		t.Errorf("TaskPollDelay = %q", base.TaskPollDelay)
	}
}
