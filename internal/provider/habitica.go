package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/marait123/gnothi/internal/journal"
	"github.com/marait123/gnothi/internal/registry"
	"github.com/marait123/gnothi/internal/types"
)

// HabiticaConfig holds credentials for the Habitica v3 API.
type HabiticaConfig struct {
	BaseURL string // default https://habitica.com/api/v3
	UserID  string
	APIKey  string

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Habitica syncs habit and daily task scores from the Habitica API onto
// an entry. Each task becomes a number field owned by the "habitica"
// service, named after the task text.
type Habitica struct {
	cfg     HabiticaConfig
	http    *http.Client
	fields  registry.Store
	entries journal.Store
}

// NewHabitica creates the Habitica provider.
func NewHabitica(cfg HabiticaConfig, fields registry.Store, entries journal.Store) *Habitica {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://habitica.com/api/v3"
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Habitica{
		cfg:     cfg,
		http:    httpClient,
		fields:  fields,
		entries: entries,
	}
}

func (h *Habitica) Name() string { return "habitica" }

// habiticaTask is the subset of the Habitica task shape we consume.
type habiticaTask struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Type  string  `json:"type"` // "habit", "daily", "todo", "reward"
	Value float64 `json:"value"`
}

func (h *Habitica) Sync(ctx context.Context, entryID string) (int, error) {
	tasks, err := h.fetchTasks(ctx)
	if err != nil {
		return 0, err
	}

	values := make([]FieldValue, 0, len(tasks))
	for _, t := range tasks {
		if t.Type != "habit" && t.Type != "daily" {
			continue
		}
		if t.Text == "" {
			continue
		}
		values = append(values, FieldValue{
			Name:  t.Text,
			Type:  types.FieldNumber,
			Value: types.NumberValue(strconv.FormatFloat(t.Value, 'f', -1, 64)),
		})
	}

	return writeValues(ctx, h.fields, h.entries, h.Name(), entryID, values)
}

func (h *Habitica) fetchTasks(ctx context.Context) ([]habiticaTask, error) {
	url := strings.TrimSuffix(h.cfg.BaseURL, "/") + "/tasks/user"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("habitica: building request: %w", err)
	}
	req.Header.Set("x-api-user", h.cfg.UserID)
	req.Header.Set("x-api-key", h.cfg.APIKey)
	req.Header.Set("x-client", h.cfg.UserID+"-gnothi")

	resp, err := h.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("habitica: fetching tasks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("habitica: tasks request returned %d", resp.StatusCode)
	}

	var body struct {
		Success bool           `json:"success"`
		Data    []habiticaTask `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("habitica: decoding tasks: %w", err)
	}
	return body.Data, nil
}
