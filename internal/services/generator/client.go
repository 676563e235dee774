// Package generator — клиент внешнего сервиса генерации расписаний.
// Алгоритм генерации живет снаружи, ядро только запускает его и
// потребляет результат.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/evn/sop_backendl/internal/pkg/apperr"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type GenerateRequest struct {
	TeamID    int    `json:"team_id"`
	Month     string `json:"month"`
	ShiftType string `json:"shift_type"`
}

// GeneratedShift — одна смена из ответа генератора.
type GeneratedShift struct {
	UserID   int    `json:"user_id"`
	Date     string `json:"date"`
	Duration int    `json:"duration"`
}

// Generate запускает генерацию и возвращает сгенерированные смены.
// Таймаут ограничен, повторов нет: генерация не идемпотентна.
func (c *Client) Generate(ctx context.Context, teamID int, month, shiftType string) ([]GeneratedShift, error) {
	body, err := json.Marshal(GenerateRequest{TeamID: teamID, Month: month, ShiftType: shiftType})
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Unavailable("Сервис генерации недоступен", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Unavailable(fmt.Sprintf("Сервис генерации вернул статус %d", resp.StatusCode), nil)
	}

	var result struct {
		Shifts []GeneratedShift `json:"shifts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа генератора: %w", err)
	}
	return result.Shifts, nil
}
