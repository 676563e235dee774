package shift

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/evn/sop_backendl/internal/models"
	"github.com/redis/go-redis/v9"
)

const countersTTL = 30 * time.Second

// CountersCache — короткоживущий кеш счетчиков очереди заявок.
// Кеш только ускоряет вкладки, источником истины остается БД.
type CountersCache struct {
	client *redis.Client
}

func NewCountersCache(client *redis.Client) *CountersCache {
	return &CountersCache{client: client}
}

func countersKey(teamID int) string {
	return fmt.Sprintf("shift_requests:counters:%d", teamID)
}

func (c *CountersCache) Get(ctx context.Context, teamID int) (models.RequestCounters, bool) {
	data, err := c.client.Get(ctx, countersKey(teamID)).Bytes()
	if err != nil {
		return models.RequestCounters{}, false
	}
	var counters models.RequestCounters
	if err := json.Unmarshal(data, &counters); err != nil {
		return models.RequestCounters{}, false
	}
	return counters, true
}

func (c *CountersCache) Set(ctx context.Context, teamID int, counters models.RequestCounters) {
	data, _ := json.Marshal(counters)
	if err := c.client.Set(ctx, countersKey(teamID), data, countersTTL).Err(); err != nil {
		log.Printf("Не удалось закешировать счетчики: %v", err)
	}
}

// Invalidate сбрасывает счетчики всех команд после любой мутации заявок.
func (c *CountersCache) Invalidate(ctx context.Context) {
	keys, err := c.client.Keys(ctx, "shift_requests:counters:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Не удалось сбросить кеш счетчиков: %v", err)
	}
}
