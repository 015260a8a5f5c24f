package storage

import (
	"fmt"

	"github.com/gatherly/gatherly/pkg/config"
	"github.com/go-redis/redis"
)

// NewRedis connects to the refresh token store and verifies the connection
// before the server starts accepting requests.
func NewRedis(c config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", c.Host, c.Port),
	})

	if err := client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s:%d: %v", c.Host, c.Port, err)
	}

	return client, nil
}
