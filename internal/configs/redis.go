package config

import (
	"log"

	"github.com/redis/rueidis"
)

// NewRedisClient connects the client that backs the realtime change
// channel. Pub/sub is the only redis usage here, so a single address
// is all the option block needs.
func NewRedisClient(addr string) rueidis.Client {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{addr},
		ClientName:  "taskboard",
	})
	if err != nil {
		log.Fatalf("failed to connect to redis at %s: %v", addr, err)
	}
	return client
}
