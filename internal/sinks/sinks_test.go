package sinks

import (
	"context"
	"testing"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestOpen_Disabled(t *testing.T) {
	s := Open(context.Background(), &config.Config{})
	defer s.Close()

	assert.Nil(t, s.DB)
	assert.Nil(t, s.Cache)
	assert.Empty(t, s.Publishers())
}

func TestOpen_UnreachableSinksAreDropped(t *testing.T) {
	cfg := &config.Config{
		DatabaseEnabled: true,
		DatabaseHost:    "127.0.0.1",
		DatabasePort:    1,
		DatabaseUser:    "pickstats",
		DatabaseName:    "pickstats",
		DatabaseSSLMode: "disable",
		RedisEnabled:    true,
		RedisHost:       "127.0.0.1",
		RedisPort:       1,
	}

	s := Open(context.Background(), cfg)
	defer s.Close()

	assert.Empty(t, s.Publishers())
}
