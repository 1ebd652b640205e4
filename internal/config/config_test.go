package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/orders.log", cfg.JournalPath)
	assert.False(t, cfg.KafkaEnabled)
	assert.False(t, cfg.AmqpEnabled)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-abc")
	t.Setenv("SLACK_CHANNELS", "C1, C2 ,")
	t.Setenv("SHOPIFY_SHOP_NAME", "myshop")
	t.Setenv("KAFKA_ENABLED", "yes")
	t.Setenv("JWT_HS256_SECRET", "s")

	cfg := New()
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "xoxb-abc", cfg.SlackToken)
	assert.Equal(t, []string{"C1", "C2"}, cfg.SlackChannels)
	assert.Equal(t, "myshop", cfg.ShopifyShop)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, map[string]string{"default": "s"}, cfg.JWTKeys)
}

func TestParseKeyMap(t *testing.T) {
	m := parseKeyMap("k1:s1, k2:s2, bad")
	assert.Equal(t, map[string]string{"k1": "s1", "k2": "s2"}, m)
}
