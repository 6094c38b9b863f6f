package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("BCRYPT_COST", "")

	c := Load()
	require.NotNil(t, c)

	assert.Equal(t, "giftdb", c.MongoDB)
	assert.Equal(t, time.Hour, c.TokenTTL)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "gifts", c.ESGiftsIndex)
	assert.Equal(t, "", c.JWTSecret)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	t.Setenv("BCRYPT_COST", "ten")
	t.Setenv("MAIL_SEND_ENABLED", "maybe")

	c := Load()

	assert.Equal(t, time.Hour, c.TokenTTL)
	assert.Equal(t, 10, c.BcryptCost)
	assert.False(t, c.MailSendEnabled)
}

func TestValidate(t *testing.T) {
	c := &Config{}
	assert.ErrorIs(t, c.Validate(), ErrMissingJWTSecret)

	c.JWTSecret = "   "
	assert.ErrorIs(t, c.Validate(), ErrMissingJWTSecret)

	c.JWTSecret = "s3cret"
	assert.NoError(t, c.Validate())
}

func TestSplitLists(t *testing.T) {
	c := &Config{
		CORSAllowedOrigins: "http://a.test, ,http://b.test",
		ElasticsearchAddrs: "",
	}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSOrigins())
	assert.Empty(t, c.ESAddrs())
}
