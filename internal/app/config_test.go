package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
telegram:
  token: "123:abc"
bot:
  channel_id: -1001234567890
  tags_file: tags-list.txt
  publish_open_hour: 9
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Core.Telegram.Token)
	assert.Equal(t, "longpoll", cfg.Core.Telegram.RunMode)
	assert.Equal(t, int64(-1001234567890), cfg.Bot.ChannelID)
	assert.Equal(t, "tags-list.txt", cfg.Bot.TagsFile)
	assert.Equal(t, 9, cfg.Bot.PublishOpenHour)
	assert.Same(t, &cfg.Core, cfg.CoreConfig())
}

func TestLoadConfigEnvOverridesChannel(t *testing.T) {
	t.Setenv("BOT_CHANNEL_ID", "-1009999999999")

	cfg, err := LoadConfig(writeConfig(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, int64(-1009999999999), cfg.Bot.ChannelID)
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing token",
			yaml: `
bot:
  channel_id: -100
  tags_file: tags-list.txt
`,
			want: "telegram token is required",
		},
		{
			name: "missing channel",
			yaml: `
telegram:
  token: "123:abc"
bot:
  tags_file: tags-list.txt
`,
			want: "bot.channel_id is required",
		},
		{
			name: "missing tags file",
			yaml: `
telegram:
  token: "123:abc"
bot:
  channel_id: -100
`,
			want: "bot.tags_file is required",
		},
		{
			name: "bad hour",
			yaml: `
telegram:
  token: "123:abc"
bot:
  channel_id: -100
  tags_file: tags-list.txt
  publish_open_hour: 24
`,
			want: "bot.publish_open_hour",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
