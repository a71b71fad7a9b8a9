package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	TelegramBot TelegramBot
	League      League
	Storage     Storage
	Scheduler   Scheduler
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
}

type TelegramBot struct {
	Token        string            `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID       int64             `envconfig:"CHAT_ID" required:"true"`
	AdminUserIDs []int64           `envconfig:"ADMIN_USER_IDS"`
	ManagerUsers map[string]string `envconfig:"MANAGER_USERS"` // telegram username -> manager name
}

type League struct {
	DraftType   string   `envconfig:"DRAFT_TYPE" default:"EPL"`
	Managers    []string `envconfig:"MANAGERS" required:"true"`
	SeasonEndGw int      `envconfig:"SEASON_END_GW" default:"38"`
	LimitGK     int      `envconfig:"LIMIT_GK" default:"3"`
	LimitDEF    int      `envconfig:"LIMIT_DEF" default:"7"`
	LimitMID    int      `envconfig:"LIMIT_MID" default:"8"`
	LimitFWD    int      `envconfig:"LIMIT_FWD" default:"4"`
	MaxPrice    float64  `envconfig:"MAX_PLAYER_PRICE"` // 0 disables the cap
}

type Storage struct {
	Driver      string `envconfig:"STORE_DRIVER" default:"file"`
	Path        string `envconfig:"STORE_PATH" default:"data/draft_state.json"`
	S3Bucket    string `envconfig:"STORE_S3_BUCKET"`
	S3Key       string `envconfig:"STORE_S3_KEY" default:"draft_state.json"`
	S3Region    string `envconfig:"STORE_S3_REGION"`
	S3Endpoint  string `envconfig:"STORE_S3_ENDPOINT"`
	S3PathStyle bool   `envconfig:"STORE_S3_PATH_STYLE"`
	RetryLimit  int    `envconfig:"RETRY_LIMIT" default:"3"`
}

type Scheduler struct {
	ReminderCron  string `envconfig:"REMINDER_CRON" default:"0 9 * * *"`
	AutoCloseCron string `envconfig:"AUTOCLOSE_CRON"` // empty disables
	Timezone      string `envconfig:"SCHEDULE_TZ" default:"Europe/Warsaw"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
