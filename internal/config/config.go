package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	Telegram struct {
		ApiKey   string  `yaml:"api_key" env:"BOT_TOKEN" env-default:""`
		AdminIds []int64 `yaml:"admin_ids" env:"ADMIN_IDS"`
		BotName  string  `yaml:"bot_name" env-default:"GojoCastingBot"`
		Enabled  bool    `yaml:"enabled" env-default:"true"`
	} `yaml:"telegram"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env-default:"pass"`
		Database string `yaml:"database" env-default:""`
	} `yaml:"mongo"`
	Files struct {
		Backend   string `yaml:"backend" env-default:"disk"` // disk or gridfs
		UploadDir string `yaml:"upload_dir" env-default:"uploads"`
	} `yaml:"files"`
	Payment struct {
		RegistrationFee int    `yaml:"registration_fee" env-default:"200"`
		TrainingFee     int    `yaml:"training_fee" env-default:"2500"`
		CBEAccount      string `yaml:"cbe_account" env-default:"1000679541955"`
		AbissnyaAccount string `yaml:"abissnya_account" env-default:"195426619"`
		TelebirrAccount string `yaml:"telebirr_account" env-default:"0914809000"`
	} `yaml:"payment"`
	Listen struct {
		BindIP     string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port       string `yaml:"port" env-default:"9100"`
		ApiKey     string `yaml:"key" env-default:""`
		SignSecret string `yaml:"sign_secret" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}

// IsAdmin reports whether the given Telegram user id is a configured admin.
func (c *Config) IsAdmin(userId int64) bool {
	for _, id := range c.Telegram.AdminIds {
		if id == userId {
			return true
		}
	}
	return false
}
