package main

import (
	"log"

	corecmd "github.com/m3rciful/bazarbot/core/cmd"
	"github.com/m3rciful/bazarbot/internal/app"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.LoadConfig(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			return app.New(cfg.(*app.Config))
		},
	})
	if err != nil {
		log.Fatalf("bazarbot: %v", err)
	}
}
