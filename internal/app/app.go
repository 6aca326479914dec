package app

import (
	"context"

	"github.com/m3rciful/bazarbot/core/bootstrap"
	"github.com/m3rciful/bazarbot/core/logger"
	coretelegram "github.com/m3rciful/bazarbot/core/telegram"
	"github.com/m3rciful/bazarbot/core/telegram/commands"
	"github.com/m3rciful/bazarbot/core/telegram/router"
	"github.com/m3rciful/bazarbot/internal/bot"
	"github.com/m3rciful/bazarbot/internal/listing"
)

// App assembles the flea-market workflow on top of the bot core.
type App struct {
	cfg     *Config
	channel *bot.Channel
	flow    *bot.Flow
}

// New bootstraps infrastructure (logger, tag catalog) and wires the
// session store, workflow engine, and transport adapter.
func New(cfg *Config) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options{
		Config:   &cfg.Core,
		TagsPath: cfg.Bot.TagsFile,
	})
	if err != nil {
		return nil, err
	}

	catalog := listing.NewCatalog(res.Tags)
	store := listing.NewStore()
	channel := bot.NewChannel(cfg.Bot.ChannelID)
	engine := listing.NewEngine(store, catalog, channel, channel, listing.Options{
		OpenHour: cfg.Bot.PublishOpenHour,
		Logger:   logger.Flow,
	})

	return &App{
		cfg:     cfg,
		channel: channel,
		flow:    bot.NewFlow(engine),
	}, nil
}

// TelegramRunOptions declares commands, callbacks, and routes for the
// bot runtime. The reply-keyboard captions are registered as command
// aliases so button presses reach the same handlers.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.flow.Start,
		Description: "Начать диалог",
	})
	reg.RegisterCommand("/create", commands.Command{
		Handler:     a.flow.Create,
		Description: "Новое объявление",
		Aliases:     []string{listing.BtnNewListing},
	})
	reg.RegisterCommand("/publish", commands.Command{
		Handler:     a.flow.Publish,
		Description: "Опубликовать",
		Aliases:     []string{listing.BtnPublish},
	})

	if err := reg.RegisterCallback("purpose", a.flow.PurposeCallback); err != nil {
		return coretelegram.RunOptions{}, err
	}
	if err := reg.RegisterCallback("tag", a.flow.TagCallback); err != nil {
		return coretelegram.RunOptions{}, err
	}
	if err := reg.RegisterCallback("retract", a.flow.RetractCallback); err != nil {
		return coretelegram.RunOptions{}, err
	}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.MessageRoutes(a.flow, reg, router.MessageOptions{})...)

	return coretelegram.RunOptions{
		Config:      &a.cfg.Core,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(&a.cfg.Core, nil),
		Routes:      routes,
		OnStart: func(_ context.Context, rt coretelegram.Runtime) error {
			a.channel.Bind(rt.Bot)
			return nil
		},
	}, nil
}
