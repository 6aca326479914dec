package router

import (
	"time"

	tg "github.com/m3rciful/bazarbot/core/telegram"
	"github.com/m3rciful/bazarbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Flow receives every message update that is not mapped to a command.
type Flow interface {
	HandleMessage(c tele.Context) error
}

// MessageOptions controls fallback behaviour for text/photo updates.
type MessageOptions struct {
	UnknownText tele.HandlerFunc
}

// MessageRoutes builds handlers for text and photo routing.
// Command lookups (including reply-keyboard aliases) take precedence;
// everything else is handed to the conversational flow.
func MessageRoutes(flow Flow, reg *tg.Registry, opts MessageOptions) []tg.Route {
	textHandler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if flow != nil {
			return handleWithSummary(c, "flow", start, "", "", func() error {
				return flow.HandleMessage(c)
			})
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	photoHandler := func(c tele.Context) error {
		start := time.Now()
		if flow != nil {
			return handleWithSummary(c, "flow_photo", start, "", "", func() error {
				return flow.HandleMessage(c)
			})
		}
		logHandlerSummary(c, "unexpected_photo", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(textHandler)),
		},
		{
			Endpoint: tele.OnPhoto,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(photoHandler)),
		},
	}
}
