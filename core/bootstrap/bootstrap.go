package bootstrap

import (
	"fmt"
	"os"
	"strings"
	"time"

	coreconfig "github.com/m3rciful/bazarbot/core/config"
	"github.com/m3rciful/bazarbot/core/logger"

	"log/slog"
)

// Options control the generic bootstrap pipeline shared between bots.
type Options struct {
	Config   *coreconfig.Config
	TagsPath string

	LoggerInit func(*coreconfig.Config) error
	LoadTags   func(path string) ([]string, error)
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	Tags []string
}

// Run initializes the logger and loads the tag catalog.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	loadTags := opts.LoadTags
	if loadTags == nil {
		loadTags = LoadTagsFile
	}
	start := time.Now()
	tags, err := loadTags(opts.TagsPath)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: tag catalog load failed: %w", err)
	}
	logger.Catalog.Info("tag catalog loaded",
		slog.String("event", "catalog.load"),
		slog.String("path", opts.TagsPath),
		slog.Int("tags", len(tags)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)

	return &Result{Tags: tags}, nil
}

// LoadTagsFile reads a line-delimited tag list, dropping blank lines.
func LoadTagsFile(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty tags path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tags file: %w", err)
	}
	lines := strings.Split(string(data), "\n")
	tags := make([]string, 0, len(lines))
	for _, line := range lines {
		tag := strings.TrimSpace(line)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
