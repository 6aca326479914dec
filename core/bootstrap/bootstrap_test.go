package bootstrap

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	coreconfig "github.com/m3rciful/bazarbot/core/config"
	"github.com/m3rciful/bazarbot/core/logger"
)

func writeTagsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tags.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write tags file: %v", err)
	}
	return path
}

func TestLoadTagsFileFiltersBlanks(t *testing.T) {
	path := writeTagsFile(t, "Дом\n\n  Мебель  \n\t\nТехника\n")

	tags, err := LoadTagsFile(path)
	if err != nil {
		t.Fatalf("LoadTagsFile: %v", err)
	}
	want := []string{"Дом", "Мебель", "Техника"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("tags = %v, want %v", tags, want)
	}
}

func TestLoadTagsFileMissing(t *testing.T) {
	if _, err := LoadTagsFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadTagsFileEmptyPath(t *testing.T) {
	if _, err := LoadTagsFile("  "); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestRunRequiresConfig(t *testing.T) {
	if _, err := Run(Options{}); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestRunLoadsTags(t *testing.T) {
	logger.Catalog = slog.New(slog.NewTextHandler(io.Discard, nil))

	res, err := Run(Options{
		Config:     &coreconfig.Config{},
		TagsPath:   "unused",
		LoggerInit: func(*coreconfig.Config) error { return nil },
		LoadTags: func(path string) ([]string, error) {
			return []string{"Дом", "Мебель"}, nil
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(res.Tags); got != 2 {
		t.Errorf("len(Tags) = %d, want 2", got)
	}
}
