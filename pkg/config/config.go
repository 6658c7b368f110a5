package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/flytaly/scrapmd/pkg/log"
	"github.com/flytaly/scrapmd/pkg/markdown"
	"github.com/flytaly/scrapmd/pkg/transform"
)

const configInvalidCode = "CONFIG_INVALID"

type Config struct {
	Transform transform.Config `yaml:"transform"`
	Render    markdown.Config  `yaml:"render"`
	Output    Output           `yaml:"output"`
	Workers   int              `yaml:"workers"`
	Log       Log              `yaml:"log"`
}

type Output struct {
	// HTML converts the rendered Markdown to HTML
	HTML bool `yaml:"html"`
	// Tags adds the page's hashtags to the front matter
	Tags bool `yaml:"tags"`
	// Write saves single documents next to the source instead of printing them
	Write bool `yaml:"write"`
}

type Log struct {
	Path   string `yaml:"path"`
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Transform: transform.DefaultConfig(),
		Render:    markdown.DefaultConfig(),
		Workers:   4,
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file on top of the defaults and validates the result
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, wrapInvalid(fmt.Errorf("read config: %w", err))
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, wrapInvalid(fmt.Errorf("decode config %s: %w", path, err))
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Workers, validation.Required, validation.Min(1)),
		validation.Field(&c.Transform, validation.By(func(value any) error {
			t := value.(transform.Config)
			return validation.ValidateStruct(&t,
				validation.Field(&t.Ceiling, validation.Required, validation.Min(1), validation.Max(255)),
			)
		})),
		validation.Field(&c.Render, validation.By(func(value any) error {
			if strings.ContainsAny(value.(markdown.Config).IndentUnit, "\r\n") {
				return validation.NewError("config.render.indent_unit", "indent unit must not contain line breaks")
			}
			return nil
		})),
		validation.Field(&c.Log, validation.By(func(value any) error {
			l := value.(Log)
			return validation.ValidateStruct(&l,
				validation.Field(&l.Level, validation.In(stringsToAny(log.Levels)...)),
				validation.Field(&l.Format, validation.In(stringsToAny(log.Formats)...)),
				validation.Field(&l.Path, validation.By(func(value any) error {
					if value.(string) != "" && l.Format != "" && l.Format != "text" {
						return validation.NewError("config.log.path", "log path is only supported with the text format")
					}
					return nil
				})),
			)
		})),
	)
	return wrapInvalid(err)
}

func wrapInvalid(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid configuration").
		WithTextCode(configInvalidCode)
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
