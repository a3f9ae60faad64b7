package config

import "fmt"

type Config struct {
	AWS        AWSConfig        `yaml:"aws"`
	Model      ModelConfig      `yaml:"model"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	Prompt     PromptConfig     `yaml:"prompt"`
	Polling    PollingConfig    `yaml:"polling"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Logging    LoggingConfig    `yaml:"logging"`
	Watch      WatchConfig      `yaml:"watch"`
	Slack      ChannelGroup     `yaml:"slack"`
	Teams      ChannelGroup     `yaml:"teams"`
}

type AWSConfig struct {
	S3BucketName string `yaml:"s3_bucket_name"`
}

type ModelConfig struct {
	ModelID     string  `yaml:"model_id"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"top_p"`
	TopK        int     `yaml:"top_k"`
}

type AnthropicConfig struct {
	Version string `yaml:"anthropic_version"`
	System  string `yaml:"system"`
}

type PromptConfig struct {
	Template string `yaml:"template"`
}

type PollingConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
	TimeoutMinutes  int `yaml:"timeout_minutes"`
}

type SummarizerConfig struct {
	Backend     string `yaml:"backend"`
	GeminiModel string `yaml:"gemini_model"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type WatchConfig struct {
	InputDir      string `yaml:"input_dir"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

// ChannelGroup holds the webhook destinations for one notification platform.
// WebhookEndpoint is the legacy single-endpoint form; Validate folds it into
// Webhooks so consumers only ever deal with the list.
type ChannelGroup struct {
	WebhookEndpoint string          `yaml:"webhook_endpoint"`
	Webhooks        []ChannelConfig `yaml:"webhooks"`
}

// ChannelConfig is one configured notification destination.
type ChannelConfig struct {
	Name     string `yaml:"name"`
	Endpoint string `yaml:"endpoint"`
}

const (
	BackendBedrock = "bedrock"
	BackendGemini  = "gemini"
)

func (c *Config) Validate() error {
	if c.Summarizer.Backend == "" {
		c.Summarizer.Backend = BackendBedrock
	}
	switch c.Summarizer.Backend {
	case BackendBedrock:
		if c.Model.ModelID == "" {
			return fmt.Errorf("model.model_id is required for the bedrock backend")
		}
	case BackendGemini:
		if c.Summarizer.GeminiModel == "" {
			c.Summarizer.GeminiModel = "gemini-2.5-flash"
		}
	default:
		return fmt.Errorf("summarizer.backend must be %q or %q, got %q",
			BackendBedrock, BackendGemini, c.Summarizer.Backend)
	}

	if c.Polling.IntervalSeconds == 0 {
		c.Polling.IntervalSeconds = 3
	}
	if c.Polling.IntervalSeconds < 0 {
		return fmt.Errorf("polling.interval_seconds must be positive")
	}
	if c.Polling.TimeoutMinutes == 0 {
		c.Polling.TimeoutMinutes = 60
	}
	if c.Model.MaxTokens == 0 {
		c.Model.MaxTokens = 2048
	}
	if c.Anthropic.Version == "" {
		c.Anthropic.Version = "bedrock-2023-05-31"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Watch.InputDir == "" {
		c.Watch.InputDir = "data/input"
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 2
	}

	c.Slack.normalize()
	c.Teams.normalize()

	for _, g := range []struct {
		name  string
		group ChannelGroup
	}{{"slack", c.Slack}, {"teams", c.Teams}} {
		for i, w := range g.group.Webhooks {
			if w.Endpoint == "" {
				return fmt.Errorf("%s.webhooks[%d]: endpoint is required", g.name, i)
			}
		}
	}

	return nil
}

// normalize folds the legacy single webhook_endpoint form into a one-element
// webhook list and assigns placeholder names to unnamed entries.
func (g *ChannelGroup) normalize() {
	if len(g.Webhooks) == 0 && g.WebhookEndpoint != "" {
		g.Webhooks = []ChannelConfig{{Name: "default", Endpoint: g.WebhookEndpoint}}
	}
	g.WebhookEndpoint = ""

	for i := range g.Webhooks {
		if g.Webhooks[i].Name == "" {
			g.Webhooks[i].Name = fmt.Sprintf("Webhook %d", i+1)
		}
	}
}
