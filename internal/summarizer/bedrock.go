package summarizer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/nguyentantai21042004/distill-flow/internal/config"
	"github.com/nguyentantai21042004/distill-flow/internal/logger"
)

// bedrockAPI is the slice of the Bedrock runtime client this package uses.
type bedrockAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type implBedrock struct {
	client bedrockAPI
	cfg    *config.Config
	logger logger.Logger
}

// NewBedrock creates a Summarizer invoking an Anthropic model on Bedrock.
func NewBedrock(client bedrockAPI, cfg *config.Config, log logger.Logger) Summarizer {
	return &implBedrock{
		client: client,
		cfg:    cfg,
		logger: log,
	}
}

// Anthropic messages API shapes. Switching model families means changing
// these and the config's model section together.
type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	System           string             `json:"system,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
	Temperature      float64            `json:"temperature"`
	TopP             float64            `json:"top_p,omitempty"`
	TopK             int                `json:"top_k,omitempty"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

func (s *implBedrock) Summarize(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf("%s\n\n%s", s.cfg.Prompt.Template, transcript)

	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: s.cfg.Anthropic.Version,
		MaxTokens:        s.cfg.Model.MaxTokens,
		System:           s.cfg.Anthropic.System,
		Messages: []anthropicMessage{
			{
				Role:    "user",
				Content: []anthropicContent{{Type: "text", Text: prompt}},
			},
		},
		Temperature: s.cfg.Model.Temperature,
		TopP:        s.cfg.Model.TopP,
		TopK:        s.cfg.Model.TopK,
	})
	if err != nil {
		return "", fmt.Errorf("encode model request: %w", err)
	}

	s.logger.Debug(ctx, "Invoking model %s", s.cfg.Model.ModelID)

	out, err := s.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(s.cfg.Model.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("invoke model %s: %w", s.cfg.Model.ModelID, err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("parse model response: %w", err)
	}

	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", fmt.Errorf("model response carries no text content")
	}

	return resp.Content[0].Text, nil
}
