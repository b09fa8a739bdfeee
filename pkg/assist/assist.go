// Package assist wraps the generative-text collaborator used for
// marketing copy. Every call degrades to a fixed fallback on failure;
// errors are logged and swallowed, never shown to shoppers. Each
// operation allows a single in-flight call.
package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/example/trendyshop/pkg/config"
	"github.com/example/trendyshop/pkg/models"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrBusy is returned when the same operation is already in flight.
var ErrBusy = errors.New("assist: generation already in progress")

// Fallback copy, used when the collaborator is disabled or fails.
const (
	fallbackGuideDisabled = "Our curated collection features the latest in smart technology and lifestyle design. Explore our featured items to find the perfect gift for your loved ones."
	fallbackGuideEmpty    = "Discover our handpicked selection of premium gadgets designed for the modern lifestyle."
	fallbackGuideError    = "Experience the perfect blend of innovation and elegance with our exclusive gadget collection."
)

// Copy is the structured output of ProductCopy.
type Copy struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type Service struct {
	model  string
	logger *zap.Logger

	// generate is nil when no API key is configured; tests replace it.
	generate func(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error)

	guideInFlight atomic.Bool
	copyInFlight  atomic.Bool
	recsInFlight  atomic.Bool
}

func NewService(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) *Service {
	s := &Service{
		model:  cfg.Model,
		logger: logger,
	}
	if cfg.APIKey == "" {
		logger.Info("Gemini API key not configured, serving fallback copy")
		return s
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Warn("Failed to create Gemini client, serving fallback copy", zap.Error(err))
		return s
	}

	s.generate = func(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), genCfg)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
	return s
}

// GiftGuide writes a two-sentence gift guide snippet over the given
// products. Always returns usable text.
func (s *Service) GiftGuide(ctx context.Context, products []models.Product) (string, error) {
	if s.generate == nil {
		return fallbackGuideDisabled, nil
	}
	if !s.guideInFlight.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer s.guideInFlight.Store(false)

	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	prompt := fmt.Sprintf(`You are a helpful gift shop assistant for "Trendy Gadgets". Given these products: %s, write a short, trendy, and enthusiastic 2-sentence gift guide snippet highlighting why these are great gifts for tech enthusiasts.`,
		strings.Join(names, ", "))

	text, err := s.generate(ctx, prompt, nil)
	if err != nil {
		s.logger.Warn("Gift guide generation failed", zap.Error(err))
		return fallbackGuideError, nil
	}
	if text == "" {
		return fallbackGuideEmpty, nil
	}
	return text, nil
}

// ProductCopy writes a product description plus keyword tags for the
// admin console. Failure yields an empty Copy.
func (s *Service) ProductCopy(ctx context.Context, name string) (Copy, error) {
	if s.generate == nil {
		return Copy{}, nil
	}
	if !s.copyInFlight.CompareAndSwap(false, true) {
		return Copy{}, ErrBusy
	}
	defer s.copyInFlight.Store(false)

	prompt := fmt.Sprintf(`You are a creative marketing copywriter for "Trendy Gadgets". Write a compelling 2-sentence description and provide 5 relevant keywords for a product named %q. Return the result in JSON format with keys "description" and "tags" (array).`, name)

	text, err := s.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"description": {Type: genai.TypeString},
				"tags":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
		},
	})
	if err != nil {
		s.logger.Warn("Product copy generation failed", zap.Error(err))
		return Copy{}, nil
	}

	var result Copy
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		s.logger.Warn("Product copy response was not valid JSON", zap.Error(err))
		return Copy{}, nil
	}
	return result, nil
}

// Recommendations returns up to three product ids matching what the
// shopper described, or an empty list on failure.
func (s *Service) Recommendations(ctx context.Context, userInput string, products []models.Product) ([]string, error) {
	if s.generate == nil {
		return []string{}, nil
	}
	if !s.recsInFlight.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.recsInFlight.Store(false)

	inventory, err := json.Marshal(products)
	if err != nil {
		return []string{}, nil
	}
	prompt := fmt.Sprintf(`A user is looking for: %q. Based on our inventory: %s, return a JSON array of the top 3 product IDs that match their needs best.`,
		userInput, inventory)

	text, err := s.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	})
	if err != nil {
		s.logger.Warn("Recommendation generation failed", zap.Error(err))
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(text), &ids); err != nil {
		s.logger.Warn("Recommendation response was not valid JSON", zap.Error(err))
		return []string{}, nil
	}
	return ids, nil
}
