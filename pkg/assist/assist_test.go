package assist

import (
	"context"
	"errors"
	"testing"

	"github.com/example/trendyshop/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func newTestService(generate func(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error)) *Service {
	return &Service{
		model:    "test-model",
		logger:   zap.NewNop(),
		generate: generate,
	}
}

func fixed(text string, err error) func(context.Context, string, *genai.GenerateContentConfig) (string, error) {
	return func(context.Context, string, *genai.GenerateContentConfig) (string, error) {
		return text, err
	}
}

func TestGiftGuide(t *testing.T) {
	ctx := context.Background()
	products := []models.Product{{ID: "p1", Name: "Smart Lamp"}}

	t.Run("disabled service serves fixed copy", func(t *testing.T) {
		s := newTestService(nil)
		text, err := s.GiftGuide(ctx, products)
		require.NoError(t, err)
		assert.Equal(t, fallbackGuideDisabled, text)
	})

	t.Run("generation failure degrades to copy, not an error", func(t *testing.T) {
		s := newTestService(fixed("", errors.New("quota exceeded")))
		text, err := s.GiftGuide(ctx, products)
		require.NoError(t, err)
		assert.Equal(t, fallbackGuideError, text)
	})

	t.Run("empty response has its own fallback", func(t *testing.T) {
		s := newTestService(fixed("", nil))
		text, err := s.GiftGuide(ctx, products)
		require.NoError(t, err)
		assert.Equal(t, fallbackGuideEmpty, text)
	})

	t.Run("successful generation passes through", func(t *testing.T) {
		s := newTestService(fixed("Great gifts await!", nil))
		text, err := s.GiftGuide(ctx, products)
		require.NoError(t, err)
		assert.Equal(t, "Great gifts await!", text)
	})
}

func TestProductCopy(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled service returns empty copy", func(t *testing.T) {
		s := newTestService(nil)
		c, err := s.ProductCopy(ctx, "Smart Lamp")
		require.NoError(t, err)
		assert.Equal(t, Copy{}, c)
	})

	t.Run("parses the structured response", func(t *testing.T) {
		s := newTestService(fixed(`{"description":"A lamp.","tags":["smart","home"]}`, nil))
		c, err := s.ProductCopy(ctx, "Smart Lamp")
		require.NoError(t, err)
		assert.Equal(t, "A lamp.", c.Description)
		assert.Equal(t, []string{"smart", "home"}, c.Tags)
	})

	t.Run("invalid JSON degrades to empty copy", func(t *testing.T) {
		s := newTestService(fixed("not json", nil))
		c, err := s.ProductCopy(ctx, "Smart Lamp")
		require.NoError(t, err)
		assert.Equal(t, Copy{}, c)
	})

	t.Run("generation failure degrades to empty copy", func(t *testing.T) {
		s := newTestService(fixed("", errors.New("boom")))
		c, err := s.ProductCopy(ctx, "Smart Lamp")
		require.NoError(t, err)
		assert.Equal(t, Copy{}, c)
	})
}

func TestRecommendations(t *testing.T) {
	ctx := context.Background()
	products := []models.Product{{ID: "p1"}, {ID: "p2"}}

	t.Run("disabled service returns an empty list", func(t *testing.T) {
		s := newTestService(nil)
		ids, err := s.Recommendations(ctx, "a gift for dad", products)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("parses the id array", func(t *testing.T) {
		s := newTestService(fixed(`["p2","p1"]`, nil))
		ids, err := s.Recommendations(ctx, "a gift for dad", products)
		require.NoError(t, err)
		assert.Equal(t, []string{"p2", "p1"}, ids)
	})

	t.Run("invalid JSON degrades to an empty list", func(t *testing.T) {
		s := newTestService(fixed("oops", nil))
		ids, err := s.Recommendations(ctx, "a gift for dad", products)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestSingleInFlightPerOperation(t *testing.T) {
	ctx := context.Background()
	entered := make(chan struct{})
	release := make(chan struct{})

	s := newTestService(func(context.Context, string, *genai.GenerateContentConfig) (string, error) {
		close(entered)
		<-release
		return "done", nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		text, err := s.GiftGuide(ctx, nil)
		assert.NoError(t, err)
		assert.Equal(t, "done", text)
	}()

	<-entered
	_, err := s.GiftGuide(ctx, nil)
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	<-done
}
