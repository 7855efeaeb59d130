package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yukikurage/taskhub-api/internal/constants"
	"github.com/yukikurage/taskhub-api/internal/models"
)

type fakeCompleter struct {
	content string
	err     error
	calls   int
}

func (f *fakeCompleter) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func TestGenerateDrafts(t *testing.T) {
	completer := &fakeCompleter{content: "```json\n" + `[
		{"title": "Call the plumber", "description": "Kitchen sink", "priority": "high", "deadline": "2099-01-01T10:00:00Z"},
		{"title": "   ", "description": "blank titles are dropped"},
		{"title": "Old news", "priority": "urgent", "deadline": "2001-01-01T00:00:00Z"}
	]` + "\n```"}
	svc := &TaskService{aiService: newAIService(completer, zap.NewNop())}

	drafts, err := svc.GenerateDrafts(context.Background(), "call the plumber")
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, "Call the plumber", drafts[0].Title)
	assert.Equal(t, models.TaskPriorityHigh, drafts[0].Priority)
	require.NotNil(t, drafts[0].Deadline)
	assert.Equal(t, 2099, drafts[0].Deadline.Year())

	assert.Equal(t, models.TaskPriorityMedium, drafts[1].Priority)
	assert.Nil(t, drafts[1].Deadline)
}

func TestGenerateDrafts_Empty(t *testing.T) {
	svc := &TaskService{aiService: newAIService(&fakeCompleter{content: "[]"}, zap.NewNop())}

	_, err := svc.GenerateDrafts(context.Background(), "nothing to do")
	assert.ErrorIs(t, err, ErrAINoTasksGenerated)
}

func TestGenerateDrafts_TruncatesMultibyteTitles(t *testing.T) {
	fits := "a" + strings.Repeat("é", 150)
	long := strings.Repeat("ü", 250)
	completer := &fakeCompleter{content: `[{"title": "` + fits + `"}, {"title": "` + long + `"}]`}
	svc := &TaskService{aiService: newAIService(completer, zap.NewNop())}

	drafts, err := svc.GenerateDrafts(context.Background(), "umlauts")
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, fits, drafts[0].Title)
	assert.True(t, utf8.ValidString(drafts[1].Title))
	assert.Equal(t, constants.MaxTitleLength, utf8.RuneCountInString(drafts[1].Title))
	assert.Equal(t, strings.Repeat("ü", constants.MaxTitleLength), drafts[1].Title)
}

func TestAIService_BreakerOpensAfterFailures(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("upstream 500")}
	ai := newAIService(completer, zap.NewNop())
	ai.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	for i := 0; i < 4; i++ {
		_, err := ai.DraftTasksFromText(context.Background(), "text")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrAIServiceUnavailable)
	}

	_, err := ai.DraftTasksFromText(context.Background(), "text")
	assert.ErrorIs(t, err, ErrAIServiceUnavailable)
	assert.Equal(t, 4, completer.calls)
}
