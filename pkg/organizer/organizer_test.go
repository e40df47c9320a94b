package organizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beatercode/organAizer-server/pkg/config"
	"github.com/beatercode/organAizer-server/pkg/llm"
	"github.com/beatercode/organAizer-server/pkg/tree"
)

// fakeProvider — AI коллаборатор для тестов: отдаёт заготовленный
// ответ или ошибку.
type fakeProvider struct {
	response string
	err      error
	calls    int
}

func (f *fakeProvider) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testConfig(aiKey string) *config.AppConfig {
	cfg := &config.AppConfig{}
	cfg.AI.APIKey = aiKey
	return cfg.GetDefaults()
}

func testTree() *tree.Node {
	mtime := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	mkFile := func(name, ext string) *tree.Node {
		return &tree.Node{
			Type: tree.TypeFile, Name: name, Path: "/home/" + name, Extension: ext,
			Stats: &tree.FileStats{Size: 100, MTime: mtime},
		}
	}
	return &tree.Node{
		Type: tree.TypeDirectory, Name: "home", Path: "/home",
		Children: []*tree.Node{
			mkFile("a.jpg", ".jpg"),
			mkFile("b.jpg", ".jpg"),
			mkFile("c.jpg", ".jpg"),
			mkFile("d.jpg", ".jpg"),
			mkFile("e.jpg", ".jpg"),
			mkFile("report.pdf", ".pdf"),
		},
	}
}

// End-to-end: categorize с выключенным AI раскладывает jpg в Images,
// pdf в Documents и помечает ответ aiStatus=disabled.
func TestCategorizeAIDisabled(t *testing.T) {
	o := New(testConfig(""), nil)

	res := o.Categorize(context.Background(), testTree())

	assert.Equal(t, OptionCategorize, res.Action)
	assert.Equal(t, AIStatusDisabled, res.AIStatus)
	assert.NotEmpty(t, res.Note)

	byName := map[string][]string{}
	for _, b := range res.FilesByCategory {
		for _, f := range b.Files {
			byName[b.Name] = append(byName[b.Name], f.Name)
		}
	}
	assert.Len(t, byName["Images"], 5)
	assert.Equal(t, []string{"report.pdf"}, byName["Documents"])
}

func TestCategorizeAISuccess(t *testing.T) {
	provider := &fakeProvider{response: "```json\n{\"Pictures\": [\".jpg\"], \"Paperwork\": [\".pdf\"]}\n```"}
	o := New(testConfig("key"), provider)

	res := o.Categorize(context.Background(), testTree())

	require.Equal(t, 1, provider.calls)
	assert.Empty(t, res.AIStatus)
	require.Len(t, res.Categories, 2)
	assert.Equal(t, "Pictures", res.Categories[0].Name)
	assert.Len(t, res.FilesByCategory[0].Files, 5)
	assert.Len(t, res.FilesByCategory[1].Files, 1)
}

func TestCategorizeAIJSONWithProse(t *testing.T) {
	// JSON внутри пояснительного текста — извлекается по балансу скобок
	provider := &fakeProvider{response: "Sure! Here you go: {\"Pics\": [\".jpg\", \".pdf\"]} Hope it helps."}
	o := New(testConfig("key"), provider)

	res := o.Categorize(context.Background(), testTree())

	assert.Empty(t, res.AIStatus)
	require.Len(t, res.Categories, 1)
	assert.Equal(t, "Pics", res.Categories[0].Name)
}

func TestCategorizeAIFailureFallsBack(t *testing.T) {
	provider := &fakeProvider{err: errors.New("boom")}
	o := New(testConfig("key"), provider)

	res := o.Categorize(context.Background(), testTree())

	assert.Equal(t, AIStatusFallback, res.AIStatus)
	// Fallback-таблица: jpg → Images
	found := false
	for _, b := range res.FilesByCategory {
		if b.Name == "Images" && len(b.Files) == 5 {
			found = true
		}
	}
	assert.True(t, found, "jpg files must land in Images on fallback")
}

func TestCategorizeAIUnparseableFallsBack(t *testing.T) {
	provider := &fakeProvider{response: "I would group them by vibes."}
	o := New(testConfig("key"), provider)

	res := o.Categorize(context.Background(), testTree())

	assert.Equal(t, AIStatusFallback, res.AIStatus)
	assert.NotEmpty(t, res.Note)
}

func TestRenameUserPatternWins(t *testing.T) {
	provider := &fakeProvider{response: "{date}_{name}"}
	o := New(testConfig("key"), provider)

	res := o.Rename(context.Background(), testTree(), "{name}_{counter}")

	assert.Equal(t, 0, provider.calls, "AI must not be asked when user supplied a pattern")
	assert.Equal(t, "{name}_{counter}", res.Pattern)
	require.Len(t, res.Suggestions, 6)
	assert.Equal(t, "a_1.jpg", res.Suggestions[0].SuggestedName)
}

func TestRenameAIProposesPattern(t *testing.T) {
	provider := &fakeProvider{response: "{date}_{name}\nThis pattern sorts files by date."}
	o := New(testConfig("key"), provider)

	res := o.Rename(context.Background(), testTree(), "")

	assert.Equal(t, "{date}_{name}", res.Pattern)
	assert.Equal(t, "2024-01-10_a.jpg", res.Suggestions[0].SuggestedName)
}

func TestRenameAIFailureUsesDefault(t *testing.T) {
	provider := &fakeProvider{err: errors.New("boom")}
	o := New(testConfig("key"), provider)

	res := o.Rename(context.Background(), testTree(), "")

	assert.Equal(t, AIStatusFallback, res.AIStatus)
	assert.Equal(t, "{name}_{counter}", res.Pattern)
}

func TestRenameDisabledUsesDefault(t *testing.T) {
	o := New(testConfig(""), nil)

	res := o.Rename(context.Background(), testTree(), "")

	assert.Equal(t, AIStatusDisabled, res.AIStatus)
	assert.Equal(t, "{name}_{counter}", res.Pattern)
}

func TestSuggestDisabled(t *testing.T) {
	o := New(testConfig(""), nil)

	res := o.Suggest(context.Background(), testTree())

	assert.Equal(t, AIStatusDisabled, res.AIStatus)
	assert.NotEmpty(t, res.Advice)
	assert.Equal(t, 6, res.Stats.TotalFiles)
}

func TestSuggestAIFailureGivesGenericAdvice(t *testing.T) {
	provider := &fakeProvider{err: errors.New("boom")}
	o := New(testConfig("key"), provider)

	res := o.Suggest(context.Background(), testTree())

	assert.Equal(t, AIStatusFallback, res.AIStatus)
	assert.NotEmpty(t, res.Advice)
}

func TestSearchAISuccess(t *testing.T) {
	provider := &fakeProvider{response: "\"report.pdf\": 85"}
	o := New(testConfig("key"), provider)

	res := o.Search(context.Background(), testTree(), "yearly report")

	require.Len(t, res.Matches, 1)
	assert.Equal(t, "report.pdf", res.Matches[0].File.Name)
	assert.Equal(t, 85, res.Matches[0].RelevanceScore)
}

func TestSearchAIFailureFallsBackToKeyword(t *testing.T) {
	provider := &fakeProvider{err: errors.New("boom")}
	o := New(testConfig("key"), provider)

	res := o.Search(context.Background(), testTree(), "report")

	assert.Equal(t, AIStatusFallback, res.AIStatus)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "report.pdf", res.Matches[0].File.Name)
}

func TestSearchUnparseableAIReturnsRaw(t *testing.T) {
	provider := &fakeProvider{response: "Nothing in this folder matches your request."}
	o := New(testConfig("key"), provider)

	res := o.Search(context.Background(), testTree(), "report")

	assert.Empty(t, res.Matches)
	assert.Equal(t, provider.response, res.RawAIResponse)
	assert.NotEmpty(t, res.Note)
}

func TestHandleValidation(t *testing.T) {
	o := New(testConfig(""), nil)
	ctx := context.Background()

	_, err := o.Handle(ctx, Request{Option: OptionCategorize})
	assert.ErrorIs(t, err, ErrMissingFolderData)

	_, err = o.Handle(ctx, Request{FolderData: testTree(), Option: "defragment"})
	assert.ErrorIs(t, err, ErrUnknownOption)

	_, err = o.Handle(ctx, Request{FolderData: testTree(), Option: OptionSearch})
	assert.ErrorIs(t, err, ErrMissingQuery)
}

func TestHandleDispatch(t *testing.T) {
	o := New(testConfig(""), nil)
	ctx := context.Background()

	res, err := o.Handle(ctx, Request{FolderData: testTree(), Option: OptionCategorize})
	require.NoError(t, err)
	assert.IsType(t, &CategorizeResult{}, res)

	res, err = o.Handle(ctx, Request{FolderData: testTree(), Option: OptionSearch, UserInput: "report"})
	require.NoError(t, err)
	assert.IsType(t, &SearchResult{}, res)
}
