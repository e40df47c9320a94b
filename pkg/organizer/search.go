package organizer

import (
	"context"

	"github.com/beatercode/organAizer-server/pkg/search"
	"github.com/beatercode/organAizer-server/pkg/tree"
)

// SearchResult — ответ операции search.
//
// Либо Matches заполнен, либо (при деградации интерпретатора)
// RawAIResponse с заметкой — второе тоже успех, не ошибка.
type SearchResult struct {
	Action        string         `json:"action"`
	Query         string         `json:"query"`
	Matches       []search.Match `json:"matches"`
	RawAIResponse string         `json:"rawAIResponse,omitempty"`
	AIStatus      string         `json:"aiStatus,omitempty"`
	Note          string         `json:"note,omitempty"`
}

// Search ищет файлы по свободному запросу.
//
// При включённом AI запрос и список файлов отдаются модели, её ответ
// восстанавливается интерпретатором (search.ParseAIResponse). Отказ
// вызова переводит на лексический keyword-поиск; неразбираемый ответ
// модели возвращается клиенту сырым текстом с заметкой.
func (o *Organizer) Search(ctx context.Context, root *tree.Node, query string) *SearchResult {
	files := tree.ExtractAllFiles(root)

	result := &SearchResult{
		Action: OptionSearch,
		Query:  query,
	}

	if !o.aiEnabled() {
		res := search.Keyword(files, query)
		result.Matches = res.Matches
		result.AIStatus = AIStatusDisabled
		result.Note = joinNotes("AI is not configured; keyword search used", res.Note)
		return result
	}

	text, err := o.chat(ctx, buildSearchPrompt(files, query))
	if err != nil {
		res := search.Keyword(files, query)
		result.Matches = res.Matches
		result.AIStatus = AIStatusFallback
		result.Note = joinNotes("AI search failed; keyword search used", res.Note)
		return result
	}

	res := search.ParseAIResponse(text, files)
	result.Matches = res.Matches
	result.RawAIResponse = res.RawAIResponse
	result.Note = res.Note
	return result
}

// joinNotes склеивает основную заметку с заметкой компонента.
func joinNotes(primary, secondary string) string {
	if secondary == "" {
		return primary
	}
	return primary + "; " + secondary
}
