package organizer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beatercode/organAizer-server/pkg/category"
	"github.com/beatercode/organAizer-server/pkg/tree"
	"github.com/beatercode/organAizer-server/pkg/utils"
)

// CategorizeResult — ответ операции categorize.
type CategorizeResult struct {
	Action          string            `json:"action"`
	Categories      category.Map      `json:"categories"`
	FilesByCategory category.Buckets  `json:"filesByCategory"`
	Stats           *tree.FolderStats `json:"stats"`
	AIStatus        string            `json:"aiStatus,omitempty"`
	Note            string            `json:"note,omitempty"`
}

// Categorize распределяет файлы дерева по категориям.
//
// При включённом AI карта категорий запрашивается у модели; любой отказ
// (вызов, разбор, валидация) переводит операцию на детерминированную
// fallback-таблицу. Ответ всегда успешный, деградация раскрывается
// через aiStatus и note.
func (o *Organizer) Categorize(ctx context.Context, root *tree.Node) *CategorizeResult {
	files := tree.ExtractAllFiles(root)
	stats := tree.AnalyzeFolder(root)

	result := &CategorizeResult{
		Action: OptionCategorize,
		Stats:  stats,
	}

	var catMap category.Map
	switch {
	case !o.aiEnabled():
		catMap = category.Fallback(stats.FileTypes)
		result.AIStatus = AIStatusDisabled
		result.Note = "AI is not configured; categories built from the deterministic rule table"

	default:
		aiMap, err := o.requestCategoryMap(ctx, files)
		if err != nil {
			catMap = category.Fallback(stats.FileTypes)
			result.AIStatus = AIStatusFallback
			result.Note = "AI categorization failed; categories built from the deterministic rule table"
		} else {
			catMap = aiMap
		}
	}

	result.Categories = catMap
	result.FilesByCategory = category.MapFiles(files, catMap)
	return result
}

// requestCategoryMap запрашивает карту категорий у модели и разбирает
// ответ: сперва снимается markdown-обёртка, при неудаче из текста
// извлекается первый сбалансированный JSON-объект.
func (o *Organizer) requestCategoryMap(ctx context.Context, files []*tree.Node) (category.Map, error) {
	text, err := o.chat(ctx, buildCategoryPrompt(files, o.cfg.Category.Locale))
	if err != nil {
		return nil, err
	}

	var m category.Map
	if err := json.Unmarshal([]byte(utils.CleanJsonBlock(text)), &m); err != nil {
		extracted := utils.ExtractJSON(text)
		if extracted == "" {
			return nil, fmt.Errorf("no JSON object in AI response")
		}
		if err := json.Unmarshal([]byte(extracted), &m); err != nil {
			return nil, fmt.Errorf("parse AI category map: %w", err)
		}
	}

	if err := m.Validate(); err != nil {
		utils.Warn("AI category map rejected", "error", err)
		return nil, err
	}
	return m, nil
}
