package organizer

import (
	"context"
	"errors"
	"strings"

	"github.com/beatercode/organAizer-server/pkg/rename"
	"github.com/beatercode/organAizer-server/pkg/tree"
)

// RenameResult — ответ операции rename.
type RenameResult struct {
	Action      string              `json:"action"`
	Pattern     string              `json:"pattern"`
	Suggestions []rename.Suggestion `json:"suggestions"`
	AIStatus    string              `json:"aiStatus,omitempty"`
	Note        string              `json:"note,omitempty"`
}

// Rename строит предложения по переименованию всех файлов дерева.
//
// Шаблон берётся из userInput; без него при включённом AI один шаблон
// запрашивается у модели, при отказе или выключенном AI используется
// rename.DefaultPattern. Сами имена всегда считает детерминированный
// планировщик — модель максимум предлагает шаблон.
func (o *Organizer) Rename(ctx context.Context, root *tree.Node, userInput string) *RenameResult {
	files := tree.ExtractAllFiles(root)

	result := &RenameResult{Action: OptionRename}

	pattern := strings.TrimSpace(userInput)
	if pattern == "" {
		switch {
		case !o.aiEnabled():
			pattern = rename.DefaultPattern
			result.AIStatus = AIStatusDisabled
			result.Note = "AI is not configured; default rename pattern used"
		default:
			proposed, err := o.requestRenamePattern(ctx, root)
			if err != nil {
				pattern = rename.DefaultPattern
				result.AIStatus = AIStatusFallback
				result.Note = "AI pattern proposal failed; default rename pattern used"
			} else {
				pattern = proposed
			}
		}
	}

	result.Pattern = pattern
	result.Suggestions = rename.Suggest(files, pattern)
	return result
}

// requestRenamePattern просит модель предложить один шаблон.
// Принимается только однострочный ответ, содержащий хотя бы один токен.
func (o *Organizer) requestRenamePattern(ctx context.Context, root *tree.Node) (string, error) {
	stats := tree.AnalyzeFolder(root)

	text, err := o.chat(ctx, buildRenamePrompt(stats))
	if err != nil {
		return "", err
	}

	line := strings.TrimSpace(text)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	line = strings.Trim(line, "`\"'")

	if line == "" || !strings.Contains(line, "{") {
		return "", errUnusablePattern
	}
	return line, nil
}

var errUnusablePattern = errors.New("AI response contains no usable pattern")
