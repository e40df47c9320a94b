package organizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/beatercode/organAizer-server/pkg/tree"
)

// SuggestResult — ответ операции suggest.
type SuggestResult struct {
	Action   string            `json:"action"`
	Advice   string            `json:"advice"`
	Stats    *tree.FolderStats `json:"stats"`
	AIStatus string            `json:"aiStatus,omitempty"`
	Note     string            `json:"note,omitempty"`
}

// Suggest возвращает совет по организации папки.
//
// При включённом AI модели передаются статистика и усечённая сводка
// структуры; при отказе или выключенном AI возвращается общий
// детерминированный совет, построенный из статистики.
func (o *Organizer) Suggest(ctx context.Context, root *tree.Node) *SuggestResult {
	stats := tree.AnalyzeFolder(root)

	result := &SuggestResult{
		Action: OptionSuggest,
		Stats:  stats,
	}

	switch {
	case !o.aiEnabled():
		result.Advice = genericAdvice(stats)
		result.AIStatus = AIStatusDisabled
		result.Note = "AI is not configured; generic advice generated from folder statistics"

	default:
		summary := tree.SummarizeStructure(root, 0, tree.DefaultMaxDepth)
		advice, err := o.chat(ctx, buildSuggestPrompt(stats, summary))
		if err != nil || strings.TrimSpace(advice) == "" {
			result.Advice = genericAdvice(stats)
			result.AIStatus = AIStatusFallback
			result.Note = "AI advice failed; generic advice generated from folder statistics"
		} else {
			result.Advice = strings.TrimSpace(advice)
		}
	}

	return result
}

// genericAdvice — детерминированный совет без AI. Текст собирается
// из статистики, чтобы остаться хоть сколько-нибудь предметным.
func genericAdvice(stats *tree.FolderStats) string {
	if stats.TotalFiles == 0 {
		return "The folder is empty - nothing to organize yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d files of %d different types (total %s). ",
		stats.TotalFiles, len(stats.FileTypes), stats.HumanTotalSize())
	b.WriteString("Consider grouping files into subfolders by type or by project, ")
	b.WriteString("and using a consistent naming pattern such as {name}_{date}. ")

	if len(stats.LargestFiles) > 0 && stats.LargestFiles[0].Stats != nil {
		largest := stats.LargestFiles[0]
		fmt.Fprintf(&b, "The largest file is %q - large files that are rarely used are good candidates for archiving. ", largest.Name)
	}
	if stats.OldestFile != nil {
		fmt.Fprintf(&b, "The oldest file dates back to %s; reviewing old files helps keep the folder tidy.",
			stats.OldestFile.Stats.MTime.Format("2006-01-02"))
	}

	return strings.TrimSpace(b.String())
}
