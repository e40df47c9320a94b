// Package search реализует два способа поиска по списку файлов:
// лексический keyword-скоринг (детерминированный fallback) и
// интерпретацию свободного текста AI-ответа с восстановлением пар
// (файл, релевантность).
package search

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/beatercode/organAizer-server/pkg/tree"
)

// maxMatches — максимум результатов в выдаче.
const maxMatches = 10

// minKeywordLen — токены короче отбрасываются: предлоги и артикли
// дают шум вместо релевантности.
const minKeywordLen = 3

// Match — один найденный файл с оценкой релевантности.
type Match struct {
	File           *tree.Node `json:"file"`
	RelevanceScore int        `json:"relevanceScore"`
	Reason         string     `json:"reason"`
}

// Result — итог поиска. Либо список matches, либо деградированный
// ответ: сырой текст модели (RawAIResponse) и/или пояснительная
// заметка (Note). Деградация — не ошибка.
type Result struct {
	Matches       []Match `json:"matches"`
	RawAIResponse string  `json:"rawAIResponse,omitempty"`
	Note          string  `json:"note,omitempty"`
}

// Keyword выполняет лексический поиск по файлам.
//
// Запрос приводится к нижнему регистру и режется по пробелам, токены
// короче 3 символов отбрасываются. Для каждого файла строится поисковая
// строка из имени, пути и расширения. Оценка:
//
//	score = round(min(100, matched/total*70 + occurrences/total*30))
//
// где matched — число ключевых слов с хотя бы одним вхождением,
// occurrences — суммарное число вхождений. Файлы без единого совпадения
// исключаются. Сортировка по убыванию score стабильная (при равенстве —
// порядок входа), выдача усечена до 10.
func Keyword(files []*tree.Node, query string) Result {
	keywords := extractKeywords(query)
	if len(keywords) == 0 {
		return Result{
			Matches: []Match{},
			Note:    "query contains no usable keywords (tokens shorter than 3 characters are ignored)",
		}
	}

	total := float64(len(keywords))
	var matches []Match

	for _, f := range files {
		searchable := strings.ToLower(f.Name + " " + f.Path + " " + f.Ext())

		matched := 0
		occurrences := 0
		for _, kw := range keywords {
			if n := strings.Count(searchable, kw); n > 0 {
				matched++
				occurrences += n
			}
		}
		if matched == 0 {
			continue
		}

		score := math.Min(100, float64(matched)/total*70+float64(occurrences)/total*30)
		matches = append(matches, Match{
			File:           f,
			RelevanceScore: clampScore(int(math.Round(score))),
			Reason:         fmt.Sprintf("matched %d of %d keywords", matched, len(keywords)),
		})
	}

	if len(matches) == 0 {
		return Result{
			Matches: []Match{},
			Note:    "no files matched the query",
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].RelevanceScore > matches[j].RelevanceScore
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	return Result{Matches: matches}
}

// extractKeywords нормализует запрос в список ключевых слов.
func extractKeywords(query string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minKeywordLen {
			keywords = append(keywords, f)
		}
	}
	return keywords
}

// clampScore ограничивает оценку диапазоном [0, 100].
func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
