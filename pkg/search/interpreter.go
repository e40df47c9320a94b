package search

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/beatercode/organAizer-server/pkg/tree"
)

// pairPattern вылавливает из свободного текста пары "метка: оценка"
// в вариантах, которые реально возвращают модели:
//
//	"invoice.pdf": 85
//	'photo.jpg' - 70
//	report.docx: 60
//
// Кавычки опциональны, разделитель — двоеточие или дефис, оценка —
// целое число. \b после числа не даёт откусить первые цифры от года
// в имени файла ("report-2024.pdf: 90").
var pairPattern = regexp.MustCompile(`["']?([^"'\n]+?)["']?\s*[:-]\s*(\d{1,3})\b`)

// similarityThreshold — минимальная похожесть для принятия fuzzy-матча.
const similarityThreshold = 0.3

// ParseAIResponse восстанавливает структурированные результаты поиска
// из свободного текста модели.
//
// Текст сканируется одним повторяющимся regex-проходом слева направо.
// Каждая извлечённая метка сопоставляется с известным файлом:
//  1. case-insensitive вхождение подстроки в любую сторону — побеждает
//     первый подходящий файл в порядке списка;
//  2. иначе — fuzzy-матч по перекрытию символов (CharSimilarity),
//     принимается лучший кандидат с похожестью > 0.3.
//
// Метки без файла отбрасываются. Итог сортируется по убыванию оценки.
// Если не удалось восстановить ни одной пары, возвращается сырой текст
// модели с заметкой — это деградированный успех, не ошибка.
func ParseAIResponse(text string, files []*tree.Node) Result {
	raw := pairPattern.FindAllStringSubmatch(text, -1)

	var matches []Match
	for _, pair := range raw {
		label := strings.TrimSpace(pair[1])
		if label == "" {
			continue
		}
		score, err := strconv.Atoi(pair[2])
		if err != nil {
			continue
		}

		file := resolveFile(label, files)
		if file == nil {
			continue
		}
		matches = append(matches, Match{
			File:           file,
			RelevanceScore: clampScore(score),
			Reason:         "AI relevance score",
		})
	}

	if len(matches) == 0 {
		return Result{
			Matches:       []Match{},
			RawAIResponse: text,
			Note:          "could not extract structured matches from AI response",
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].RelevanceScore > matches[j].RelevanceScore
	})
	return Result{Matches: matches}
}

// resolveFile сопоставляет извлечённую метку с известным файлом.
func resolveFile(label string, files []*tree.Node) *tree.Node {
	l := strings.ToLower(label)

	for _, f := range files {
		name := strings.ToLower(f.Name)
		if strings.Contains(name, l) || strings.Contains(l, name) {
			return f
		}
	}

	var best *tree.Node
	bestSim := 0.0
	for _, f := range files {
		if sim := CharSimilarity(l, strings.ToLower(f.Name)); sim > bestSim {
			bestSim = sim
			best = f
		}
	}
	if bestSim > similarityThreshold {
		return best
	}
	return nil
}

// CharSimilarity считает похожесть двух строк как перекрытие символов:
// sharedChars / len(longer), где sharedChars — количество позиций
// короткой строки, символ которых встречается где-нибудь в длинной
// (каждая позиция короткой считается отдельно, без дедупликации по
// символу). Сравнение case-sensitive — вызывающий приводит регистр сам.
//
// Какая из строк "длиннее" определяется внутри, поэтому результат не
// зависит от порядка аргументов.
func CharSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	shorter, longer := ra, rb
	if len(ra) > len(rb) {
		shorter, longer = rb, ra
	}
	if len(longer) == 0 {
		return 0
	}

	shared := 0
	for _, c := range shorter {
		if strings.ContainsRune(string(longer), c) {
			shared++
		}
	}
	return float64(shared) / float64(len(longer))
}
