package organizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/beatercode/organAizer-server/pkg/llm"
	"github.com/beatercode/organAizer-server/pkg/tree"
)

// maxExampleNames — сколько имён-примеров на расширение попадает
// в промпт категоризации.
const maxExampleNames = 3

// extensionDigest — сводка одного расширения для промпта.
type extensionDigest struct {
	ext      string
	count    int
	examples []string
}

// digestExtensions собирает по каждому расширению количество файлов
// и до трёх имён-примеров, в порядке первого появления.
func digestExtensions(files []*tree.Node) []extensionDigest {
	index := make(map[string]int)
	var digests []extensionDigest

	for _, f := range files {
		ext := f.Ext()
		i, ok := index[ext]
		if !ok {
			i = len(digests)
			index[ext] = i
			digests = append(digests, extensionDigest{ext: ext})
		}
		digests[i].count++
		if len(digests[i].examples) < maxExampleNames {
			digests[i].examples = append(digests[i].examples, f.Name)
		}
	}
	return digests
}

// buildCategoryPrompt строит промпт для AI-категоризации.
//
// Модель просят вернуть JSON-объект вида {"Категория": [".ext", ...]}:
// 4-7 категорий, каждое расширение ровно в одной, имена на запрошенном
// языке. Ответ разбирается в organizer через utils.CleanJsonBlock /
// utils.ExtractJSON.
func buildCategoryPrompt(files []*tree.Node, locale string) []llm.Message {
	var b strings.Builder
	b.WriteString("These file extensions were found in a folder:\n\n")
	for _, d := range digestExtensions(files) {
		fmt.Fprintf(&b, "- %s: %d file(s), e.g. %s\n", d.ext, d.count, strings.Join(d.examples, ", "))
	}
	b.WriteString("\nGroup the extensions into 4-7 meaningful categories. ")
	fmt.Fprintf(&b, "Category names must be in locale %q. ", locale)
	b.WriteString("Assign every extension to exactly one category. ")
	b.WriteString(`Respond with a JSON object only, mapping category name to the list of extensions, for example {"Documents": [".pdf", ".txt"]}.`)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a file organization assistant. You respond with valid JSON and nothing else."},
		{Role: llm.RoleUser, Content: b.String()},
	}
}

// buildRenamePrompt просит модель предложить один шаблон переименования.
func buildRenamePrompt(stats *tree.FolderStats) []llm.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "A folder contains %d files of types %s (total %s).\n",
		stats.TotalFiles, strings.Join(stats.FileTypes, ", "), stats.HumanTotalSize())
	b.WriteString("Propose one rename pattern for these files using the tokens ")
	b.WriteString("{name}, {extension}, {date}, {size}, {counter}. ")
	b.WriteString("Respond with the pattern only, on a single line, no explanation.")

	return []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a file organization assistant."},
		{Role: llm.RoleUser, Content: b.String()},
	}
}

// buildSuggestPrompt строит промпт для советов по организации папки.
// Структура дерева вставляется как усечённая JSON-сводка
// (tree.SummarizeStructure), чтобы промпт не рос с размером дерева.
func buildSuggestPrompt(stats *tree.FolderStats, summary any) []llm.Message {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		summaryJSON = []byte("{}")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Folder statistics: %d files, types: %s, total size %s.\n",
		stats.TotalFiles, strings.Join(stats.FileTypes, ", "), stats.HumanTotalSize())
	fmt.Fprintf(&b, "Folder structure (truncated): %s\n\n", summaryJSON)
	b.WriteString("Give short, practical advice on how to better organize this folder: ")
	b.WriteString("grouping, naming, what to archive or clean up. Plain text, a few sentences.")

	return []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a file organization assistant."},
		{Role: llm.RoleUser, Content: b.String()},
	}
}

// buildSearchPrompt строит промпт семантического поиска.
//
// Модель просят вернуть строки вида "имя файла": релевантность —
// именно этот формат восстанавливает search.ParseAIResponse.
func buildSearchPrompt(files []*tree.Node, query string) []llm.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "The user is looking for: %q\n\nFiles:\n", query)
	for _, f := range files {
		fmt.Fprintf(&b, "- %s (%s)\n", f.Name, f.Path)
	}
	b.WriteString("\nRate how relevant each file is to the request. ")
	b.WriteString("Respond with one line per relevant file, in the form \"file name\": score, ")
	b.WriteString("where score is an integer from 0 to 100. Skip irrelevant files.")

	return []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a file search assistant."},
		{Role: llm.RoleUser, Content: b.String()},
	}
}
