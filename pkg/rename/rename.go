// Package rename строит предложения по переименованию файлов из
// шаблона с токенами. Пакет только предлагает имена — никакие файлы
// на диске не трогаются, коллизии между предложенными именами не
// проверяются.
package rename

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/beatercode/organAizer-server/pkg/tree"
)

// DefaultPattern используется когда клиент не передал шаблон
// и AI не предложил свой.
const DefaultPattern = "{name}_{counter}"

// Suggestion — предложение нового имени для одного файла.
type Suggestion struct {
	OriginalPath  string `json:"originalPath"`
	OriginalName  string `json:"originalName"`
	SuggestedName string `json:"suggestedName"`
}

// Suggest раскрывает шаблон для каждого файла списка.
//
// Поддерживаемые токены (каждый заменяется один раз, за один проход;
// текст вне токенов проходит без изменений):
//
//	{name}      — имя файла без расширения
//	{extension} — расширение с точкой, или пусто
//	{date}      — дата модификации, YYYY-MM-DD
//	{size}      — человекочитаемый размер ("1.2 MB")
//	{counter}   — позиция файла в списке, с единицы
//
// После подстановки: если у файла есть расширение и оно не встречается
// в полученном имени как подстрока, расширение дописывается в конец.
// Проверка именно на вхождение подстроки, не на суффикс — поведение
// закреплено тестом.
func Suggest(files []*tree.Node, pattern string) []Suggestion {
	if pattern == "" {
		pattern = DefaultPattern
	}

	suggestions := make([]Suggestion, 0, len(files))
	for i, f := range files {
		name := expandPattern(pattern, f, i+1)

		ext := realExtension(f)
		if ext != "" && !strings.Contains(name, ext) {
			name += ext
		}

		suggestions = append(suggestions, Suggestion{
			OriginalPath:  f.Path,
			OriginalName:  f.Name,
			SuggestedName: name,
		})
	}
	return suggestions
}

// expandPattern подставляет значения токенов. strings.Replace с n=1:
// каждый токен заменяется только в первом вхождении.
func expandPattern(pattern string, f *tree.Node, counter int) string {
	ext := realExtension(f)
	base := strings.TrimSuffix(f.Name, ext)

	date := ""
	size := ""
	if f.Stats != nil {
		date = f.Stats.MTime.Format("2006-01-02")
		if f.Stats.Size >= 0 {
			size = humanize.Bytes(uint64(f.Stats.Size))
		}
	}

	s := pattern
	s = strings.Replace(s, "{name}", base, 1)
	s = strings.Replace(s, "{extension}", ext, 1)
	s = strings.Replace(s, "{date}", date, 1)
	s = strings.Replace(s, "{size}", size, 1)
	s = strings.Replace(s, "{counter}", strconv.Itoa(counter), 1)
	return s
}

// realExtension возвращает настоящее расширение файла или пустую
// строку; сентинел no_extension расширением не считается.
func realExtension(f *tree.Node) string {
	if f.Extension == "" || f.Extension == tree.NoExtension {
		return ""
	}
	return f.Extension
}
