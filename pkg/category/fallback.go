package category

import (
	"strings"

	"github.com/beatercode/organAizer-server/pkg/tree"
)

// FallbackCategory — категория для всего, что не попало в остальные.
const FallbackCategory = "Other"

// MediaCategory — категория для видео и аудио, обнаруженных среди
// расширений входа. В базовой таблице отсутствует, добавляется по факту.
const MediaCategory = "Media"

// baseMap возвращает фиксированную базовую таблицу категорий.
// Каждый вызов отдаёт свежую копию: карта мутируется при классификации
// наблюдаемых расширений.
func baseMap() Map {
	return Map{
		{Name: "Documents", Extensions: []string{".pdf", ".doc", ".docx", ".txt", ".md", ".rtf", ".odt"}},
		{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".bmp"}},
		{Name: "Code", Extensions: []string{".js", ".ts", ".go", ".py", ".java", ".c", ".cpp", ".h", ".html", ".css", ".sh"}},
		{Name: "Data", Extensions: []string{".json", ".csv", ".xml", ".yaml", ".yml", ".sql", ".xls", ".xlsx"}},
		{Name: "Archives", Extensions: []string{".zip", ".tar", ".gz", ".rar", ".7z", ".bz2"}},
		{Name: FallbackCategory, Extensions: []string{tree.NoExtension}},
	}
}

// Группы суффиксов для классификации расширений, не покрытых базовой
// таблицей. Сравнение case-insensitive.
var extensionGroups = []struct {
	category string
	suffixes []string
}{
	{MediaCategory, []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v"}},
	{MediaCategory, []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a", ".wma"}},
	{"Code", []string{".rb", ".php", ".swift", ".kt", ".rs", ".scala", ".lua", ".pl", ".dart"}},
	{"Images", []string{".tiff", ".tif", ".ico", ".heic", ".psd", ".ai"}},
	{"Documents", []string{".epub", ".tex", ".pages", ".ppt", ".pptx"}},
}

// classifyExtension относит расширение к одной из групп.
// Возвращает имя категории и признак успеха.
func classifyExtension(ext string) (string, bool) {
	lower := strings.ToLower(ext)
	for _, g := range extensionGroups {
		for _, s := range g.suffixes {
			if lower == s {
				return g.category, true
			}
		}
	}
	return "", false
}

// Fallback строит детерминированную карту категорий для наблюдаемых
// расширений без участия AI.
//
// Начинает с фиксированной базовой таблицы. Каждое расширение входа,
// ещё не покрытое таблицей, классифицируется по группам суффиксов
// (видео/аудио/код/изображения/документы); не попавшее ни в одну группу
// добавляется в "Other".
//
// Тотальность: каждое наблюдаемое расширение оказывается ровно в одной
// категории итоговой карты.
func Fallback(extensions []string) Map {
	m := baseMap()

	covered := make(map[string]bool)
	for _, e := range m {
		for _, ext := range e.Extensions {
			covered[ext] = true
		}
	}

	appendTo := func(name, ext string) {
		for i := range m {
			if m[i].Name == name {
				m[i].Extensions = append(m[i].Extensions, ext)
				return
			}
		}
		m = append(m, Entry{Name: name, Extensions: []string{ext}})
	}

	for _, raw := range extensions {
		ext := strings.ToLower(raw)
		if ext == "" {
			ext = tree.NoExtension
		}
		if covered[ext] {
			continue
		}
		covered[ext] = true

		if cat, ok := classifyExtension(ext); ok {
			appendTo(cat, ext)
		} else {
			appendTo(FallbackCategory, ext)
		}
	}

	return m
}
