// Package category реализует движок категоризации расширений.
//
// Карта категорий — упорядоченный список, а не map: правило
// "первое совпадение побеждает" зависит от порядка категорий, поэтому
// порядок является частью типа, а не деталью итерации.
//
// Два режима работы:
//   - карта, полученная от AI (JSON из ответа модели, порядок ключей
//     сохраняется при разборе)
//   - детерминированный fallback на фиксированной таблице (Fallback)
package category

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/beatercode/organAizer-server/pkg/tree"
)

// Entry — одна категория: имя и набор расширений.
type Entry struct {
	Name       string
	Extensions []string
}

// Map — упорядоченный список категорий. Порядок задаёт приоритет
// при распределении файлов (первая категория, содержащая расширение,
// забирает файл).
type Map []Entry

// contains проверяет принадлежит ли расширение категории.
func (e Entry) contains(ext string) bool {
	for _, x := range e.Extensions {
		if x == ext {
			return true
		}
	}
	return false
}

// Names возвращает имена категорий в порядке карты.
func (m Map) Names() []string {
	names := make([]string, len(m))
	for i, e := range m {
		names[i] = e.Name
	}
	return names
}

// Validate проверяет минимальную корректность карты: хотя бы одна
// категория, непустые имена. Используется для карт, пришедших от AI.
func (m Map) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("category map is empty")
	}
	for _, e := range m {
		if e.Name == "" {
			return fmt.Errorf("category with empty name")
		}
	}
	return nil
}

// MarshalJSON сериализует карту в JSON-объект, сохраняя порядок категорий.
func (m Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		exts, err := json.Marshal(e.Extensions)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(exts)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON разбирает JSON-объект вида {"Категория": [".ext", ...]},
// сохраняя порядок ключей. Стандартный map[string][]string здесь не
// годится — он теряет порядок, от которого зависит распределение файлов.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("category map: expected JSON object, got %v", tok)
	}

	result := Map{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("category map: non-string key %v", keyTok)
		}

		var exts []string
		if err := dec.Decode(&exts); err != nil {
			return fmt.Errorf("category %q: %w", key, err)
		}
		result = append(result, Entry{Name: key, Extensions: exts})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = result
	return nil
}

// Bucket — категория с распределёнными в неё файлами.
type Bucket struct {
	Name  string
	Files []*tree.Node
}

// Buckets — результат распределения файлов по категориям,
// в порядке исходной карты. Сериализуется в JSON-объект.
type Buckets []Bucket

// MarshalJSON сериализует buckets в объект {"Категория": [files...]},
// сохраняя порядок категорий.
func (b Buckets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, bucket := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(bucket.Name)
		if err != nil {
			return nil, err
		}
		files, err := json.Marshal(bucket.Files)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(files)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MapFiles распределяет файлы по категориям карты.
//
// Для каждого файла категории сканируются в порядке карты; первая,
// содержащая расширение файла, получает его. Файл без подходящей
// категории уходит в "Other" (создаётся при отсутствии).
//
// Возвращаются только категории карты плюс, возможно, добавленный
// "Other"; пустые категории присутствуют в результате с пустым списком.
func MapFiles(files []*tree.Node, m Map) Buckets {
	buckets := make(Buckets, len(m))
	index := make(map[string]int, len(m))
	for i, e := range m {
		buckets[i] = Bucket{Name: e.Name, Files: []*tree.Node{}}
		index[e.Name] = i
	}

	for _, f := range files {
		ext := f.Ext()
		placed := false
		for i, e := range m {
			if e.contains(ext) {
				buckets[i].Files = append(buckets[i].Files, f)
				placed = true
				break
			}
		}
		if !placed {
			i, ok := index[FallbackCategory]
			if !ok {
				buckets = append(buckets, Bucket{Name: FallbackCategory, Files: []*tree.Node{}})
				i = len(buckets) - 1
				index[FallbackCategory] = i
			}
			buckets[i].Files = append(buckets[i].Files, f)
		}
	}

	return buckets
}
