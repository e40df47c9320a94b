// Package tree описывает дерево папок, приходящее в теле запроса,
// и предоставляет чистые функции для его обхода: выравнивание в плоский
// список файлов, подсчёт агрегированной статистики и построение
// ограниченной по глубине сводки структуры для промптов.
//
// Все данные request-scoped: дерево строится из JSON payload и
// выбрасывается после формирования ответа. Никакого состояния между
// запросами пакет не хранит.
package tree

import "time"

// Типы узлов дерева.
const (
	TypeFile      = "file"
	TypeDirectory = "directory"
)

// NoExtension — сентинел для файлов без расширения.
// Клиент присылает его вместо пустой строки, fallback-таблица
// категорий использует его как обычное "расширение".
const NoExtension = "no_extension"

// FileStats — метаданные файла. Присутствуют только у file-узлов.
type FileStats struct {
	Size  int64     `json:"size"`
	MTime time.Time `json:"mtime"`
}

// Node — один элемент дерева (файл или директория).
//
// Инвариант: stats и extension заполнены только у файлов,
// children — только у директорий. Порядок children сохраняется
// при любом обходе.
type Node struct {
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	Path      string     `json:"path"`
	Extension string     `json:"extension,omitempty"`
	Stats     *FileStats `json:"stats,omitempty"`
	Children  []*Node    `json:"children,omitempty"`
}

// IsFile сообщает является ли узел файлом.
func (n *Node) IsFile() bool {
	return n != nil && n.Type == TypeFile
}

// IsDirectory сообщает является ли узел директорией.
func (n *Node) IsDirectory() bool {
	return n != nil && n.Type == TypeDirectory
}

// Ext возвращает расширение файла или сентинел NoExtension.
func (n *Node) Ext() string {
	if n == nil || n.Extension == "" {
		return NoExtension
	}
	return n.Extension
}

// ExtractAllFiles рекурсивно собирает все file-узлы дерева в плоский
// список (depth-first, pre-order). Порядок children сохраняется.
//
// Узлы неизвестного типа и nil-дети молча пропускаются — malformed
// дерево не является ошибкой для обхода.
func ExtractAllFiles(root *Node) []*Node {
	var files []*Node
	collectFiles(root, &files)
	return files
}

func collectFiles(n *Node, acc *[]*Node) {
	if n == nil {
		return
	}
	if n.IsFile() {
		*acc = append(*acc, n)
		return
	}
	if n.IsDirectory() {
		for _, child := range n.Children {
			collectFiles(child, acc)
		}
	}
}
