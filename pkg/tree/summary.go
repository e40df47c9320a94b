package tree

import "fmt"

// Лимиты сводки. Держат размер промпта ограниченным на любых деревьях.
const (
	// DefaultMaxDepth — глубина, дальше которой директории сворачиваются
	// в строку-заглушку.
	DefaultMaxDepth = 2

	// maxChildrenPerLevel — сколько детей директории попадает в сводку,
	// остальные заменяются одной заглушкой с количеством.
	maxChildrenPerLevel = 10
)

// DirSummary — сводка директории: имя и усечённый список детей.
// Дети — либо строки (файлы и заглушки), либо вложенные *DirSummary.
type DirSummary struct {
	Name     string `json:"name"`
	Children []any  `json:"children"`
}

// SummarizeStructure строит ограниченную по глубине и ширине сводку
// дерева для вставки в промпт.
//
// Правила:
//   - файл → его имя (строка)
//   - директория глубже maxDepth → строка-заглушка с именем
//   - директория → DirSummary с первыми 10 детьми; если детей больше,
//     добавляется одна заглушка с числом пропущенных
//
// Функция чистая и детерминированная.
func SummarizeStructure(root *Node, depth, maxDepth int) any {
	if root == nil {
		return nil
	}
	if root.IsFile() {
		return root.Name
	}
	if !root.IsDirectory() {
		return nil
	}

	if depth > maxDepth {
		return fmt.Sprintf("%s/ (and other items)", root.Name)
	}

	summary := &DirSummary{
		Name:     root.Name,
		Children: []any{},
	}

	children := root.Children
	omitted := 0
	if len(children) > maxChildrenPerLevel {
		omitted = len(children) - maxChildrenPerLevel
		children = children[:maxChildrenPerLevel]
	}

	for _, child := range children {
		if s := SummarizeStructure(child, depth+1, maxDepth); s != nil {
			summary.Children = append(summary.Children, s)
		}
	}
	if omitted > 0 {
		summary.Children = append(summary.Children, fmt.Sprintf("... and %d more items", omitted))
	}

	return summary
}
