package tree

import (
	"sort"

	"github.com/dustin/go-humanize"
)

// FolderStats — агрегированная статистика по дереву.
//
// Считается заново на каждый запрос, никогда не кэшируется.
// При пустом дереве OldestFile/NewestFile равны nil, счётчики нулевые —
// это не ошибка.
type FolderStats struct {
	TotalFiles   int      `json:"totalFiles"`
	FileTypes    []string `json:"fileTypes"` // уникальные расширения в порядке первого появления
	TotalSize    int64    `json:"totalSize"`
	LargestFiles []*Node  `json:"largestFiles"` // до 5 файлов по убыванию размера
	OldestFile   *Node    `json:"oldestFile,omitempty"`
	NewestFile   *Node    `json:"newestFile,omitempty"`
}

// HumanTotalSize возвращает суммарный размер в человекочитаемом виде
// ("1.2 MB"). Используется при построении промптов.
func (s *FolderStats) HumanTotalSize() string {
	if s.TotalSize < 0 {
		return humanize.Bytes(0)
	}
	return humanize.Bytes(uint64(s.TotalSize))
}

// AnalyzeFolder выравнивает дерево и считает статистику:
//   - уникальные расширения (NoExtension для файлов без расширения)
//   - суммарный размер
//   - топ-5 по размеру (стабильно: при равенстве сохраняется порядок обхода)
//   - самый старый и самый новый файл по mtime (при равенстве побеждает
//     встреченный раньше)
func AnalyzeFolder(root *Node) *FolderStats {
	files := ExtractAllFiles(root)

	stats := &FolderStats{
		TotalFiles:   len(files),
		FileTypes:    []string{},
		LargestFiles: []*Node{},
	}

	seenExt := make(map[string]bool)
	for _, f := range files {
		ext := f.Ext()
		if !seenExt[ext] {
			seenExt[ext] = true
			stats.FileTypes = append(stats.FileTypes, ext)
		}
		if f.Stats != nil {
			stats.TotalSize += f.Stats.Size
		}
	}

	// Топ-5 по размеру. SliceStable сохраняет порядок обхода при равных размерах.
	bySize := make([]*Node, len(files))
	copy(bySize, files)
	sort.SliceStable(bySize, func(i, j int) bool {
		return fileSize(bySize[i]) > fileSize(bySize[j])
	})
	if len(bySize) > 5 {
		bySize = bySize[:5]
	}
	stats.LargestFiles = bySize

	// Редукция слева направо: строгие сравнения, при равенстве mtime
	// остаётся первый встреченный файл.
	for _, f := range files {
		if f.Stats == nil {
			continue
		}
		if stats.OldestFile == nil || f.Stats.MTime.Before(stats.OldestFile.Stats.MTime) {
			stats.OldestFile = f
		}
		if stats.NewestFile == nil || f.Stats.MTime.After(stats.NewestFile.Stats.MTime) {
			stats.NewestFile = f
		}
	}

	return stats
}

func fileSize(n *Node) int64 {
	if n.Stats == nil {
		return 0
	}
	return n.Stats.Size
}
