package rename

import (
	"testing"
	"time"

	"github.com/beatercode/organAizer-server/pkg/tree"
)

func testFile(name, ext string, size int64, mtime time.Time) *tree.Node {
	return &tree.Node{
		Type:      tree.TypeFile,
		Name:      name,
		Path:      "/files/" + name,
		Extension: ext,
		Stats:     &tree.FileStats{Size: size, MTime: mtime},
	}
}

var mtime = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

func TestSuggestDefaultPattern(t *testing.T) {
	files := []*tree.Node{testFile("report.pdf", ".pdf", 1000, mtime)}

	got := Suggest(files, "")

	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	// {name}_{counter} → "report_1", расширение отсутствует → дописывается
	if got[0].SuggestedName != "report_1.pdf" {
		t.Errorf("expected report_1.pdf, got %s", got[0].SuggestedName)
	}
	if got[0].OriginalName != "report.pdf" || got[0].OriginalPath != "/files/report.pdf" {
		t.Errorf("original fields wrong: %+v", got[0])
	}
}

func TestSuggestNameOnlyPatternReappendsExtension(t *testing.T) {
	files := []*tree.Node{
		testFile("one.jpg", ".jpg", 1, mtime),
		testFile("two.jpg", ".jpg", 1, mtime),
		testFile("photo.jpg", ".jpg", 1, mtime),
	}

	got := Suggest(files, "{name}")

	// Подставленный текст "photo" не содержит ".jpg" → расширение дописано
	if got[2].SuggestedName != "photo.jpg" {
		t.Errorf("expected photo.jpg, got %s", got[2].SuggestedName)
	}
}

func TestSuggestTokens(t *testing.T) {
	files := []*tree.Node{testFile("doc.txt", ".txt", 512, mtime)}

	tests := []struct {
		pattern string
		want    string
	}{
		{"{name}_{counter}", "doc_1.txt"},
		{"{date}_{name}", "2024-03-05_doc.txt"},
		{"{name}{extension}", "doc.txt"},
		{"{name}_{size}", "doc_512 B.txt"},
		{"prefix_{name}", "prefix_doc.txt"},
	}

	for _, tt := range tests {
		got := Suggest(files, tt.pattern)
		if got[0].SuggestedName != tt.want {
			t.Errorf("pattern %q: expected %q, got %q", tt.pattern, tt.want, got[0].SuggestedName)
		}
	}
}

// Токен заменяется только в первом вхождении — закреплённое поведение
// одного прохода подстановки.
func TestSuggestTokenReplacedOnce(t *testing.T) {
	files := []*tree.Node{testFile("a.txt", ".txt", 1, mtime)}

	got := Suggest(files, "{name}_{name}")

	if got[0].SuggestedName != "a_{name}.txt" {
		t.Errorf("expected a_{name}.txt, got %s", got[0].SuggestedName)
	}
}

func TestSuggestCounterIsPosition(t *testing.T) {
	files := []*tree.Node{
		testFile("x.md", ".md", 1, mtime),
		testFile("y.md", ".md", 1, mtime),
		testFile("z.md", ".md", 1, mtime),
	}

	got := Suggest(files, "{counter}")

	want := []string{"1.md", "2.md", "3.md"}
	for i, w := range want {
		if got[i].SuggestedName != w {
			t.Errorf("position %d: expected %s, got %s", i, w, got[i].SuggestedName)
		}
	}
}

func TestSuggestNoExtensionSentinel(t *testing.T) {
	f := &tree.Node{Type: tree.TypeFile, Name: "LICENSE", Path: "/LICENSE", Extension: tree.NoExtension}

	got := Suggest([]*tree.Node{f}, "{name}_{counter}")

	// Сентинел не является расширением: ничего не дописывается
	if got[0].SuggestedName != "LICENSE_1" {
		t.Errorf("expected LICENSE_1, got %s", got[0].SuggestedName)
	}
}

func TestSuggestExtensionAlreadyPresentNotDuplicated(t *testing.T) {
	files := []*tree.Node{testFile("img.png", ".png", 1, mtime)}

	// Подставленное имя уже содержит ".png" как подстроку — проверка
	// именно на вхождение, не на суффикс
	got := Suggest(files, "{name}.png_backup")

	if got[0].SuggestedName != "img.png_backup" {
		t.Errorf("expected img.png_backup, got %s", got[0].SuggestedName)
	}
}
