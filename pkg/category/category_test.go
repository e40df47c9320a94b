package category

import (
	"encoding/json"
	"testing"

	"github.com/beatercode/organAizer-server/pkg/tree"
)

func fileWithExt(name, ext string) *tree.Node {
	return &tree.Node{Type: tree.TypeFile, Name: name, Path: "/" + name, Extension: ext}
}

// TestFallbackTotality: каждое наблюдаемое расширение оказывается
// ровно в одной категории итоговой карты.
func TestFallbackTotality(t *testing.T) {
	observed := []string{".jpg", ".xyz", ".mp4", ".mp3", ".rb", ".PDF", tree.NoExtension}

	m := Fallback(observed)

	for _, raw := range []string{".jpg", ".xyz", ".mp4", ".mp3", ".rb", ".pdf", tree.NoExtension} {
		count := 0
		for _, e := range m {
			if e.contains(raw) {
				count++
			}
		}
		if count != 1 {
			t.Errorf("extension %s appears in %d categories, want exactly 1", raw, count)
		}
	}
}

func TestFallbackGroupClassification(t *testing.T) {
	m := Fallback([]string{".mp4", ".flac", ".kt", ".heic", ".epub", ".weird"})

	find := func(ext string) string {
		for _, e := range m {
			if e.contains(ext) {
				return e.Name
			}
		}
		return ""
	}

	tests := []struct {
		ext  string
		want string
	}{
		{".mp4", MediaCategory},
		{".flac", MediaCategory},
		{".kt", "Code"},
		{".heic", "Images"},
		{".epub", "Documents"},
		{".weird", FallbackCategory},
	}
	for _, tt := range tests {
		if got := find(tt.ext); got != tt.want {
			t.Errorf("%s: expected category %s, got %s", tt.ext, tt.want, got)
		}
	}
}

// TestMapFilesFirstMatchWins закрепляет поведение при расширении,
// продублированном в нескольких категориях: побеждает первая
// категория в порядке карты.
func TestMapFilesFirstMatchWins(t *testing.T) {
	m := Map{
		{Name: "First", Extensions: []string{".x"}},
		{Name: "Second", Extensions: []string{".x"}},
	}
	files := []*tree.Node{fileWithExt("a.x", ".x")}

	buckets := MapFiles(files, m)

	if len(buckets[0].Files) != 1 {
		t.Errorf("expected file in First, got %d files", len(buckets[0].Files))
	}
	if len(buckets[1].Files) != 0 {
		t.Errorf("expected Second empty, got %d files", len(buckets[1].Files))
	}
}

func TestMapFilesUnmatchedGoesToOther(t *testing.T) {
	m := Map{{Name: "Docs", Extensions: []string{".pdf"}}}
	files := []*tree.Node{
		fileWithExt("a.pdf", ".pdf"),
		fileWithExt("b.zzz", ".zzz"),
	}

	buckets := MapFiles(files, m)

	if len(buckets) != 2 {
		t.Fatalf("expected Other to be created, got %d buckets", len(buckets))
	}
	if buckets[1].Name != FallbackCategory || len(buckets[1].Files) != 1 {
		t.Errorf("expected b.zzz in Other, got %+v", buckets[1])
	}
}

// TestMapUnmarshalPreservesOrder: порядок ключей AI-ответа — это
// порядок сканирования first-match, он обязан сохраниться.
func TestMapUnmarshalPreservesOrder(t *testing.T) {
	data := `{"Zeta": [".z"], "Alpha": [".a"], "Mid": [".m"]}`

	var m Map
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := []string{"Zeta", "Alpha", "Mid"}
	for i, name := range want {
		if m[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, m[i].Name)
		}
	}
}

func TestMapJSONRoundTrip(t *testing.T) {
	m := Map{
		{Name: "B", Extensions: []string{".b"}},
		{Name: "A", Extensions: []string{".a"}},
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"B":[".b"],"A":[".a"]}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var back Map
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back[0].Name != "B" || back[1].Name != "A" {
		t.Errorf("order lost in round trip: %+v", back)
	}
}

func TestMapUnmarshalRejectsNonObject(t *testing.T) {
	var m Map
	if err := json.Unmarshal([]byte(`[".a"]`), &m); err == nil {
		t.Error("expected error for JSON array")
	}
}

func TestValidate(t *testing.T) {
	if err := (Map{}).Validate(); err == nil {
		t.Error("empty map must not validate")
	}
	if err := (Map{{Name: "", Extensions: []string{".a"}}}).Validate(); err == nil {
		t.Error("empty category name must not validate")
	}
	if err := (Map{{Name: "Docs", Extensions: []string{".pdf"}}}).Validate(); err != nil {
		t.Errorf("valid map rejected: %v", err)
	}
}

func TestBucketsMarshalPreservesOrder(t *testing.T) {
	b := Buckets{
		{Name: "Z", Files: []*tree.Node{}},
		{Name: "A", Files: []*tree.Node{}},
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"Z":[],"A":[]}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}
