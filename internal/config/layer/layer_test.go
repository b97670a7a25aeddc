package layer

import (
	"reflect"
	"testing"
)

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{"text": "a", "tabWidth": 4},
		"theme":  "dark",
	}
	src := map[string]any{
		"editor": map[string]any{"text": "b"},
		"theme":  map[string]any{"name": "light"},
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"editor": map[string]any{"text": "b", "tabWidth": 4},
		"theme":  map[string]any{"name": "light"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge = %v, want %v", got, want)
	}

	// The merged value must not alias src.
	src["theme"].(map[string]any)["name"] = "changed"
	if got["theme"].(map[string]any)["name"] != "light" {
		t.Error("DeepMerge result aliases src")
	}
}

func TestGetSetByPath(t *testing.T) {
	data := map[string]any{}
	if !SetByPath(data, "transform.classes.#", "hashtag") {
		t.Fatal("SetByPath failed")
	}
	v, ok := GetByPath(data, "transform.classes.#")
	if !ok || v != "hashtag" {
		t.Errorf("GetByPath = %v, %v", v, ok)
	}

	if _, ok := GetByPath(data, "transform.missing"); ok {
		t.Error("GetByPath found a missing key")
	}
	if _, ok := GetByPath(data, "transform.classes.#.deeper"); ok {
		t.Error("GetByPath descended into a string")
	}
	if SetByPath(data, "transform.classes.#.deeper", 1) {
		t.Error("SetByPath overwrote a non-map value")
	}
	if SetByPath(data, "", 1) {
		t.Error("SetByPath accepted an empty path")
	}
}

func TestManagerMerge(t *testing.T) {
	m := NewManager()
	m.Add(New("env", SourceEnv, map[string]any{"logging": map[string]any{"level": "debug"}}))
	m.Add(New("defaults", SourceBuiltin, map[string]any{
		"logging": map[string]any{"level": "info", "file": ""},
	}))
	m.Add(New("file", SourceFile, map[string]any{"logging": map[string]any{"level": "warn", "file": "x.log"}}))

	if got, want := m.Names(), []string{"defaults", "file", "env"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}

	merged := m.Merge()
	if v, _ := GetByPath(merged, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v, want debug", v)
	}
	if v, _ := GetByPath(merged, "logging.file"); v != "x.log" {
		t.Errorf("logging.file = %v, want x.log", v)
	}

	// Replacing a layer by name drops the old values.
	m.Add(New("file", SourceFile, nil))
	if v, _ := GetByPath(m.Merge(), "logging.file"); v != "" {
		t.Errorf("logging.file = %v after replacing the file layer", v)
	}

	if !m.Remove("env") || m.Remove("env") {
		t.Error("Remove should succeed exactly once")
	}
	if v, _ := GetByPath(m.Merge(), "logging.level"); v != "info" {
		t.Errorf("logging.level = %v after removing env", v)
	}
}

func TestManagerInvalidate(t *testing.T) {
	m := NewManager()
	l := New("args", SourceArgs, nil)
	m.Add(l)
	_ = m.Merge()

	SetByPath(l.Data, "editor.text", "hi")
	m.Invalidate()
	if v, _ := GetByPath(m.Merge(), "editor.text"); v != "hi" {
		t.Errorf("editor.text = %v, want hi", v)
	}

	merged := m.Merge()
	merged["editor"] = "mutated"
	if v, _ := GetByPath(m.Merge(), "editor.text"); v != "hi" {
		t.Error("Merge returned the cached map instead of a copy")
	}
}

func TestLayerClone(t *testing.T) {
	l := New("file", SourceFile, map[string]any{"a": map[string]any{"b": 1}})
	c := l.Clone()
	c.Data["a"].(map[string]any)["b"] = 2
	if l.Data["a"].(map[string]any)["b"] != 1 {
		t.Error("Clone shares data with the original")
	}
	if l.Priority != PriorityFile || SourceFile.String() != "file" {
		t.Errorf("priority=%d source=%s", l.Priority, SourceFile)
	}
}
