package configutil

import "testing"

type testConfig struct {
	IntField    int      `json:"intfield"`
	BoolField   bool     `json:"boolfield"`
	StringField string   `json:"stringfield"`
	SliceField  []string `json:"slicefield"`
	PtrIntField *int     `json:"ptrintfield"`
}

func TestResolveEmptyOpts(t *testing.T) {
	t.Parallel()
	defaults := testConfig{IntField: 42, BoolField: true, StringField: "default", SliceField: []string{"a", "b"}}

	result := Resolve(nil, defaults)
	if result.IntField != 42 {
		t.Errorf("expected IntField=42, got %d", result.IntField)
	}

	result = Resolve(map[string]any{}, defaults)
	if result.StringField != "default" {
		t.Errorf("expected StringField=default, got %s", result.StringField)
	}
}

func TestResolveMergesWithDefaults(t *testing.T) {
	t.Parallel()
	intVal := 50
	defaults := testConfig{IntField: 50, BoolField: true, StringField: "default", PtrIntField: &intVal}

	opts := map[string]any{"intfield": 100}

	result := Resolve(opts, defaults)
	if result.IntField != 100 {
		t.Errorf("expected IntField=100, got %d", result.IntField)
	}
	if result.StringField != "default" {
		t.Errorf("expected StringField=default, got %s", result.StringField)
	}
	if result.PtrIntField == nil || *result.PtrIntField != 50 {
		t.Errorf("expected PtrIntField=50, got %v", result.PtrIntField)
	}
}

func TestResolveInvalidType(t *testing.T) {
	t.Parallel()
	defaults := testConfig{IntField: 42}

	opts := map[string]any{"intfield": "not-an-int"}

	result := Resolve(opts, defaults)
	if result.IntField != 42 {
		t.Errorf("expected default IntField=42, got %d", result.IntField)
	}
}

func TestMergeDefaultsNonStruct(t *testing.T) {
	t.Parallel()
	got := mergeDefaults(42, 100)
	if got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}
