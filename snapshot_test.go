package confz

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSnapshot_All(t *testing.T) {
	c := newTestConfiguration(t)

	var keys []string
	var values []any
	for k, v := range c.Current().All() {
		keys = append(keys, k)
		values = append(values, v)
	}

	want := []string{"foo", "bar", "count", "api_key"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d: expected %q, got %q", i, want[i], keys[i])
		}
	}
	if values[2] != 123 {
		t.Errorf("expected count 123, got %v", values[2])
	}
}

func TestSnapshot_AllStopsEarly(t *testing.T) {
	c := newTestConfiguration(t)

	n := 0
	for range c.Current().All() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected to stop after 2, got %d", n)
	}
}

func TestSnapshot_IsDetached(t *testing.T) {
	c := newTestConfiguration(t)
	s := c.Current()

	if err := c.Set("foo", "changed"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, _ := s.Get("foo"); v != "pelle" {
		t.Errorf("expected snapshot to keep 'pelle', got %v", v)
	}

	m := s.Map()
	m["foo"] = "mutated"
	if v, _ := s.Get("foo"); v != "pelle" {
		t.Errorf("expected Map() to return a copy, got %v", v)
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("expected missing key to be absent")
	}
}

func TestSnapshot_MarshalJSON(t *testing.T) {
	c := newTestConfiguration(t)

	data, err := json.Marshal(c.Current())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"foo":"pelle","bar":null,"count":123,"api_key":"foobarbaz"}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestSnapshot_MarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(New().Current())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("expected {}, got %s", data)
	}
}

func TestSnapshot_MarshalYAML(t *testing.T) {
	c := newTestConfiguration(t)

	data, err := yaml.Marshal(c.Current())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := "foo: pelle\nbar: null\ncount: 123\napi_key: foobarbaz\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, data)
	}
}
