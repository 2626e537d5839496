package network

import "testing"

func TestEndpointWithPlainPath(t *testing.T) {
	e := NewEndpoint("/path/to/resource")
	if e.Path() != "/path/to/resource" {
		t.Fatalf("Path = %q", e.Path())
	}
	if e.QueryItems() != nil {
		t.Fatalf("expected nil query items, got %#v", e.QueryItems())
	}
	if len(e.Params()) != 0 {
		t.Fatalf("expected no params")
	}
}

func TestEndpointWithQuery(t *testing.T) {
	e := NewEndpoint("/path/to/resource", Query("name", "network"))
	items := e.QueryItems()
	if len(items) != 1 {
		t.Fatalf("expected 1 query item, got %d", len(items))
	}
	if items[0].Name != "name" || items[0].ValueOr("") != "network" {
		t.Fatalf("unexpected query item %#v", items[0])
	}
}

func TestEndpointQueryItemsOnePerKeyInOrder(t *testing.T) {
	e := NewEndpoint("/p",
		Query("b", "1"),
		QueryFlag("flag"),
		Query("a", "2"),
		Query("b", "3"),
	)
	items := e.QueryItems()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	wantNames := []string{"b", "flag", "a"}
	for i, name := range wantNames {
		if items[i].Name != name {
			t.Fatalf("items[%d].Name = %q, want %q", i, items[i].Name, name)
		}
	}
	if items[0].ValueOr("") != "3" {
		t.Fatalf("repeated key should take latest value, got %q", items[0].ValueOr(""))
	}
	if items[1].HasValue() {
		t.Fatalf("flag item should keep value absence")
	}
}

func TestEndpointIsImmutable(t *testing.T) {
	e := NewEndpoint("/p", Query("k", "v"))
	items := e.QueryItems()
	*items[0].Value = "changed"
	items[0].Name = "other"

	again := e.QueryItems()
	if again[0].Name != "k" || again[0].ValueOr("") != "v" {
		t.Fatalf("endpoint mutated through returned items: %#v", again[0])
	}
}

func TestEndpointFromMapSortsKeys(t *testing.T) {
	e := EndpointFromMap("/p", map[string]string{"z": "1", "a": "2", "m": "3"})
	items := e.QueryItems()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Name != "a" || items[1].Name != "m" || items[2].Name != "z" {
		t.Fatalf("unexpected order %#v", items)
	}
	if EndpointFromMap("/p", nil).QueryItems() != nil {
		t.Fatalf("expected nil items for nil map")
	}
}

func TestEncodeQuery(t *testing.T) {
	got := encodeQuery([]QueryItem{
		Query("q", "a b&c"),
		QueryFlag("debug"),
		Query("empty", ""),
		Query("plus", "1+1"),
	})
	want := "q=a%20b%26c&debug&empty=&plus=1%2B1"
	if got != want {
		t.Fatalf("encodeQuery = %q, want %q", got, want)
	}
	if encodeQuery(nil) != "" {
		t.Fatalf("expected empty query for nil items")
	}
}
