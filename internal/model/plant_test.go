package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCategory_UnmarshalJSON_BothShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Category
	}{
		{"bare strings", `["Indoor","Pet Safe"]`, []Category{"Indoor", "Pet Safe"}},
		{"name objects", `[{"name":"Indoor"},{"name":"Pet Safe"}]`, []Category{"Indoor", "Pet Safe"}},
		{"mixed shapes", `["Indoor",{"name":"Outdoor"}]`, []Category{"Indoor", "Outdoor"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Category
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategory_UnmarshalJSON_RejectsOtherShapes(t *testing.T) {
	var c Category
	if err := json.Unmarshal([]byte(`123`), &c); err == nil {
		t.Error("numeric category accepted")
	}
}

func TestCategory_MarshalAsString(t *testing.T) {
	// Categories always serialize back out as plain strings.
	b, err := json.Marshal([]Category{"Indoor"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `["Indoor"]` {
		t.Errorf("got %s, want [\"Indoor\"]", b)
	}
}
