package jsonutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestUnmarshalTree(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		tree, err := UnmarshalTree([]byte(`{"results":[{"issue_severity":"HIGH","line_number":3}]}`))
		if err != nil {
			t.Fatalf("UnmarshalTree() error = %v", err)
		}
		obj, ok := tree.(map[string]any)
		if !ok {
			t.Fatalf("expected object, got %T", tree)
		}
		results, ok := obj["results"].([]any)
		if !ok || len(results) != 1 {
			t.Fatalf("expected one result, got %v", obj["results"])
		}
		row := results[0].(map[string]any)
		if row["line_number"] != float64(3) {
			t.Errorf("numbers must decode as float64, got %T", row["line_number"])
		}
	})

	t.Run("array of tuples", func(t *testing.T) {
		tree, err := UnmarshalTree([]byte(`[["django","<2.2","2.1","advisory",null,"u"]]`))
		if err != nil {
			t.Fatalf("UnmarshalTree() error = %v", err)
		}
		tuple := tree.([]any)[0].([]any)
		if tuple[4] != nil {
			t.Errorf("null must decode as nil, got %v", tuple[4])
		}
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := UnmarshalTree([]byte(`{"results":[{"issue_severity":`))
		if err == nil {
			t.Fatal("expected error for truncated JSON")
		}
	})
}

func TestErrorOffset(t *testing.T) {
	var v any
	err := Unmarshal([]byte(`{"a": tru}`), &v)
	if err == nil {
		t.Fatal("expected error")
	}
	off, ok := ErrorOffset(err)
	if !ok {
		t.Fatalf("expected syntactic error, got %T: %v", err, err)
	}
	if off <= 0 {
		t.Errorf("expected positive offset, got %d", off)
	}

	if _, ok := ErrorOffset(nil); ok {
		t.Error("nil error must not report an offset")
	}
}

func TestMarshalIndent(t *testing.T) {
	data, err := MarshalIndent(map[string]int{"a": 1}, "  ")
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}
	if !strings.Contains(string(data), "\n  \"a\": 1") {
		t.Errorf("expected indented output, got %s", data)
	}
}

func TestMarshalWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := MarshalWrite(&buf, []string{"x"}, "\t"); err != nil {
		t.Fatalf("MarshalWrite() error = %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("expected trailing newline")
	}
	if !Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Errorf("output is not valid JSON: %q", buf.String())
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`{}`, true},
		{`[1,2]`, true},
		{`{"a":`, false},
		{``, false},
	}
	for _, tt := range tests {
		if got := Valid([]byte(tt.in)); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
