package model

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  TagList
	}{
		{
			name:  "NilInput",
			input: nil,
			want:  TagList{},
		},
		{
			name:  "StringSlice",
			input: []string{"  a ", "", "b"},
			want:  TagList{"a", "b"},
		},
		{
			name:  "CommaJoinedString",
			input: "a, b ,c",
			want:  TagList{"a", "b", "c"},
		},
		{
			name:  "SerializedArrayString",
			input: `["x","y"]`,
			want:  TagList{"x", "y"},
		},
		{
			name:  "DoubleSerializedArrayString",
			input: `["[\"x\",\"y\"]"]`,
			want:  TagList{`["x","y"]`},
		},
		{
			name:  "MalformedSerializedArray",
			input: `["x",]`,
			want:  TagList{},
		},
		{
			name:  "MixedTypeSequence",
			input: []interface{}{"go", 42, "  db "},
			want:  TagList{"go", "42", "db"},
		},
		{
			name:  "EmptyString",
			input: "   ",
			want:  TagList{},
		},
		{
			name:  "NonSequenceNonString",
			input: 3.14,
			want:  TagList{},
		},
		{
			name:  "DuplicatesPreserved",
			input: []string{"a", "a", "b"},
			want:  TagList{"a", "a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTagsIdempotent(t *testing.T) {
	inputs := []interface{}{
		nil,
		[]string{"  a ", "", "b"},
		"a, b ,c",
		`["x","y"]`,
		`["[\"x\",\"y\"]"]`,
		[]interface{}{"go", 42, "  db "},
		"single",
	}

	for _, input := range inputs {
		once := NormalizeTags(input)
		twice := NormalizeTags(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("NormalizeTags not idempotent for %v: first %v, second %v", input, once, twice)
		}
	}
}
