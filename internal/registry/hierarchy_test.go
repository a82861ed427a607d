package registry

import (
	"errors"
	"sort"
	"testing"
)

func mustHierarchy(t *testing.T, norm Normalization, types []string, edges []Edge) *Hierarchy {
	t.Helper()
	h, err := NewHierarchy(norm, types, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h
}

func TestHierarchy_SubtypesOf(t *testing.T) {
	h := mustHierarchy(t, NormalizeExact,
		[]string{"File", "Image", "Photo", "Screenshot", "Document"},
		[]Edge{
			{Child: "Image", Parent: "File"},
			{Child: "Document", Parent: "File"},
			{Child: "Photo", Parent: "Image"},
			{Child: "Screenshot", Parent: "Image"},
		},
	)

	tests := []struct {
		typeName string
		want     []string
	}{
		{"File", []string{"Document", "File", "Image", "Photo", "Screenshot"}},
		{"Image", []string{"Image", "Photo", "Screenshot"}},
		{"Photo", []string{"Photo"}},
		{"Document", []string{"Document"}},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			got, err := h.SubtypesOf(tt.typeName)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			sort.Strings(got)
			if len(got) != len(tt.want) {
				t.Fatalf("SubtypesOf(%s) = %v, want %v", tt.typeName, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SubtypesOf(%s) = %v, want %v", tt.typeName, got, tt.want)
					break
				}
			}
		})
	}
}

func TestHierarchy_UnknownType(t *testing.T) {
	h := mustHierarchy(t, NormalizeExact, []string{"Image"}, nil)

	_, err := h.SubtypesOf("Widget")
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestHierarchy_Normalization(t *testing.T) {
	exact := mustHierarchy(t, NormalizeExact, []string{"Image"}, nil)
	if _, err := exact.SubtypesOf("image"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("exact policy: expected ErrUnknownType for wrong case, got %v", err)
	}

	fold := mustHierarchy(t, NormalizeFold, []string{"Image", "Photo"}, []Edge{{Child: "Photo", Parent: "Image"}})
	got, err := fold.SubtypesOf("IMAGE")
	if err != nil {
		t.Fatalf("fold policy: unexpected error: %v", err)
	}
	// Lookup folds, but the result keeps the registered spellings so that
	// filters built from it compare against stored class values.
	if len(got) != 2 || got[0] != "Image" || got[1] != "Photo" {
		t.Errorf("fold policy: SubtypesOf(IMAGE) = %v, want [Image Photo]", got)
	}
}

func TestHierarchy_SubtypesOfRootFirst(t *testing.T) {
	h := mustHierarchy(t, NormalizeExact,
		[]string{"File", "Image", "Photo"},
		[]Edge{
			{Child: "Image", Parent: "File"},
			{Child: "Photo", Parent: "Image"},
		},
	)

	got, err := h.SubtypesOf("Image")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 || got[0] != "Image" {
		t.Errorf("SubtypesOf(Image) = %v, want Image first", got)
	}
}

func TestNewHierarchy_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		edges []Edge
	}{
		{
			name:  "edge child unknown",
			types: []string{"Image"},
			edges: []Edge{{Child: "Photo", Parent: "Image"}},
		},
		{
			name:  "edge parent unknown",
			types: []string{"Photo"},
			edges: []Edge{{Child: "Photo", Parent: "Image"}},
		},
		{
			name:  "two parents",
			types: []string{"A", "B", "C"},
			edges: []Edge{{Child: "C", Parent: "A"}, {Child: "C", Parent: "B"}},
		},
		{
			name:  "cycle",
			types: []string{"A", "B"},
			edges: []Edge{{Child: "A", Parent: "B"}, {Child: "B", Parent: "A"}},
		},
		{
			name:  "duplicate type",
			types: []string{"A", "A"},
		},
		{
			name:  "empty type name",
			types: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewHierarchy(NormalizeExact, tt.types, tt.edges); err == nil {
				t.Error("expected construction to fail")
			}
		})
	}
}

func TestTypeSet(t *testing.T) {
	set := NewTypeSet(NormalizeFold, []string{"Image", "Photo"})

	if !set.Contains("PHOTO") {
		t.Error("fold set must match case-insensitively")
	}
	if set.Contains("Document") {
		t.Error("unexpected member Document")
	}
	if set.Len() != 2 {
		t.Errorf("Len() = %d, want 2", set.Len())
	}

	// Names keeps the construction spellings even under fold.
	names := set.Names()
	if len(names) != 2 || names[0] != "Image" || names[1] != "Photo" {
		t.Errorf("Names() = %v, want [Image Photo]", names)
	}

	dedup := NewTypeSet(NormalizeFold, []string{"Image", "IMAGE"})
	if dedup.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (spellings folding to one key collapse)", dedup.Len())
	}
	if got := dedup.Names(); len(got) != 1 || got[0] != "Image" {
		t.Errorf("Names() = %v, want the first spelling [Image]", got)
	}

	exact := NewTypeSet(NormalizeExact, []string{"Image"})
	if exact.Contains("image") {
		t.Error("exact set must not match case-insensitively")
	}
}
