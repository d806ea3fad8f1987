package services

import (
	"reflect"
	"testing"

	"github.com/trackflow/trackflow/backend/internal/models"
	"github.com/trackflow/trackflow/backend/internal/store"
)

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []uint
	}{
		{"simple", "1,4,7", []uint{1, 4, 7}},
		{"spaces", " 1 , 4 ", []uint{1, 4}},
		{"empty", "", []uint{}},
		{"trailing comma", "3,", []uint{3}},
		{"garbage skipped", "1,abc,2", []uint{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIDList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseIDList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestProjectServiceList(t *testing.T) {
	projects := store.NewMemoryProjectStore([]models.Project{
		{ID: 1, Name: "Frontend", TeamMembers: "1,2,3"},
		{ID: 2, Name: "Backend", TeamMembers: ""},
	})
	svc := NewProjectService(projects)

	views, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(views))
	}
	if !reflect.DeepEqual(views[0].TeamMemberIDs, []uint{1, 2, 3}) {
		t.Errorf("team ids = %v, want [1 2 3]", views[0].TeamMemberIDs)
	}
	if len(views[1].TeamMemberIDs) != 0 {
		t.Errorf("empty roster should parse to no ids, got %v", views[1].TeamMemberIDs)
	}
}
