package models

import "testing"

func TestParseTaskType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TaskType
		wantErr bool
	}{
		{"english", "exam", TaskTypeExam, false},
		{"display label", "ATIVIDADE", TaskTypeActivity, false},
		{"stored value", "Trabalho", TaskTypeAssignment, false},
		{"padded", "  outro ", TaskTypeOther, false},
		{"unknown", "homework", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTaskType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTaskType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input   string
		want    Difficulty
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"Fácil", DifficultyEasy, false},
		{"facil", DifficultyEasy, false},
		{"MÉDIO", DifficultyMedium, false},
		{"Difícil", DifficultyHard, false},
		{"hard", DifficultyHard, false},
		{"impossible", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDifficulty(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDifficulty(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTaskTypeLabel(t *testing.T) {
	if got := TaskTypeExam.Label(); got != "PROVA" {
		t.Errorf("Label() = %q, want %q", got, "PROVA")
	}
	if got := TaskTypeActivity.Label(); got != "ATIVIDADE" {
		t.Errorf("Label() = %q, want %q", got, "ATIVIDADE")
	}
}

func TestDifficultyRank(t *testing.T) {
	if !(DifficultyHard.Rank() > DifficultyMedium.Rank() && DifficultyMedium.Rank() > DifficultyEasy.Rank()) {
		t.Errorf("difficulty ranks are not ordered: easy=%d medium=%d hard=%d",
			DifficultyEasy.Rank(), DifficultyMedium.Rank(), DifficultyHard.Rank())
	}
	if Difficulty("").Rank() != 0 {
		t.Errorf("empty difficulty rank = %d, want 0", Difficulty("").Rank())
	}
}

func TestTaskPatchIsEmpty(t *testing.T) {
	if !(TaskPatch{}).IsEmpty() {
		t.Error("zero TaskPatch should be empty")
	}

	var cleared *Difficulty
	p := TaskPatch{Difficulty: Some(cleared)}
	if p.IsEmpty() {
		t.Error("patch clearing difficulty should not be empty")
	}
	got, ok := p.Difficulty.Get()
	if !ok || got != nil {
		t.Errorf("Difficulty.Get() = (%v, %v), want (nil, true)", got, ok)
	}
}
