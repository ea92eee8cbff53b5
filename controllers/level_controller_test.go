package controllers

import (
	"testing"

	"github.com/zerofake/zerofake/models"
)

func TestGradeAnswers(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Answer: 0, Explanation: "check the sender domain"},
		{ID: 2, Answer: 2, Explanation: "hover before you click"},
		{ID: 3, Answer: 1, Explanation: "urgency is a pressure tactic"},
	}

	tests := []struct {
		name    string
		answers map[string]int
		want    int
	}{
		{"all correct", map[string]int{"1": 0, "2": 2, "3": 1}, 3},
		{"one wrong", map[string]int{"1": 0, "2": 3, "3": 1}, 2},
		{"missing answers count as wrong", map[string]int{"1": 0}, 1},
		{"empty submission", map[string]int{}, 0},
		{"unknown ids are ignored", map[string]int{"1": 0, "99": 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, review := gradeAnswers(questions, tt.answers)
			if score != tt.want {
				t.Errorf("score = %d, want %d", score, tt.want)
			}
			if len(review) != len(questions) {
				t.Errorf("review has %d entries, want %d", len(review), len(questions))
			}
		})
	}
}

func TestGradeAnswers_RevealsAnswer(t *testing.T) {
	questions := []models.Question{{ID: 5, Answer: 3, Explanation: "spoofed login page"}}
	_, review := gradeAnswers(questions, map[string]int{"5": 3})

	if got := review[0]["answer"]; got != 3 {
		t.Errorf("review answer = %v, want 3", got)
	}
	if got := review[0]["explanation"]; got != "spoofed login page" {
		t.Errorf("review explanation = %v", got)
	}
	if got := review[0]["correct"]; got != true {
		t.Errorf("review correct = %v, want true", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"10", 10, false},
		{"0", 0, true},
		{"11", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
