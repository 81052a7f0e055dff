// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import "testing"

func TestSameArticle(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		original  string
		want      bool
	}{
		{
			name:      "identical after normalization",
			candidate: "A Study of AI/ML: Modern Approaches",
			original:  "a study of ai ml modern approaches",
			want:      true,
		},
		{
			name:      "typo within edit distance",
			candidate: "deep learning for code revew",
			original:  "deep learning for code review",
			want:      true,
		},
		{
			name:      "subtitle containment with comparable lengths",
			candidate: "Microservices in Practice",
			original:  "Microservices in Practice: A Field Study",
			want:      true,
		},
		{
			name:      "short fragment of much longer title",
			candidate: "a study",
			original:  "a study of empirical software engineering methods applied to large scale distributed systems in industry",
			want:      false,
		},
		{
			name:      "unrelated titles",
			candidate: "Quantum Error Correction Codes",
			original:  "Agile Requirements Elicitation",
			want:      false,
		},
		{
			name:      "empty candidate fails closed",
			candidate: "",
			original:  "Some Valid Title",
			want:      false,
		},
		{
			name:      "whitespace only original fails closed",
			candidate: "Some Valid Title",
			original:  "   ",
			want:      false,
		},
		{
			name:      "punctuation only differences",
			candidate: "Model-Driven Engineering: A Survey",
			original:  "Model Driven Engineering - A Survey",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SameArticle(tt.candidate, tt.original)
			if got != tt.want {
				t.Errorf("SameArticle(%q, %q) = %v, want %v",
					tt.candidate, tt.original, got, tt.want)
			}
		})
	}
}

func TestSameArticleSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Microservices in Practice", "Microservices in Practice: A Field Study"},
		{"deep learning for code revew", "deep learning for code review"},
		{"Quantum Error Correction Codes", "Agile Requirements Elicitation"},
	}
	for _, p := range pairs {
		if SameArticle(p[0], p[1]) != SameArticle(p[1], p[0]) {
			t.Errorf("SameArticle not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestAuditSameArticle(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		original  string
		want      bool
	}{
		{
			name:      "containment always flags",
			candidate: "a study",
			original:  "a study of empirical software engineering methods applied to large scale distributed systems in industry",
			want:      true,
		},
		{
			name:      "moderate edit distance with same word count",
			candidate: "survey of automated program repair",
			original:  "survey of automatic program repair",
			want:      true,
		},
		{
			name:      "moderate distance but word counts diverge",
			candidate: "code review",
			original:  "codes reviews at xl",
			want:      false,
		},
		{
			name:      "empty fails closed",
			candidate: "",
			original:  "",
			want:      false,
		},
		{
			name:      "unrelated titles",
			candidate: "Quantum Error Correction Codes",
			original:  "Agile Requirements Elicitation",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AuditSameArticle(tt.candidate, tt.original)
			if got != tt.want {
				t.Errorf("AuditSameArticle(%q, %q) = %v, want %v",
					tt.candidate, tt.original, got, tt.want)
			}
		})
	}
}

// A pair the strict matcher rejects but the audit matcher flags: this gap is
// what routes near misses to human review instead of silent merges.
func TestStrictRejectsWhatAuditFlags(t *testing.T) {
	candidate := "a study"
	original := "a study of empirical software engineering methods applied to large scale distributed systems in industry"

	if SameArticle(candidate, original) {
		t.Error("strict matcher accepted a short fragment of a much longer title")
	}
	if !AuditSameArticle(candidate, original) {
		t.Error("audit matcher failed to flag a contained fragment")
	}
}
