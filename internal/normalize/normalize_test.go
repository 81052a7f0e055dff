// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "testing"

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "punctuation and case",
			input: "A Study of AI/ML: Modern Approaches",
			want:  "study of ai ml modern approaches",
		},
		{
			name:  "already normalized",
			input: "study of ai ml modern approaches",
			want:  "study of ai ml modern approaches",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "?!*&:;",
			want:  "",
		},
		{
			name:  "accented letters fold to ascii",
			input: "Évaluation des Systèmes Complexes",
			want:  "evaluation des systemes complexes",
		},
		{
			name:  "ligatures",
			input: "Encyclopædia of Cœlacanth Research",
			want:  "encyclopaedia of coelacanth research",
		},
		{
			name:  "mangled curly quote artifact",
			input: "The Userâ€™s Perspective on Testing",
			want:  "the users perspective on testing",
		},
		{
			name:  "html entities",
			input: "Design &amp; Implementation &#39;Notes&#39;",
			want:  "design implementation notes",
		},
		{
			name:  "markup fragments",
			input: "On the Complexity of <i>k</i>-SAT Variants",
			want:  "on the complexity of sat variants",
		},
		{
			name:  "dash variants",
			input: "Model–Driven Engineering — A Survey",
			want:  "model driven engineering survey",
		},
		{
			name:  "single letter tokens dropped",
			input: "A B Testing in E Commerce",
			want:  "testing in commerce",
		},
		{
			name:  "zero width and bom stripped",
			input: "\uFEFFDeep​ Learning",
			want:  "deep learning",
		},
		{
			name:  "cjk has no ascii spelling",
			input: "機械学習 for Software Engineering",
			want:  "for software engineering",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Title(tt.input)
			if got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTitleIdempotent(t *testing.T) {
	inputs := []string{
		"A Study of AI/ML: Modern Approaches",
		"Évaluation des Systèmes Complexes",
		"The Userâ€™s Perspective on Testing",
		"Design &amp; Implementation",
		"Model–Driven Engineering — A Survey",
		"",
	}
	for _, in := range inputs {
		once := Title(in)
		twice := Title(once)
		if once != twice {
			t.Errorf("Title not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestTitleNeverPanicsOnArbitraryInput(t *testing.T) {
	inputs := []string{
		"\x00\x01\x02",
		"\xff\xfe invalid utf8",
		"𝕌𝕟𝕚𝕔𝕠𝕕𝕖 𝕞𝕒𝕥𝕙",
		"🚀 emoji title 🚀",
	}
	for _, in := range inputs {
		_ = Title(in) // must not panic
	}
}
