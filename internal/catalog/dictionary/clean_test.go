package dictionary

import "testing"

func TestCleanGloss(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text unchanged",
			in:   "house",
			want: "house",
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
		{
			name: "labeled wiki link keeps label",
			in:   "[[casa|house]]",
			want: "house",
		},
		{
			name: "plain wiki link keeps target",
			in:   "[[house]]",
			want: "house",
		},
		{
			name: "links inside a sentence",
			in:   "to [[go]] [[away|out]]",
			want: "to go out",
		},
		{
			name: "template removed",
			in:   "{{template}}remainder",
			want: "remainder",
		},
		{
			name: "template with arguments removed",
			in:   "{{lb|es|colloquial}} buddy",
			want: "buddy",
		},
		{
			name: "html tags removed",
			in:   "<i>household</i>",
			want: "household",
		},
		{
			name: "tag with attributes removed",
			in:   `<span class="gloss">word</span>`,
			want: "word",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  of  ",
			want: "of",
		},
		{
			name: "only markup becomes empty",
			in:   "{{only-template}}",
			want: "",
		},
		{
			name: "inflection of dropped",
			in:   "inflection of casa",
			want: "",
		},
		{
			name: "form of dropped",
			in:   "form of ser",
			want: "",
		},
		{
			name: "obsolete form dropped",
			in:   "obsolete form of hacer",
			want: "",
		},
		{
			name: "pronunciation spelling dropped",
			in:   "pronunciation spelling of para",
			want: "",
		},
		{
			name: "cross reference revealed after cleaning dropped",
			in:   "{{q|archaic}} form of [[estar]]",
			want: "",
		},
		{
			name: "cross reference check is case-sensitive",
			in:   "Form of address",
			want: "Form of address",
		},
		{
			name: "cross reference phrase not at start kept",
			in:   "a form of greeting",
			want: "a form of greeting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanGloss(tt.in)
			if got != tt.want {
				t.Errorf("CleanGloss(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
