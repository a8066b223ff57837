package wordlist

import "testing"

func TestIsWord(t *testing.T) {
	cases := []struct {
		token string
		want  bool
	}{
		{"hello", true},
		{"Hello", true},
		{"well-known", true},
		{"co--op", false},
		{"-ish", false},
		{"ish-", false},
		{"naïve", false},
		{"don't", true},
		{"don’t", true},
		{"U.S.", true},
		{"abc123", false},
		{"3-d", false},
		{",", false},
		{"...", true},
		{"", true},
	}
	for _, tc := range cases {
		if got := IsWord(tc.token); got != tc.want {
			t.Fatalf("IsWord(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	got := Filter([]string{"b", "1", "a", "c!"}, IsWord)
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("unexpected filtered words: %v", got)
	}
}
