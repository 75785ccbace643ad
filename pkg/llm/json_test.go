package llm

import "testing"

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"signal":"bullish"}`,
			want:  `{"signal":"bullish"}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"signal\":\"bullish\"}\n```",
			want:  `{"signal":"bullish"}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"signal\":\"bearish\"}\n```",
			want:  `{"signal":"bearish"}`,
		},
		{
			name:  "trims surrounding whitespace",
			input: "  {\"signal\":\"neutral\"}  ",
			want:  `{"signal":"neutral"}`,
		},
		{
			name:  "drops prose around object",
			input: "Here is the signal: {\"signal\":\"neutral\"} hope it helps",
			want:  `{"signal":"neutral"}`,
		},
		{
			name:  "empty stays empty",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
