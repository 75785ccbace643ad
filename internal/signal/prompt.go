package signal

import (
	"fmt"
	"strings"
	"text/template"
)

const defaultPromptText = `You are an expert at analyzing news articles related to cryptocurrencies and
extracting market signal from the text in a structured format.

Here is the news article:
{{.Text}}
`

// DefaultPrompt is the instruction sent with every headline.
var DefaultPrompt = MustPrompt(defaultPromptText)

// Prompt is an instruction template with a single {{.Text}} slot.
type Prompt struct {
	tmpl *template.Template
}

func NewPrompt(text string) (*Prompt, error) {
	if n := strings.Count(text, "{{.Text}}"); n != 1 {
		return nil, fmt.Errorf("prompt template must have exactly one {{.Text}} slot, found %d", n)
	}
	tmpl, err := template.New("signal").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	return &Prompt{tmpl: tmpl}, nil
}

func MustPrompt(text string) *Prompt {
	p, err := NewPrompt(text)
	if err != nil {
		panic(err)
	}
	return p
}

// Render substitutes text verbatim. Empty text is allowed.
func (p *Prompt) Render(text string) (string, error) {
	var sb strings.Builder
	err := p.tmpl.Execute(&sb, struct{ Text string }{Text: text})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return sb.String(), nil
}
