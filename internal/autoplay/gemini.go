package autoplay

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/choose_move.txt
var chooseMovePrompt string

var chooseMoveTmpl = template.Must(template.New("choose_move").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(chooseMovePrompt))

// GeminiPlayer asks a Gemini model for each move.
type GeminiPlayer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiPlayer(ctx context.Context, apiKey, modelName string) (*GeminiPlayer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	return &GeminiPlayer{
		client: client,
		model:  model,
	}, nil
}

func (p *GeminiPlayer) Close() {
	p.client.Close()
}

func (p *GeminiPlayer) Choose(ctx context.Context, turn Turn) (Move, error) {
	prompt, err := RenderPrompt(turn)
	if err != nil {
		return Move{}, err
	}

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Move{}, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Move{}, fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return Move{}, fmt.Errorf("unexpected response type from Gemini")
	}
	return ParseMove(string(text))
}

// RenderPrompt fills the move prompt for turn.
func RenderPrompt(turn Turn) (string, error) {
	var buf bytes.Buffer
	if err := chooseMoveTmpl.Execute(&buf, turn); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ParseMove reads a YAML move from model output, tolerating a fenced code block.
func ParseMove(text string) (Move, error) {
	cleanYAML := strings.TrimSpace(text)
	cleanYAML = strings.TrimPrefix(cleanYAML, "```yaml")
	cleanYAML = strings.TrimPrefix(cleanYAML, "```")
	cleanYAML = strings.TrimSuffix(cleanYAML, "```")

	var m Move
	if err := yaml.Unmarshal([]byte(cleanYAML), &m); err != nil {
		return Move{}, fmt.Errorf("failed to parse move YAML: %w\nOutput was: %s", err, cleanYAML)
	}
	m.Kind = MoveKind(strings.ToLower(strings.TrimSpace(string(m.Kind))))
	m.Target = strings.TrimSpace(m.Target)

	switch m.Kind {
	case MoveTravel, MoveAct:
		if m.Target == "" {
			return Move{}, fmt.Errorf("%w: %s needs a target", ErrBadMove, m.Kind)
		}
	case MoveChoose:
		if m.Choice < 1 {
			return Move{}, fmt.Errorf("%w: choice must be 1 or more", ErrBadMove)
		}
	case MoveRest:
	default:
		return Move{}, fmt.Errorf("%w: kind %q", ErrBadMove, m.Kind)
	}
	return m, nil
}
