package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.5-pro"

// GeminiClient implements Client on top of the Gemini File API.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context) (*GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func (g *GeminiClient) UploadFile(ctx context.Context, path string) (*UploadedFile, error) {
	f, err := g.client.UploadFileFromPath(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return fromGenaiFile(f), nil
}

func (g *GeminiClient) GetFile(ctx context.Context, name string) (*UploadedFile, error) {
	f, err := g.client.GetFile(ctx, name)
	if err != nil {
		return nil, err
	}
	return fromGenaiFile(f), nil
}

func (g *GeminiClient) GenerateFromFiles(ctx context.Context, prompt string, files []*UploadedFile) (string, error) {
	model := g.client.GenerativeModel(geminiModel)

	parts := []genai.Part{genai.Text(prompt)}
	for _, f := range files {
		parts = append(parts, genai.FileData{MIMEType: f.MIMEType, URI: f.URI})
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func fromGenaiFile(f *genai.File) *UploadedFile {
	state := FileStateProcessing
	switch f.State {
	case genai.FileStateActive:
		state = FileStateActive
	case genai.FileStateFailed:
		state = FileStateFailed
	}
	return &UploadedFile{
		Name:     f.Name,
		URI:      f.URI,
		MIMEType: f.MIMEType,
		State:    state,
	}
}
