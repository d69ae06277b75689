package Gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"Himal/Models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const modelName = "gemini-2.0-flash-001"

var chartTypes = []string{"bar", "line", "radar", "scatter"}

func newClient(ctx context.Context) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	return genai.NewClient(ctx, option.WithAPIKey(apiKey))
}

// ComparePOSnapshots asks the model for a short prose summary of what changed
// between two purchase order versions. The output is advisory text only.
func ComparePOSnapshots(ctx context.Context, before, after Models.POVersion) (string, error) {
	client, err := newClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	beforeJSON, err := json.Marshal(before)
	if err != nil {
		return "", err
	}
	afterJSON, err := json.Marshal(after)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are reviewing two versions of a purchase order from a packaging manufacturer.
Summarize what changed between them in two or three plain sentences for an accountant.
Mention item, quantity, rate and status changes. Do not invent changes that are not in the data.

BEFORE: %s

AFTER: %s`, beforeJSON, afterJSON)

	model := client.GenerativeModel(modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return textOf(resp), nil
}

// SuggestChartType asks the model which chart type best presents a report's
// measurements. The answer is constrained to the known chart types; anything
// else falls back to "bar".
func SuggestChartType(ctx context.Context, productName string, measurements []Models.Measurement) (string, error) {
	client, err := newClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	data, err := json.Marshal(measurements)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`A packaging test report for product %q has these measurements: %s
Which chart type presents them best? Answer with exactly one word from: %s`,
		productName, data, strings.Join(chartTypes, ", "))

	model := client.GenerativeModel(modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	answer := strings.ToLower(strings.TrimSpace(textOf(resp)))
	for _, chart := range chartTypes {
		if strings.Contains(answer, chart) {
			return chart, nil
		}
	}
	return "bar", nil
}

func textOf(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			builder.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(builder.String())
}
