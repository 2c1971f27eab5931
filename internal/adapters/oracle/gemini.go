package oracle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/feelalive/aura-engine/internal/core/services"
)

const DefaultModel = "gemini-2.0-flash"

// GeminiOracle talks to the Gemini API with a primary credential and a single
// failsafe credential. Each operation tries the primary once, fails over
// once, and then surfaces the failure; nothing here retries beyond that.
type GeminiOracle struct {
	primary  *genai.Client
	failsafe *genai.Client
	model    string
	timeout  time.Duration
}

var _ services.Oracle = (*GeminiOracle)(nil)

func NewGeminiOracle(ctx context.Context, primaryKey, failsafeKey, model string, timeout time.Duration) (*GeminiOracle, error) {
	if primaryKey == "" {
		return nil, fmt.Errorf("gemini primary API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	primary, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: primaryKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create primary gemini client: %w", err)
	}

	var failsafe *genai.Client
	if failsafeKey != "" {
		failsafe, err = genai.NewClient(ctx, &genai.ClientConfig{APIKey: failsafeKey})
		if err != nil {
			return nil, fmt.Errorf("failed to create failsafe gemini client: %w", err)
		}
	}

	return &GeminiOracle{
		primary:  primary,
		failsafe: failsafe,
		model:    model,
		timeout:  timeout,
	}, nil
}

// generate runs one bounded GenerateContent call per credential.
func (g *GeminiOracle) generate(ctx context.Context, parts []*genai.Part) (string, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	clients := []*genai.Client{g.primary}
	if g.failsafe != nil {
		clients = append(clients, g.failsafe)
	}

	var lastErr error
	for i, client := range clients {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		resp, err := client.Models.GenerateContent(callCtx, g.model, contents, nil)
		cancel()

		if err != nil {
			lastErr = err
			if i == 0 && g.failsafe != nil {
				log.Printf("Primary gemini key failed, trying failsafe: %v", err)
			}
			continue
		}

		text := resp.Text()
		if text == "" {
			lastErr = fmt.Errorf("empty gemini response")
			continue
		}
		return text, nil
	}

	return "", fmt.Errorf("%w: %v", services.ErrOracleUnavailable, lastErr)
}

// Verify asks whether the photo shows the described task completed. The
// contract is a bare yes/no answer.
func (g *GeminiOracle) Verify(ctx context.Context, imageBase64, description string) (bool, error) {
	imageBase64 = stripDataURL(imageBase64)
	imageData, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return false, fmt.Errorf("invalid base64 image payload: %w", err)
	}

	prompt := fmt.Sprintf(`Does this photo show that the following task is completed? Task: %q. Respond only with "yes" or "no".`, description)

	text, err := g.generate(ctx, []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(imageData, "image/jpeg"),
	})
	if err != nil {
		return false, err
	}

	return strings.TrimSpace(strings.ToLower(text)) == "yes", nil
}

// classificationPayload keeps isImageVerifiable a pointer so a missing field
// on a normal task is distinguishable from an explicit false.
type classificationPayload struct {
	Type            string `json:"type"`
	Intensity       string `json:"intensity"`
	ImageVerifiable *bool  `json:"isImageVerifiable"`
}

func (g *GeminiOracle) Classify(ctx context.Context, description, category string) (domain.TaskClassification, error) {
	var prompt string
	if category == domain.TaskCategoryTimed {
		prompt = fmt.Sprintf(`Classify the following timed task as "good" or "bad" (type), and as "easy", "medium", or "hard" (intensity). This task is about sustained effort over time. Reply ONLY with a valid JSON object like this: {"type":"good|bad","intensity":"easy|medium|hard"}. Task: %s`, description)
	} else {
		prompt = fmt.Sprintf(`Classify the following task as "good" or "bad" (type), and as "easy", "medium", or "hard" (intensity). Also, determine if this task's completion is reasonably verifiable with a single photograph (isImageVerifiable: true/false). Reply ONLY with a valid JSON object like this: {"type":"good|bad","intensity":"easy|medium|hard","isImageVerifiable":true|false}. Task: %s`, description)
	}

	text, err := g.generate(ctx, []*genai.Part{genai.NewPartFromText(prompt)})
	if err != nil {
		return domain.TaskClassification{}, err
	}

	cls, err := parseClassification(text, category)
	if err != nil {
		return domain.TaskClassification{}, fmt.Errorf("%w: %v", services.ErrOracleUnavailable, err)
	}
	return cls, nil
}

func parseClassification(text, category string) (domain.TaskClassification, error) {
	var payload classificationPayload
	if err := json.Unmarshal([]byte(stripJSONFence(text)), &payload); err != nil {
		return domain.TaskClassification{}, fmt.Errorf("malformed classification JSON: %w", err)
	}

	cls := domain.TaskClassification{
		Type:      payload.Type,
		Intensity: payload.Intensity,
	}
	if !cls.Valid() {
		return domain.TaskClassification{}, fmt.Errorf("classification has invalid type or intensity: %q/%q", payload.Type, payload.Intensity)
	}

	if category == domain.TaskCategoryTimed {
		cls.ImageVerifiable = false
		return cls, nil
	}

	if payload.ImageVerifiable == nil {
		return domain.TaskClassification{}, fmt.Errorf("classification missing isImageVerifiable for normal task")
	}
	cls.ImageVerifiable = *payload.ImageVerifiable
	return cls, nil
}

func (g *GeminiOracle) GenerateTimetable(ctx context.Context, chapters []domain.Chapter, deadline, startDate string) ([]domain.TimetableDay, error) {
	chaptersJSON, err := json.Marshal(chapters)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are a study planner. Given these chapters (each with its subject): %s, a deadline of %s, and a start date of %s, produce a day-by-day study timetable covering every day from the start date up to the deadline. Reply ONLY with a valid JSON array where each element is {"date":"YYYY-MM-DD","tasks":[{"type":"study|revision|break","content":"..."}]}. Use only the task types "study", "revision", and "break".`, chaptersJSON, deadline, startDate)

	text, err := g.generate(ctx, []*genai.Part{genai.NewPartFromText(prompt)})
	if err != nil {
		return nil, err
	}

	var days []domain.TimetableDay
	if err := json.Unmarshal([]byte(stripJSONFence(text)), &days); err != nil {
		return nil, fmt.Errorf("%w: malformed timetable JSON: %v", services.ErrOracleUnavailable, err)
	}
	return days, nil
}

// stripJSONFence removes the ```json ... ``` wrapper models like to add.
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func stripDataURL(s string) string {
	if idx := strings.Index(s, ";base64,"); idx != -1 {
		return s[idx+len(";base64,"):]
	}
	return s
}
