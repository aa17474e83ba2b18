// Package advisor generates short travel tips for a day of the trip with
// the Gemini API or Vertex AI.
package advisor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"

	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/trip"
)

// MaxTips caps how many tips are kept from a response.
const MaxTips = 5

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config selects the backend. An APIKey alone uses the Gemini API; a
// Project switches to Vertex AI, with ADC when no key is given.
type Config struct {
	APIKey   string
	Project  string
	Location string
	Model    string
}

// Advisor produces tips for a day.
type Advisor struct {
	gen Generator
}

// New creates an advisor backed by gen.
func New(gen Generator) *Advisor {
	return &Advisor{gen: gen}
}

// NewFromConfig creates an advisor backed by genai. The client is created
// on first use so a missing credential only fails the call that needs it.
func NewFromConfig(cfg Config) (*Advisor, error) {
	if cfg.APIKey == "" && cfg.Project == "" {
		return nil, &errors.ConfigError{
			Component: "advisor",
			Message:   "set an API key or a Google Cloud project",
		}
	}
	if cfg.Model == "" {
		cfg.Model = constants.DefaultAdvisorModel
	}
	if cfg.Project != "" && cfg.Location == "" {
		cfg.Location = "us-central1"
	}
	return New(&genaiGenerator{cfg: cfg}), nil
}

// Tips returns up to MaxTips tips for day.
func (a *Advisor) Tips(ctx context.Context, day trip.DayItinerary) ([]string, error) {
	text, err := a.gen.Generate(ctx, Prompt(day))
	if err != nil {
		return nil, errors.WrapAPI("advisor", 0, err)
	}
	tips := ParseTips(text)
	if len(tips) == 0 {
		return nil, errors.NewParseError("text", "advisor response", "no tips in response", nil)
	}
	return tips, nil
}

// Prompt builds the request text for day.
func Prompt(day trip.DayItinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are helping a traveller from Taiwan on a trip to Japan.\n")
	fmt.Fprintf(&b, "Day %d (%s): %s, based in %s.\n", day.ID, day.Date, day.Title, day.Location)
	if day.Weather.Condition != "" {
		fmt.Fprintf(&b, "Expected weather: %s, %s.\n", day.Weather.Condition, day.Weather.TempRange)
	}
	if len(day.Items) > 0 {
		b.WriteString("Schedule:\n")
		for _, item := range day.Items {
			fmt.Fprintf(&b, "- %s %s\n", item.Time, item.Title)
		}
	}
	fmt.Fprintf(&b, "Write at most %d short practical tips in Traditional Chinese, one per line, no numbering.", MaxTips)
	return b.String()
}

// ParseTips splits a response into tips, dropping bullets, numbering and
// blank lines.
func ParseTips(text string) []string {
	var tips []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•· \t")
		line = trimNumbering(line)
		if line == "" {
			continue
		}
		tips = append(tips, line)
		if len(tips) == MaxTips {
			break
		}
	}
	return tips
}

func trimNumbering(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

type genaiGenerator struct {
	cfg Config

	mu     sync.Mutex
	client *genai.Client
}

func (g *genaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}
	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.4),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (g *genaiGenerator) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	config := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  g.cfg.APIKey,
	}
	if g.cfg.Project != "" {
		config = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  g.cfg.Project,
			Location: g.cfg.Location,
		}
		if g.cfg.APIKey != "" {
			config.APIKey = g.cfg.APIKey
		} else {
			creds, err := detectCredentials()
			if err != nil {
				return nil, err
			}
			config.Credentials = creds
		}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, err
	}
	g.client = client
	return client, nil
}

// detectCredentials looks up Application Default Credentials. DetectDefault
// takes no context, so it runs in a goroutine bounded by a short timeout.
func detectCredentials() (*auth.Credentials, error) {
	type result struct {
		creds *auth.Credentials
		err   error
	}

	resultChan := make(chan result, 1)
	go func() {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes: []string{
				"https://www.googleapis.com/auth/cloud-platform",
			},
		})
		resultChan <- result{creds: creds, err: err}
	}()

	select {
	case res := <-resultChan:
		if res.err != nil {
			return nil, &errors.ConfigError{
				Component: "advisor",
				Message:   "no Application Default Credentials found",
				Err:       res.err,
			}
		}
		return res.creds, nil
	case <-time.After(2 * time.Second):
		return nil, &errors.ConfigError{
			Component: "advisor",
			Message:   "credential detection timed out",
			Err:       errors.ErrTimeout,
		}
	}
}
