package advisor

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/trip"
)

type fakeGenerator struct {
	text   string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

func TestParseTips(t *testing.T) {
	text := "1. 早點出門避開人潮\n\n- 帶把折疊傘\n* 準備零錢\n2) 穿好走的鞋\n• 注意末班車時間\n多出來的一條"
	assert.Equal(t, []string{
		"早點出門避開人潮",
		"帶把折疊傘",
		"準備零錢",
		"穿好走的鞋",
		"注意末班車時間",
	}, ParseTips(text))

	assert.Empty(t, ParseTips("\n  \n"))
	assert.Equal(t, []string{"2026 年的櫻花季"}, ParseTips("2026 年的櫻花季"))
}

func TestTips(t *testing.T) {
	day := trip.SeedItinerary()[0]
	gen := &fakeGenerator{text: "- 先寄放行李\n- 買 ICOCA"}

	tips, err := New(gen).Tips(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, []string{"先寄放行李", "買 ICOCA"}, tips)
	assert.Contains(t, gen.prompt, day.Title)
	assert.Contains(t, gen.prompt, string(day.Location))
	assert.Contains(t, gen.prompt, day.Items[0].Title)
}

func TestTipsErrors(t *testing.T) {
	day := trip.SeedItinerary()[0]

	_, err := New(&fakeGenerator{err: stderrors.New("quota")}).Tips(context.Background(), day)
	var apiErr *errors.APIError
	assert.ErrorAs(t, err, &apiErr)

	_, err = New(&fakeGenerator{text: "   "}).Tips(context.Background(), day)
	assert.True(t, errors.IsValidationError(err))
}

func TestNewFromConfig(t *testing.T) {
	_, err := NewFromConfig(Config{})
	assert.ErrorIs(t, err, errors.ErrNotConfigured)

	a, err := NewFromConfig(Config{APIKey: "k"})
	require.NoError(t, err)
	g := a.gen.(*genaiGenerator)
	assert.Equal(t, "gemini-2.0-flash", g.cfg.Model)

	a, err = NewFromConfig(Config{Project: "p"})
	require.NoError(t, err)
	assert.Equal(t, "us-central1", a.gen.(*genaiGenerator).cfg.Location)
}
