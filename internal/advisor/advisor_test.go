package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAdvisor returns queued responses in order.
type scriptedAdvisor struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (s *scriptedAdvisor) Advise(_ context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	s.prompts = append(s.prompts, prompt)
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var resp string
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	return resp, err
}

func TestAdviseOrFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("nil advisor uses fallback", func(t *testing.T) {
		text, ok := AdviseOrFallback(ctx, nil, "p", "canned", time.Second)
		assert.False(t, ok)
		assert.Equal(t, "canned", text)
	})

	t.Run("advisor output wins", func(t *testing.T) {
		a := &scriptedAdvisor{responses: []string{"real advice"}}
		text, ok := AdviseOrFallback(ctx, a, "p", "canned", time.Second)
		assert.True(t, ok)
		assert.Equal(t, "real advice", text)
	})

	t.Run("error degrades to fallback", func(t *testing.T) {
		a := &scriptedAdvisor{errs: []error{errors.New("boom")}}
		text, ok := AdviseOrFallback(ctx, a, "p", "canned", time.Second)
		assert.False(t, ok)
		assert.Equal(t, "canned", text)
	})

	t.Run("blank output degrades to fallback", func(t *testing.T) {
		a := &scriptedAdvisor{responses: []string{"   \n"}}
		text, ok := AdviseOrFallback(ctx, a, "p", "canned", time.Second)
		assert.False(t, ok)
		assert.Equal(t, "canned", text)
	})
}

func TestAdviseWithShortRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("first attempt succeeds, no retry", func(t *testing.T) {
		a := &scriptedAdvisor{responses: []string{"long answer"}}
		text, ok := AdviseWithShortRetry(ctx, a, "long prompt", "short prompt", "canned", time.Second)
		assert.True(t, ok)
		assert.Equal(t, "long answer", text)
		assert.Equal(t, 1, a.calls)
	})

	t.Run("one retry with the short prompt", func(t *testing.T) {
		a := &scriptedAdvisor{
			responses: []string{"", "short answer"},
			errs:      []error{errors.New("timeout"), nil},
		}
		text, ok := AdviseWithShortRetry(ctx, a, "long prompt", "short prompt", "canned", time.Second)
		assert.True(t, ok)
		assert.Equal(t, "short answer", text)
		require.Equal(t, 2, a.calls)
		assert.Equal(t, "short prompt", a.prompts[1])
	})

	t.Run("no second retry after both fail", func(t *testing.T) {
		a := &scriptedAdvisor{errs: []error{errors.New("x"), errors.New("y")}}
		text, ok := AdviseWithShortRetry(ctx, a, "long", "short", "canned", time.Second)
		assert.False(t, ok)
		assert.Equal(t, "canned", text)
		assert.Equal(t, 2, a.calls)
	})
}

func fakeCLI(t *testing.T, installed map[string]bool, outputs map[string]string, fails map[string]bool) *CLIAdvisor {
	t.Helper()
	c := NewCLIAdvisor(zerolog.Nop())
	c.lookPath = func(bin string) (string, error) {
		if installed[bin] {
			return "/usr/bin/" + bin, nil
		}
		return "", errors.New("not found")
	}
	c.run = func(_ context.Context, path string, args ...string) ([]byte, error) {
		bin := path[len("/usr/bin/"):]
		if fails[bin] {
			return nil, errors.New("exit status 1")
		}
		return []byte(outputs[bin]), nil
	}
	return c
}

func TestCLIAdvisor_FirstUsableProbeWins(t *testing.T) {
	c := fakeCLI(t,
		map[string]bool{"copilot": true, "claude": true},
		map[string]string{"copilot": "copilot says hi\n", "claude": "claude says hi"},
		nil)

	text, err := c.Advise(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "copilot says hi", text)
}

func TestCLIAdvisor_FallsThroughToNextBinary(t *testing.T) {
	c := fakeCLI(t,
		map[string]bool{"claude": true},
		map[string]string{"claude": "claude says hi"},
		nil)

	text, err := c.Advise(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "claude says hi", text)
}

func TestCLIAdvisor_AllProbesFail(t *testing.T) {
	c := fakeCLI(t,
		map[string]bool{"copilot": true},
		map[string]string{"copilot": ""},
		map[string]bool{"copilot": false})

	_, err := c.Advise(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no advisory CLI produced output")
}

func TestCLIAdvisor_NonZeroExitMovesOn(t *testing.T) {
	c := fakeCLI(t,
		map[string]bool{"copilot": true, "claude": true},
		map[string]string{"claude": "backup answer"},
		map[string]bool{"copilot": true})

	text, err := c.Advise(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "backup answer", text)
}

func TestStatic_AlwaysAnswers(t *testing.T) {
	text, err := Static{Text: FallbackWellness}.Advise(context.Background(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, FallbackWellness, text)
}

func TestNew_DisabledReturnsNil(t *testing.T) {
	assert.Nil(t, New(Config{Enabled: false}, zerolog.Nop()))
}
