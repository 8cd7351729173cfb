package textmood

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bregydoc/gtranslate"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/text/language"
)

// DefaultTranslateTimeout bounds a single translation call.
const DefaultTranslateTimeout = 5 * time.Second

// A Translator renders text in the target language, given as a BCP 47 tag
// such as "en".
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// TranslatorFunc adapts an ordinary function to the Translator interface.
type TranslatorFunc func(ctx context.Context, text, target string) (string, error)

// Translate calls f(ctx, text, target).
func (f TranslatorFunc) Translate(ctx context.Context, text, target string) (string, error) {
	return f(ctx, text, target)
}

var errEmptyTranslation = errors.New("translator returned no text")

// translateOrKeep runs one bounded translation. On any failure it returns the
// original text together with a *TranslationError.
func translateOrKeep(ctx context.Context, tr Translator, text, target string, timeout time.Duration) (string, error) {
	tag, err := language.Parse(target)
	if err != nil {
		return text, &TranslationError{Target: target, Err: fmt.Errorf("unsupported target language: %w", err)}
	}

	if timeout <= 0 {
		timeout = DefaultTranslateTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := tr.Translate(ctx, text, tag.String())
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err == nil && strings.TrimSpace(out) == "" {
		err = errEmptyTranslation
	}
	if err != nil {
		return text, &TranslationError{Target: tag.String(), Err: err}
	}
	return out, nil
}

// DefaultGoogleInFlight caps the calls a GoogleTranslator keeps running at
// once, including calls whose caller has already given up.
const DefaultGoogleInFlight = 4

// GoogleTranslator uses the public Google Translate endpoint. The source
// language is detected by the service.
type GoogleTranslator struct {
	Tries int
	Delay time.Duration

	translate func(string, gtranslate.TranslationParams) (string, error)

	// slots bounds in-flight calls. Nil means no limit.
	slots chan struct{}
}

// NewGoogleTranslator returns a translator that retries twice with a short
// delay between attempts and runs at most DefaultGoogleInFlight calls at once.
func NewGoogleTranslator() *GoogleTranslator {
	return &GoogleTranslator{
		Tries:     2,
		Delay:     250 * time.Millisecond,
		translate: gtranslate.TranslateWithParams,
		slots:     make(chan struct{}, DefaultGoogleInFlight),
	}
}

// Translate implements Translator. The underlying client takes no context,
// so the call runs in its own goroutine and its result is dropped if ctx
// ends first. An abandoned call keeps running until the endpoint answers or
// its retries run out, and it holds its slot until then. When every slot is
// taken Translate waits for one or for ctx to end.
func (g *GoogleTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	type result struct {
		text string
		err  error
	}

	if g.slots != nil {
		select {
		case g.slots <- struct{}{}:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	params := gtranslate.TranslationParams{
		From:  "auto",
		To:    target,
		Tries: g.Tries,
		Delay: g.Delay,
	}

	done := make(chan result, 1)
	go func() {
		if g.slots != nil {
			defer func() { <-g.slots }()
		}
		out, err := g.translate(text, params)
		done <- result{out, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("google translate: %w", r.err)
		}
		return r.text, nil
	}
}

// DefaultOpenAIModel is the chat model used when none is configured.
const DefaultOpenAIModel = openai.GPT4oMini

const openAIRequestTimeout = 60 * time.Second

// OpenAITranslator asks a chat model for a translation.
type OpenAITranslator struct {
	client *openai.Client
	model  string
}

// NewOpenAITranslator creates a translator for the given API key. An empty
// model selects DefaultOpenAIModel.
func NewOpenAITranslator(apiKey, model string) *OpenAITranslator {
	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = &http.Client{Timeout: openAIRequestTimeout}
	return NewOpenAITranslatorWithConfig(config, model)
}

// NewOpenAITranslatorWithConfig creates a translator from a full client
// configuration, for example one pointing at a compatible server.
func NewOpenAITranslatorWithConfig(config openai.ClientConfig, model string) *OpenAITranslator {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAITranslator{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Translate implements Translator.
func (o *OpenAITranslator) Translate(ctx context.Context, text, target string) (string, error) {
	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleSystem,
					Content: fmt.Sprintf("Translate the user's text into the language with BCP 47 tag %q. "+
						"Reply with the translation only.", target),
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: text,
				},
			},
			N:           1,
			Temperature: 0,
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errEmptyTranslation
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
