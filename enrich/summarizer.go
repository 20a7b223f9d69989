package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pevans/berita/article"
)

// MinContentLength is the shortest text, in characters, worth summarizing.
const MinContentLength = 30

// maxPromptText bounds the article text sent to the model so the prompt fits
// an 8k-token context.
const maxPromptText = 6000

const summaryPrompt = `Ringkaskan atau summarizekan teks berikut menjadi 2–3 kalimat menggunakan Bahasa Indonesia yang jelas dan alami.
Jangan sertakan pembuka seperti "Ringkasan:", "Berikut ini adalah...", atau sejenisnya. Langsung tuliskan isi ringkasan tanpa pengantar apa pun.

%s

Ringkasan:`

// LLMSummarizer writes 2-3 sentence Indonesian summaries.
type LLMSummarizer struct {
	llm    Completer
	logger *slog.Logger
}

// NewSummarizer creates a summarizer backed by llm.
func NewSummarizer(llm Completer, logger *slog.Logger) *LLMSummarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMSummarizer{llm: llm, logger: logger.With("component", "summarizer")}
}

// Summarize returns the summary of text. Text shorter than MinContentLength
// yields article.SummaryTooShort without calling the model, and any model
// failure yields article.SummaryFailed.
func (s *LLMSummarizer) Summarize(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinContentLength {
		return article.SummaryTooShort
	}

	summary, err := s.llm.Complete(ctx, fmt.Sprintf(summaryPrompt, truncateRunes(text, maxPromptText)))
	if err != nil {
		s.logger.Warn("summarization failed", "error", err)
		return article.SummaryFailed
	}

	// Models sometimes echo the prompt's trailing label.
	summary = strings.TrimSpace(strings.TrimPrefix(summary, "Ringkasan:"))
	if summary == "" {
		return article.SummaryFailed
	}
	return summary
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
