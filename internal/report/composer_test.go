package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/nvats/StockLens/internal/dataflows"
)

// stubModel is a chat model that records calls and returns a canned reply
// or error.
type stubModel struct {
	calls    int
	reply    string
	err      error
	lastMsgs []*schema.Message
}

func (s *stubModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	s.calls++
	s.lastMsgs = input
	if s.err != nil {
		return nil, s.err
	}
	return schema.AssistantMessage(s.reply, nil), nil
}

func (s *stubModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported in stub")
}

func articles(titles ...string) []*dataflows.NewsArticle {
	out := make([]*dataflows.NewsArticle, len(titles))
	for i, title := range titles {
		out[i] = &dataflows.NewsArticle{
			Title:       title,
			URL:         "https://example.com/" + title,
			PublishedAt: time.Now(),
		}
	}
	return out
}

func TestCompanyReportNoNewsSkipsModel(t *testing.T) {
	stub := &stubModel{reply: "should not be used"}
	composer := NewComposer(stub)

	got := composer.CompanyReport(context.Background(), "RELIANCE", nil)
	if got != NoRecentNewsMessage {
		t.Errorf("got %q, want the no-news message", got)
	}
	if stub.calls != 0 {
		t.Errorf("model called %d times, want 0", stub.calls)
	}
}

func TestCompanyReportRelaysModelOutput(t *testing.T) {
	stub := &stubModel{reply: "A detailed report."}
	composer := NewComposer(stub)

	got := composer.CompanyReport(context.Background(), "TCS", articles("TCS wins large deal"))
	if got != "A detailed report." {
		t.Errorf("got %q, want relayed model output", got)
	}
	if stub.calls != 1 {
		t.Errorf("model called %d times, want 1", stub.calls)
	}
}

func TestCompanyReportModelFailureDegrades(t *testing.T) {
	stub := &stubModel{err: errors.New("quota exceeded")}
	composer := NewComposer(stub)

	got := composer.CompanyReport(context.Background(), "INFY", articles("Infosys announces results"))
	if got != ReportUnavailableMessage {
		t.Errorf("got %q, want the unavailable message", got)
	}
}

func TestCompanyReportNilModelDegrades(t *testing.T) {
	composer := NewComposer(nil)

	got := composer.CompanyReport(context.Background(), "INFY", articles("headline"))
	if got != ReportUnavailableMessage {
		t.Errorf("got %q, want the unavailable message", got)
	}
}

func TestBuildPromptCapsAtTenHeadlines(t *testing.T) {
	titles := make([]string, 15)
	for i := range titles {
		titles[i] = "headline-" + string(rune('a'+i))
	}

	prompt := BuildPrompt("HDFCBANK", articles(titles...))

	if got := strings.Count(prompt, "- headline-"); got != 10 {
		t.Errorf("prompt contains %d headlines, want 10", got)
	}
	if !strings.Contains(prompt, "HDFCBANK") {
		t.Error("prompt missing company name")
	}
	for _, section := range []string{"Overall Company Sentiment", "Key Developments", "Strengths & Weaknesses", "Future Outlook"} {
		if !strings.Contains(prompt, section) {
			t.Errorf("prompt missing section %q", section)
		}
	}
}
