package report

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/nvats/StockLens/internal/dataflows"
)

// Fallback report texts. These are the only outputs of the composer besides
// generated model text.
const (
	NoRecentNewsMessage      = "Not enough recent news to generate a report."
	ReportUnavailableMessage = "Could not generate AI report at this time."
)

// maxHeadlines caps how many headlines go into the prompt.
const maxHeadlines = 10

const systemPrompt = "You are an equity research assistant. You write concise, " +
	"well-structured company reports grounded in the supplied news headlines " +
	"and your general knowledge."

// Composer assembles the analysis prompt and relays the model output
// unmodified.
type Composer struct {
	model model.BaseChatModel
}

// NewComposer creates a report composer around the given chat model. The
// model may be nil; composition then always degrades to the fallback text.
func NewComposer(cm model.BaseChatModel) *Composer {
	return &Composer{model: cm}
}

// BuildPrompt renders the user prompt for a company report from up to ten
// of the given headlines.
func BuildPrompt(companyName string, articles []*dataflows.NewsArticle) string {
	var headlines strings.Builder
	for i, article := range articles {
		if i >= maxHeadlines {
			break
		}
		headlines.WriteString("- ")
		headlines.WriteString(article.Title)
		headlines.WriteString("\n")
	}

	return fmt.Sprintf(`Analyze the current state of %s based on the following recent news headlines:
%s
Based on these headlines and your general knowledge, provide a detailed report covering these points:
1. **Overall Company Sentiment:** Is the current sentiment positive, negative, or neutral?
2. **Key Developments:** What are the most significant recent events or news?
3. **Potential Strengths & Weaknesses:** What are the potential strengths and weaknesses highlighted by the news?
4. **Future Outlook:** Based on this information, what is the potential future outlook for the company?

Provide a concise, well-structured report.`, companyName, headlines.String())
}

// CompanyReport generates the report text for a company. Zero headlines
// short-circuit to the "not enough recent news" message without calling the
// model; model failures degrade to the "could not generate" message.
func (c *Composer) CompanyReport(ctx context.Context, companyName string, articles []*dataflows.NewsArticle) string {
	if len(articles) == 0 {
		return NoRecentNewsMessage
	}
	if c.model == nil {
		log.Printf("[Report] no chat model configured, skipping report for %s", companyName)
		return ReportUnavailableMessage
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(BuildPrompt(companyName, articles)),
	}

	out, err := c.model.Generate(ctx, messages)
	if err != nil {
		log.Printf("[Report] generation failed for %s: %v", companyName, err)
		return ReportUnavailableMessage
	}
	if out == nil || out.Content == "" {
		log.Printf("[Report] empty generation result for %s", companyName)
		return ReportUnavailableMessage
	}

	return out.Content
}
