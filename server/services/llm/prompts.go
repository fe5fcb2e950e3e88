package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const topicSystemPrompt = `You are a topic extraction assistant. Extract the main topic from the question. Reply with ONLY 1-3 words, nothing else. Examples: "blockchain", "python programming", "bitcoin".`

const titleSystemPrompt = `You are a title generator. Create a short, descriptive title (3-5 words) for a chat based on the first message. Reply with ONLY the title, nothing else. Examples: "Blockchain Basics", "Python Programming Guide", "Bitcoin Investment Tips".`

// answerFormatRules is shared by the simplify and direct-answer system
// prompts. The structure lines are a rendering contract: the client parses
// **bold**, "- " bullets, [text](url) links and "# " headings with a
// hand-rolled formatter, so the section shape must not drift.
const answerFormatRules = `CRITICAL FORMATTING RULES:
1. Keep responses SHORT and CONCISE (reduce content by 50%)
2. Bold 2-3 important keywords related to the topic using **keyword** format
3. Include source with clickable link in markdown format
4. End with STRICTLY one-line summaries in 4 languages only
5. ACCURACY: Answer EXACTLY what is asked - if asked about TensorFlow, explain TensorFlow specifically, not general machine learning
6. Related/Similar Terms: Make heading bold, but terms after colon should NOT be bold - just list them normally

Structure:
**Meaning**: Brief definition (1 sentence)
**Description**: Concise explanation (2-3 short paragraphs max)
**Example**: Point-wise examples
- Point 1
- Point 2
**Where it is used**: Brief applications (2-3 points)
**Related/Similar Terms**: term1, term2, term3 (NO bold after colon)
**Source**: [Full URL](Full URL) format or General Knowledge
**Summary**: STRICTLY 1 line per language
- English: [one line]
- Telugu: [one line in Telugu script]
- Tamil: [one line in Tamil script]
- Hindi: [one line in Hindi Devanagari script]`

const simplifySystemPrompt = "You are an expert educational assistant. Provide concise, optimized explanations with bold keywords and multilingual summaries.\n\n" + answerFormatRules

const directSystemPrompt = "You are an expert knowledge assistant. Provide concise, optimized answers with bold keywords and multilingual summaries.\n\n" + answerFormatRules

// ExtractTopic pulls a 1-3 word topic out of the question. Empty string means
// extraction failed and the caller should take the no-topic path; outputs of
// 50+ characters are rambling, not topics, and count as failure too.
func (c *Client) ExtractTopic(ctx context.Context, userQuestion string) string {
	topic, err := c.Complete(ctx, topicSystemPrompt, userQuestion, 20)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("topic extraction failed", zap.Error(err))
		}
		return ""
	}
	if n := utf8.RuneCountInString(topic); n > 0 && n < 50 {
		return topic
	}
	return ""
}

// SimplifyContent reformats Wikipedia text into the fixed answer template,
// grounded on the user's original question. Empty string on failure.
func (c *Client) SimplifyContent(ctx context.Context, topic, wikipediaContent, userQuestion string) string {
	wikipediaContent = truncateRunes(wikipediaContent, 2500)
	wikiURL := "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(topic, " ", "_")

	prompt := fmt.Sprintf(`Explain %q CONCISELY based on this Wikipedia content.

Wikipedia Content:
%s

User Question: %q

CRITICAL: Answer EXACTLY about %q - be specific and accurate. Do NOT give generic answers.

Provide a SHORT, OPTIMIZED explanation:

**Meaning**: What is %s? (1 sentence only - be SPECIFIC to %s)

**Description**: Brief explanation (2-3 SHORT paragraphs):
- Key points SPECIFIC to %s
- Most important aspects of %s
- Keep it concise and clear

**Example**: 1-2 concrete examples in point-wise format:
- Example 1
- Example 2

**Where it is used**: Applications (2-3 bullet points only) SPECIFIC to %s

**Related/Similar Terms**: List 2-3 related terms (NO bold, just comma-separated list)

**Source**: [%s](%s)

**Summary**: Provide STRICTLY ONE LINE summary in each language:
- English: [concise one-line summary]
- Telugu: [concise one-line summary in Telugu script]
- Tamil: [concise one-line summary in Tamil script]
- Hindi: [concise one-line summary in Hindi Devanagari script]

IMPORTANT: Keep response SHORT (50%% less content). Summary must be STRICTLY 1 line per language. Be ACCURATE and SPECIFIC to %s.`,
		topic, wikipediaContent, userQuestion, topic, topic, topic, topic, topic, topic, wikiURL, wikiURL, topic)

	simplified, err := c.Complete(ctx, simplifySystemPrompt, prompt, 1200)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("content simplification failed", zap.Error(err))
		}
		return ""
	}
	return simplified
}

// GenerateDirectResponse answers without Wikipedia grounding, in the same
// template with "General Knowledge" as the source. Empty string on failure.
func (c *Client) GenerateDirectResponse(ctx context.Context, userQuestion string) string {
	prompt := fmt.Sprintf(`Answer this question CONCISELY: %q

CRITICAL: Answer EXACTLY what is asked. Be specific and accurate. If asked about TensorFlow, explain TensorFlow specifically, not general machine learning.

Provide a SHORT, OPTIMIZED response:

**Meaning**: What is it? (1 sentence only - be SPECIFIC)

**Description**: Brief explanation (2-3 SHORT paragraphs):
- Key points only
- Most important information SPECIFIC to the question
- Keep it concise

**Example**: 1-2 specific examples in point-wise format:
- Example 1
- Example 2

**Where it is used**: Applications (2-3 bullet points only)

**Related/Similar Terms**: List 2-3 related terms (NO bold, just comma-separated list)

**Source**: General Knowledge

**Summary**: Provide STRICTLY ONE LINE summary in each language:
- English: [concise one-line summary]
- Telugu: [concise one-line summary in Telugu script]
- Tamil: [concise one-line summary in Tamil script]
- Hindi: [concise one-line summary in Hindi Devanagari script]

IMPORTANT: Keep response SHORT (50%% less content). Summary must be STRICTLY 1 line per language. Be ACCURATE and SPECIFIC.`, userQuestion)

	response, err := c.Complete(ctx, directSystemPrompt, prompt, 1200)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("direct response failed", zap.Error(err))
		}
		return ""
	}
	return response
}

// GenerateChatTitle names a chat after its first message. Falls back to a
// truncated prefix of the message when the model fails or rambles.
func (c *Client) GenerateChatTitle(ctx context.Context, firstMessage string) string {
	title, err := c.Complete(ctx, titleSystemPrompt, firstMessage, 30)
	if err == nil && len(title) > 0 && utf8.RuneCountInString(title) < 60 {
		return title
	}
	return truncateRunes(firstMessage, 50)
}

// truncateRunes cuts s to at most n runes. Byte slicing would split
// multibyte characters, which matters for Telugu/Tamil/Hindi input.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
