// Package responder turns a user's chat message into the bot's reply text.
//
// The pipeline is staged with a fallback edge at every step: shortcut check,
// topic extraction, Wikipedia lookup, LLM formatting. Whatever fails, the
// caller always gets a string back.
package responder

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/teamcbatch1/conceptclarity/server/services/wikipedia"
	"github.com/teamcbatch1/conceptclarity/server/utils/logging"
)

const (
	noAnswerReply = "I'm not sure how to answer that. Could you rephrase your question? 🤔"

	apologeticReply = "I apologize, I'm having trouble processing your request right now. Please try again in a moment. 🙏\n\nYou can ask me about any topic - technology, science, history, language, and more!"
)

// Gateway is the slice of the LLM client the responder depends on.
type Gateway interface {
	ExtractTopic(ctx context.Context, userQuestion string) string
	SimplifyContent(ctx context.Context, topic, wikipediaContent, userQuestion string) string
	GenerateDirectResponse(ctx context.Context, userQuestion string) string
}

// WikiLookup resolves a topic to a Wikipedia page, nil when unavailable.
type WikiLookup interface {
	Lookup(ctx context.Context, topic string) *wikipedia.Page
}

type Responder struct {
	llm    Gateway
	wiki   WikiLookup
	logger *zap.Logger
}

func NewResponder(llm Gateway, wiki WikiLookup) *Responder {
	return &Responder{llm: llm, wiki: wiki, logger: logging.AppLogger}
}

// Respond produces the bot reply for a user message. It is total: every
// path, including a panic in a pipeline stage, terminates in a string.
func (r *Responder) Respond(ctx context.Context, text string) (reply string) {
	defer logging.LogDuration(ctx, "responder_respond")()

	defer func() {
		if rec := recover(); rec != nil {
			if r.logger != nil {
				r.logger.Error("responder pipeline panicked", zap.Any("panic", rec))
			}
			// Last-resort direct answer before the fixed apology.
			if direct := r.safeDirectResponse(ctx, text); direct != "" {
				reply = direct
				return
			}
			reply = apologeticReply
		}
	}()

	// Shortcuts bypass the pipeline entirely.
	if canned := matchShortcut(text); canned != "" {
		return canned
	}

	topic := r.llm.ExtractTopic(ctx, text)
	if topic == "" {
		if direct := r.llm.GenerateDirectResponse(ctx, text); direct != "" {
			return direct
		}
		return noAnswerReply
	}

	page := r.wiki.Lookup(ctx, topic)
	if page == nil {
		// Answer without grounding, but still under a topic heading.
		if direct := r.llm.GenerateDirectResponse(ctx, text); direct != "" {
			return heading(titleCase(topic)) + direct
		}
		return fmt.Sprintf("I couldn't find detailed information about %q. Could you try rephrasing or asking about a related topic? 🤔", topic)
	}

	formatted := r.llm.SimplifyContent(ctx, topic, page.Content, text)
	if formatted == "" {
		// Hand-assembled template from the raw paragraphs, no model involved.
		return answerFromPage(page.Title, page.Content).Render()
	}

	return heading(page.Title) + formatted
}

func (r *Responder) safeDirectResponse(ctx context.Context, text string) (direct string) {
	defer func() {
		if rec := recover(); rec != nil {
			direct = ""
		}
	}()
	return r.llm.GenerateDirectResponse(ctx, text)
}

func heading(title string) string {
	return "# " + title + " 📚\n\n"
}

// titleCase capitalizes each word of an extracted topic for the heading of
// an ungrounded answer ("machine learning" -> "Machine Learning").
func titleCase(topic string) string {
	words := strings.Fields(topic)
	for i, w := range words {
		if len(w) > 1 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		} else {
			words[i] = strings.ToUpper(w)
		}
	}
	return strings.Join(words, " ")
}
