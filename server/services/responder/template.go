package responder

import (
	"strings"
)

// Answer is the structured form of the bot's explanation template. The
// client renders bot messages with a hand-rolled formatter that understands
// only "# " headings, "---" rules, **bold** spans, "- " bullets and
// [text](url) links, so Render must emit exactly that subset.
//
// The LLM is prompted to produce this shape directly; Answer is built in Go
// only on the raw-Wikipedia fallback path, where no model is involved.
type Answer struct {
	Meaning      string
	Description  string
	Example      string   // inline example sentence, used when Examples is empty
	Examples     []string // bulleted examples
	Usages       []string
	RelatedTerms []string
	SourceURL    string            // empty means "General Knowledge"
	Summaries    map[string]string // language -> one-line summary
	Tip          string
}

// summaryLanguages fixes the order of the four summary lines.
var summaryLanguages = []string{"English", "Telugu", "Tamil", "Hindi"}

// Render serializes the answer to the markdown subset. Sections with no
// content are omitted entirely.
func (a Answer) Render() string {
	var b strings.Builder

	if a.Meaning != "" {
		b.WriteString("**Meaning**: " + a.Meaning + "\n\n")
	}
	if a.Description != "" {
		b.WriteString("**Description**: " + a.Description + "\n\n")
	}
	if len(a.Examples) > 0 {
		b.WriteString("**Example**:\n")
		for _, ex := range a.Examples {
			b.WriteString("- " + ex + "\n")
		}
		b.WriteString("\n")
	} else if a.Example != "" {
		b.WriteString("**Example**: " + a.Example + "\n\n")
	}
	if len(a.Usages) > 0 {
		if len(a.Usages) == 1 {
			b.WriteString("**Where it is used**: " + a.Usages[0] + "\n\n")
		} else {
			b.WriteString("**Where it is used**:\n")
			for _, u := range a.Usages {
				b.WriteString("- " + u + "\n")
			}
			b.WriteString("\n")
		}
	}
	if len(a.RelatedTerms) > 0 {
		// Terms stay unemphasized after the colon.
		b.WriteString("**Related/Similar Terms**: " + strings.Join(a.RelatedTerms, ", ") + "\n\n")
	}
	if a.SourceURL != "" {
		b.WriteString("**Source**: [" + a.SourceURL + "](" + a.SourceURL + ")\n\n")
	} else if len(a.Summaries) > 0 {
		b.WriteString("**Source**: General Knowledge\n\n")
	}
	if len(a.Summaries) > 0 {
		b.WriteString("**Summary**:\n")
		for _, lang := range summaryLanguages {
			if line, ok := a.Summaries[lang]; ok {
				b.WriteString("- " + lang + ": " + line + "\n")
			}
		}
		b.WriteString("\n")
	}
	if a.Tip != "" {
		b.WriteString("💡 **Tip**: " + a.Tip + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// answerFromPage assembles the non-LLM fallback answer straight from the raw
// Wikipedia paragraphs: first paragraph as the definition, the next two as
// the description.
func answerFromPage(title, content string) Answer {
	var paragraphs []string
	for _, p := range strings.Split(content, "\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var meaning string
	if len(paragraphs) > 0 {
		meaning = paragraphs[0]
	}

	var description string
	if len(paragraphs) > 1 {
		end := len(paragraphs)
		if end > 3 {
			end = 3
		}
		description = strings.Join(paragraphs[1:end], "\n\n")
	}
	if description == "" {
		description = "This is a complex topic with various aspects and applications."
	}

	return Answer{
		Meaning:     meaning,
		Description: description,
		Example:     "For specific examples and practical applications of " + title + ", various contexts demonstrate its use.",
		Usages:      []string{title + " is used in various contexts and applications depending on the field and domain."},
		Tip:         "Ask me more specific questions about " + title + " to learn more!",
	}
}
