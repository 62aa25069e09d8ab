package chatbot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"monetrix/llm"
)

// systemMessage pins the LLM fallback to terminology tutoring so it stays
// within the chatbot's remit.
const systemMessage = "You are a financial terminology tutor for small-business owners. Explain the asked term or concept in plain language, with a formula and a short worked example where one applies. Stay on accounting and small-business finance topics; politely decline anything else. Keep answers under 150 words."

// Reply is one chatbot answer. Either the term fields are set (dictionary
// hit) or Text is set (greeting, fallback, or LLM answer).
type Reply struct {
	Term       string `json:"term,omitempty"`
	Definition string `json:"definition,omitempty"`
	Formula    string `json:"formula,omitempty"`
	Example    string `json:"example,omitempty"`
	Text       string `json:"text,omitempty"`
}

// Bot answers financial-terminology questions from the built-in dictionary,
// with an optional LLM fallback for questions the dictionary cannot match.
// A nil LLM client disables the fallback.
type Bot struct {
	dict *Dictionary
	llm  *llm.Client
}

// NewBot creates a new chatbot instance
func NewBot(dict *Dictionary, llmClient *llm.Client) *Bot {
	return &Bot{
		dict: dict,
		llm:  llmClient,
	}
}

// Answer produces a reply for one user message. Dictionary terms win over
// everything else; small-talk is handled with canned responses; anything
// unmatched goes to the LLM when enabled.
func (b *Bot) Answer(ctx context.Context, message string) Reply {
	query := strings.ToLower(strings.TrimSpace(message))

	if answer := b.dict.Lookup(query); answer != nil {
		return Reply{
			Term:       answer.Term,
			Definition: answer.Definition,
			Formula:    answer.Formula,
			Example:    answer.Example,
		}
	}

	switch {
	case containsAny(query, "hello", "hi", "hey"):
		return Reply{Text: "Hello! I'm here to help you understand financial terms. Ask me about COGS, Gross Profit, Net Margin, Depreciation, or any other financial concept!"}
	case containsAny(query, "help", "what can you"):
		return Reply{Text: "I can explain financial terms like COGS, Revenue, Net Profit, Profit Margin, Depreciation, EBITDA, Working Capital, Cash Flow, Break-Even Point, ROI, and more! Just ask me about any term."}
	case strings.Contains(query, "thank"):
		return Reply{Text: "You're welcome! Feel free to ask me anything else about financial terms."}
	}

	if b.llm != nil {
		answer, err := b.llm.ChatCompletion(ctx, []llm.Message{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: message},
		})
		if err != nil {
			log.Printf("⚠️  Chatbot LLM fallback failed: %v", err)
		} else if answer != "" {
			return Reply{Text: answer}
		}
	}

	return Reply{Text: fmt.Sprintf("I'm not sure about %q. Try asking me about specific financial terms like COGS, Gross Profit, Net Profit, Profit Margin, Depreciation, Revenue, or Expenses. Or type \"help\" for more options!", message)}
}

func containsAny(query string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}
