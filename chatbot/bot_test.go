package chatbot

import (
	"context"
	"strings"
	"testing"
)

func newTestBot() *Bot {
	// No LLM fallback in tests; unmatched questions get the canned reply.
	return NewBot(NewDictionary(), nil)
}

func TestBotAnswersTerm(t *testing.T) {
	bot := newTestBot()

	reply := bot.Answer(context.Background(), "what is gross profit?")
	if reply.Term != "Gross Profit" {
		t.Errorf("expected term reply, got %+v", reply)
	}
	if reply.Definition == "" || reply.Formula == "" || reply.Example == "" {
		t.Error("term reply should carry definition, formula and example")
	}
	if reply.Text != "" {
		t.Error("term reply should not carry free text")
	}
}

func TestBotSmallTalk(t *testing.T) {
	bot := newTestBot()
	ctx := context.Background()

	tests := []struct {
		name       string
		message    string
		wantSubstr string
	}{
		{"greeting", "hello there", "Ask me about COGS"},
		{"help", "help", "I can explain financial terms"},
		{"thanks", "thank you!", "You're welcome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := bot.Answer(ctx, tt.message)
			if !strings.Contains(reply.Text, tt.wantSubstr) {
				t.Errorf("message %q: expected reply containing %q, got %q", tt.message, tt.wantSubstr, reply.Text)
			}
		})
	}
}

func TestBotFallbackForUnknownQuestion(t *testing.T) {
	bot := newTestBot()

	reply := bot.Answer(context.Background(), "quantum flux capacitance")
	if reply.Term != "" {
		t.Errorf("expected no term match, got %q", reply.Term)
	}
	if !strings.Contains(reply.Text, "quantum flux capacitance") {
		t.Errorf("fallback should echo the question, got %q", reply.Text)
	}
}

func TestBotTermBeatsSmallTalk(t *testing.T) {
	bot := newTestBot()

	// "hi" appears in the message, but the term match wins.
	reply := bot.Answer(context.Background(), "hi, what is depreciation?")
	if reply.Term != "Depreciation" {
		t.Errorf("expected term reply to win over greeting, got %+v", reply)
	}
}
