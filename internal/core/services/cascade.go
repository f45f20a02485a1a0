package services

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-assist/internal/logger"
)

// Fixed cascade responses.
const (
	OutOfScopeMessage = "I can only answer questions related to insurance, trading, and customer support. Please ask a relevant question."
	NoContextMessage  = "I don't know. Please ask about insurance policies, trading, account opening, or customer support topics."
	UnknownMessage    = "I Don't know"
)

const (
	minContextChars     = 20
	maxContextChars     = 800
	extractiveThreshold = 0.1
)

// Sampling parameters for the generative tiers.
var (
	seq2seqOptions = driven.GenerateOptions{NumBeams: 2, Temperature: 0.7}
	causalOptions  = driven.GenerateOptions{Temperature: 0.8}
)

// keywordResponses is consulted in order when no context sentence matches.
var keywordResponses = []struct {
	keyword  string
	response string
}{
	{"account", "To open an account, please visit our website and follow the registration process."},
	{"login", "For login issues, please check your credentials and contact support."},
	{"trading", "For trading queries, please refer to our trading guidelines."},
	{"fees", "Fee information can be found in your policy documents."},
	{"claim", "To file a claim, contact our claims department with required documents."},
	{"support", "For additional support, please contact our customer service."},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CascadeModels holds the model behind each tier. Nil tiers are skipped.
type CascadeModels struct {
	Seq2Seq    driven.LLMService
	Causal     driven.LLMService
	Extractive driven.AnswerExtractor
}

// tier is one state of the cascade. It returns the answer, or advance=true
// to hand over to the next state.
type tier struct {
	name domain.Tier
	run  func(ctx context.Context, query, passage string) (answer string, advance bool)
}

// Cascade turns a query and retrieved context into an answer by trying
// each generation tier in priority order. It never returns an error:
// exhausting every model ends in the keyword fallback.
type Cascade struct {
	screen    QueryScreen
	models    CascadeModels
	prompts   driven.PromptStore
	maxTokens int
	tiers     []tier
}

// NewCascade creates a cascade. prompts may be nil, in which case the
// built-in templates are used.
func NewCascade(models CascadeModels, prompts driven.PromptStore, maxTokens int) *Cascade {
	if maxTokens <= 0 {
		maxTokens = domain.DefaultMaxTokens
	}
	c := &Cascade{
		models:    models,
		prompts:   prompts,
		maxTokens: maxTokens,
	}
	c.tiers = []tier{
		{name: domain.TierSeq2Seq, run: c.seq2seq},
		{name: domain.TierCausal, run: c.causal},
		{name: domain.TierExtractive, run: c.extractive},
	}
	return c
}

// Answer runs the guards and then each tier until one produces an answer.
// The guards reject gibberish queries and contexts that are too short or
// contain no real words; neither touches a model.
func (c *Cascade) Answer(ctx context.Context, query, passage string) (string, domain.Tier) {
	logger.Section("Answer Cascade")

	if !c.screen.Valid(query) {
		return OutOfScopeMessage, domain.TierRejected
	}

	passage = CleanContext(passage)
	if n := utf8.RuneCountInString(passage); n < minContextChars || !hasWord(passage) {
		logger.Info("Context unusable (%d chars), skipping models", n)
		return NoContextMessage, domain.TierNoContext
	}

	for _, t := range c.tiers {
		answer, advance := t.run(ctx, query, passage)
		if !advance {
			logger.Info("Answered by %s tier", t.name)
			return answer, t.name
		}
		logger.Debug("Tier %s advanced", t.name)
	}

	logger.Info("Answered by %s tier", domain.TierKeyword)
	return KeywordFallback(query, passage), domain.TierKeyword
}

func (c *Cascade) seq2seq(ctx context.Context, query, passage string) (string, bool) {
	if c.models.Seq2Seq == nil {
		return "", true
	}
	prompt := c.render(driven.PromptSeq2Seq, driven.DefaultSeq2SeqPrompt, query, passage)

	opts := seq2seqOptions
	opts.MaxTokens = c.maxTokens
	out, err := c.models.Seq2Seq.Generate(ctx, prompt, opts)
	if err != nil {
		logger.Warn("Seq2seq generation failed: %v", err)
		return "", true
	}

	answer := strings.TrimSpace(out)
	return answer, answer == ""
}

func (c *Cascade) causal(ctx context.Context, query, passage string) (string, bool) {
	if c.models.Causal == nil {
		return "", true
	}
	prompt := c.render(driven.PromptCausal, driven.DefaultCausalPrompt, query, passage)

	opts := causalOptions
	opts.MaxTokens = c.maxTokens
	out, err := c.models.Causal.Generate(ctx, prompt, opts)
	if err != nil {
		logger.Warn("Causal generation failed: %v", err)
		return "", true
	}

	answer := firstLine(strings.TrimPrefix(out, prompt))
	return answer, answer == ""
}

func (c *Cascade) extractive(ctx context.Context, query, passage string) (string, bool) {
	if c.models.Extractive == nil {
		return "", true
	}
	res, err := c.models.Extractive.Extract(ctx, query, passage)
	if err != nil {
		logger.Warn("Extractive QA failed: %v", err)
		return "", true
	}
	if res.Score <= extractiveThreshold || strings.TrimSpace(res.Text) == "" {
		logger.Debug("Extractive answer below threshold (score %.3f)", res.Score)
		return "", true
	}
	return strings.TrimSpace(res.Text), false
}

// render fills a prompt template. A missing store or unknown name uses fallback.
func (c *Cascade) render(name, fallback, query, passage string) string {
	tmpl := fallback
	if c.prompts != nil {
		if loaded, err := c.prompts.Load(name); err == nil && loaded != "" {
			tmpl = loaded
		}
	}
	return strings.NewReplacer("{context}", passage, "{question}", query).Replace(tmpl)
}

// CleanContext collapses whitespace and caps the context length.
func CleanContext(passage string) string {
	passage = whitespaceRun.ReplaceAllString(strings.TrimSpace(passage), " ")
	if utf8.RuneCountInString(passage) > maxContextChars {
		passage = string([]rune(passage)[:maxContextChars]) + truncationMarker
	}
	return passage
}

// KeywordFallback answers without a model. It returns the first two context
// sentences sharing a word with the query, else a canned response for the
// first keyword found in the query, else UnknownMessage.
func KeywordFallback(query, passage string) string {
	queryLower := strings.ToLower(query)
	queryWords := make(map[string]struct{})
	for _, w := range strings.Fields(queryLower) {
		queryWords[w] = struct{}{}
	}

	var relevant []string
	for _, sentence := range strings.Split(passage, ".") {
		for _, w := range strings.Fields(strings.ToLower(sentence)) {
			if _, ok := queryWords[w]; ok {
				relevant = append(relevant, strings.TrimSpace(sentence))
				break
			}
		}
	}
	if len(relevant) > 0 {
		if len(relevant) > 2 {
			relevant = relevant[:2]
		}
		return strings.Join(relevant, ". ") + "."
	}

	for _, kr := range keywordResponses {
		if strings.Contains(queryLower, kr.keyword) {
			return kr.response
		}
	}
	return UnknownMessage
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
