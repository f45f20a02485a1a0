package driven

// PromptStore provides access to generation prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Unknown names return an error; known names fall back to built-in defaults.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names. Templates use {context} and {question} placeholders.
const (
	// PromptSeq2Seq is the instruction prompt for the sequence-to-sequence tier.
	PromptSeq2Seq = "seq2seq"

	// PromptCausal is the continuation prompt for the causal tier. The
	// generated answer is whatever follows the rendered prompt.
	PromptCausal = "causal"
)

// Built-in templates used when no prompt file overrides them.
const (
	DefaultSeq2SeqPrompt = "Answer the question based on the context.\n\nContext: {context}\n\nQuestion: {question}\n\nAnswer:"
	DefaultCausalPrompt  = "Context: {context}\n\nQuestion: {question}\n\nAnswer:"
)
