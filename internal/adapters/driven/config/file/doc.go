// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under ~/.sercha-assist.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: User-editable prompt templates for the generative tiers
package file
