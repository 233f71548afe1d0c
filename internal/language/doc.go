// Package language normalizes language codes and holds the per-language data
// the word-card builder needs: the letter class a token may contain, the
// built-in stop-word list, and the x/text tag used for case mapping.
package language
