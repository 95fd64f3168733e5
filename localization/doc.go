// Package localization keeps page texts and word translations replicated
// across every registered language.
//
// A text or translation is one logical item stored as one row per language.
// Adding it writes the submitted language first and then a copy for every
// other language. Updates touch a single row so translations can diverge.
// Deleting comes in two forms: the whole group or a single language row.
//
// The fan-out is not atomic. When a write fails part way the rows already
// written are kept and the error is returned. Add is idempotent per language,
// so repeating the same call fills the gaps. Page texts can also be repaired
// with TextService.CheckLanguages; translations have no repair pass.
package localization
