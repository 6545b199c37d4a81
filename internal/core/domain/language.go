package domain

// LanguageProfile describes one supported response language. Profiles
// are loaded from the localization catalog and passed into the prompt
// builder as a table, so adding a language never touches call sites.
type LanguageProfile struct {
	// Code is the ISO 639-1 language code, e.g. "en".
	Code string

	// Name is the language's own name, e.g. "English".
	Name string

	// RTL marks right-to-left scripts.
	RTL bool

	// Instruction is appended to the system prompt to pick the
	// response language.
	Instruction string

	// Greetings are the conversational openers answered locally
	// without calling the completion service.
	Greetings []string

	// GreetingReply is the canned greeting answer. It is a format
	// string taking the document count and the document list.
	GreetingReply string

	// AndMore abbreviates a long document list, e.g. "and more".
	AndMore string
}
