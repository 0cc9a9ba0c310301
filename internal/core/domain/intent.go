package domain

// IntentGeneral is returned when no intent pattern matches.
const IntentGeneral = "general"

// IntentError marks a batch item that could not be classified.
const IntentError = "error"

// IntentScore pairs an intent label with its confidence.
type IntentScore struct {
	// Intent is the intent label, e.g. "inquiry".
	Intent string

	// Confidence is the match strength in [0, 1].
	Confidence float64
}

// IntentResult is the classification of a single email text.
type IntentResult struct {
	// Intent is the strongest matching intent label.
	Intent string

	// Confidence is the primary intent's strength in [0, 1].
	Confidence float64

	// Explanation states how the intent was determined.
	Explanation string

	// Secondary lists the next strongest intents, best first.
	Secondary []IntentScore

	// EmailLength is the character length of the input.
	EmailLength int

	// WordCount is the word count of the input.
	WordCount int
}

// IntentBatch aggregates classifications over several emails.
type IntentBatch struct {
	// Results holds one result per input, in input order.
	Results []IntentResult

	// Distribution counts emails per primary intent.
	Distribution map[string]int

	// Total is the number of emails classified.
	Total int
}

// EmailFeatures are surface signals extracted from an email text,
// independent of intent.
type EmailFeatures struct {
	// HasGreeting reports an opening like "hi" or "dear".
	HasGreeting bool

	// HasClosing reports a sign-off like "regards" or "sincerely".
	HasClosing bool

	// QuestionCount is the number of question marks.
	QuestionCount int

	// ExclamationCount is the number of exclamation marks.
	ExclamationCount int

	// HasURL reports an http or https link in the body.
	HasURL bool

	// HasEmailAddress reports an email address in the body.
	HasEmailAddress bool
}
