package domain

// Answer literals accepted by yes/no nodes.
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// Answer is the input submitted for the current node. Exactly one of
// the two shapes is valid, depending on the node kind: Value carries
// "yes"/"no" for yes/no nodes, OptionIDs carries the selection for
// multiple-choice nodes.
type Answer struct {
	Value     string   `json:"value,omitempty"`
	OptionIDs []string `json:"option_ids,omitempty"`
}

// Yes builds an affirmative yes/no answer.
func Yes() Answer { return Answer{Value: AnswerYes} }

// No builds a negative yes/no answer.
func No() Answer { return Answer{Value: AnswerNo} }

// Choices builds a multiple-choice answer from the selected option ids.
func Choices(ids ...string) Answer { return Answer{OptionIDs: ids} }

// IsYes reports whether the answer is the affirmative literal.
func (a Answer) IsYes() bool { return a.Value == AnswerYes }

// AnsweredQuestion is the immutable record appended to the session
// history when a node is answered.
type AnsweredQuestion struct {
	// QuestionID is the id of the answered node.
	QuestionID NodeID `json:"question_id"`

	// Prompt is a snapshot of the node's prompt at answer time.
	Prompt string `json:"prompt"`

	// Value is the recorded answer: the yes/no literal, or the selected
	// option labels joined by "; " in declaration order.
	Value string `json:"value"`

	// OptionIDs holds the selected ids of a multiple-choice answer, in
	// declaration order.
	OptionIDs []string `json:"option_ids,omitempty"`

	// Response is the contextual response text chosen by the answer, or
	// empty when the node declares none.
	Response string `json:"response,omitempty"`

	// Sequence is the 1-based position in the visited-question list. It
	// is a presentation ordinal, not the question id.
	Sequence int `json:"sequence"`
}
