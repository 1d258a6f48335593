package store

// Statement is a parameterized SQL statement ready to be executed by a caller.
type Statement struct {
	SQL  string
	Args []any
}

const (
	insertSpeechSQL = "INSERT INTO wedding_speech (external_id, prompt, generated_text) VALUES (?, ?, ?)"
	selectSpeechSQL = "SELECT external_id, prompt, generated_text FROM wedding_speech WHERE external_id = ?"
)

// InsertSpeech builds the insert for one speech record. It never executes anything.
func InsertSpeech(externalID, prompt, generatedText string) Statement {
	return Statement{
		SQL:  insertSpeechSQL,
		Args: []any{externalID, prompt, generatedText},
	}
}

// SelectSpeech builds the lookup of a speech record by external id.
func SelectSpeech(externalID string) Statement {
	return Statement{
		SQL:  selectSpeechSQL,
		Args: []any{externalID},
	}
}
