package parser

import (
	"sort"
	"strings"

	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

// StatusScope which cells the keyword fallback reads
type StatusScope string

const (
	// StatusScopeColumns only designated free-text status columns
	StatusScopeColumns StatusScope = "columns"
	// StatusScopeRow every cell of the row
	StatusScopeRow StatusScope = "row"
)

// ParseStatusScope parses a config value, defaulting to columns
func ParseStatusScope(s string) StatusScope {
	if StatusScope(strings.ToLower(strings.TrimSpace(s))) == StatusScopeRow {
		return StatusScopeRow
	}
	return StatusScopeColumns
}

// boolean-like status columns, in priority order
var statusColumns = []struct {
	status model.Status
	keys   []string
}{
	{model.StatusReceived, []string{"rec", "REC", "Reçu"}},
	{model.StatusRepaired, []string{"re", "RE", "Réparé"}},
	{model.StatusUnrepaired, []string{"nr", "NR", "Non réparé"}},
}

// StatusTextColumns free-text columns searched by the keyword fallback
var StatusTextColumns = []string{
	"statut", "Statut", "STATUT",
	"état", "etat", "État", "Etat", "ETAT", "ÉTAT",
	"observation", "Observation", "OBSERVATION",
	"observations", "Observations", "OBSERVATIONS",
	"remarque", "Remarque", "REMARQUE",
	"situation", "Situation", "SITUATION",
}

var (
	receivedKeywords = []string{"reçu", "recu"}
	repairedKeywords = []string{"réparé", "reparé", "repar"}
	// negated forms, stripped before the repaired keywords are tested
	unrepairedPhrases = []string{"non réparé", "non reparé", "non repare", "non-réparé", "non-repare", "non répar", "non repar"}
)

// StatusClassifier infers the repair status of a raw row. Unlike a plain
// ordered substring match, negated phrases such as "non réparé" never count
// as Repaired and resolve to Unrepaired.
type StatusClassifier struct {
	scope       StatusScope
	textColumns []string
}

// NewStatusClassifier creates a classifier for the given scope
func NewStatusClassifier(scope StatusScope) *StatusClassifier {
	return &StatusClassifier{
		scope:       scope,
		textColumns: StatusTextColumns,
	}
}

var defaultStatusClassifier = NewStatusClassifier(StatusScopeColumns)

// ClassifyStatus classifies with the default (columns) scope
func ClassifyStatus(row model.RawRow) model.Status {
	return defaultStatusClassifier.Classify(row)
}

// Classify resolves the status in three phases: flag columns, keyword
// search, then the Received default.
func (c *StatusClassifier) Classify(row model.RawRow) model.Status {
	if s, ok := statusFromColumns(row); ok {
		return s
	}
	if s, ok := statusFromText(c.text(row)); ok {
		return s
	}
	return model.StatusReceived
}

func statusFromColumns(row model.RawRow) (model.Status, bool) {
	for _, group := range statusColumns {
		for _, key := range group.keys {
			if cell, ok := row[key]; ok && cell.Truthy() {
				return group.status, true
			}
		}
	}
	return "", false
}

func statusFromText(text string) (model.Status, bool) {
	if text == "" {
		return "", false
	}
	if ContainsAny(text, receivedKeywords) {
		return model.StatusReceived, true
	}

	positive := text
	for _, p := range unrepairedPhrases {
		positive = strings.ReplaceAll(positive, p, " ")
	}
	if ContainsAny(positive, repairedKeywords) {
		return model.StatusRepaired, true
	}

	if ContainsAny(text, unrepairedPhrases) || containsWord(text, "nr") {
		return model.StatusUnrepaired, true
	}
	return "", false
}

// text builds the lower-cased blob searched by the keyword phase
func (c *StatusClassifier) text(row model.RawRow) string {
	var parts []string
	switch c.scope {
	case StatusScopeRow:
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if v := row[k].String(); v != "" {
				parts = append(parts, v)
			}
		}
	default:
		for _, k := range c.textColumns {
			if cell, ok := row[k]; ok && cell.String() != "" {
				parts = append(parts, cell.String())
			}
		}
	}
	return foldLower(strings.Join(parts, " | "))
}
