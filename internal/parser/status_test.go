package parser

import (
	"testing"

	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

func TestClassifyStatus_EmptyRowDefaultsToReceived(t *testing.T) {
	t.Parallel()

	if got := ClassifyStatus(model.RawRow{}); got != model.StatusReceived {
		t.Fatalf("want=%s got=%s", model.StatusReceived, got)
	}
}

func TestClassifyStatus_FlagColumns(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		row  model.RawRow
		want model.Status
	}{
		{"rec lower", model.RawRow{"rec": model.NumberCell(1)}, model.StatusReceived},
		{"RE upper", model.RawRow{"RE": model.NumberCell(1)}, model.StatusRepaired},
		{"Non réparé header", model.RawRow{"Non réparé": model.NumberCell(1)}, model.StatusUnrepaired},
		{"bool flag", model.RawRow{"nr": model.BoolCell(true)}, model.StatusUnrepaired},
		{
			"received wins over repaired",
			model.RawRow{"Reçu": model.NumberCell(1), "re": model.NumberCell(1)},
			model.StatusReceived,
		},
		{
			"repaired wins over unrepaired",
			model.RawRow{"NR": model.NumberCell(1), "Réparé": model.NumberCell(1)},
			model.StatusRepaired,
		},
		{
			"zero flags are ignored",
			model.RawRow{"rec": model.NumberCell(0), "re": model.NumberCell(0), "nr": model.NumberCell(1)},
			model.StatusUnrepaired,
		},
		{
			"text one is not a flag",
			model.RawRow{"re": model.TextCell("1")},
			model.StatusReceived,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyStatus(tc.row); got != tc.want {
				t.Fatalf("want=%s got=%s", tc.want, got)
			}
		})
	}
}

func TestClassifyStatus_KeywordFallback(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want model.Status
	}{
		{"Reçu le 12/03", model.StatusReceived},
		{"RECU", model.StatusReceived},
		{"Réparé", model.StatusRepaired},
		{"en reparation", model.StatusRepaired},
		{"Non réparé", model.StatusUnrepaired},
		{"non repare - carte mère HS", model.StatusUnrepaired},
		{"non réparé", model.StatusUnrepaired},
		{"NR", model.StatusUnrepaired},
		{"en attente", model.StatusReceived},
	}
	for _, tc := range cases {
		row := model.RawRow{"Statut": model.TextCell(tc.text)}
		if got := ClassifyStatus(row); got != tc.want {
			t.Fatalf("%q want=%s got=%s", tc.text, tc.want, got)
		}
	}
}

func TestClassifyStatus_ColumnsScopeIgnoresFault(t *testing.T) {
	t.Parallel()

	row := model.RawRow{
		"équipement": model.TextCell("PC-07"),
		"panne":      model.TextCell("alimentation déjà réparée une fois, non réparé cette fois"),
	}
	if got := ClassifyStatus(row); got != model.StatusReceived {
		t.Fatalf("fault text leaked into status: got=%s", got)
	}

	rowScope := NewStatusClassifier(StatusScopeRow)
	if got := rowScope.Classify(row); got != model.StatusRepaired {
		t.Fatalf("row scope want=%s got=%s", model.StatusRepaired, got)
	}
}

func TestClassifyStatus_RowScopeUnrepairedOnly(t *testing.T) {
	t.Parallel()

	c := NewStatusClassifier(StatusScopeRow)
	row := model.RawRow{"panne": model.TextCell("Non réparé")}
	if got := c.Classify(row); got != model.StatusUnrepaired {
		t.Fatalf("want=%s got=%s", model.StatusUnrepaired, got)
	}
}

func TestParseStatusScope(t *testing.T) {
	t.Parallel()

	if ParseStatusScope(" ROW ") != StatusScopeRow {
		t.Fatalf("row not parsed")
	}
	if ParseStatusScope("") != StatusScopeColumns || ParseStatusScope("other") != StatusScopeColumns {
		t.Fatalf("default should be columns")
	}
}
