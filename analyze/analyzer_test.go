package analyze

import (
	"context"
	"strings"
	"testing"

	"github.com/c360studio/entity-analyzer/geodb"
	"github.com/c360studio/entity-analyzer/namedb"
	"github.com/c360studio/entity-analyzer/nermodel"
	"github.com/c360studio/entity-analyzer/ontology"
	"github.com/c360studio/entity-analyzer/vocabulary/entityanalyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T, db namedb.Client, geo geodb.Client) *Analyzer {
	t.Helper()
	if db == nil {
		db = namedb.NewFake()
	}
	if geo == nil {
		geo = geodb.NewFake()
	}
	a, err := New(DefaultConfig(), nermodel.NewStatisticalBackend(), db, geo)
	require.NoError(t, err)
	return a
}

func analyzeText(t *testing.T, a *Analyzer, id, text string) *Result {
	t.Helper()
	source := ontology.NewEntity(id, "PlainText")
	run, err := a.NewRun(context.Background(), source)
	require.NoError(t, err)
	run.Feed(context.Background(), text)
	result, err := run.Flush(context.Background())
	require.NoError(t, err)
	return result
}

func stringsOf(vals []any) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.(string)
	}
	return out
}

// Scenario 1: German person NER.
func TestAnalyzerGermanPersonNER(t *testing.T) {
	a := newTestAnalyzer(t, nil, nil)
	text := strings.Repeat("Das ist der Pudel von Angela Merkel. ", 5)
	result := analyzeText(t, a, "test1", text)

	assert.Contains(t, stringsOf(result.Output.Get(entityanalyzer.NamesMentioned)), "angela merkel")
	assert.Contains(t, stringsOf(result.Output.Get(entityanalyzer.Language)), "deu")
}

// Scenario 2: French language tagging.
func TestAnalyzerFrenchLanguageTagging(t *testing.T) {
	a := newTestAnalyzer(t, nil, nil)
	text := strings.Repeat("C'est le caniche d'Emmanuel Macron. ", 2)
	result := analyzeText(t, a, "test2", text)

	assert.Contains(t, stringsOf(result.Output.Get(entityanalyzer.NamesMentioned)), "emmanuel macron")
	assert.Equal(t, []string{"fra"}, stringsOf(result.Output.Get(entityanalyzer.Language)))
}

// Scenario 3: phone pattern.
func TestAnalyzerPhonePattern(t *testing.T) {
	a := newTestAnalyzer(t, nil, nil)
	result := analyzeText(t, a, "test3", "Mr. Flubby Flubber called the number tel:+919988111222 twice")

	assert.Contains(t, stringsOf(result.Output.Get(entityanalyzer.PhoneMentioned)), "+919988111222")
	assert.Contains(t, stringsOf(result.Output.Get(entityanalyzer.Country)), "in")

	indexText := result.Output.Get(entityanalyzer.IndexText)[0].(string)
	assert.Contains(t, indexText, "[+919988111222](")
	assert.Contains(t, indexText, "p_"+entityanalyzer.PhoneMentioned)
}

// Scenario 4: IBAN emits a BankAccount entity.
func TestAnalyzerIBANEmitsBankAccount(t *testing.T) {
	a := newTestAnalyzer(t, nil, nil)
	result := analyzeText(t, a, "test", "wire the funds to bank account CH5604835012345678009 today")

	var acct *ontology.Entity
	for _, d := range result.Derived {
		if d.Schema == string(ontology.SchemaBankAccount) {
			acct = d
		}
	}
	require.NotNil(t, acct)

	assert.Equal(t, "iban-ch5604835012345678009", acct.ID)
	assert.Equal(t, []any{"CH5604835012345678009"}, acct.Get(entityanalyzer.IBAN))
	assert.Equal(t, []any{"CH5604835012345678009"}, acct.Get(entityanalyzer.AccountNumber))
	assert.Equal(t, []any{"ch"}, acct.Get(entityanalyzer.Country))
	assert.Equal(t, []any{"test"}, acct.Get(entityanalyzer.Proof))

	indexText := result.Output.Get(entityanalyzer.IndexText)[0].(string)
	assert.Contains(t, indexText, "[CH5604835012345678009](")
	assert.Contains(t, indexText, "p_"+entityanalyzer.IBANMentioned)
}

// Scenario 5: location extraction.
func TestAnalyzerLocationExtraction(t *testing.T) {
	a := newTestAnalyzer(t, nil, nil)
	result := analyzeText(t, a, "test5", "Jane Doe lives in New York City")

	assert.Contains(t, stringsOf(result.Output.Get(entityanalyzer.LocationMentioned)), "new york city")

	indexText := result.Output.Get(entityanalyzer.IndexText)[0].(string)
	assert.Contains(t, indexText, "[New York City](")
	assert.Contains(t, indexText, "p_"+entityanalyzer.LocationMentioned)
}

// Scenario 6: lookup-driven resolution against a NameDB fixture.
func TestAnalyzerLookupDrivenResolution(t *testing.T) {
	db := namedb.NewFake()
	db.Set("Circular Plastics Alliance", namedb.Fixture{
		EntityID: "namedb-cpa-1",
		Caption:  "Circular Plastics Alliance",
		Score:    0.95,
		Schemata: []ontology.Schema{ontology.SchemaLegalEntity},
		Predicted: []namedb.SchemaPrediction{
			{NERTag: ontology.TagOrg, Score: 0.95},
		},
	})

	a := newTestAnalyzer(t, db, nil)
	result := analyzeText(t, a, "test6", "We signed a deal with Circular Plastics Alliance last week.")

	var org *ontology.Entity
	for _, d := range result.Derived {
		if d.ID == "namedb-cpa-1" {
			org = d
		}
	}
	require.NotNil(t, org)
	assert.Equal(t, string(ontology.SchemaLegalEntity), org.Schema)

	indexText := result.Output.Get(entityanalyzer.IndexText)[0].(string)
	assert.Contains(t, indexText, "[Circular Plastics Alliance](")
	assert.Contains(t, indexText, "p_"+entityanalyzer.CompaniesMentioned)
	assert.Contains(t, indexText, "p_"+entityanalyzer.NamesMentioned)
	assert.Contains(t, indexText, "s_LegalEntity")
	assert.Contains(t, indexText, "s_Organization")
}

func TestAnalyzerRejectsMissingID(t *testing.T) {
	a := newTestAnalyzer(t, nil, nil)
	_, err := a.NewRun(context.Background(), ontology.NewEntity("", "PlainText"))
	require.ErrorIs(t, err, ErrInputInvalid)
}

func TestAnalyzerSkipsNonAnalyzableSchema(t *testing.T) {
	a := newTestAnalyzer(t, nil, nil)
	source := ontology.NewEntity("acct-1", "BankAccount")
	run, err := a.NewRun(context.Background(), source)
	require.NoError(t, err)
	run.Feed(context.Background(), "Angela Merkel owns this account")

	result, err := run.Flush(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Output.Get(entityanalyzer.NamesMentioned))
	assert.Empty(t, result.Derived)
}

func TestAnalyzerTracerRecordsRejection(t *testing.T) {
	db := namedb.NewFake()
	valid := false
	db.Set("Fake Name Here", namedb.Fixture{Valid: &valid})

	cfg := DefaultConfig()
	cfg.EnableTracing = true
	a, err := New(cfg, nermodel.NewStatisticalBackend(), db, geodb.NewFake())
	require.NoError(t, err)

	result := analyzeText(t, a, "test7", "Fake Name Here signed the letter")
	assert.Positive(t, result.Trace.Rejections["JudithaValidatorStage: name validation failed"])
}

func TestAnalyzerModelLoadFailureIsFatal(t *testing.T) {
	a, err := New(DefaultConfig(), nermodel.NewTransformerBackend(nil), namedb.NewFake(), geodb.NewFake())
	require.NoError(t, err)

	run, err := a.NewRun(context.Background(), ontology.NewEntity("test-fatal", "PlainText"))
	require.NoError(t, err)
	run.Feed(context.Background(), "Angela Merkel visited Berlin.")

	_, err = run.Flush(context.Background())
	require.ErrorIs(t, err, nermodel.ErrModelLoad)
}

func TestAnalyzerPurgeResolveMemosDoesNotPanic(t *testing.T) {
	a := newTestAnalyzer(t, nil, nil)
	analyzeText(t, a, "test8", "Angela Merkel visited Berlin")
	assert.NotPanics(t, a.PurgeResolveMemos)
}
