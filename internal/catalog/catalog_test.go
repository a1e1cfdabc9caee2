package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/keyword"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalCatalog = `
version: 1
languages:
  primary: en
  secondary: ar
policy:
  on_unknown_topic: %s
accounts:
  en:
    - handle: AlArabiya_Eng
      qualifier: Saudi
    - handle: arabnews
  ar:
    - handle: AlArabiya
topics:
  labor-market:
    en:
      keywords: employment OR workforce
      account_overrides:
        alarabiya_eng: KSA
    ar:
      keywords: التوظيف
  empowerment:
    en:
      keywords: '"saudi society"'
    ar:
      keywords: تمكين
`

func parseMinimal(t *testing.T, policy string) *Catalog {
	t.Helper()
	c, err := Parse([]byte(fmtCatalog(policy)))
	require.NoError(t, err)
	return c
}

func fmtCatalog(policy string) string {
	return strings.Replace(minimalCatalog, "%s", policy, 1)
}

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 1, c.Version())
	assert.Equal(t, domain.DefaultLanguages, c.Languages())
	assert.Equal(t, RejectUnknownTopics, c.Policy().UnknownTopic)
	assert.True(t, c.Policy().ExcludeQuotes)
	assert.True(t, c.LanguageGuard(domain.LanguageArabic))
	assert.False(t, c.LanguageGuard(domain.LanguageEnglish))
	assert.Equal(t, Search{Limit: 25, QueryType: "Latest"}, c.Search())

	for _, id := range []string{"labor-market", "empowerment", "non-profit", "strategic-partnerships"} {
		for _, lang := range c.Languages().All() {
			kw, err := c.ResolveKeywords(id, lang)
			require.NoError(t, err, "%s/%s", id, lang)
			assert.False(t, kw.IsZero())
		}
	}

	en := c.ResolveAccounts(domain.LanguageEnglish)
	require.Len(t, en, 3)
	assert.Equal(t, "AlArabiya_Eng", en[0].Handle)
	assert.Equal(t, "arabnews", en[1].Handle)
	assert.Equal(t, "alekhbariyaEN", en[2].Handle)
	assert.Len(t, c.ResolveAccounts(domain.LanguageArabic), 3)
}

func TestCatalog_ResolveTopic(t *testing.T) {
	t.Run("known topic", func(t *testing.T) {
		c := parseMinimal(t, "reject")
		res, err := c.ResolveTopic(" labor-market ", domain.LanguageEnglish)
		require.NoError(t, err)
		assert.Equal(t, "labor-market", res.TopicID)
		assert.False(t, res.FellBack)
		assert.Equal(t, "employment OR workforce", res.Keywords.Raw())
	})

	t.Run("reject mode", func(t *testing.T) {
		c := parseMinimal(t, "reject")
		_, err := c.ResolveTopic("weather", domain.LanguageEnglish)
		assert.ErrorIs(t, err, ErrTopicNotFound)
	})

	t.Run("fallback mode", func(t *testing.T) {
		c := parseMinimal(t, "fallback:labor-market")
		res, err := c.ResolveTopic("weather", domain.LanguageArabic)
		require.NoError(t, err)
		assert.Equal(t, "labor-market", res.TopicID)
		assert.Equal(t, "weather", res.Requested)
		assert.True(t, res.FellBack)
		assert.Equal(t, "التوظيف", res.Keywords.Raw())
	})

	t.Run("unsupported language input resolves through primary", func(t *testing.T) {
		c := parseMinimal(t, "reject")
		lang := c.Languages().Parse("fr")
		res, err := c.ResolveTopic("empowerment", lang)
		require.NoError(t, err)
		assert.Equal(t, domain.LanguageEnglish, res.Lang)
	})

	t.Run("policy override", func(t *testing.T) {
		c := parseMinimal(t, "reject")
		fb, err := c.WithUnknownTopicPolicy(UnknownTopicPolicy{Mode: UnknownTopicFallback, Fallback: "empowerment"})
		require.NoError(t, err)

		res, err := fb.ResolveTopic("weather", domain.LanguageEnglish)
		require.NoError(t, err)
		assert.Equal(t, "empowerment", res.TopicID)

		_, err = c.ResolveTopic("weather", domain.LanguageEnglish)
		assert.ErrorIs(t, err, ErrTopicNotFound, "original catalog is unchanged")

		_, err = c.WithUnknownTopicPolicy(UnknownTopicPolicy{Mode: UnknownTopicFallback, Fallback: "weather"})
		assert.Error(t, err)
	})
}

func TestResolution_Qualifier(t *testing.T) {
	c := parseMinimal(t, "reject")
	accounts := c.ResolveAccounts(domain.LanguageEnglish)
	require.Len(t, accounts, 2)

	labor, err := c.ResolveTopic("labor-market", domain.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "KSA", labor.Qualifier(accounts[0]).Raw(), "topic override wins")
	assert.True(t, labor.Qualifier(accounts[1]).IsZero())

	emp, err := c.ResolveTopic("empowerment", domain.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Saudi", emp.Qualifier(accounts[0]).Raw(), "account default")
}

func TestDefault_EmptyOverrideDisablesQualifier(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	res, err := c.ResolveTopic("non-profit", domain.LanguageEnglish)
	require.NoError(t, err)
	account := c.ResolveAccounts(domain.LanguageEnglish)[0]
	require.False(t, account.Qualifier.IsZero())
	assert.Equal(t, keyword.Expression{}, res.Qualifier(account))
}

func TestCatalog_AllowSet(t *testing.T) {
	c := parseMinimal(t, "reject")
	en := c.AllowSet(domain.LanguageEnglish)

	assert.Equal(t, 2, en.Len())
	assert.True(t, en.Contains("ARABNEWS"))
	assert.True(t, en.Contains("@AlArabiya_Eng"))
	assert.False(t, en.Contains("AlArabiya"))
	assert.False(t, en.Contains(""))
}

func TestCatalog_ResolveAccountsIsCopy(t *testing.T) {
	c := parseMinimal(t, "reject")
	accounts := c.ResolveAccounts(domain.LanguageEnglish)
	accounts[0].Handle = "mutated"
	assert.Equal(t, "AlArabiya_Eng", c.ResolveAccounts(domain.LanguageEnglish)[0].Handle)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errPart string
	}{
		{
			name:    "wrong version",
			yaml:    "version: 2\nlanguages: {primary: en, secondary: ar}\naccounts: {en: [{handle: a}], ar: [{handle: b}]}\ntopics: {t: {en: {keywords: x}}}",
			errPart: "version must be 1",
		},
		{
			name:    "duplicate handle across languages",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: ar}\naccounts: {en: [{handle: a}], ar: [{handle: A}]}\ntopics: {t: {en: {keywords: x}}}",
			errPart: "listed for both",
		},
		{
			name:    "missing language accounts",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: ar}\naccounts: {en: [{handle: a}]}\ntopics: {t: {en: {keywords: x}}}",
			errPart: "no accounts configured",
		},
		{
			name:    "unsupported topic language",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: ar}\naccounts: {en: [{handle: a}], ar: [{handle: b}]}\ntopics: {t: {fr: {keywords: x}}}",
			errPart: "unsupported language",
		},
		{
			name:    "bad keyword expression",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: ar}\naccounts: {en: [{handle: a}], ar: [{handle: b}]}\ntopics: {t: {en: {keywords: 'x OR'}}}",
			errPart: "line",
		},
		{
			name:    "keyword with provider operator",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: ar}\naccounts: {en: [{handle: a}], ar: [{handle: b}]}\ntopics: {t: {en: {keywords: 'from:evil OR jobs'}}}",
			errPart: `invalid character ":" at position 4`,
		},
		{
			name:    "qualifier with stray symbols",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: ar}\naccounts: {en: [{handle: a, qualifier: 'C++'}], ar: [{handle: b}]}\ntopics: {t: {en: {keywords: x}}}",
			errPart: "invalid character",
		},
		{
			name:    "unterminated phrase",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: ar}\naccounts: {en: [{handle: a}], ar: [{handle: b}]}\ntopics: {t: {en: {keywords: '\"labor market'}}}",
			errPart: "unterminated quote",
		},
		{
			name:    "empty keywords",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: ar}\naccounts: {en: [{handle: a}], ar: [{handle: b}]}\ntopics: {t: {en: {keywords: ''}}}",
			errPart: "keywords are required",
		},
		{
			name:    "override for foreign account",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: ar}\naccounts: {en: [{handle: a}], ar: [{handle: b}]}\ntopics: {t: {en: {keywords: x, account_overrides: {b: y}}}}",
			errPart: "unknown account",
		},
		{
			name:    "unknown fallback topic",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: ar}\npolicy: {on_unknown_topic: 'fallback:nope'}\naccounts: {en: [{handle: a}], ar: [{handle: b}]}\ntopics: {t: {en: {keywords: x}, ar: {keywords: y}}}",
			errPart: "fallback topic",
		},
		{
			name:    "fallback topic missing a language",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: ar}\npolicy: {on_unknown_topic: 'fallback:t'}\naccounts: {en: [{handle: a}], ar: [{handle: b}]}\ntopics: {t: {en: {keywords: x}}}",
			errPart: "not defined for \"ar\"",
		},
		{
			name:    "bad policy",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: ar}\npolicy: {on_unknown_topic: ignore}\naccounts: {en: [{handle: a}], ar: [{handle: b}]}\ntopics: {t: {en: {keywords: x}}}",
			errPart: "invalid unknown topic policy",
		},
		{
			name:    "search limit out of range",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: ar}\nsearch: {limit: 500}\naccounts: {en: [{handle: a}], ar: [{handle: b}]}\ntopics: {t: {en: {keywords: x}}}",
			errPart: "limit must be at most 100",
		},
		{
			name:    "same languages",
			yaml:    "version: 1\nlanguages: {primary: en, secondary: en-GB}\naccounts: {en: [{handle: a}]}\ntopics: {t: {en: {keywords: x}}}",
			errPart: "must differ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestParse_PolicyDefaults(t *testing.T) {
	c, err := Parse([]byte("version: 1\nlanguages: {primary: en, secondary: ar}\npolicy: {exclude_quotes: false, language_guard: []}\naccounts: {en: [{handle: a}], ar: [{handle: b}]}\ntopics: {t: {en: {keywords: x}}}"))
	require.NoError(t, err)

	assert.False(t, c.Policy().ExcludeQuotes)
	assert.False(t, c.LanguageGuard(domain.LanguageArabic), "explicit empty guard disables it")
	assert.Equal(t, []string{"t"}, c.Topics())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmtCatalog("fallback:empowerment")), 0o600))

	c, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fallback:empowerment", c.Policy().UnknownTopic.String())
	assert.Equal(t, []string{"empowerment", "labor-market"}, c.Topics())

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseUnknownTopicPolicy(t *testing.T) {
	tests := []struct {
		input    string
		expected UnknownTopicPolicy
		wantErr  bool
	}{
		{input: "", expected: RejectUnknownTopics},
		{input: "reject", expected: RejectUnknownTopics},
		{input: "fallback:labor-market", expected: UnknownTopicPolicy{Mode: UnknownTopicFallback, Fallback: "labor-market"}},
		{input: "fallback: ", wantErr: true},
		{input: "fallback", wantErr: true},
		{input: "skip", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUnknownTopicPolicy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
