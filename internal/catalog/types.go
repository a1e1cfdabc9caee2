package catalog

import "github.com/DjordjeVuckovic/news-pulse/internal/keyword"

// File is the on-disk shape of the catalog artifact.
type File struct {
	Version   int                      `yaml:"version" validate:"required,eq=1"`
	Languages LanguagesSpec            `yaml:"languages"`
	Policy    PolicySpec               `yaml:"policy"`
	Search    SearchSpec               `yaml:"search"`
	Accounts  map[string][]AccountSpec `yaml:"accounts" validate:"required,dive,min=1,dive"`
	Topics    map[string]TopicSpec     `yaml:"topics" validate:"required,min=1,dive,min=1"`
}

type LanguagesSpec struct {
	Primary   string `yaml:"primary" validate:"required"`
	Secondary string `yaml:"secondary" validate:"required"`
}

type PolicySpec struct {
	OnUnknownTopic string `yaml:"on_unknown_topic"`
	// ExcludeQuotes defaults to true when omitted.
	ExcludeQuotes *bool `yaml:"exclude_quotes"`
	// LanguageGuard defaults to the secondary language when omitted; an
	// explicit empty list disables the guard.
	LanguageGuard       []string `yaml:"language_guard"`
	IncludeSourceStatus bool     `yaml:"include_source_status"`
}

type SearchSpec struct {
	Limit     int    `yaml:"limit" validate:"omitempty,min=1,max=100"`
	QueryType string `yaml:"query_type" validate:"omitempty,oneof=Latest Top"`
}

type AccountSpec struct {
	Handle    string             `yaml:"handle" validate:"required"`
	Qualifier keyword.Expression `yaml:"qualifier"`
}

// TopicSpec maps a language tag to that language's filter.
type TopicSpec map[string]TopicLanguageSpec

type TopicLanguageSpec struct {
	Keywords keyword.Expression `yaml:"keywords"`
	// AccountOverrides replaces an account's default qualifier for this topic.
	// An empty string removes the qualifier.
	AccountOverrides map[string]string `yaml:"account_overrides"`
}
