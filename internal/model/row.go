package model

// Row holds everything reported for one language.
//
// The Has* flags record whether the corresponding input existed. Writers use
// them to decide which cells and links to render; an absent input always
// has a zero count.
type Row struct {
	// Code is the language's short code, e.g. "de".
	Code string `json:"code"`

	// Name is the display name, e.g. "German".
	Name string `json:"name"`

	// HasWebsite is true if a language specific website directory exists.
	HasWebsite bool `json:"has_website"`

	// HasGrammar is true if the language has a grammar.xml rule file.
	HasGrammar bool `json:"has_grammar"`

	// XMLRules is the number of pattern rules in grammar.xml.
	XMLRules int `json:"xml_rules"`

	// GrammarDigest is the hex SHA3-256 digest of grammar.xml, empty if absent.
	GrammarDigest string `json:"grammar_digest,omitempty"`

	// HasJavaDir is true if the language has a Java rule directory.
	HasJavaDir bool `json:"has_java_dir"`

	// JavaRules is the number of Java rules, not counting the base rule class.
	JavaRules int `json:"java_rules"`

	// HasFalseFriends is true if the shared false-friends file exists.
	HasFalseFriends bool `json:"has_false_friends"`

	// FalseFriends is the number of false friend patterns for this language.
	FalseFriends int `json:"false_friends"`

	// AutoDetected is true if language identification supports this code.
	AutoDetected bool `json:"auto_detected"`

	// Maintainers lists the rule maintainers in catalog order.
	Maintainers []Maintainer `json:"maintainers,omitempty"`
}

// Maintainer is a rule maintainer as shown in the report.
type Maintainer struct {
	Name   string `json:"name"`
	URL    string `json:"url,omitempty"`
	Remark string `json:"remark,omitempty"`
}
