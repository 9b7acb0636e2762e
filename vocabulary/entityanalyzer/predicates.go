// Package entityanalyzer defines the output-entity predicates the core
// sets on the parallel output entity.
package entityanalyzer

import "github.com/c360studio/semstreams/vocabulary"

const Namespace = "entityanalyzer."

const (
	// NamesMentioned lists normalized PER values found in the source entity.
	NamesMentioned = "entityanalyzer.namesMentioned"

	// CompaniesMentioned lists normalized ORG values.
	CompaniesMentioned = "entityanalyzer.companiesMentioned"

	// LocationMentioned lists normalized LOC values.
	LocationMentioned = "entityanalyzer.locationMentioned"

	// EmailMentioned lists cleaned EMAIL values.
	EmailMentioned = "entityanalyzer.emailMentioned"

	// PhoneMentioned lists cleaned PHONE values.
	PhoneMentioned = "entityanalyzer.phoneMentioned"

	// IBANMentioned lists cleaned IBAN values.
	IBANMentioned = "entityanalyzer.ibanMentioned"

	// Country lists ISO country codes contributed by COUNTRY results and
	// resolution-stage hints.
	Country = "entityanalyzer.country"

	// Language lists detected language codes.
	Language = "entityanalyzer.language"

	// IndexText is the annotated, search-indexable rendering of the
	// extracted text, prefixed with the __annotated__ marker.
	IndexText = "entityanalyzer.indexText"

	// Resolved is a Mention entity's link back to its resolved entity's id hash.
	Resolved = "entityanalyzer.resolved"

	// Document links a Mention entity back to its source entity id.
	Document = "entityanalyzer.document"

	// Name is the cleaned name set on Mention and Resolved entities.
	Name = "entityanalyzer.name"

	// DetectedSchema is a Mention entity's Person/Organization classification.
	DetectedSchema = "entityanalyzer.detectedSchema"

	// ContextCountry is the resolution context's accumulated country set.
	ContextCountry = "entityanalyzer.contextCountry"

	// Proof links a Resolved or BankAccount entity back to its source entity id.
	Proof = "entityanalyzer.proof"

	// AccountNumber is a BankAccount entity's raw account number (the IBAN).
	AccountNumber = "entityanalyzer.accountNumber"

	// IBAN is a BankAccount entity's IBAN value.
	IBAN = "entityanalyzer.iban"

	// Title is the extracted article/page title for a Webpage source
	// entity, set before chunking runs.
	Title = "entityanalyzer.title"
)

// AnnotatedTextMarker prefixes every IndexText value.
const AnnotatedTextMarker = "__annotated__ "

func init() {
	vocabulary.Register(NamesMentioned,
		vocabulary.WithDescription("Normalized person names found in the source entity"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"namesMentioned"))

	vocabulary.Register(CompaniesMentioned,
		vocabulary.WithDescription("Normalized organization names found in the source entity"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"companiesMentioned"))

	vocabulary.Register(LocationMentioned,
		vocabulary.WithDescription("Locations found in the source entity"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"locationMentioned"))

	vocabulary.Register(EmailMentioned,
		vocabulary.WithDescription("Email addresses found in the source entity"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"emailMentioned"))

	vocabulary.Register(PhoneMentioned,
		vocabulary.WithDescription("Phone numbers found in the source entity"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"phoneMentioned"))

	vocabulary.Register(IBANMentioned,
		vocabulary.WithDescription("IBANs found in the source entity"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"ibanMentioned"))

	vocabulary.Register(Country,
		vocabulary.WithDescription("ISO country codes implied by extracted/resolved values"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"country"))

	vocabulary.Register(Language,
		vocabulary.WithDescription("Detected language codes, most confident first"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"language"))

	vocabulary.Register(IndexText,
		vocabulary.WithDescription("Annotated, search-indexable text"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"indexText"))

	vocabulary.Register(Resolved,
		vocabulary.WithDescription("Hash of the mention key this Mention entity resolves to"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"resolved"))

	vocabulary.Register(Document,
		vocabulary.WithDescription("Source entity id a derived entity was found in"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"document"))

	vocabulary.Register(Name,
		vocabulary.WithDescription("Cleaned name(s) for a Mention or Resolved entity"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"name"))

	vocabulary.Register(DetectedSchema,
		vocabulary.WithDescription("Person or Organization classification for a Mention entity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"detectedSchema"))

	vocabulary.Register(ContextCountry,
		vocabulary.WithDescription("Country codes accumulated while resolving a source entity"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"contextCountry"))

	vocabulary.Register(Proof,
		vocabulary.WithDescription("Source entity id backing a Resolved or BankAccount entity"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"proof"))

	vocabulary.Register(AccountNumber,
		vocabulary.WithDescription("BankAccount's raw account number"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"accountNumber"))

	vocabulary.Register(IBAN,
		vocabulary.WithDescription("BankAccount's IBAN"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"iban"))

	vocabulary.Register(Title,
		vocabulary.WithDescription("Extracted title of a Webpage source entity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"title"))
}

// PredicateForTag returns the output-entity predicate the core sets for
// values of tag, or "" if tag carries no such predicate.
func PredicateForTag(tag string) string {
	switch tag {
	case "PER":
		return NamesMentioned
	case "ORG":
		return CompaniesMentioned
	case "LOC":
		return LocationMentioned
	case "EMAIL":
		return EmailMentioned
	case "PHONE":
		return PhoneMentioned
	case "IBAN":
		return IBANMentioned
	case "COUNTRY":
		return Country
	default:
		return ""
	}
}
