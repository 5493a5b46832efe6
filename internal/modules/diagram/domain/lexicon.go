package domain

// ConjunctionLabel is the display text of every coordinating-conjunction token.
const ConjunctionLabel = "and"

const conjunctionMarker = "conj"

// RelationLabels maps relation codes to the question a dependent answers.
var RelationLabels = map[string]string{
	"k1":    "Who/What",
	"k2":    "Whom/What",
	"k7t":   "When",
	"k7p":   "Where",
	"krvn":  "How",
	"k5":    "From where",
	"k2p":   "To where",
	"rt":    "Purpose",
	"mod":   "Modifier",
	"k3":    "With what",
	"k4":    "To whom",
	"k7":    "Where/When",
	"r6":    "Whose",
	"rh":    "Why",
	"k1s":   "Complement",
	"card":  "How many",
	"ord":   "Which",
	"quant": "How much",
}

type tamEntry struct {
	Key   string
	Gloss string
}

// tamLexicon is scanned in order and the first match wins, so compound
// markers must precede the simple markers they contain.
var tamLexicon = []tamEntry{
	{Key: "rahA_WA", Gloss: "past continuous"},
	{Key: "rahA_hE", Gloss: "present continuous"},
	{Key: "yA_WA", Gloss: "past perfect"},
	{Key: "yA_hE", Gloss: "present perfect"},
	{Key: "wA_WA", Gloss: "past habitual"},
	{Key: "wA_hE", Gloss: "present habitual"},
	{Key: "nA_hE", Gloss: "obligation"},
	{Key: "sakawA_hE", Gloss: "ability"},
	{Key: "gA", Gloss: "future"},
	{Key: "yA", Gloss: "past"},
}

var descriptorRelations = map[string]struct{}{
	"name": {},
	"desc": {},
}

// IsDescriptorRelation reports whether records with this relation only
// supply the display text of their head.
func IsDescriptorRelation(relation string) bool {
	_, ok := descriptorRelations[relation]
	return ok
}

// RelationLabel falls back to the raw code for unmapped relations.
func RelationLabel(relation string) string {
	if label, ok := RelationLabels[relation]; ok {
		return label
	}
	return relation
}
