package domain

// DocumentKind identifies the binary format a document was extracted from.
type DocumentKind string

// Supported document kinds.
const (
	KindPDF           DocumentKind = "pdf"
	KindWordProcessor DocumentKind = "word-processor"
)

// Label returns the short human-readable form used in document manifests.
func (k DocumentKind) Label() string {
	switch k {
	case KindPDF:
		return "PDF"
	case KindWordProcessor:
		return "Word"
	default:
		return string(k)
	}
}

// ExtractionMethod records which strategy in the cascade produced the text.
type ExtractionMethod string

// Extraction methods, in cascade order.
const (
	MethodPrimary   ExtractionMethod = "primary"
	MethodFallback1 ExtractionMethod = "fallback1"
	MethodFallback2 ExtractionMethod = "fallback2"
	MethodFailed    ExtractionMethod = "failed"
)

// MethodForAttempt maps a zero-based cascade position to its method tag.
// Positions beyond the second fallback stay tagged as fallback2.
func MethodForAttempt(i int) ExtractionMethod {
	switch i {
	case 0:
		return MethodPrimary
	case 1:
		return MethodFallback1
	default:
		return MethodFallback2
	}
}

// DocumentMetadata holds per-document statistics derived at extraction
// time. It is never mutated after creation.
type DocumentMetadata struct {
	// ByteSize is the on-disk size of the source file.
	ByteSize int64

	// Kind is the binary format the document was extracted from.
	Kind DocumentKind

	// PageOrParagraphCount is pages for PDF, paragraphs for
	// word-processor documents.
	PageOrParagraphCount int

	// TableCount is the number of tables found. Only meaningful for
	// word-processor documents; zero otherwise.
	TableCount int

	// WordCount is the number of whitespace-separated words in the
	// cleaned text.
	WordCount int

	// CharacterCount is the number of characters (runes) in the
	// cleaned text.
	CharacterCount int

	// ExtractionMethod records which cascade strategy succeeded.
	ExtractionMethod ExtractionMethod
}

// Document is a successfully extracted document. It is immutable once
// created and replaced wholesale on reload.
type Document struct {
	// Name is the file name, unique within a Corpus.
	Name string

	// Text is the cleaned extracted text. Invariant: non-empty and
	// above the minimum-content threshold.
	Text string

	// Metadata holds the statistics derived at extraction time.
	Metadata DocumentMetadata

	// SourcePath is the absolute path the document was read from.
	SourcePath string
}

// Corpus is the ordered mapping from document name to Document.
// Insertion order is discovery order and names are unique.
type Corpus struct {
	names []string
	docs  map[string]Document
}

// NewCorpus creates an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{docs: make(map[string]Document)}
}

// Add inserts a document. Adding an existing name replaces the stored
// document but keeps its original position.
func (c *Corpus) Add(doc Document) {
	if _, ok := c.docs[doc.Name]; !ok {
		c.names = append(c.names, doc.Name)
	}
	c.docs[doc.Name] = doc
}

// Get returns the document for name, if present.
func (c *Corpus) Get(name string) (Document, bool) {
	doc, ok := c.docs[name]
	return doc, ok
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.names)
}

// Names returns the document names in insertion order.
func (c *Corpus) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Documents returns all documents in insertion order.
func (c *Corpus) Documents() []Document {
	out := make([]Document, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.docs[name])
	}
	return out
}

// Select resolves a subset of the corpus by name, preserving corpus
// order. An empty selection resolves to the whole corpus. Unknown
// names return ErrNotFound.
func (c *Corpus) Select(names []string) ([]Document, error) {
	if len(names) == 0 {
		return c.Documents(), nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := c.docs[name]; !ok {
			return nil, ErrNotFound
		}
		wanted[name] = true
	}

	out := make([]Document, 0, len(wanted))
	for _, name := range c.names {
		if wanted[name] {
			out = append(out, c.docs[name])
		}
	}
	return out, nil
}
