package pricing

// Catalog is an insertion-ordered mapping from normalized keys to pricing
// records. Insertion order is significant: the resolver iterates entries in
// the order they were added and uses that order as a tie-break.
//
// A Catalog is built wholesale by one adapter and then only read; it is not
// safe for concurrent mutation. The first writer for a key wins and later
// duplicates are silently dropped, preserving provider list order.
type Catalog struct {
	keys    []string
	records map[string]*Record
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{records: make(map[string]*Record)}
}

// Put inserts a record under the given key if the key is not already
// present. Empty keys are ignored.
func (c *Catalog) Put(key string, rec *Record) {
	if key == "" || rec == nil {
		return
	}
	if _, exists := c.records[key]; exists {
		return
	}
	c.keys = append(c.keys, key)
	c.records[key] = rec
}

// Get returns the record for an exact key, or nil if absent.
func (c *Catalog) Get(key string) *Record {
	return c.records[key]
}

// Keys returns the catalog keys in insertion order. The returned slice is
// shared; callers must not modify it.
func (c *Catalog) Keys() []string {
	return c.keys
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.keys)
}

func (c *Catalog) hasKey(key string) bool {
	_, ok := c.records[key]
	return ok
}

func (c *Catalog) keyOperator(key string) Operator {
	if rec := c.records[key]; rec != nil {
		return rec.Operator
	}
	return OperatorEquals
}

// ContextCatalog is the insertion-ordered key→ContextRecord counterpart of
// Catalog, built from the fixed context provider independent of the selected
// pricing source. Context entries always match structurally (Equals).
type ContextCatalog struct {
	keys    []string
	records map[string]*ContextRecord
}

// NewContextCatalog returns an empty context catalog.
func NewContextCatalog() *ContextCatalog {
	return &ContextCatalog{records: make(map[string]*ContextRecord)}
}

// Put inserts a context record under the given key if absent.
func (c *ContextCatalog) Put(key string, rec *ContextRecord) {
	if key == "" || rec == nil {
		return
	}
	if _, exists := c.records[key]; exists {
		return
	}
	c.keys = append(c.keys, key)
	c.records[key] = rec
}

// Get returns the context record for an exact key, or nil if absent.
func (c *ContextCatalog) Get(key string) *ContextRecord {
	return c.records[key]
}

// Keys returns the catalog keys in insertion order.
func (c *ContextCatalog) Keys() []string {
	return c.keys
}

// Len returns the number of entries.
func (c *ContextCatalog) Len() int {
	return len(c.keys)
}

func (c *ContextCatalog) hasKey(key string) bool {
	_, ok := c.records[key]
	return ok
}

func (c *ContextCatalog) keyOperator(key string) Operator {
	return OperatorEquals
}
