package cache

// Keyer derives cache keys. Keys embed a content hash plus every option
// that changes the cached value.
type Keyer interface {
	// DocumentKey keys a parsed document by the hash of its source bytes.
	DocumentKey(sourceHash string) string
	// LayoutKey keys a computed layout.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered output.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists the inputs of a layout pass besides the document.
type LayoutKeyOpts struct {
	Width              float64 `json:"width"`
	MaxContentWidth    float64 `json:"max_content_width,omitempty"`
	Metrics            string  `json:"metrics"`
	Theme              string  `json:"theme,omitempty"`
	AuthorDateTemplate string  `json:"author_date_template,omitempty"`
}

// ArtifactKeyOpts lists the inputs of a render besides the layout.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	Labels   bool    `json:"labels,omitempty"`
	Grid     float64 `json:"grid,omitempty"`
	Fonts    bool    `json:"fonts,omitempty"`
	Raster   bool    `json:"raster,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) DocumentKey(sourceHash string) string {
	return "document:" + sourceHash
}

func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
