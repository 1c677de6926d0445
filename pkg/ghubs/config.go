package ghubs

// FileSpec describes the data file a Config governs: its name
// (resolved relative to the directory of the YAML config that names
// it), delimited format, whether the file opens with a header row,
// and any sibling configs it needs pre-merged.
type FileSpec struct {
	Name   string       `yaml:"name,omitempty"`
	Format string       `yaml:"format"`
	Header bool         `yaml:"header,omitempty"`
	Needs  StringOrList `yaml:"needs,omitempty"`
}

// Config is one GenomeHubs data-file schema: the file format plus the
// attributes, taxonomy and taxon_names field groups.
type Config struct {
	File       FileSpec         `yaml:"file"`
	Attributes map[string]Field `yaml:"attributes,omitempty"`
	Taxonomy   map[string]Field `yaml:"taxonomy,omitempty"`
	TaxonNames map[string]Field `yaml:"taxon_names,omitempty"`
}

// New returns an empty, ready-to-merge-into Config.
func New() *Config {
	return &Config{
		Attributes: make(map[string]Field),
		Taxonomy:   make(map[string]Field),
		TaxonNames: make(map[string]Field),
	}
}
