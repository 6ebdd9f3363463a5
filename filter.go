package growthbook

// Filter carves mutually exclusive traffic groups out of the hash
// space. A user excluded by any filter of a rule or experiment is
// excluded from it.
type Filter struct {
	Seed        string        `json:"seed"`
	Ranges      []BucketRange `json:"ranges"`
	Attribute   string        `json:"attribute"`
	HashVersion int           `json:"hashVersion"`
}
