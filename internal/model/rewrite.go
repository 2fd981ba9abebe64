package model

// Region is a byte range of a file holding one script. Plain script files
// have a single region covering the whole file.
type Region struct {
	Start    int
	End      int
	Language Language
}

// Counts mirrors what the purge passes did to one file.
type Counts struct {
	Rewritten int `yaml:"rewritten"`
	Methods   int `yaml:"methods"`
	Skipped   int `yaml:"skipped"`
}

// Add returns the sum of both counts.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Rewritten: c.Rewritten + o.Rewritten,
		Methods:   c.Methods + o.Methods,
		Skipped:   c.Skipped + o.Skipped,
	}
}

// Rewrite is the outcome of purging one source in memory.
type Rewrite struct {
	Source    Source
	Original  []byte
	Rewritten []byte
	Counts    Counts
	Diff      string
}

// Changed reports whether the rewritten content differs from the original.
func (r Rewrite) Changed() bool {
	return string(r.Original) != string(r.Rewritten)
}

// Backup holds the original content of a file that was overwritten.
type Backup struct {
	Path          Path
	Content       []byte
	OriginalHash  string
	RewrittenHash string
}
