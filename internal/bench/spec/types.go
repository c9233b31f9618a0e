package spec

// BenchSpec describes a multi-project benchmark run: each project names the
// srcmap instance to query and the golden dataset to replay against it.
type BenchSpec struct {
	Projects []Project `yaml:"projects"`
	Output   string    `yaml:"output,omitempty"`
	Limit    int       `yaml:"limit,omitempty"`
}

type Project struct {
	Name      string `yaml:"name"`
	Repo      string `yaml:"repo,omitempty"`
	Language  string `yaml:"language,omitempty"`
	Framework string `yaml:"framework,omitempty"`
	Server    string `yaml:"server"`
	Dataset   string `yaml:"dataset"`
	Limit     int    `yaml:"limit,omitempty"`
}
