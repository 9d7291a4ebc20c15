/*
Package params reads growth parameter files, also known as growth
profiles, from YAML documents.
*/
package params

import (
	"fmt"
	"io/ioutil"

	yaml "gopkg.in/yaml.v2"
)

/*
Profile holds the parameters of a growing run as read from a YAML
document:

	nmin: 5
	minleaf: 2
	nfeat: 3
	trees: 100
	workers: 4
	seed: 1234

Zero values mean the defaults: nmin 2, minleaf 2, every column
considered, a single tree, one worker per tree and a time-based
seed.
*/
type Profile struct {
	NMin    int   `yaml:"nmin"`
	MinLeaf int   `yaml:"minleaf"`
	NFeat   int   `yaml:"nfeat"`
	Trees   int   `yaml:"trees"`
	Workers int   `yaml:"workers"`
	Seed    int64 `yaml:"seed"`
}

/*
Read takes a slice of bytes with a growth profile in YAML and
returns the parsed profile or an error.
*/
func Read(doc []byte) (*Profile, error) {
	p := &Profile{}
	err := yaml.Unmarshal(doc, p)
	if err != nil {
		return nil, fmt.Errorf("parsing yml growth profile: %v", err)
	}
	if p.NMin < 0 || p.MinLeaf < 0 || p.NFeat < 0 || p.Trees < 0 || p.Workers < 0 {
		return nil, fmt.Errorf("parsing yml growth profile: negative parameter values are not allowed")
	}
	return p, nil
}

/*
ReadFromFile takes a filepath string, reads its contents and uses
Read to parse it and return a growth profile or an error. If the
file indicated by the filepath cannot be opened for reading an
error will be returned.
*/
func ReadFromFile(filepath string) (*Profile, error) {
	doc, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading growth profile yml file %s: %v", filepath, err)
	}
	p, err := Read(doc)
	if err != nil {
		err = fmt.Errorf("parsing growth profile yml file %s: %v", filepath, err)
	}
	return p, err
}
