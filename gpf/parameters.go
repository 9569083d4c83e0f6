// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gpf

// Parameters is an ordered set of operator options, handed to the
// toolbox as -P flags in insertion order
type Parameters struct {
	keys   []string
	values map[string]string
}

// NewParameters creates an empty parameter set
func NewParameters() *Parameters {
	return &Parameters{values: map[string]string{}}
}

// Put sets an option value, overwriting any previous value for the key
func (p *Parameters) Put(key, value string) {
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get recovers an option value
func (p *Parameters) Get(key string) (string, bool) {
	value, ok := p.values[key]
	return value, ok
}

// Len returns the number of options set
func (p *Parameters) Len() int {
	return len(p.keys)
}

// CommandArgs renders the options as -Pkey=value command line arguments
func (p *Parameters) CommandArgs() []string {
	args := make([]string, len(p.keys))
	for i, key := range p.keys {
		args[i] = "-P" + key + "=" + p.values[key]
	}
	return args
}
