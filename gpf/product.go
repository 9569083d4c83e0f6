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

// Product is an opaque handle on a toolbox product. A source product
// references data on disk; a derived product additionally carries the
// operator that produces it, materialized when the product is written.
type Product struct {
	sourcePath string
	operator   string
	parameters *Parameters
	released   bool
}

// NewProduct creates a source product handle for data at the given path
func NewProduct(sourcePath string) *Product {
	return &Product{sourcePath: sourcePath}
}

// SourcePath returns the path of the on-disk data backing this product
func (p *Product) SourcePath() string {
	return p.sourcePath
}

// Operator returns the operator producing this product, or an empty
// string for a source product
func (p *Product) Operator() string {
	return p.operator
}

// Released reports whether the handle has been released
func (p *Product) Released() bool {
	return p.released
}

// Release frees the handle. The toolbox holds native memory outside the
// Go heap for open products; releasing eagerly on every exit path keeps
// long sweeps from accumulating it. Safe to call more than once.
func (p *Product) Release() {
	p.released = true
	p.parameters = nil
}
