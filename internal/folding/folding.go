// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package folding implements text folding transformers applied to headwords
// and search terms before matching.
package folding

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
)

// ErrUnknownFolder indicates an unrecognized folder name.
var ErrUnknownFolder = errors.New("unknown folder")

// Case returns a transformer that performs Unicode case folding.
func Case() transform.Transformer {
	return cases.Fold()
}

// Parse returns a function creating a transformer for the comma separated
// list of folder names. Recognized names are "whitespace" and "case". An
// empty list or "none" yields [transform.Nop].
func Parse(names string) (func() transform.Transformer, error) {
	var makers []func() transform.Transformer
	for _, name := range strings.Split(names, ",") {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "", "none":
		case "whitespace", "ws":
			makers = append(makers, Whitespace)
		case "case":
			makers = append(makers, Case)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFolder, name)
		}
	}

	switch len(makers) {
	case 0:
		return func() transform.Transformer { return transform.Nop }, nil
	case 1:
		return makers[0], nil
	}
	return func() transform.Transformer {
		t := make([]transform.Transformer, 0, len(makers))
		for _, m := range makers {
			t = append(t, m())
		}
		return transform.Chain(t...)
	}, nil
}
