// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package unicode normalizes strings to a canonical form.
package unicode

import (
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the input in Unicode Normalization Form C. Query and rule
// text is normalized before parsing so that equal-looking identifiers compare
// equal.
func Normalize(in string) string {
	return norm.NFC.String(in)
}
