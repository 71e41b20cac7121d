// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ngram implements Nagao's 1994 out-of-core n-gram extraction
// algorithm over a generic element alphabet: 16-bit Unicode code units for
// character n-grams, or 32-bit word ids for word n-grams.
package ngram

// MaxNGramLength is the longest n-gram the engine will ever sort, compare
// or report. The suffix sorter and LCP builder both stop looking at this
// many elements past any pointer.
const MaxNGramLength = 255
