/*
Package mbsearch is about analyzing the text of music metadata for search.

Description

Names of artists, titles of releases and recordings, labels and places come
in every script there is. Users type them with or without accents, with
Katakana where the catalog has Hiragana, with a traditional Han character
where the catalog has a simplified one, with "&" where the catalog says
"and". A search index has to decide, character by character, what counts
as "the same word". The decision has to be identical at index time and at
query time, otherwise a query cannot find what has been indexed.

This module implements a pipeline of small steps to arrive at that
decision:

   text ─▶ charmap ─▶ tokenizer ─▶ script ─▶ type ─▶ (bigram) ─▶ diacritic ─▶ casefold ─▶ tokens

Sub-package charmap substitutes literal sequences before tokenization and
keeps track of offsets into the original text. Sub-package tokenizer splits
the mapped text into typed tokens (see type Kind). Sub-package filter holds
the normalization steps working on single tokens. Sub-package analyzer
combines all of these into named profiles and hands out pipeline instances.
Relevance adjustments for fields aggregating repeated child entities live
in sub-package similarity.

BSD License

Copyright (c) 2021–22, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

Tokens

Every step of the pipeline pulls tokens from the step before it. Tokens are
not allocated per step: a pipeline instance owns a single Token, and each
step rewrites its Term buffer in place. Consequently a pipeline instance
must not be shared between goroutines. Package analyzer provides a pool of
pipeline instances for concurrent clients.

Rules

The tokenizer classifies runs of characters with the help of small
non-deterministic automata. Every step within a rule is performed by
executing a function. This function recognizes a single character class
and returns another function, representing the expectation for the next
character class. Matching by function continues until a rule is accepted
or aborted. The helper type to perform this kind of matching is called
Recognizer, and this package provides it together with a pool for
recognizers, as they are short-lived objects.
*/
package mbsearch

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mbsearch'.
func tracer() tracing.Trace {
	return tracing.Select("mbsearch")
}
