// Copyright 2026 The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package prometheus

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// separatorByte is a byte that cannot occur in valid UTF-8 sequences and is
// used to separate label names, label values, and other strings from each other
// when calculating their combined hash value (aka signature aka fingerprint).
const separatorByte byte = 255

// emptyLabelSignature is the signature of an empty label set.
var emptyLabelSignature = xxhash.Sum64(nil)

// Signature returns a hash of the label set that does not depend on the order
// of its pairs. Equal label sets have equal signatures; the converse does not
// hold, so stores still compare by content on a match.
func (ls LabelSet) Signature() uint64 {
	if len(ls) == 0 {
		return emptyLabelSignature
	}

	pairs := make([]LabelPair, len(ls))
	copy(pairs, ls)
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })

	h := xxhash.New()
	for _, lp := range pairs {
		h.WriteString(lp.Name)
		h.Write([]byte{separatorByte})
		h.WriteString(lp.Value)
		h.Write([]byte{separatorByte})
	}
	return h.Sum64()
}
