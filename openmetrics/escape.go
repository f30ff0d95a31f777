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

package openmetrics

import "strings"

// escapeHelp replaces '\' by '\\' and new line character by '\n'.
func escapeHelp(s string) string {
	return helpEscaper.Replace(s)
}

// escapeLabelValue replaces '\' by '\\', '"' by '\"', and new line character
// by '\n'.
func escapeLabelValue(v string) string {
	return labelValueEscaper.Replace(v)
}

var (
	helpEscaper       = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	labelValueEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, `"`, `\"`)
)
